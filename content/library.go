package content

import (
	"sync"

	"github.com/LLwassim/LLwassim.github.io/work"
)

// Library holds the last successfully loaded set of documents.
type Library struct {
	loader *Loader

	mu      sync.RWMutex
	studies []CaseStudy
	writing []Writing
}

func NewLibrary(loader *Loader) *Library {
	return &Library{loader: loader}
}

// Reload reads every document. On error the previous documents are kept.
func (lib *Library) Reload() error {
	studies, err := lib.loader.LoadCaseStudies()
	if err != nil {
		return err
	}
	writing, err := lib.loader.LoadWriting()
	if err != nil {
		return err
	}

	lib.mu.Lock()
	lib.studies = studies
	lib.writing = writing
	lib.mu.Unlock()
	return nil
}

// LoadWorkItems reloads the library and returns the case studies as work
// items. It satisfies work.LoadFunc.
func (lib *Library) LoadWorkItems() ([]work.Item, error) {
	if err := lib.Reload(); err != nil {
		return nil, err
	}
	return WorkItems(lib.CaseStudies()), nil
}

func (lib *Library) CaseStudies() []CaseStudy {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	out := make([]CaseStudy, len(lib.studies))
	copy(out, lib.studies)
	return out
}

func (lib *Library) CaseStudy(slug string) (CaseStudy, bool) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	for _, cs := range lib.studies {
		if cs.Slug == slug {
			return cs, true
		}
	}
	return CaseStudy{}, false
}

// Writing returns published posts newest first.
func (lib *Library) Writing(includeDrafts bool) []Writing {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	return Published(lib.writing, includeDrafts)
}
