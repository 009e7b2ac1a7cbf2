// Package site holds the site-wide configuration: identity, links, navigation,
// the category taxonomy, experience entries and third-party integrations.
package site

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/LLwassim/LLwassim.github.io/work"
)

var ErrInvalidConfig = errors.New("invalid site config")

type Config struct {
	Name        string   `yaml:"name" json:"name"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	URL         string   `yaml:"url" json:"url"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`

	Links   Links     `yaml:"links" json:"links"`
	Contact Contact   `yaml:"contact" json:"contact"`
	Nav     []NavItem `yaml:"nav" json:"nav"`

	Categories work.Taxonomy `yaml:"categories" json:"categories"`
	Experience []Experience  `yaml:"experience,omitempty" json:"experience,omitempty"`

	Integrations Integrations `yaml:"integrations" json:"-"`
}

type Links struct {
	GitHub   string `yaml:"github,omitempty" json:"github,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
}

type Contact struct {
	Email    string `yaml:"email,omitempty" json:"email,omitempty"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
}

type NavItem struct {
	Title string `yaml:"title" json:"title"`
	Href  string `yaml:"href" json:"href"`
}

// Experience is one position on the experience timeline.
type Experience struct {
	ID           string   `yaml:"id" json:"id"`
	Company      string   `yaml:"company" json:"company"`
	Position     string   `yaml:"position" json:"position"`
	Location     string   `yaml:"location,omitempty" json:"location,omitempty"`
	StartDate    string   `yaml:"startDate" json:"startDate"`
	EndDate      string   `yaml:"endDate" json:"endDate"`
	Description  string   `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies,omitempty" json:"technologies,omitempty"`
	Logo         string   `yaml:"logo,omitempty" json:"logo,omitempty"`
	Website      string   `yaml:"website,omitempty" json:"website,omitempty"`
	Current      bool     `yaml:"current,omitempty" json:"current,omitempty"`
}

// Integrations are server-side endpoints, never sent to clients.
type Integrations struct {
	// FormEndpoint receives contact form submissions. Empty disables contact.
	FormEndpoint string `yaml:"formEndpoint,omitempty"`
	// BookingURL is the base scheduling link used by BookingURL.
	BookingURL string `yaml:"bookingUrl,omitempty"`
}

func Default() Config {
	return Config{
		Name:        "Wassim LaCorchy",
		Title:       "Wassim LaCorchy | Principal Software Engineer & AI Solutions Architect",
		Description: "Principal Software Engineer building AI-driven platforms, cloud infrastructure and microservices.",
		URL:         "https://llwassim.github.io",
		Keywords:    []string{"Software Engineer", "Full Stack Developer", "AWS", "Portfolio"},
		Links: Links{
			GitHub:   "https://github.com/LLwassim",
			LinkedIn: "https://www.linkedin.com/in/wassimlacorchy/",
		},
		Contact: Contact{
			Location: "New York, NY",
		},
		Nav: []NavItem{
			{Title: "Home", Href: "/"},
			{Title: "Work", Href: "/work"},
			{Title: "Experience", Href: "/experience"},
			{Title: "Writing", Href: "/writing"},
		},
		Categories: work.DefaultTaxonomy(),
		Integrations: Integrations{
			BookingURL: "https://calendly.com/wassimlacorchy/30min",
		},
	}
}

func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if err := validateAbsURL("url", c.URL, true); err != nil {
		return err
	}
	if err := validateAbsURL("integrations.formEndpoint", c.Integrations.FormEndpoint, false); err != nil {
		return err
	}
	if err := validateAbsURL("integrations.bookingUrl", c.Integrations.BookingURL, false); err != nil {
		return err
	}

	seen := make(map[work.Category]bool, len(c.Categories))
	for _, info := range c.Categories {
		if info.Name == "" {
			return fmt.Errorf("%w: category name is required", ErrInvalidConfig)
		}
		if info.Name == work.AllToken {
			return fmt.Errorf("%w: %q is reserved for the all-categories selector", ErrInvalidConfig, work.AllToken)
		}
		if seen[info.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidConfig, info.Name)
		}
		seen[info.Name] = true
	}
	return nil
}

func validateAbsURL(field, raw string, required bool) error {
	if raw == "" {
		if required {
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, field)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL", ErrInvalidConfig, field)
	}
	return nil
}

// Taxonomy returns the configured categories, or the default set when none
// are configured.
func (c Config) Taxonomy() work.Taxonomy {
	if len(c.Categories) == 0 {
		return work.DefaultTaxonomy()
	}
	return c.Categories
}
