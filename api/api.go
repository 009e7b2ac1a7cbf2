// Package api serves the site's read-only JSON HTTP endpoints, contact
// capture and the admin reload hook.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LLwassim/LLwassim.github.io/contact"
	"github.com/LLwassim/LLwassim.github.io/content"
	"github.com/LLwassim/LLwassim.github.io/logger"
	"github.com/LLwassim/LLwassim.github.io/middleware"
	"github.com/LLwassim/LLwassim.github.io/rpc"
	"github.com/LLwassim/LLwassim.github.io/site"
	"github.com/LLwassim/LLwassim.github.io/work"
)

const maxContactBody = 64 << 10

type Handler struct {
	workStore work.Store
	library   *content.Library
	siteStore *site.Store
	contact   *contact.Service
}

func NewHandler(workStore work.Store, library *content.Library, siteStore *site.Store, contactService *contact.Service) *Handler {
	return &Handler{
		workStore: workStore,
		library:   library,
		siteStore: siteStore,
		contact:   contactService,
	}
}

// Register mounts the API routes on mux. The admin route is only mounted
// when admin is true.
func (h *Handler) Register(mux *http.ServeMux, admin bool) {
	mux.HandleFunc("GET /api/site", h.handleSite)
	mux.HandleFunc("GET /api/work", h.handleWorkList)
	mux.HandleFunc("GET /api/work/{slug}", h.handleWorkGet)
	mux.HandleFunc("GET /api/writing", h.handleWriting)
	mux.HandleFunc("GET /api/experience", h.handleExperience)
	mux.HandleFunc("POST /api/contact", h.handleContact)
	if admin {
		mux.HandleFunc("POST "+middleware.AdminPrefix+"reload", h.handleReload)
	}
}

type siteResponse struct {
	Site       site.Config          `json:"site"`
	Categories []rpc.CategoryButton `json:"categories"`
	Metadata   site.Metadata        `json:"metadata"`
	BookingURL string               `json:"bookingUrl,omitempty"`
}

func (h *Handler) handleSite(w http.ResponseWriter, r *http.Request) {
	cfg := h.siteStore.Get()
	tax := cfg.Taxonomy()

	resp := siteResponse{
		Site:     cfg,
		Metadata: cfg.Metadata("", "", "/"),
	}
	for _, sel := range tax.Selectors() {
		resp.Categories = append(resp.Categories, rpc.CategoryButton{
			Token: sel.String(),
			Label: tax.SelectorLabel(sel),
		})
	}

	booking, err := cfg.BookingURL("site", "")
	if err != nil {
		logger.FromContext(r.Context()).Warn("invalid booking url", "error", err)
	}
	resp.BookingURL = booking

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleWorkList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := work.All
	if q.Has("category") {
		sel = work.ParseSelector(q.Get("category"))
	}

	opts, err := work.ParseOrder(q.Get("order"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rpc.WorkFilterResult{
		Category: sel,
		Items:    work.FilterAndSort(h.workStore.List(), sel, opts...),
	})
}

func (h *Handler) handleWorkGet(w http.ResponseWriter, r *http.Request) {
	cs, ok := h.library.CaseStudy(r.PathValue("slug"))
	if !ok {
		writeError(w, http.StatusNotFound, "work not found")
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *Handler) handleWriting(w http.ResponseWriter, r *http.Request) {
	drafts := r.URL.Query().Get("drafts") == "1"
	writeJSON(w, http.StatusOK, rpc.WritingListResult{Posts: h.library.Writing(drafts)})
}

func (h *Handler) handleExperience(w http.ResponseWriter, r *http.Request) {
	exp := h.siteStore.Get().Experience
	if exp == nil {
		exp = []site.Experience{}
	}
	writeJSON(w, http.StatusOK, rpc.ExperienceListResult{Experience: exp})
}

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody)).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.contact.Submit(r.Context(), middleware.ClientIP(r), sub)
	if err != nil {
		status := contactStatus(err)
		if status >= http.StatusInternalServerError {
			logger.FromContext(r.Context()).Error("contact submission failed", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, receipt)
}

func contactStatus(err error) int {
	switch {
	case errors.Is(err, contact.ErrInvalidSubmission):
		return http.StatusBadRequest
	case errors.Is(err, contact.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, contact.ErrInProgress):
		return http.StatusConflict
	case errors.Is(err, contact.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

type reloadResponse struct {
	Items int `json:"items"`
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := h.siteStore.Reload(); err != nil {
		log.Error("site reload failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.workStore.Reload(); err != nil {
		log.Error("content reload failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	items := len(h.workStore.List())
	log.Info("content reloaded", "items", items)
	writeJSON(w, http.StatusOK, reloadResponse{Items: items})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
