package mcp

import (
	"context"
	"encoding/json"

	"github.com/LLwassim/LLwassim.github.io/work"
	"github.com/mark3labs/mcp-go/mcp"
)

type categoryEntry struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

func (s *Server) handleWorkFilter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// An omitted category shows everything; a supplied one is matched literally.
	sel := work.All
	if raw, ok := req.GetArguments()["category"]; ok {
		token, isString := raw.(string)
		if !isString {
			return InvalidArgument("category", raw, "must be a string"), nil
		}
		sel = work.ParseSelector(token)
	}

	order := req.GetString("order", "")
	opts, err := work.ParseOrder(order)
	if err != nil {
		return InvalidArgument("order", order, err.Error()), nil
	}

	return jsonResult("work_filter", work.FilterAndSort(s.store.List(), sel, opts...))
}

func (s *Server) handleWorkGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("id")
	if err != nil || slug == "" {
		return InvalidArgument("id", nil, "case study slug is required"), nil
	}

	cs, found := s.library.CaseStudy(slug)
	if !found {
		return CaseStudyNotFound(slug), nil
	}
	return jsonResult("work_get", cs)
}

func (s *Server) handleWorkCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tax := s.siteStore.Get().Taxonomy()

	var entries []categoryEntry
	for _, sel := range tax.Selectors() {
		entries = append(entries, categoryEntry{Token: sel.String(), Label: tax.SelectorLabel(sel)})
	}
	return jsonResult("work_categories", entries)
}

func (s *Server) handleWritingList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult("writing_list", s.library.Writing(req.GetBool("drafts", false)))
}

func (s *Server) handleSiteInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult("site_info", s.siteStore.Get())
}

func jsonResult(tool string, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return InternalError(tool, err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
