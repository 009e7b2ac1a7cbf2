package mcp

import (
	"github.com/LLwassim/LLwassim.github.io/work"
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("work_filter",
		mcp.WithDescription("List portfolio work items for a category. Featured items always come first; order \"display\" sorts each group by ascending display order."),
		mcp.WithString("category",
			mcp.Description("Category token, e.g. \"AI\". Empty or \"All\" returns every item."),
		),
		mcp.WithString("order",
			mcp.Description("Empty keeps content order within the featured and non-featured groups; \"display\" sorts each group by ascending display order."),
			mcp.Enum("", work.OrderDisplay),
		),
	), s.handleWorkFilter)

	s.mcp.AddTool(mcp.NewTool("work_get",
		mcp.WithDescription("Get the full case study behind a work item."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Work item ID (the case study slug)"),
		),
	), s.handleWorkGet)

	s.mcp.AddTool(mcp.NewTool("work_categories",
		mcp.WithDescription("List the category tokens and labels offered by the work filter, \"All\" first."),
	), s.handleWorkCategories)

	s.mcp.AddTool(mcp.NewTool("writing_list",
		mcp.WithDescription("List writing posts, newest first."),
		mcp.WithBoolean("drafts",
			mcp.Description("Include draft posts"),
		),
	), s.handleWritingList)

	s.mcp.AddTool(mcp.NewTool("site_info",
		mcp.WithDescription("Get the site owner's profile, links, navigation and experience."),
	), s.handleSiteInfo)
}
