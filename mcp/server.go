// Package mcp implements a stdio MCP server that lets AI agents browse the
// portfolio: work items, case studies, writing and site details.
package mcp

import (
	"github.com/LLwassim/LLwassim.github.io/content"
	"github.com/LLwassim/LLwassim.github.io/site"
	"github.com/LLwassim/LLwassim.github.io/work"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "portfolio"

type Server struct {
	store     work.Store
	library   *content.Library
	siteStore *site.Store

	mcp *server.MCPServer
}

func NewServer(store work.Store, library *content.Library, siteStore *site.Store, version string) *Server {
	s := &Server{
		store:     store,
		library:   library,
		siteStore: siteStore,
	}

	s.mcp = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.registerTools()
	return s
}

// Serve blocks on stdin/stdout until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
