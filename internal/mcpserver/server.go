// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/active"
	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/settings"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp      *server.MCPServer
	svc      *noteservice.Service
	settings *settings.Store
	tracker  *active.Tracker
}

// New creates a new MCP server with all Raido tools registered.
func New(svc *noteservice.Service, st *settings.Store, tracker *active.Tracker) *Server {
	s := &Server{svc: svc, settings: st, tracker: tracker}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("normalize_links",
		mcp.WithDescription("Rewrite embedded image references (![[...]]) in a note "+
			"into inline-link syntax, resolving partial refs against the embed index. "+
			"Defaults to the active note when no path is given."),
		mcp.WithString("path", mcp.Description("Relative path to the note (empty for the active note)")),
	), s.normalizeLinks)

	s.mcp.AddTool(mcp.NewTool("get_links",
		mcp.WithDescription("List the resolved embed targets of a note with reference counts."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note")),
	), s.getLinks)

	s.mcp.AddTool(mcp.NewTool("get_stamp_settings",
		mcp.WithDescription("Return the current stamp settings: date format, "+
			"metadata key, debounce minutes, and ignored folders."),
	), s.getStampSettings)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.svc.ReadNote(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) normalizeLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		path = s.tracker.Path()
	}
	if path == "" {
		return mcp.NewToolResultError("no path given and no active note"), nil
	}
	res, err := s.svc.NormalizeEmbeds(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	targets, err := s.svc.Links(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(targets, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getStampSettings(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.settings.Snapshot(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
