package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/raido/internal/active"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/settings"
	"github.com/starford/raido/internal/storage"
	"github.com/starford/raido/internal/testutil"
)

func testServer(t *testing.T) (*Server, storage.Provider, *index.DB, *active.Tracker) {
	t.Helper()

	_, store := testutil.TestVault(t)
	db := testutil.TestDB(t)
	st := testutil.TestSettings(t, func(s *settings.Settings) {
		s.HeaderUpdated = "modified"
	})
	tracker := active.NewTracker()

	svc := noteservice.NewService(store, db)
	return New(svc, st, tracker), store, db, tracker
}

func syncIndex(t *testing.T, db *index.DB, store storage.Provider) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := index.Sync(db, store, logger); err != nil {
		t.Fatal(err)
	}
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we call the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "normalize_links":
		result, err = srv.normalizeLinks(ctx, req)
	case "get_links":
		result, err = srv.getLinks(ctx, req)
	case "get_stamp_settings":
		result, err = srv.getStampSettings(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestReadNote(t *testing.T) {
	srv, store, _, _ := testServer(t)
	_ = store.Write("test.md", []byte("# Test\nHello"))

	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "test.md"})
	if text := resultText(r); text != "# Test\nHello" {
		t.Errorf("read result = %q", text)
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv, _, _, _ := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error result for missing note")
	}
}

func TestNormalizeLinks(t *testing.T) {
	srv, store, db, _ := testServer(t)
	_ = store.Write("attachments/img 1.png", []byte("png"))
	_ = store.Write("note.md", []byte("See ![[img 1.png]].\n"))
	syncIndex(t, db, store)

	r := callTool(t, srv, "normalize_links", map[string]interface{}{"path": "note.md"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}

	var res noteservice.NormalizeResult
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if res.Rewrites != 1 || !res.Changed {
		t.Errorf("result = %+v", res)
	}

	data, _ := store.Read("note.md")
	if !strings.Contains(string(data), "![](attachments/img%201.png)") {
		t.Errorf("content = %q", data)
	}
}

func TestNormalizeLinksActiveFallback(t *testing.T) {
	srv, store, db, tracker := testServer(t)
	_ = store.Write("note.md", []byte("plain body\n"))
	syncIndex(t, db, store)

	r := callTool(t, srv, "normalize_links", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error with no path and no active note")
	}

	tracker.Set("note.md")
	r = callTool(t, srv, "normalize_links", map[string]interface{}{})
	if r.IsError {
		t.Errorf("unexpected error: %s", resultText(r))
	}
}

func TestGetLinks(t *testing.T) {
	srv, store, db, _ := testServer(t)
	_ = store.Write("attachments/a.png", []byte("a"))
	_ = store.Write("note.md", []byte("![[a.png]] and ![[a.png]]\n"))
	syncIndex(t, db, store)

	r := callTool(t, srv, "get_links", map[string]interface{}{"path": "note.md"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}

	var targets []models.Embed
	if err := json.Unmarshal([]byte(resultText(r)), &targets); err != nil {
		t.Fatal(err)
	}
	if len(targets) != 1 || targets[0].Target != "attachments/a.png" || targets[0].Count != 2 {
		t.Errorf("targets = %+v", targets)
	}
}

func TestGetStampSettings(t *testing.T) {
	srv, _, _, _ := testServer(t)

	r := callTool(t, srv, "get_stamp_settings", map[string]interface{}{})
	var got settings.Settings
	if err := json.Unmarshal([]byte(resultText(r)), &got); err != nil {
		t.Fatal(err)
	}
	if got.HeaderUpdated != "modified" {
		t.Errorf("headerUpdated = %q", got.HeaderUpdated)
	}
}
