// Package mcp exposes the translator to MCP clients over stdio: translation,
// dictionary lookup, history access, and export/import as tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/config"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/history"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"translate": {
		def:     translateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTranslate },
	},
	"dictionary_lookup": {
		def:     dictionaryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDictionary },
	},
	"history_list": {
		def:     historyListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistoryList },
	},
	"saved_toggle": {
		def:     savedToggleToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSavedToggle },
	},
	"history_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"history_import": {
		def:     importToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with NihonGo tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(ai AI, store *history.Store, cfg *config.Config, version, exportsDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"nihongo",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(ai, store, cfg, exportsDir)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(ai AI, store *history.Store, cfg *config.Config, version, exportsDir string) error {
	s := NewServer(ai, store, cfg, version, exportsDir)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
