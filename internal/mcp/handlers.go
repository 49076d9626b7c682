package mcp

import (
	"context"
	"encoding/json"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/config"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/history"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
)

// AI is the backend surface the MCP tools call.
type AI interface {
	Translate(ctx context.Context, text, sourceLang string) (*phrase.TranslationResult, error)
	LookupDictionary(ctx context.Context, query string) (*phrase.DictionaryEntry, error)
}

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	ai         AI
	store      *history.Store
	cfg        *config.Config
	exportsDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(ai AI, store *history.Store, cfg *config.Config, exportsDir string) *Handlers {
	return &Handlers{ai: ai, store: store, cfg: cfg, exportsDir: exportsDir}
}

// Request types for each tool

// TranslateRequest represents the arguments for translate.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang,omitempty"`
}

// DictionaryRequest represents the arguments for dictionary_lookup.
type DictionaryRequest struct {
	Query string `json:"query"`
}

// HistoryListRequest represents the arguments for history_list.
type HistoryListRequest struct {
	Collection string `json:"collection,omitempty"`
}

// SavedToggleRequest represents the arguments for saved_toggle.
type SavedToggleRequest struct {
	ID string `json:"id"`
}

// ExportRequest represents the arguments for history_export.
type ExportRequest struct {
	Collection string `json:"collection,omitempty"`
	Dir        string `json:"dir,omitempty"`
}

// ImportRequest represents the arguments for history_import.
type ImportRequest struct {
	Path string `json:"path"`
}

// Handler implementations

// HandleTranslate handles the translate tool call.
func (h *Handlers) HandleTranslate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TranslateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	sourceLang := input.SourceLang
	if sourceLang == "" {
		sourceLang = h.cfg.SourceLang
	}

	result, err := h.ai.Translate(ctx, input.Text, sourceLang)
	if err != nil {
		return errorResult(err), nil
	}

	item, err := h.store.Record(input.Text, *result)
	if err != nil {
		return errorResult(err), nil
	}

	saved, err := h.store.IsSaved(item.Result.Japanese)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"item":  item,
		"saved": saved,
	})
}

// HandleDictionary handles the dictionary_lookup tool call.
func (h *Handlers) HandleDictionary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DictionaryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	entry, err := h.ai.LookupDictionary(ctx, input.Query)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(entry)
}

// HandleHistoryList handles the history_list tool call.
func (h *Handlers) HandleHistoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var items []phrase.HistoryItem
	switch input.Collection {
	case "", string(history.CollectionRecent):
		items, err = h.store.Recent()
	case string(history.CollectionSaved):
		items, err = h.store.Saved()
	default:
		return errorResult(errors.NewInvalidRequest("collection must be \"recent\" or \"saved\"")), nil
	}
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"items": items, "count": len(items)})
}

// HandleSavedToggle handles the saved_toggle tool call.
func (h *Handlers) HandleSavedToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SavedToggleRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.ID == "" {
		return errorResult(errors.NewInvalidRequest("id is required")), nil
	}

	item, err := h.findItem(input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	saved, err := h.store.ToggleSaved(*item)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"id": input.ID, "saved": saved})
}

// HandleExport handles the history_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	collection := history.Collection(input.Collection)
	if collection == "" {
		collection = history.CollectionSaved
	}
	dir := input.Dir
	if dir == "" {
		dir = h.exportsDir
	}

	path, err := h.store.ExportToFile(dir, collection)
	if err != nil {
		return errorResult(err), nil
	}

	items, err := loadCount(h.store, collection)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"path": path, "exported": items})
}

// HandleImport handles the history_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Path == "" {
		return errorResult(errors.NewInvalidRequest("path is required")), nil
	}

	data, err := os.ReadFile(input.Path)
	if err != nil {
		return errorResult(errors.NewInvalidRequest("failed to read import file: " + err.Error())), nil
	}

	n, err := h.store.Import(data)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{"imported": n})
}

// findItem looks an item up by ID across recent and saved.
func (h *Handlers) findItem(id string) (*phrase.HistoryItem, error) {
	recent, err := h.store.Recent()
	if err != nil {
		return nil, err
	}
	saved, err := h.store.Saved()
	if err != nil {
		return nil, err
	}
	for _, items := range [][]phrase.HistoryItem{recent, saved} {
		for i := range items {
			if items[i].ID == id {
				return &items[i], nil
			}
		}
	}
	return nil, errors.NewNotFound(id)
}

// loadCount returns the item count of a collection.
func loadCount(store *history.Store, c history.Collection) (int, error) {
	var items []phrase.HistoryItem
	var err error
	if c == history.CollectionRecent {
		items, err = store.Recent()
	} else {
		items, err = store.Saved()
	}
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if appErr, ok := err.(*errors.AppError); ok {
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		if appErr.Code != errors.ErrInternal && appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
