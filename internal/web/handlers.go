package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/ai"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/audio"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/config"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/history"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/session"
)

// maxBodyBytes bounds request bodies; audio payloads dominate the budget.
const maxBodyBytes = 25 << 20

// Backend is the AI surface the handlers call.
type Backend interface {
	session.AI
	EvaluatePronunciation(ctx context.Context, audioB64, mimeType, reference string) (*phrase.PronunciationResult, error)
	SynthesizeSpeech(ctx context.Context, text string, speed float64) (*ai.SpeechResult, error)
}

// Handlers contains HTTP route handlers for the JSON API.
type Handlers struct {
	backend Backend
	store   *history.Store
	sess    *session.Session
	cfg     *config.Config
	log     *slog.Logger
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

// HandleTranslate handles POST /api/translate.
func (h *Handlers) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	item, err := h.sess.Translate(r.Context(), req.Text)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if item == nil {
		// Superseded by a newer request; nothing to show.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	saved, err := h.store.IsSaved(item.Result.Japanese)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"item":          item,
		"saved":         saved,
		"quotaAdvisory": h.sess.QuotaAdvisory(),
	})
}

// HandleDictionary handles POST /api/dictionary.
func (h *Handlers) HandleDictionary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	entry, err := h.sess.LookupDictionary(r.Context(), req.Query)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if entry == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HandleTranscribe handles POST /api/transcribe.
func (h *Handlers) HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Audio    string `json:"audio"`
		MimeType string `json:"mimeType"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	text, err := h.backend.Transcribe(r.Context(), req.Audio, req.MimeType)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// HandlePronounce handles POST /api/pronounce.
func (h *Handlers) HandlePronounce(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Audio     string `json:"audio"`
		MimeType  string `json:"mimeType"`
		Reference string `json:"reference"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	result, err := h.backend.EvaluatePronunciation(r.Context(), req.Audio, req.MimeType, req.Reference)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSpeak handles POST /api/speak — returns synthesized audio as WAV.
func (h *Handlers) HandleSpeak(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text  string  `json:"text"`
		Speed float64 `json:"speed"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	result, err := h.backend.SynthesizeSpeech(r.Context(), req.Text, req.Speed)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("X-Playback-Speed", fmt.Sprintf("%g", result.Speed))
	w.WriteHeader(http.StatusOK)
	if err := audio.WriteWAV(w, result.PCM, result.SampleRate, result.Channels); err != nil {
		h.log.Error("writing wav response", "error", err)
	}
}

// HandleHistoryList handles GET /api/history.
func (h *Handlers) HandleHistoryList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Recent()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// HandleHistoryClear handles DELETE /api/history.
func (h *Handlers) HandleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearRecent(); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

// HandleHistoryDelete handles DELETE /api/history/{id}.
func (h *Handlers) HandleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, h.log, errors.NewInvalidRequest("history item ID is required"))
		return
	}
	if err := h.store.Delete(history.CollectionRecent, id); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

// HandleSavedList handles GET /api/saved.
func (h *Handlers) HandleSavedList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Saved()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// HandleSavedToggle handles POST /api/saved/toggle.
func (h *Handlers) HandleSavedToggle(w http.ResponseWriter, r *http.Request) {
	var item phrase.HistoryItem
	if err := decodeBody(w, r, &item); err != nil {
		writeError(w, h.log, err)
		return
	}
	if item.Result.Japanese == "" {
		writeError(w, h.log, errors.NewInvalidRequest("item result is required"))
		return
	}

	saved, err := h.store.ToggleSaved(item)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": saved})
}

// HandleSavedDelete handles DELETE /api/saved/{id}.
func (h *Handlers) HandleSavedDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, h.log, errors.NewInvalidRequest("saved item ID is required"))
		return
	}
	if err := h.store.Delete(history.CollectionSaved, id); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": id})
}

// HandleExport handles GET /api/export?collection=saved|recent.
// The response downloads under the canonical dated filename.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	collection := history.Collection(r.URL.Query().Get("collection"))
	if collection == "" {
		collection = history.CollectionSaved
	}

	data, err := h.store.Export(collection)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	name := history.ExportFileName(collection, time.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleImport handles POST /api/import — body is an exported JSON array.
func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		writeError(w, h.log, errors.NewInvalidRequest(fmt.Sprintf("failed to read import body: %v", err)))
		return
	}

	n, err := h.store.Import(data)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": n})
}

// HandleThemeGet handles GET /api/theme.
func (h *Handlers) HandleThemeGet(w http.ResponseWriter, r *http.Request) {
	theme, err := h.store.Theme()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// HandleThemeSet handles PUT /api/theme.
func (h *Handlers) HandleThemeSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.store.SetTheme(req.Theme); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}

// HandleStudySheet handles GET /study/{id} — a printable HTML study sheet
// for one history item, found in either collection.
func (h *Handlers) HandleStudySheet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, h.log, errors.NewInvalidRequest("history item ID is required"))
		return
	}

	item, err := h.findItem(id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	renderStudySheet(w, item)
}

// findItem looks an item up by ID across recent and saved.
func (h *Handlers) findItem(id string) (*phrase.HistoryItem, error) {
	for _, c := range []history.Collection{history.CollectionRecent, history.CollectionSaved} {
		items, err := h.loadCollection(c)
		if err != nil {
			return nil, err
		}
		for i := range items {
			if items[i].ID == id {
				return &items[i], nil
			}
		}
	}
	return nil, errors.NewNotFound(id)
}

func (h *Handlers) loadCollection(c history.Collection) ([]phrase.HistoryItem, error) {
	if c == history.CollectionRecent {
		return h.store.Recent()
	}
	return h.store.Saved()
}
