// Package session orchestrates the interactive flows: translation,
// dictionary lookup, and voice input. A submit while a flow is already in
// flight is ignored rather than queued. Each flow also tracks a monotonic
// request sequence so a completion whose sequence has gone stale is
// discarded instead of overwriting fresher state.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/history"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
)

// AI is the subset of the backend client the session drives.
type AI interface {
	Translate(ctx context.Context, text, sourceLang string) (*phrase.TranslationResult, error)
	LookupDictionary(ctx context.Context, query string) (*phrase.DictionaryEntry, error)
	Transcribe(ctx context.Context, audioB64, mimeType string) (string, error)
}

// Status is the lifecycle state of one flow.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Session holds the mutable interactive state for one user session.
type Session struct {
	ai       AI
	store    *history.Store
	recorder Recorder
	log      *slog.Logger

	sourceLang string

	mu sync.Mutex

	translateSeq    uint64
	translateStatus Status
	lastTranslation *phrase.HistoryItem
	translateErr    error

	dictSeq    uint64
	dictStatus Status
	lastEntry  *phrase.DictionaryEntry
	dictErr    error

	// quotaAdvisory persists across failed attempts and clears only on the
	// next successful translation.
	quotaAdvisory string

	inputText    string
	capture      CaptureHandle
	transcribing bool
}

// New creates a session. recorder may be nil when voice input is not
// available on this surface; StartRecording then fails with MIC_UNAVAILABLE.
func New(ai AI, store *history.Store, recorder Recorder, sourceLang string, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{
		ai:              ai,
		store:           store,
		recorder:        recorder,
		sourceLang:      sourceLang,
		log:             log,
		translateStatus: StatusIdle,
		dictStatus:      StatusIdle,
	}
}

// Translate runs the translation flow for text. On success the result is
// recorded to recent history and returned. A submit while a translation is
// already in flight is ignored: no backend call is made, the in-flight call
// is not cancelled, and (nil, nil) is returned; the caller shows nothing.
// The same (nil, nil) signals a completion whose sequence went stale.
func (s *Session) Translate(ctx context.Context, text string) (*phrase.HistoryItem, error) {
	s.mu.Lock()
	if s.translateStatus == StatusPending {
		s.mu.Unlock()
		s.log.Debug("ignoring submit while a translation is in flight")
		return nil, nil
	}
	s.translateSeq++
	seq := s.translateSeq
	s.translateStatus = StatusPending
	s.mu.Unlock()

	result, err := s.ai.Translate(ctx, text, s.sourceLang)

	s.mu.Lock()
	if seq != s.translateSeq {
		s.mu.Unlock()
		s.log.Debug("discarding superseded translation", "seq", seq)
		return nil, nil
	}

	if err != nil {
		s.translateStatus = StatusError
		s.translateErr = err
		if errors.Is(err, errors.ErrRateLimited) {
			s.quotaAdvisory = err.Error()
		}
		s.mu.Unlock()
		return nil, err
	}

	// Persist outside the lock; Record has its own serialization.
	s.mu.Unlock()
	item, recErr := s.store.Record(text, *result)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.translateSeq {
		return nil, nil
	}
	if recErr != nil {
		s.translateStatus = StatusError
		s.translateErr = recErr
		return nil, recErr
	}
	s.translateStatus = StatusSuccess
	s.translateErr = nil
	s.lastTranslation = item
	s.quotaAdvisory = ""
	return item, nil
}

// LookupDictionary runs the dictionary flow. It is independent of the
// translation flow and has its own supersede sequence. A lookup submitted
// while one is already in flight is ignored and returns (nil, nil).
func (s *Session) LookupDictionary(ctx context.Context, query string) (*phrase.DictionaryEntry, error) {
	s.mu.Lock()
	if s.dictStatus == StatusPending {
		s.mu.Unlock()
		s.log.Debug("ignoring lookup while one is in flight")
		return nil, nil
	}
	s.dictSeq++
	seq := s.dictSeq
	s.dictStatus = StatusPending
	s.mu.Unlock()

	entry, err := s.ai.LookupDictionary(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.dictSeq {
		s.log.Debug("discarding superseded lookup", "seq", seq)
		return nil, nil
	}
	if err != nil {
		s.dictStatus = StatusError
		s.dictErr = err
		return nil, err
	}
	s.dictStatus = StatusSuccess
	s.dictErr = nil
	s.lastEntry = entry
	return entry, nil
}

// TranslateState returns the translation flow's current status, last
// committed result, and last error.
func (s *Session) TranslateState() (Status, *phrase.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.translateStatus, s.lastTranslation, s.translateErr
}

// DictionaryState returns the dictionary flow's current status, last entry,
// and last error.
func (s *Session) DictionaryState() (Status, *phrase.DictionaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dictStatus, s.lastEntry, s.dictErr
}

// QuotaAdvisory returns the sticky quota warning, or "" when clear.
func (s *Session) QuotaAdvisory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quotaAdvisory
}

// InputText returns the current input buffer.
func (s *Session) InputText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputText
}

// SetInputText replaces the input buffer (typing).
func (s *Session) SetInputText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputText = text
}

// Recording reports whether a capture is in progress.
func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture != nil
}

// StartRecording begins audio capture. Starting while already recording, or
// while a stopped capture is still being transcribed, is ignored. With no
// recorder configured it fails with MIC_UNAVAILABLE.
func (s *Session) StartRecording(ctx context.Context) error {
	s.mu.Lock()
	if s.capture != nil || s.transcribing {
		s.mu.Unlock()
		return nil
	}
	rec := s.recorder
	s.mu.Unlock()

	if rec == nil {
		return errors.NewMicUnavailable(nil)
	}
	handle, err := rec.Start(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capture != nil || s.transcribing {
		// Lost the race with a concurrent start or stop; drop this capture.
		handle.Stop()
		return nil
	}
	s.capture = handle
	return nil
}

// StopRecording ends capture, transcribes the audio, and appends the
// transcript to the input buffer. Existing text is never replaced; the
// transcript is appended with a separating space. An empty transcript
// (silence) leaves the buffer untouched and is not an error. New recording
// starts stay disabled until the transcription finishes. Returns the
// resulting buffer.
func (s *Session) StopRecording(ctx context.Context) (string, error) {
	s.mu.Lock()
	handle := s.capture
	s.capture = nil
	if handle != nil {
		s.transcribing = true
	}
	s.mu.Unlock()

	if handle == nil {
		return s.InputText(), nil
	}
	defer func() {
		s.mu.Lock()
		s.transcribing = false
		s.mu.Unlock()
	}()

	audioB64, mimeType, err := handle.Stop()
	if err != nil {
		return s.InputText(), err
	}

	transcript, err := s.ai.Transcribe(ctx, audioB64, mimeType)
	if err != nil {
		return s.InputText(), err
	}
	if transcript == "" {
		return s.InputText(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inputText == "" {
		s.inputText = transcript
	} else {
		s.inputText = strings.TrimRight(s.inputText, " ") + " " + transcript
	}
	return s.inputText, nil
}
