package errors

import (
	stderrors "errors"
	"testing"
)

func TestIs_MatchesCode(t *testing.T) {
	err := NewRateLimited("")
	if !Is(err, ErrRateLimited) {
		t.Error("Is should match ErrRateLimited")
	}
	if Is(err, ErrServiceError) {
		t.Error("Is should not match a different code")
	}
}

func TestIs_NonAppError(t *testing.T) {
	err := stderrors.New("plain error")
	if Is(err, ErrInternal) {
		t.Error("Is should not match a non-AppError")
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rate limited", NewRateLimited(""), 429},
		{"not found", NewNotFound("みずうみ"), 404},
		{"mic denied", NewMicDenied(), 403},
		{"alignment", NewAlignment(5, 2), 422},
		{"empty response", NewEmptyResponse("translate"), 502},
		{"plain error", stderrors.New("x"), 500},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("%s: StatusOf = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NewImportParse(nil)); got != ErrImportParse {
		t.Errorf("CodeOf = %q, want %q", got, ErrImportParse)
	}
	if got := CodeOf(stderrors.New("x")); got != ErrInternal {
		t.Errorf("CodeOf(plain) = %q, want %q", got, ErrInternal)
	}
}

func TestNewAlignment_Details(t *testing.T) {
	err := NewAlignment(101, 2)
	if err.Details["length"] != 101 {
		t.Errorf("Details[length] = %v, want 101", err.Details["length"])
	}
	if err.Details["frame_size"] != 2 {
		t.Errorf("Details[frame_size] = %v, want 2", err.Details["frame_size"])
	}
}
