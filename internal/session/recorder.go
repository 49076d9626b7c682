package session

import "context"

// Recorder starts audio capture from the local input device. Start fails
// with MIC_DENIED when permission is refused and MIC_UNAVAILABLE when no
// usable device exists or the device cannot be opened.
type Recorder interface {
	Start(ctx context.Context) (CaptureHandle, error)
}

// CaptureHandle is one in-progress recording. Stop ends the capture and
// returns the recorded audio base64-encoded along with its MIME type,
// ready for the transcription boundary.
type CaptureHandle interface {
	Stop() (audioB64, mimeType string, err error)
}
