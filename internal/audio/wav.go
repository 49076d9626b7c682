package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
)

// WriteWAV wraps raw signed 16-bit little-endian PCM in a WAV container so
// synthesized speech can be saved to disk or streamed over HTTP. The PCM
// byte length must be frame-aligned, same as DecodePCM.
func WriteWAV(w io.Writer, pcm []byte, sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid WAV parameters: rate=%d channels=%d", sampleRate, channels))
	}
	frameSize := 2 * channels
	if len(pcm)%frameSize != 0 {
		return errors.NewAlignment(len(pcm), frameSize)
	}

	const bitsPerSample = 16
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(pcm)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(pcm)))

	if _, err := w.Write(header[:]); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write WAV header: %w", err))
	}
	if _, err := w.Write(pcm); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write WAV data: %w", err))
	}
	return nil
}
