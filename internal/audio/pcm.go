// Package audio turns synthesized speech payloads into playable buffers.
//
// The speech model returns raw 16-bit little-endian signed PCM, mono, at
// 24 kHz, base64-encoded. Buffers hold samples normalized to [-1, 1).
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

const (
	// SampleRate of speech payloads, in Hz.
	SampleRate = 24000
	// Channels of speech payloads.
	Channels = 1
)

// ErrOddLength is returned when a PCM payload is not a whole number of samples.
var ErrOddLength = errors.New("audio: pcm payload has odd byte length")

// Buffer is a decoded, playable mono sample buffer.
type Buffer struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Duration is the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.SampleRate)
}

// DecodeBase64 decodes a base64 speech payload into a Buffer.
func DecodeBase64(s string) (*Buffer, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("audio: decode base64: %w", err)
	}
	return DecodePCM(raw)
}

// DecodePCM reinterprets raw bytes as int16 LE samples and normalizes each by 32768.
func DecodePCM(raw []byte) (*Buffer, error) {
	if len(raw)%2 != 0 {
		return nil, ErrOddLength
	}
	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float32(v) / 32768.0
	}
	return &Buffer{SampleRate: SampleRate, Channels: Channels, Samples: samples}, nil
}

// PCM16 converts the buffer back to int16 LE bytes, clamping out-of-range samples.
func (b *Buffer) PCM16() []byte {
	out := make([]byte, 2*len(b.Samples))
	for i, s := range b.Samples {
		v := math.Round(float64(s) * 32768.0)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v)))
	}
	return out
}

// EncodeWAV writes the buffer as a canonical 16-bit PCM RIFF/WAVE file.
func EncodeWAV(w io.Writer, b *Buffer) error {
	data := b.PCM16()
	channels := b.Channels
	if channels == 0 {
		channels = Channels
	}
	const bitsPerSample = 16
	blockAlign := channels * bitsPerSample / 8
	byteRate := b.SampleRate * blockAlign

	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + len(data)),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(channels),
		uint32(b.SampleRate),
		uint32(byteRate),
		uint16(blockAlign),
		uint16(bitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		uint32(len(data)),
	}
	for _, field := range header {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("audio: write wav header: %w", err)
		}
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("audio: write wav data: %w", err)
	}
	return nil
}
