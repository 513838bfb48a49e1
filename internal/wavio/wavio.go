// Package wavio reads and writes PCM WAV files as channel-major float32
// buffers.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcmFormat = 1

// ErrInvalidWAV is returned for input that is not a supported PCM WAV file.
var ErrInvalidWAV = errors.New("wavio: invalid WAV file")

// Audio is a decoded file. Channels[ch][i] holds sample i of channel ch in
// [-1, 1].
type Audio struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float32
}

// Frames returns the number of samples per channel.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// Duration returns the length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}

	return float64(a.Frames()) / float64(a.SampleRate)
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidWAV, bitDepth)
	}
}

// Decode reads an integer PCM WAV stream of 16, 24 or 32 bits.
func Decode(r io.ReadSeeker) (*Audio, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	if d.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: audio format %d is not integer PCM", ErrInvalidWAV, d.WavAudioFormat)
	}

	scale, err := fullScale(int(d.BitDepth))
	if err != nil {
		return nil, err
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidWAV)
	}

	frames := len(buf.Data) / channels
	out := make([][]float32, channels)

	for ch := range out {
		out[ch] = make([]float32, frames)
		for i := range frames {
			out[ch][i] = float32(float64(buf.Data[i*channels+ch]) / scale)
		}
	}

	return &Audio{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   int(d.BitDepth),
		Channels:   out,
	}, nil
}

// Encode writes a as integer PCM at a.BitDepth (16 when zero). Samples are
// clipped to [-1, 1].
func Encode(w io.WriteSeeker, a *Audio) error {
	bitDepth := a.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}

	scale, err := fullScale(bitDepth)
	if err != nil {
		return err
	}

	channels := len(a.Channels)
	if channels == 0 || a.SampleRate <= 0 {
		return errors.New("wavio: encode: need at least one channel and a positive sample rate")
	}

	frames := a.Frames()
	data := make([]int, frames*channels)

	for ch, samples := range a.Channels {
		if len(samples) != frames {
			return fmt.Errorf("wavio: encode: channel %d has %d samples, want %d", ch, len(samples), frames)
		}

		for i, x := range samples {
			v := math.Round(float64(x) * scale)
			data[i*channels+ch] = int(math.Max(-scale, math.Min(scale-1, v)))
		}
	}

	enc := wav.NewEncoder(w, a.SampleRate, bitDepth, channels, pcmFormat)

	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	return nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// WriteFile encodes a into a new file at path.
func WriteFile(path string, a *Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	err = Encode(f, a)
	if err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
