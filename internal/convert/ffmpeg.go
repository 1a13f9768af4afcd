package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
)

// Converter renders an arbitrary audio file into the fixed waveform format
// expected by the recognizer.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string) error
}

// ConversionError reports a failed converter run with the process diagnostics
// needed to debug it.
type ConversionError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ConversionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ffmpeg failed: rc=%d stderr: %s", e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("ffmpeg failed: rc=%d: %v", e.ExitCode, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// FFmpeg shells out to the ffmpeg binary to resample audio into a mono,
// fixed-rate linear PCM WAV.
type FFmpeg struct {
	Binary     string
	SampleRate int
	Channels   int
}

// NewFFmpeg applies the reference defaults: 16 kHz, single channel.
func NewFFmpeg(binary string) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{Binary: binary, SampleRate: 16000, Channels: 1}
}

// Convert runs `ffmpeg -y -i input -ar <rate> -ac <channels> output`,
// overwriting outputPath if it exists. The input file is left untouched.
func (f *FFmpeg) Convert(ctx context.Context, inputPath, outputPath string) error {
	args := f.args(inputPath, outputPath)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.Binary, args...)
	cmd.Stderr = &stderr

	slog.Debug("running converter", "binary", f.Binary, "input", inputPath, "output", outputPath)

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ConversionError{ExitCode: code, Stderr: stderr.String(), Err: err}
	}
	return nil
}

func (f *FFmpeg) args(inputPath, outputPath string) []string {
	rate := f.SampleRate
	if rate <= 0 {
		rate = 16000
	}
	channels := f.Channels
	if channels <= 0 {
		channels = 1
	}
	return []string{
		"-y",
		"-i", inputPath,
		"-ar", strconv.Itoa(rate),
		"-ac", strconv.Itoa(channels),
		outputPath,
	}
}
