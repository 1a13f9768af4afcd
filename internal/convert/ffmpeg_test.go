package convert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFFmpegArgs(t *testing.T) {
	t.Parallel()

	f := NewFFmpeg("")
	require.Equal(t, "ffmpeg", f.Binary)
	require.Equal(t,
		[]string{"-y", "-i", "in.webm", "-ar", "16000", "-ac", "1", "out.wav"},
		f.args("in.webm", "out.wav"),
	)
}

func TestFFmpegArgsCustomFormat(t *testing.T) {
	t.Parallel()

	f := &FFmpeg{Binary: "/opt/ffmpeg", SampleRate: 44100, Channels: 2}
	require.Equal(t,
		[]string{"-y", "-i", "a", "-ar", "44100", "-ac", "2", "b"},
		f.args("a", "b"),
	)
}

func TestFFmpegConvertMissingBinary(t *testing.T) {
	t.Parallel()

	f := NewFFmpeg("/nonexistent/ffmpeg-binary")
	err := f.Convert(context.Background(), "in.webm", "out.wav")
	require.Error(t, err)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, -1, convErr.ExitCode)
}

func TestFFmpegConvertNonZeroExit(t *testing.T) {
	t.Parallel()

	// `false` exits 1 without reading its arguments, standing in for a
	// converter run that rejects its input.
	f := NewFFmpeg("false")
	err := f.Convert(context.Background(), "in.webm", "out.wav")
	require.Error(t, err)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, 1, convErr.ExitCode)
}

func TestConversionErrorMessageIncludesStderr(t *testing.T) {
	t.Parallel()

	err := &ConversionError{ExitCode: 1, Stderr: "in.webm: Invalid data found"}
	require.Contains(t, err.Error(), "rc=1")
	require.Contains(t, err.Error(), "Invalid data found")
}
