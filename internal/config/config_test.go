package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "absent.env")})
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.ListenAddr)
	require.Equal(t, 25, cfg.Server.BodyLimitMB)
	require.Equal(t, "ml-IN", cfg.Pipeline.SourceLanguage)
	require.Equal(t, "ar", cfg.Pipeline.TargetLanguage)
	require.Equal(t, ".webm", cfg.Pipeline.RawBodySuffix)
	require.Equal(t, time.Minute, cfg.Pipeline.ConvertTimeout)
	require.Equal(t, 2*time.Minute, cfg.Pipeline.RecognizeTimeout)
	require.True(t, cfg.Pipeline.ExposeDiagnostics)
	require.Equal(t, "ffmpeg", cfg.FFmpeg.Binary)
	require.Equal(t, 16000, cfg.FFmpeg.SampleRate)
	require.Equal(t, 1, cfg.FFmpeg.Channels)
	require.True(t, cfg.Observability.EnableMetrics)
	require.False(t, cfg.Observability.EnableOTLP)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VOXPIPE_PIPELINE_SOURCE_LANGUAGE", "en-US")
	t.Setenv("VOXPIPE_PIPELINE_TARGET_LANGUAGE", "fr")
	t.Setenv("VOXPIPE_SERVER_BODY_LIMIT_MB", "10")

	cfg, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "absent.env")})
	require.NoError(t, err)

	require.Equal(t, "en-US", cfg.Pipeline.SourceLanguage)
	require.Equal(t, "fr", cfg.Pipeline.TargetLanguage)
	require.Equal(t, 10, cfg.Server.BodyLimitMB)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voxpipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  listen_addr: ":9090"
pipeline:
  source_language: "hi-IN"
  convert_timeout: "90s"
ffmpeg:
  binary: "/usr/local/bin/ffmpeg"
`), 0o600))

	cfg, err := Load(Options{ConfigFile: path, EnvFile: filepath.Join(dir, "absent.env")})
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.ListenAddr)
	require.Equal(t, "hi-IN", cfg.Pipeline.SourceLanguage)
	require.Equal(t, 90*time.Second, cfg.Pipeline.ConvertTimeout)
	require.Equal(t, "/usr/local/bin/ffmpeg", cfg.FFmpeg.Binary)
	// untouched sections keep their defaults
	require.Equal(t, "ar", cfg.Pipeline.TargetLanguage)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		return &Config{
			Server:   ServerConfig{ListenAddr: ":8080", BodyLimitMB: 25},
			Pipeline: PipelineConfig{SourceLanguage: "ml-IN", TargetLanguage: "ar", RawBodySuffix: ".webm"},
			FFmpeg:   FFmpegConfig{Binary: "ffmpeg", SampleRate: 16000, Channels: 1},
		}
	}

	cfg := base()
	cfg.Server.BodyLimitMB = 0
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Pipeline.SourceLanguage = " "
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Pipeline.RawBodySuffix = "webm"
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.FFmpeg.SampleRate = 0
	require.Error(t, cfg.Validate())
}

func TestValidateFillsTimeoutDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Server:   ServerConfig{BodyLimitMB: 25},
		Pipeline: PipelineConfig{SourceLanguage: "ml-IN", TargetLanguage: "ar", RawBodySuffix: ".webm"},
		FFmpeg:   FFmpegConfig{SampleRate: 16000, Channels: 1},
	}
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8080", cfg.Server.ListenAddr)
	require.Equal(t, time.Minute, cfg.Pipeline.ConvertTimeout)
	require.Equal(t, 2*time.Minute, cfg.Pipeline.RecognizeTimeout)
	require.Equal(t, 30*time.Second, cfg.Pipeline.TranslateTimeout)
	require.Equal(t, "ffmpeg", cfg.FFmpeg.Binary)
}
