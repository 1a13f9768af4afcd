package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config captures the runtime configuration for the transcription relay.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Pipeline      PipelineConfig      `mapstructure:"pipeline"`
	FFmpeg        FFmpegConfig        `mapstructure:"ffmpeg"`
	Google        GoogleConfig        `mapstructure:"google"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	ListenAddr            string        `mapstructure:"listen_addr"`
	BodyLimitMB           int           `mapstructure:"body_limit_mb"`
	ReadTimeout           time.Duration `mapstructure:"read_timeout"`
	GracefulShutdownDelay time.Duration `mapstructure:"graceful_shutdown_delay"`
}

type PipelineConfig struct {
	SourceLanguage    string        `mapstructure:"source_language"`
	TargetLanguage    string        `mapstructure:"target_language"`
	TempDir           string        `mapstructure:"temp_dir"`
	RawBodySuffix     string        `mapstructure:"raw_body_suffix"`
	ConvertTimeout    time.Duration `mapstructure:"convert_timeout"`
	RecognizeTimeout  time.Duration `mapstructure:"recognize_timeout"`
	TranslateTimeout  time.Duration `mapstructure:"translate_timeout"`
	ExposeDiagnostics bool          `mapstructure:"expose_diagnostics"`
}

type FFmpegConfig struct {
	Binary     string `mapstructure:"binary"`
	SampleRate int    `mapstructure:"sample_rate"`
	Channels   int    `mapstructure:"channels"`
}

type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

type ObservabilityConfig struct {
	OTLPEndpoint  string `mapstructure:"otlp_endpoint"`
	EnableOTLP    bool   `mapstructure:"enable_otlp"`
	EnableMetrics bool   `mapstructure:"enable_metrics"`
}

// Options controls the config loader behavior.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load returns the merged configuration sourced from YAML and environment variables.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		_ = godotenv.Load(opts.EnvFile)
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)

	explicitFile := false
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		explicitFile = true
	} else {
		if cfg := os.Getenv("VOXPIPE_CONFIG_FILE"); cfg != "" {
			v.SetConfigFile(cfg)
			explicitFile = true
		}
	}

	if !explicitFile {
		// Allow standard lookup locations when no explicit file is provided.
		v.SetConfigName("voxpipe")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("VOXPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(timeStringToDurationHook())); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures required values are set and normalizes the rest.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.ListenAddr) == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Server.BodyLimitMB <= 0 {
		return fmt.Errorf("server.body_limit_mb must be > 0")
	}
	if c.Server.GracefulShutdownDelay <= 0 {
		c.Server.GracefulShutdownDelay = 5 * time.Second
	}

	if strings.TrimSpace(c.Pipeline.SourceLanguage) == "" {
		return fmt.Errorf("pipeline.source_language must be provided")
	}
	if strings.TrimSpace(c.Pipeline.TargetLanguage) == "" {
		return fmt.Errorf("pipeline.target_language must be provided")
	}
	if !strings.HasPrefix(c.Pipeline.RawBodySuffix, ".") {
		return fmt.Errorf("pipeline.raw_body_suffix must start with a dot")
	}
	if c.Pipeline.ConvertTimeout <= 0 {
		c.Pipeline.ConvertTimeout = time.Minute
	}
	if c.Pipeline.RecognizeTimeout <= 0 {
		c.Pipeline.RecognizeTimeout = 2 * time.Minute
	}
	if c.Pipeline.TranslateTimeout <= 0 {
		c.Pipeline.TranslateTimeout = 30 * time.Second
	}

	if strings.TrimSpace(c.FFmpeg.Binary) == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.SampleRate <= 0 {
		return fmt.Errorf("ffmpeg.sample_rate must be > 0")
	}
	if c.FFmpeg.Channels <= 0 {
		return fmt.Errorf("ffmpeg.channels must be > 0")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.body_limit_mb", 25)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.graceful_shutdown_delay", "5s")

	v.SetDefault("pipeline.source_language", "ml-IN")
	v.SetDefault("pipeline.target_language", "ar")
	v.SetDefault("pipeline.temp_dir", "")
	v.SetDefault("pipeline.raw_body_suffix", ".webm")
	v.SetDefault("pipeline.convert_timeout", "60s")
	v.SetDefault("pipeline.recognize_timeout", "120s")
	v.SetDefault("pipeline.translate_timeout", "30s")
	v.SetDefault("pipeline.expose_diagnostics", true)

	v.SetDefault("ffmpeg.binary", "ffmpeg")
	v.SetDefault("ffmpeg.sample_rate", 16000)
	v.SetDefault("ffmpeg.channels", 1)

	v.SetDefault("google.credentials_file", "")

	v.SetDefault("observability.enable_metrics", true)
	v.SetDefault("observability.enable_otlp", false)
	v.SetDefault("observability.otlp_endpoint", "http://localhost:4317")
}

func timeStringToDurationHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return time.ParseDuration(data.(string))
	}
}
