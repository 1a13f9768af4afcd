package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voxpipe/voxpipe/internal/config"
	"github.com/voxpipe/voxpipe/internal/convert"
	"github.com/voxpipe/voxpipe/internal/models"
	"github.com/voxpipe/voxpipe/internal/observability"
	"github.com/voxpipe/voxpipe/internal/speech"
	"github.com/voxpipe/voxpipe/internal/translator"
)

// Pipeline drives one upload through persist → convert → transcribe →
// translate. All steps are sequential; every temp file created along the way
// is removed before Run returns, on every path.
type Pipeline struct {
	converter   convert.Converter
	transcriber speech.Transcriber
	translator  translator.Translator
	cfg         config.PipelineConfig
	metrics     *observability.Provider
}

func New(
	converter convert.Converter,
	transcriber speech.Transcriber,
	trans translator.Translator,
	cfg config.PipelineConfig,
	metrics *observability.Provider,
) *Pipeline {
	return &Pipeline{
		converter:   converter,
		transcriber: transcriber,
		translator:  trans,
		cfg:         cfg,
		metrics:     metrics,
	}
}

// Run executes the pipeline for one extracted payload. An empty transcript is
// a valid result with empty fields and nil error; the caller decides how to
// present it.
func (p *Pipeline) Run(ctx context.Context, input models.AudioInput) (models.TranscribeResult, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID, "source", input.Source, "bytes", len(input.Data))

	scope := newTempScope(p.cfg.TempDir)
	defer scope.Close()

	inputPath, err := p.persistInput(scope, input)
	if err != nil {
		p.metrics.RecordOutcome("persist_failed")
		return models.TranscribeResult{}, err
	}
	log.Info("saved upload", "path", inputPath)

	wavPath, err := p.convertStage(ctx, scope, inputPath)
	if err != nil {
		log.Error("conversion failed", "error", err)
		p.metrics.RecordOutcome("conversion_failed")
		return models.TranscribeResult{}, err
	}
	log.Info("converted audio", "path", wavPath)

	transcript, err := p.transcribeStage(ctx, wavPath)
	if err != nil {
		log.Error("transcription failed", "error", err)
		p.metrics.RecordOutcome("transcription_failed")
		return models.TranscribeResult{}, err
	}
	log.Info("transcription complete", "transcript", transcript)

	if transcript == "" {
		p.metrics.RecordOutcome("empty_transcript")
		return models.TranscribeResult{}, nil
	}

	translation, err := p.translateStage(ctx, transcript)
	if err != nil {
		log.Error("translation failed", "error", err)
		p.metrics.RecordOutcome("translation_failed")
		return models.TranscribeResult{}, err
	}
	log.Info("translation complete", "translation", translation)

	p.metrics.RecordOutcome("success")
	return models.TranscribeResult{Transcript: transcript, Translation: translation}, nil
}

// persistInput writes the payload to a registered temp file, picking the
// suffix from the original filename when one accompanied the upload.
func (p *Pipeline) persistInput(scope *tempScope, input models.AudioInput) (string, error) {
	start := time.Now()
	suffix := p.cfg.RawBodySuffix
	if ext := filepath.Ext(input.Filename); ext != "" {
		suffix = ext
	}
	path, err := scope.CreateWith("voxpipe-in-*"+suffix, input.Data)
	p.metrics.RecordStage("persist", err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("persist upload: %w", err)
	}
	return path, nil
}

func (p *Pipeline) convertStage(ctx context.Context, scope *tempScope, inputPath string) (string, error) {
	wavPath, err := scope.Create("voxpipe-out-*.wav")
	if err != nil {
		return "", fmt.Errorf("allocate waveform path: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.ConvertTimeout)
	defer cancel()

	start := time.Now()
	err = p.converter.Convert(ctx, inputPath, wavPath)
	p.metrics.RecordStage("convert", err, time.Since(start))
	if err != nil {
		return "", err
	}
	return wavPath, nil
}

func (p *Pipeline) transcribeStage(ctx context.Context, wavPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.RecognizeTimeout)
	defer cancel()

	start := time.Now()
	transcript, err := p.transcriber.Transcribe(ctx, wavPath, p.cfg.SourceLanguage)
	p.metrics.RecordStage("transcribe", err, time.Since(start))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(transcript), nil
}

func (p *Pipeline) translateStage(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.TranslateTimeout)
	defer cancel()

	start := time.Now()
	translation, err := p.translator.Translate(ctx, transcript, p.cfg.TargetLanguage)
	p.metrics.RecordStage("translate", err, time.Since(start))
	if err != nil {
		return "", err
	}
	return translation, nil
}
