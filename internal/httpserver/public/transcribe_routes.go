package public

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/voxpipe/voxpipe/internal/config"
	"github.com/voxpipe/voxpipe/internal/httpserver/httputil"
	"github.com/voxpipe/voxpipe/internal/models"
	"github.com/voxpipe/voxpipe/internal/observability"
)

const emptyTranscriptWarning = "No speech recognized. Try speaking louder, check mic, or use a clearer audio format."

// Runner is the pipeline entry point the HTTP layer depends on.
type Runner interface {
	Run(ctx context.Context, input models.AudioInput) (models.TranscribeResult, error)
}

type transcribeHandler struct {
	pipeline Runner
	cfg      config.PipelineConfig
	metrics  *observability.Provider
}

// Register wires up the public transcription routes.
func Register(app *fiber.App, pipeline Runner, cfg config.PipelineConfig, metrics *observability.Provider) {
	handler := &transcribeHandler{pipeline: pipeline, cfg: cfg, metrics: metrics}
	app.Post("/transcribe", handler.transcribe)
}

func (h *transcribeHandler) transcribe(c *fiber.Ctx) error {
	input, present, err := extractPayload(c)
	if err != nil {
		slog.Error("failed to read upload", "error", err)
		return h.internalError(c, err)
	}
	if input == nil {
		msg := "No audio file found in the request. " +
			"Form keys tried: " + strings.Join(uploadFieldNames, ",") + ". " +
			"If you use fetch() with form-data, ensure form field name is 'audio'. " +
			"If using raw bytes, ensure request.body contains audio."
		slog.Error("no audio payload in request", "present_fields", present)
		h.metrics.RecordOutcome("no_audio")
		return httputil.WriteNoAudio(c, msg, present)
	}

	result, err := h.pipeline.Run(c.UserContext(), *input)
	if err != nil {
		return h.internalError(c, err)
	}

	if result.Empty() {
		return c.JSON(models.TranscribeResponse{Warning: emptyTranscriptWarning})
	}
	return c.JSON(models.TranscribeResponse{
		Transcript:  result.Transcript,
		Translation: result.Translation,
	})
}

func (h *transcribeHandler) internalError(c *fiber.Ctx, err error) error {
	stack := string(debug.Stack())
	slog.Error("transcribe request failed", "error", err, "stack", stack)
	if !h.cfg.ExposeDiagnostics {
		stack = ""
	}
	return httputil.WriteInternalError(c, err, stack)
}
