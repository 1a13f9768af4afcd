package httputil

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/voxpipe/voxpipe/internal/models"
)

// WriteError standardizes plain JSON error responses.
func WriteError(c *fiber.Ctx, status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
		if msg == "" {
			msg = "unknown error"
		}
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// WriteNoAudio reports that no payload could be extracted. files lists the
// multipart field names that were actually present on the request.
func WriteNoAudio(c *fiber.Ctx, msg string, files []string) error {
	if files == nil {
		files = []string{}
	}
	return c.Status(fiber.StatusBadRequest).JSON(models.NoAudioResponse{
		Error:   "no_audio",
		Message: msg,
		Files:   files,
	})
}

// WriteInternalError surfaces a pipeline failure. traceback may be empty when
// diagnostics exposure is disabled; the field is then omitted from the body.
func WriteInternalError(c *fiber.Ctx, err error, traceback string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(models.InternalErrorResponse{
		Error:     "internal_server_error",
		Exception: err.Error(),
		Traceback: traceback,
	})
}
