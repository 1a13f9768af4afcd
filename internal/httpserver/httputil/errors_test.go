package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/voxpipe/voxpipe/internal/models"
)

func runHandler(t *testing.T, handler fiber.Handler) *http.Response {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestWriteErrorFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	resp := runHandler(t, func(c *fiber.Ctx) error {
		return WriteError(c, fiber.StatusBadGateway, "")
	})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body map[string]string
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &body))
	require.Equal(t, "Bad Gateway", body["error"])
}

func TestWriteNoAudioAlwaysIncludesFilesArray(t *testing.T) {
	t.Parallel()

	resp := runHandler(t, func(c *fiber.Ctx) error {
		return WriteNoAudio(c, "nothing here", nil)
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// a nil slice must still serialize as [], not null
	require.Contains(t, string(data), `"files":[]`)

	var body models.NoAudioResponse
	require.NoError(t, json.Unmarshal(data, &body))
	require.Equal(t, "no_audio", body.Error)
	require.Equal(t, "nothing here", body.Message)
}

func TestWriteInternalErrorOmitsEmptyTraceback(t *testing.T) {
	t.Parallel()

	resp := runHandler(t, func(c *fiber.Ctx) error {
		return WriteInternalError(c, errors.New("boom"), "")
	})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotContains(t, string(data), "traceback")

	var body models.InternalErrorResponse
	require.NoError(t, json.Unmarshal(data, &body))
	require.Equal(t, "internal_server_error", body.Error)
	require.Equal(t, "boom", body.Exception)
}
