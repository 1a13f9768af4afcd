package public

import (
	"fmt"
	"io"
	"mime/multipart"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/voxpipe/voxpipe/internal/models"
)

// uploadFieldNames are the multipart field names accepted for the audio
// payload, in precedence order. First match wins.
var uploadFieldNames = []string{"audio", "file", "recordedFile"}

// extractor attempts to pull an audio payload out of the request. It returns
// (nil, nil) when its source simply isn't present, reserving errors for
// payloads that exist but cannot be read.
type extractor func(c *fiber.Ctx) (*models.AudioInput, error)

func payloadExtractors() []extractor {
	extractors := make([]extractor, 0, len(uploadFieldNames)+1)
	for _, name := range uploadFieldNames {
		extractors = append(extractors, multipartFieldExtractor(name))
	}
	return append(extractors, rawBodyExtractor)
}

// extractPayload runs the ordered extractor chain. presentFields reports the
// multipart field names actually carried by the request, for diagnostics.
func extractPayload(c *fiber.Ctx) (*models.AudioInput, []string, error) {
	for _, extract := range payloadExtractors() {
		input, err := extract(c)
		if err != nil {
			return nil, presentFields(c), err
		}
		if input != nil {
			return input, nil, nil
		}
	}
	return nil, presentFields(c), nil
}

func multipartFieldExtractor(name string) extractor {
	return func(c *fiber.Ctx) (*models.AudioInput, error) {
		form, err := c.MultipartForm()
		if err != nil {
			// not a multipart request; leave it to the raw body extractor
			return nil, nil
		}
		headers := form.File[name]
		if len(headers) == 0 {
			return nil, nil
		}
		data, err := readFileHeader(headers[0])
		if err != nil {
			return nil, fmt.Errorf("read multipart field %q: %w", name, err)
		}
		return &models.AudioInput{Data: data, Filename: headers[0].Filename, Source: name}, nil
	}
}

func rawBodyExtractor(c *fiber.Ctx) (*models.AudioInput, error) {
	if _, err := c.MultipartForm(); err == nil {
		// multipart requests never fall back to the raw (encoded) body
		return nil, nil
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, nil
	}
	data := make([]byte, len(body))
	copy(data, body)
	return &models.AudioInput{Data: data, Source: "body"}, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func presentFields(c *fiber.Ctx) []string {
	form, err := c.MultipartForm()
	if err != nil {
		return []string{}
	}
	fields := make([]string, 0, len(form.File))
	for name := range form.File {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}
