package translator

import (
	"context"
	"fmt"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// Translator converts a transcript into the configured target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// TranslationError wraps a failed translation call.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation failed: %v", e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// translateClient is the slice of the Cloud Translation client used here;
// tests substitute a fake.
type translateClient interface {
	Translate(ctx context.Context, inputs []string, target language.Tag, opts *translate.Options) ([]translate.Translation, error)
}

// GoogleTranslator sends text to the Cloud Translation v2 API.
type GoogleTranslator struct {
	client translateClient
}

// NewGoogleTranslator builds a translator backed by a real Cloud Translation
// client. credentialsFile may be empty to use application default credentials.
func NewGoogleTranslator(ctx context.Context, credentialsFile string) (*GoogleTranslator, func() error, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create translate client: %w", err)
	}
	return &GoogleTranslator{client: client}, client.Close, nil
}

// Translate returns the translated text. Callers are expected to skip the
// call entirely for empty input; an empty string here is rejected.
func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if text == "" {
		return "", &TranslationError{Err: fmt.Errorf("empty input text")}
	}

	target, err := language.Parse(targetLang)
	if err != nil {
		return "", &TranslationError{Err: fmt.Errorf("parse target language %q: %w", targetLang, err)}
	}

	results, err := g.client.Translate(ctx, []string{text}, target, nil)
	if err != nil {
		return "", &TranslationError{Err: err}
	}
	if len(results) == 0 {
		return "", &TranslationError{Err: fmt.Errorf("no translation returned")}
	}
	return results[0].Text, nil
}
