package translator

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/translate"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fakeTranslateClient struct {
	results        []translate.Translation
	err            error
	capturedInputs []string
	capturedTarget language.Tag
}

func (f *fakeTranslateClient) Translate(ctx context.Context, inputs []string, target language.Tag, opts *translate.Options) ([]translate.Translation, error) {
	f.capturedInputs = inputs
	f.capturedTarget = target
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func TestTranslateReturnsFirstResult(t *testing.T) {
	t.Parallel()

	fake := &fakeTranslateClient{results: []translate.Translation{{Text: "مرحبا"}}}
	g := &GoogleTranslator{client: fake}

	out, err := g.Translate(context.Background(), "hello", "ar")
	require.NoError(t, err)
	require.Equal(t, "مرحبا", out)
	require.Equal(t, []string{"hello"}, fake.capturedInputs)
	require.Equal(t, language.Arabic, fake.capturedTarget)
}

func TestTranslateRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	g := &GoogleTranslator{client: &fakeTranslateClient{}}
	_, err := g.Translate(context.Background(), "", "ar")

	var trErr *TranslationError
	require.ErrorAs(t, err, &trErr)
}

func TestTranslateInvalidTargetLanguage(t *testing.T) {
	t.Parallel()

	g := &GoogleTranslator{client: &fakeTranslateClient{}}
	_, err := g.Translate(context.Background(), "hello", "!!")

	var trErr *TranslationError
	require.ErrorAs(t, err, &trErr)
}

func TestTranslateWrapsTransportError(t *testing.T) {
	t.Parallel()

	fake := &fakeTranslateClient{err: errors.New("auth: invalid credentials")}
	g := &GoogleTranslator{client: fake}

	_, err := g.Translate(context.Background(), "hello", "ar")
	var trErr *TranslationError
	require.ErrorAs(t, err, &trErr)
	require.Contains(t, err.Error(), "invalid credentials")
}

func TestTranslateEmptyResultSet(t *testing.T) {
	t.Parallel()

	g := &GoogleTranslator{client: &fakeTranslateClient{results: nil}}
	_, err := g.Translate(context.Background(), "hello", "ar")

	var trErr *TranslationError
	require.ErrorAs(t, err, &trErr)
}
