package speech

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// Transcriber turns a prepared waveform file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath, languageCode string) (string, error)
}

// TranscriptionError wraps a failed recognition call.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// recognizeClient is the slice of the Cloud Speech client the transcriber
// needs; carved out so tests can substitute a fake.
type recognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)
}

// recognizeAdapter narrows *speech.Client to recognizeClient, dropping the
// variadic gax call options from the signature.
type recognizeAdapter struct {
	client *speech.Client
}

func (a recognizeAdapter) Recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	return a.client.Recognize(ctx, req)
}

// GoogleTranscriber sends waveform bytes to Cloud Speech-to-Text. The input
// is assumed to already be mono, 16 kHz linear PCM; the whole file is read
// into memory before sending.
type GoogleTranscriber struct {
	client     recognizeClient
	sampleRate int32
	channels   int32
}

// NewGoogleTranscriber builds a transcriber backed by a real Cloud Speech
// client. credentialsFile may be empty, in which case ambient application
// default credentials are used.
func NewGoogleTranscriber(ctx context.Context, credentialsFile string) (*GoogleTranscriber, func() error, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create speech client: %w", err)
	}
	return &GoogleTranscriber{
		client:     recognizeAdapter{client},
		sampleRate: 16000,
		channels:   1,
	}, client.Close, nil
}

// Transcribe reads the waveform file and returns the space-joined top
// alternative of each result segment. An empty transcript is a valid
// outcome, not an error.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, wavPath, languageCode string) (string, error) {
	content, err := os.ReadFile(wavPath)
	if err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("read waveform: %w", err)}
	}

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            g.sampleRate,
			AudioChannelCount:          g.channels,
			LanguageCode:               languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: content},
		},
	})
	if err != nil {
		return "", &TranscriptionError{Err: err}
	}

	return JoinResults(resp.GetResults()), nil
}

// JoinResults concatenates the highest-ranked alternative of each result
// segment with single spaces and trims the ends.
func JoinResults(results []*speechpb.SpeechRecognitionResult) string {
	parts := make([]string, 0, len(results))
	for _, result := range results {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		parts = append(parts, alts[0].GetTranscript())
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
