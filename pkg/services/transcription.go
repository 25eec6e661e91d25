package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/config"
	"github.com/stridephysio/practice-engine/pkg/retry"
)

// audioTranscriber is the slice of the provider client the service needs.
// Narrowed to an interface so tests can stub the provider.
type audioTranscriber interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// TranscriptionResult is the proxy's response: the transcribed text and how
// many provider calls it took to get it.
type TranscriptionResult struct {
	Text     string `json:"text"`
	Attempts int    `json:"attempts"`
}

// TranscriptionService proxies audio to the speech-to-text provider with a
// capped exponential-backoff retry. Only the configured set of HTTP status
// codes is retried; everything else (notably 401) fails on the first attempt.
type TranscriptionService interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*TranscriptionResult, error)
}

type transcriptionService struct {
	client audioTranscriber
	cfg    *config.TranscriptionConfig
	logger *zap.Logger
}

// NewTranscriptionService creates a TranscriptionService over the configured
// provider endpoint.
func NewTranscriptionService(cfg *config.TranscriptionConfig, logger *zap.Logger) TranscriptionService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &transcriptionService{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: logger,
	}
}

var _ TranscriptionService = (*transcriptionService)(nil)

// providerError classifies a provider failure for the retry loop.
type providerError struct {
	err       error
	retryable bool
}

func (e *providerError) Error() string     { return e.err.Error() }
func (e *providerError) Unwrap() error     { return e.err }
func (e *providerError) IsRetryable() bool { return e.retryable }

var _ retry.RetryableError = (*providerError)(nil)

func (s *transcriptionService) Transcribe(ctx context.Context, audio io.Reader, filename string) (*TranscriptionResult, error) {
	// Buffer the upload once so retried attempts send the full audio again
	// instead of whatever the first attempt left unread.
	data, err := io.ReadAll(audio)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	retryCfg := &retry.Config{
		MaxRetries:   s.cfg.MaxRetries,
		InitialDelay: s.cfg.InitialDelay(),
		MaxDelay:     s.cfg.MaxDelay(),
		Multiplier:   s.cfg.Multiplier,
		JitterFactor: 0.1,
	}

	var text string
	attempts, err := retry.DoWithAttempts(ctx, retryCfg, func() error {
		response, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    s.cfg.Model,
			Reader:   bytes.NewReader(data),
			FilePath: filename,
		})
		if err != nil {
			return s.classify(err)
		}
		text = response.Text
		return nil
	})
	if err != nil {
		s.logger.Warn("transcription failed",
			zap.Int("attempts", attempts),
			zap.Error(err))
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("transcription failed after %d attempt(s), provider rate limit still in effect, retry later: %w", attempts, err)
		}
		return nil, fmt.Errorf("transcription failed after %d attempt(s): %w", attempts, err)
	}

	return &TranscriptionResult{Text: text, Attempts: attempts}, nil
}

// classify wraps a provider error with its retryability. Status codes in the
// configured transient set retry; anything else, including auth failures and
// transport errors without a status, is permanent.
func (s *transcriptionService) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &providerError{
			err:       err,
			retryable: s.cfg.IsRetryableStatus(apiErr.HTTPStatusCode),
		}
	}
	return &providerError{err: err, retryable: false}
}
