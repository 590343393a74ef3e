package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/BisiOlaYemi/Text2speech/domain"
)

// apiClient calls the server's own /api endpoints. It is the Go-side
// counterpart of the browser client and backs the command-line player.
type apiClient struct {
	baseURL    string
	logger     outbound.LoggerPort
	httpClient *http.Client
}

type apiTranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
}

type apiTranslateResponse struct {
	TranslatedText   string  `json:"translatedText"`
	DetectedLanguage string  `json:"detectedLanguage"`
	Confidence       float64 `json:"confidence"`
}

type apiSynthesizeRequest struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type apiErrorResponse struct {
	Error string `json:"error"`
}

func newAPIClient(baseURL string, logger outbound.LoggerPort) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// NewAPITranslator returns a TranslatorPort that forwards to a running
// server's POST /api/translate endpoint.
func NewAPITranslator(baseURL string, logger outbound.LoggerPort) outbound.TranslatorPort {
	return newAPIClient(baseURL, logger)
}

// NewAPISynthesizer returns a SynthesizerPort that forwards to a running
// server's POST /api/synthesize endpoint.
func NewAPISynthesizer(baseURL string, logger outbound.LoggerPort) outbound.SynthesizerPort {
	return newAPIClient(baseURL, logger)
}

func (c *apiClient) Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error) {
	body, _, err := c.post(ctx, "/api/translate", apiTranslateRequest{
		Text:           req.Text,
		TargetLanguage: req.TargetLanguage,
		SourceLanguage: req.SourceLanguage,
	})
	if err != nil {
		return nil, err
	}

	var res apiTranslateResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("invalid translate response: %w", err)
	}
	return &domain.TranslationResult{
		TranslatedText:   res.TranslatedText,
		DetectedLanguage: res.DetectedLanguage,
		Confidence:       res.Confidence,
	}, nil
}

func (c *apiClient) Synthesize(ctx context.Context, req domain.SynthesisRequest) ([]byte, error) {
	body, contentType, err := c.post(ctx, "/api/synthesize", apiSynthesizeRequest{
		Text:         req.Text,
		LanguageCode: req.LanguageCode,
	})
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "audio/") {
		return nil, fmt.Errorf("unexpected synthesize content type: %s", contentType)
	}
	return body, nil
}

func (c *apiClient) post(ctx context.Context, path string, payload interface{}) ([]byte, string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(raw))
	if err != nil {
		return nil, "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.logger.Error(err, "failed to close api response body")
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", err
	}

	if res.StatusCode != http.StatusOK {
		var errRes apiErrorResponse
		if err := json.Unmarshal(body, &errRes); err == nil && errRes.Error != "" {
			return nil, "", fmt.Errorf("%s", errRes.Error)
		}
		return nil, "", fmt.Errorf("request to %s failed with status %d", path, res.StatusCode)
	}

	return body, res.Header.Get("Content-Type"), nil
}
