package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/BisiOlaYemi/Text2speech/config"
	"github.com/BisiOlaYemi/Text2speech/domain"
	"github.com/google/uuid"
)

const (
	translatorAPIVersion = "3.0"
	translateTimeout     = 30 * time.Second
)

type translateRequestBody struct {
	Text string `json:"text"`
}

type translateResponseBody struct {
	DetectedLanguage *struct {
		Language string  `json:"language"`
		Score    float64 `json:"score"`
	} `json:"detectedLanguage"`
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

type translatorErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type azureTranslator struct {
	translatorConfig *config.TranslatorConfig
	logger           outbound.LoggerPort
	httpClient       *http.Client
}

func NewAzureTranslator(translatorConfig *config.TranslatorConfig, logger outbound.LoggerPort) outbound.TranslatorPort {
	return &azureTranslator{
		translatorConfig: translatorConfig,
		logger:           logger,
		httpClient:       &http.Client{Timeout: translateTimeout},
	}
}

// Translate forwards one text to the Azure Translator v3 API. When source
// and target match it returns the input unchanged without calling out.
func (a *azureTranslator) Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error) {
	sourceLanguage := req.SourceLanguage
	if sourceLanguage == "" {
		sourceLanguage = domain.DefaultSourceLanguage
	}

	if sourceLanguage == req.TargetLanguage {
		return &domain.TranslationResult{
			TranslatedText:   req.Text,
			DetectedLanguage: sourceLanguage,
			Confidence:       1.0,
		}, nil
	}

	httpReq, err := a.buildRequest(ctx, req.Text, sourceLanguage, req.TargetLanguage)
	if err != nil {
		return nil, domain.WrapAppError(domain.ErrInternal, "Failed to build translation request", err)
	}

	res, err := a.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, domain.WrapAppError(domain.ErrTimeout, "Translation request timed out. Please try again.", err)
		}
		a.logger.Error(err, "translator request failed")
		return nil, domain.WrapAppError(domain.ErrUpstream, "Translation service error: "+err.Error(), err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			a.logger.Error(err, "failed to close translator response body")
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, a.mapErrorResponse(res)
	}

	return a.mapResponse(res.Body, sourceLanguage)
}

func (a *azureTranslator) buildRequest(ctx context.Context, text, from, to string) (*http.Request, error) {
	params := url.Values{}
	params.Set("api-version", translatorAPIVersion)
	params.Set("from", from)
	params.Set("to", to)

	translateURL := strings.TrimSuffix(a.translatorConfig.Endpoint, "/") + "/translate?" + params.Encode()

	payload, err := json.Marshal([]translateRequestBody{{Text: text}})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, translateURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}

	reqHeaders := map[string]string{
		"Ocp-Apim-Subscription-Key":    a.translatorConfig.Key,
		"Ocp-Apim-Subscription-Region": a.translatorConfig.Region,
		"Content-Type":                 "application/json",
		"X-ClientTraceId":              uuid.NewString(),
	}
	for key, value := range reqHeaders {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

func (a *azureTranslator) mapErrorResponse(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))

	a.logger.ErrorWithFields(nil, "translator returned non-OK status", map[string]interface{}{
		"status": res.StatusCode,
		"body":   string(body),
	})

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return domain.NewAppError(domain.ErrUpstream, "Azure Translator authentication failed. Please check your keys and region.")
	case res.StatusCode == http.StatusTooManyRequests:
		return domain.NewAppError(domain.ErrRateLimited, "Translation quota exceeded. Please try again later.")
	default:
		message := "Unknown error"
		var errBody translatorErrorBody
		if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error.Message != "" {
			message = errBody.Error.Message
		}
		return domain.NewAppError(domain.ErrUpstream, fmt.Sprintf("Azure Translator API error: %d - %s", res.StatusCode, message))
	}
}

func (a *azureTranslator) mapResponse(body io.Reader, sourceLanguage string) (*domain.TranslationResult, error) {
	var envelope []translateResponseBody
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, domain.WrapAppError(domain.ErrUpstream, "Invalid response from Azure Translator", err)
	}
	if len(envelope) == 0 {
		return nil, domain.NewAppError(domain.ErrUpstream, "Invalid response from Azure Translator")
	}

	translation := envelope[0]
	if len(translation.Translations) == 0 {
		return nil, domain.NewAppError(domain.ErrUpstream, "No translation returned from Azure")
	}

	result := &domain.TranslationResult{
		TranslatedText:   translation.Translations[0].Text,
		DetectedLanguage: sourceLanguage,
		Confidence:       1.0,
	}
	if translation.DetectedLanguage != nil {
		if translation.DetectedLanguage.Language != "" {
			result.DetectedLanguage = translation.DetectedLanguage.Language
		}
		if translation.DetectedLanguage.Score > 0 {
			result.Confidence = translation.DetectedLanguage.Score
		}
	}

	return result, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
