package adapters

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/BisiOlaYemi/Text2speech/config"
	"github.com/BisiOlaYemi/Text2speech/domain"
)

const (
	speechOutputFormat = "audio-16khz-128kbitrate-mono-mp3"
	// The speech endpoint has no completion signal of its own, so the
	// request carries an explicit timeout to keep a hung upstream from
	// hanging the HTTP response.
	synthesizeTimeout = 60 * time.Second
)

type azureSpeechSynthesizer struct {
	speechConfig *config.SpeechConfig
	logger       outbound.LoggerPort
	httpClient   *http.Client
	endpoint     string
}

func NewAzureSpeechSynthesizer(speechConfig *config.SpeechConfig, logger outbound.LoggerPort) outbound.SynthesizerPort {
	return &azureSpeechSynthesizer{
		speechConfig: speechConfig,
		logger:       logger,
		httpClient:   &http.Client{Timeout: synthesizeTimeout},
		endpoint:     fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", speechConfig.Region),
	}
}

// Synthesize renders text with the neural voice mapped to the request's
// language code and returns the raw audio/mpeg payload.
func (a *azureSpeechSynthesizer) Synthesize(ctx context.Context, req domain.SynthesisRequest) ([]byte, error) {
	voiceName := domain.VoiceFor(req.LanguageCode)

	a.logger.InfoWithFields("synthesizing speech", map[string]interface{}{
		"voice":       voiceName,
		"language":    req.LanguageCode,
		"text_length": len(req.Text),
	})

	httpReq, err := a.buildRequest(ctx, req.Text, req.LanguageCode, voiceName)
	if err != nil {
		return nil, domain.WrapAppError(domain.ErrInternal, "Failed to build synthesis request", err)
	}

	res, err := a.httpClient.Do(httpReq)
	if err != nil {
		a.logger.Error(err, "speech request failed")
		return nil, domain.WrapAppError(domain.ErrUpstream, "Error synthesizing speech: "+err.Error(), err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			a.logger.Error(err, "failed to close speech response body")
		}
	}()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		a.logger.ErrorWithFields(nil, "speech service returned non-OK status", map[string]interface{}{
			"status": res.StatusCode,
			"body":   string(detail),
		})
		message := strings.TrimSpace(string(detail))
		if message == "" {
			message = res.Status
		}
		return nil, domain.NewAppError(domain.ErrUpstream, "Speech synthesis failed: "+message)
	}

	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, domain.WrapAppError(domain.ErrUpstream, "Error synthesizing speech: "+err.Error(), err)
	}

	return audio, nil
}

func (a *azureSpeechSynthesizer) buildRequest(ctx context.Context, text, languageCode, voiceName string) (*http.Request, error) {
	ssml := fmt.Sprintf(
		"<speak version='1.0' xml:lang='%s'><voice xml:lang='%s' name='%s'>%s</voice></speak>",
		domain.DefaultLanguageCode, languageCode, voiceName, html.EscapeString(text),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(ssml))
	if err != nil {
		return nil, err
	}

	reqHeaders := map[string]string{
		"Ocp-Apim-Subscription-Key": a.speechConfig.Key,
		"Content-Type":              "application/ssml+xml",
		"X-Microsoft-OutputFormat":  speechOutputFormat,
	}
	for key, value := range reqHeaders {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}
