package controllers

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/BisiOlaYemi/Text2speech/config"
	"github.com/BisiOlaYemi/Text2speech/domain"
	"github.com/BisiOlaYemi/Text2speech/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

// TranslatorFactory builds a translator client for one request. Each
// request owns its own client; nothing is pooled across requests.
type TranslatorFactory func(translatorConfig *config.TranslatorConfig) outbound.TranslatorPort

type TranslateController interface {
	Translate(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type translateController struct {
	logger        outbound.LoggerPort
	newTranslator TranslatorFactory
}

func NewTranslateController(logger outbound.LoggerPort, newTranslator TranslatorFactory) TranslateController {
	return &translateController{
		logger:        logger,
		newTranslator: newTranslator,
	}
}

func (t *translateController) Translate(c *gin.Context) {
	var req dto.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Text == "" || req.TargetLanguage == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Text and target language are required"})
		return
	}

	if utf8.RuneCountInString(req.Text) > domain.MaxTranslationTextLength {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "Text is too long. Please limit to 10,000 characters."})
		return
	}

	if req.SourceLanguage == "" {
		req.SourceLanguage = domain.DefaultSourceLanguage
	}

	// Same source and target: echo the text back without any upstream
	// call, even when credentials are absent.
	if req.SourceLanguage == req.TargetLanguage {
		c.JSON(http.StatusOK, dto.TranslateResponse{
			TranslatedText:   req.Text,
			DetectedLanguage: req.SourceLanguage,
			Confidence:       1.0,
		})
		return
	}

	translatorConfig, err := config.GetTranslatorConfig()
	if err != nil {
		t.logger.Error(err, "translator credentials are not configured")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	t.logger.InfoWithFields("forwarding translate request", map[string]interface{}{
		"text_length":    utf8.RuneCountInString(req.Text),
		"sourceLanguage": req.SourceLanguage,
		"targetLanguage": req.TargetLanguage,
	})

	translator := t.newTranslator(translatorConfig)
	result, err := translator.Translate(c.Request.Context(), domain.TranslationRequest{
		Text:           req.Text,
		TargetLanguage: req.TargetLanguage,
		SourceLanguage: req.SourceLanguage,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranslateResponse{
		TranslatedText:   result.TranslatedText,
		DetectedLanguage: result.DetectedLanguage,
		Confidence:       result.Confidence,
	})
}

func (t *translateController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/translate", t.Translate)
}

// writeError maps forwarder failures onto the uniform error body.
func writeError(c *gin.Context, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), dto.ErrorResponse{Error: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
}
