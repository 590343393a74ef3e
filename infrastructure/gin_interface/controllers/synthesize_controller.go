package controllers

import (
	"net/http"
	"unicode/utf8"

	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/BisiOlaYemi/Text2speech/config"
	"github.com/BisiOlaYemi/Text2speech/domain"
	"github.com/BisiOlaYemi/Text2speech/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

// SynthesizerFactory builds a speech client for one request, mirroring
// the per-request construction of the translator client.
type SynthesizerFactory func(speechConfig *config.SpeechConfig) outbound.SynthesizerPort

type SynthesizeController interface {
	Synthesize(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type synthesizeController struct {
	logger         outbound.LoggerPort
	newSynthesizer SynthesizerFactory
}

func NewSynthesizeController(logger outbound.LoggerPort, newSynthesizer SynthesizerFactory) SynthesizeController {
	return &synthesizeController{
		logger:         logger,
		newSynthesizer: newSynthesizer,
	}
}

func (s *synthesizeController) Synthesize(c *gin.Context) {
	var req dto.SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Text is required"})
		return
	}

	if utf8.RuneCountInString(req.Text) > domain.MaxSynthesisTextLength {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "Text is too long. Please limit to 5000 characters."})
		return
	}

	speechConfig, err := config.GetSpeechConfig()
	if err != nil {
		s.logger.Error(err, "speech credentials are not configured")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	s.logger.InfoWithFields("forwarding synthesize request", map[string]interface{}{
		"text_length":  utf8.RuneCountInString(req.Text),
		"languageCode": req.LanguageCode,
	})

	synthesizer := s.newSynthesizer(speechConfig)
	audio, err := synthesizer.Synthesize(c.Request.Context(), domain.SynthesisRequest{
		Text:         req.Text,
		LanguageCode: req.LanguageCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}

func (s *synthesizeController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/synthesize", s.Synthesize)
}
