package main

import (
	"net/http"

	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/BisiOlaYemi/Text2speech/config"
	"github.com/BisiOlaYemi/Text2speech/infrastructure/adapters"
	"github.com/BisiOlaYemi/Text2speech/infrastructure/gin_interface/controllers"
	"github.com/BisiOlaYemi/Text2speech/middleware"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}

	serverConfig := config.GetServerConfig()

	zeroLogger := adapters.NewZerologWrapper()

	// Credentials are read per request, so their absence only warns here;
	// the forwarders answer 500 until they are configured.
	if _, err := config.GetSpeechConfig(); err != nil {
		zeroLogger.Warn(err.Error())
	}
	if _, err := config.GetTranslatorConfig(); err != nil {
		zeroLogger.Warn(err.Error())
	}

	translateController := controllers.NewTranslateController(zeroLogger, func(translatorConfig *config.TranslatorConfig) outbound.TranslatorPort {
		return adapters.NewAzureTranslator(translatorConfig, zeroLogger)
	})
	synthesizeController := controllers.NewSynthesizeController(zeroLogger, func(speechConfig *config.SpeechConfig) outbound.SynthesizerPort {
		return adapters.NewAzureSpeechSynthesizer(speechConfig, zeroLogger)
	})
	staticController := controllers.NewStaticController(zeroLogger, serverConfig.StaticDir)

	router := gin.New()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.RecoveryMiddleware(zeroLogger))
	router.Use(middleware.CORSMiddleware())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	translateController.RegisterRoutes(router)
	synthesizeController.RegisterRoutes(router)
	staticController.RegisterRoutes(router)

	zeroLogger.InfoWithFields("server starting", map[string]interface{}{
		"port":       serverConfig.Port,
		"static_dir": serverConfig.StaticDir,
	})

	if err := router.Run(":" + serverConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
