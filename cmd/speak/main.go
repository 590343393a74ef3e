package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BisiOlaYemi/Text2speech/application/ports/inbound"
	"github.com/BisiOlaYemi/Text2speech/application/services"
	"github.com/BisiOlaYemi/Text2speech/domain"
	"github.com/BisiOlaYemi/Text2speech/infrastructure/adapters"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

// speak is a terminal client for the web service: it drives the same
// playback session the browser UI implements, translating when the input
// reads as English and playing the synthesized audio locally.
func main() {
	codes := languageCodes()

	server := flag.String("server", "http://localhost:3001", "base URL of the text2speech server")
	language := flag.String("lang", domain.DefaultLanguageCode, "spoken language code ("+strings.Join(codes, ", ")+")")
	text := flag.String("text", "", "text to speak")
	flag.Parse()

	if *text == "" {
		fmt.Fprintln(os.Stderr, "usage: speak -text \"hello there\" [-lang fr-FR] [-server http://localhost:3001]")
		os.Exit(2)
	}
	if !knownLanguage(*language) {
		fmt.Fprintf(os.Stderr, "unknown language %q, supported codes: %s\n", *language, strings.Join(codes, ", "))
		os.Exit(2)
	}

	zeroLogger := adapters.NewZerologWrapper()

	workerPool, err := ants.NewPool(8, ants.WithPanicHandler(func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	player, err := adapters.NewExecAudioPlayer(zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("No local audio player available")
	}

	session := services.NewPlaybackSession(
		zeroLogger,
		adapters.NewAPITranslator(*server, zeroLogger),
		adapters.NewAPISynthesizer(*server, zeroLogger),
		player,
		workerPool,
	)
	defer session.Close()

	session.SetText(*text)
	session.SetLanguage(*language)

	if err := session.Play(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start playback")
	}

	if snap := waitForOutcome(session); snap.Phase == inbound.PhaseError {
		log.Fatal().Str("error", snap.Error).Msg("Playback failed")
	} else if snap.Warning != "" {
		zeroLogger.Warn(snap.Warning)
	}
}

func languageCodes() []string {
	langs := domain.SupportedLanguages()
	codes := make([]string, len(langs))
	for i, lang := range langs {
		codes[i] = lang.Code
	}
	return codes
}

func knownLanguage(code string) bool {
	for _, lang := range domain.SupportedLanguages() {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// waitForOutcome polls until the play cycle either finishes naturally or
// lands in the error state.
func waitForOutcome(session inbound.PlaybackSessionPort) inbound.PlaybackSnapshot {
	started := false
	for {
		snap := session.Snapshot()
		switch snap.Phase {
		case inbound.PhaseError:
			return snap
		case inbound.PhaseTranslating, inbound.PhaseSynthesizing, inbound.PhasePlaying:
			started = true
		case inbound.PhaseIdle:
			if started {
				return snap
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
}
