package services

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/BisiOlaYemi/Text2speech/application/ports/inbound"
	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/BisiOlaYemi/Text2speech/domain"
)

type playbackSession struct {
	logger      outbound.LoggerPort
	translator  outbound.TranslatorPort
	synthesizer outbound.SynthesizerPort
	player      outbound.AudioPlayerPort
	workerPool  outbound.TaskDispatcher

	mu             sync.Mutex
	phase          inbound.PlaybackPhase
	text           string
	languageCode   string
	translatedText string
	warning        string
	errMsg         string
	handle         outbound.AudioHandle
	cycle          uint64
	closed         bool
}

func NewPlaybackSession(
	logger outbound.LoggerPort,
	translator outbound.TranslatorPort,
	synthesizer outbound.SynthesizerPort,
	player outbound.AudioPlayerPort,
	workerPool outbound.TaskDispatcher,
) inbound.PlaybackSessionPort {
	return &playbackSession{
		logger:       logger,
		translator:   translator,
		synthesizer:  synthesizer,
		player:       player,
		workerPool:   workerPool,
		phase:        inbound.PhaseIdle,
		languageCode: domain.DefaultLanguageCode,
	}
}

// SetText mirrors an edit of the input text. It clears the previously
// displayed translation and error but never cancels in-flight work.
func (s *playbackSession) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.translatedText = ""
	s.warning = ""
	s.errMsg = ""
}

func (s *playbackSession) SetLanguage(languageCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languageCode = languageCode
	s.translatedText = ""
	s.warning = ""
	s.errMsg = ""
}

// Play starts a new play cycle with the current text and language.
// Any previously active audio handle is released first, so at most one
// handle exists per session.
func (s *playbackSession) Play() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("playback session is closed")
	}
	if s.text == "" {
		s.errMsg = "Text is required"
		s.mu.Unlock()
		return domain.NewAppError(domain.ErrValidation, "Text is required")
	}
	if utf8.RuneCountInString(s.text) > domain.MaxSynthesisTextLength {
		s.errMsg = "Text is too long. Please limit to 5000 characters."
		s.mu.Unlock()
		return domain.NewAppError(domain.ErrPayloadTooLarge, "Text is too long. Please limit to 5000 characters.")
	}

	s.releaseHandleLocked()

	s.cycle++
	cycle := s.cycle
	text := s.text
	languageCode := s.languageCode
	s.warning = ""
	s.errMsg = ""

	translate := s.shouldTranslateLocked(text, languageCode)
	if translate {
		s.phase = inbound.PhaseTranslating
	} else {
		s.phase = inbound.PhaseSynthesizing
	}
	s.mu.Unlock()

	err := s.workerPool.Submit(func() {
		s.runCycle(cycle, text, languageCode, translate)
	})
	if err != nil {
		s.mu.Lock()
		if s.cycle == cycle {
			s.phase = inbound.PhaseError
			s.errMsg = err.Error()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Stop pauses and rewinds the current audio. The handle's resource is
// kept until the next play cycle or Close replaces it.
func (s *playbackSession) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		s.handle.Pause()
		s.handle.Rewind()
	}
	if s.phase == inbound.PhasePlaying {
		s.phase = inbound.PhaseIdle
	}
}

func (s *playbackSession) Snapshot() inbound.PlaybackSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inbound.PlaybackSnapshot{
		Phase:          s.phase,
		Text:           s.text,
		LanguageCode:   s.languageCode,
		TranslatedText: s.translatedText,
		Warning:        s.warning,
		Error:          s.errMsg,
	}
}

func (s *playbackSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cycle++
	s.releaseHandleLocked()
	s.phase = inbound.PhaseIdle
}

// shouldTranslateLocked applies the translation decision: the target must
// not be the default spoken language, the text must read as English and a
// translate-code mapping must exist for the target.
func (s *playbackSession) shouldTranslateLocked(text, languageCode string) bool {
	if languageCode == domain.DefaultLanguageCode {
		return false
	}
	if !domain.IsLikelyEnglish(text) {
		return false
	}
	_, ok := domain.TranslateCodeFor(languageCode)
	return ok
}

func (s *playbackSession) releaseHandleLocked() {
	if s.handle == nil {
		return
	}
	s.handle.Pause()
	s.handle.Rewind()
	s.handle.Release()
	s.handle = nil
}

// runCycle performs one play cycle: optional translation, then synthesis,
// then playback. Translation always completes before synthesis begins and
// a failed translation falls back to the original text.
func (s *playbackSession) runCycle(cycle uint64, text, languageCode string, translate bool) {
	ctx := context.Background()
	input := text

	if translate {
		translateCode, _ := domain.TranslateCodeFor(languageCode)
		result, err := s.translator.Translate(ctx, domain.TranslationRequest{
			Text:           text,
			TargetLanguage: translateCode,
			SourceLanguage: domain.DefaultSourceLanguage,
		})

		s.mu.Lock()
		if s.cycle != cycle {
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.logger.Warn("translation failed, falling back to original text: " + err.Error())
			s.warning = "Translation failed: " + err.Error()
		} else {
			s.translatedText = result.TranslatedText
			input = result.TranslatedText
		}
		s.phase = inbound.PhaseSynthesizing
		s.mu.Unlock()
	}

	audio, err := s.synthesizer.Synthesize(ctx, domain.SynthesisRequest{
		Text:         input,
		LanguageCode: languageCode,
	})

	s.mu.Lock()
	if s.cycle != cycle {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.phase = inbound.PhaseError
		s.errMsg = err.Error()
		s.mu.Unlock()
		return
	}

	handle, err := s.player.Play(audio)
	if err != nil {
		s.phase = inbound.PhaseError
		s.errMsg = err.Error()
		s.mu.Unlock()
		return
	}
	s.handle = handle
	s.phase = inbound.PhasePlaying
	s.mu.Unlock()

	s.watchPlayback(cycle, handle)
}

// watchPlayback transitions the session when the audio signals completion.
func (s *playbackSession) watchPlayback(cycle uint64, handle outbound.AudioHandle) {
	err := s.workerPool.Submit(func() {
		playErr := <-handle.Done()

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.cycle != cycle || s.phase != inbound.PhasePlaying {
			return
		}
		if playErr != nil {
			s.phase = inbound.PhaseError
			s.errMsg = playErr.Error()
			return
		}
		s.phase = inbound.PhaseIdle
	})
	if err != nil {
		s.logger.Error(err, "failed to watch audio playback")
	}
}
