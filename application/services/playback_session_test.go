package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BisiOlaYemi/Text2speech/application/ports/inbound"
	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/BisiOlaYemi/Text2speech/domain"
)

type noopLogger struct{}

func (noopLogger) Info(string)                                           {}
func (noopLogger) InfoWithFields(string, map[string]interface{})         {}
func (noopLogger) Error(error, string)                                   {}
func (noopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (noopLogger) Debug(string)                                          {}
func (noopLogger) Warn(string)                                           {}
func (noopLogger) WarnWithFields(string, map[string]interface{})         {}

type stubTranslator struct {
	mu    sync.Mutex
	calls []domain.TranslationRequest
	err   error
}

func (t *stubTranslator) Translate(_ context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error) {
	t.mu.Lock()
	t.calls = append(t.calls, req)
	t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	return &domain.TranslationResult{
		TranslatedText:   "[" + req.TargetLanguage + "] " + req.Text,
		DetectedLanguage: req.SourceLanguage,
		Confidence:       1.0,
	}, nil
}

type stubSynthesizer struct {
	mu    sync.Mutex
	calls []domain.SynthesisRequest
	err   error
}

func (s *stubSynthesizer) Synthesize(_ context.Context, req domain.SynthesisRequest) ([]byte, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return []byte("mpeg:" + req.Text), nil
}

type fakeHandle struct {
	mu       sync.Mutex
	paused   bool
	rewound  bool
	released bool
	done     chan error
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{done: make(chan error, 1)}
}

func (h *fakeHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.paused {
		h.paused = true
		h.done <- nil
		close(h.done)
	}
}

func (h *fakeHandle) Rewind() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rewound = true
}

func (h *fakeHandle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released = true
}

func (h *fakeHandle) Done() <-chan error { return h.done }

func (h *fakeHandle) finish(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.paused {
		h.paused = true
		h.done <- err
		close(h.done)
	}
}

type fakePlayer struct {
	mu      sync.Mutex
	handles []*fakeHandle
	err     error
}

func (p *fakePlayer) Play(audio []byte) (outbound.AudioHandle, error) {
	if p.err != nil {
		return nil, p.err
	}
	h := newFakeHandle()
	p.mu.Lock()
	p.handles = append(p.handles, h)
	p.mu.Unlock()
	return h, nil
}

// asyncDispatcher runs play cycles on real goroutines so completion
// callbacks resolve outside the caller.
type asyncDispatcher struct{ wg sync.WaitGroup }

func (d *asyncDispatcher) Submit(task func()) error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		task()
	}()
	return nil
}

func waitForPhase(t *testing.T, session inbound.PlaybackSessionPort, phase inbound.PlaybackPhase) inbound.PlaybackSnapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := session.Snapshot()
		if snap.Phase == phase {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for phase %q, last snapshot: %+v", phase, session.Snapshot())
	return inbound.PlaybackSnapshot{}
}

const englishText = "this is the story of a small fox that ran to the river and back"

func newTestSession(translator *stubTranslator, synthesizer *stubSynthesizer, player *fakePlayer) inbound.PlaybackSessionPort {
	return NewPlaybackSession(noopLogger{}, translator, synthesizer, player, &asyncDispatcher{})
}

func TestPlay_EmptyTextStaysIdle(t *testing.T) {
	synthesizer := &stubSynthesizer{}
	session := newTestSession(&stubTranslator{}, synthesizer, &fakePlayer{})

	if err := session.Play(); err == nil {
		t.Fatal("expected a validation error for empty text")
	}

	snap := session.Snapshot()
	if snap.Phase != inbound.PhaseIdle {
		t.Errorf("phase = %q, want idle", snap.Phase)
	}
	if snap.Error == "" {
		t.Error("expected a user-visible validation error")
	}
	if len(synthesizer.calls) != 0 {
		t.Error("no synthesis must be attempted for invalid input")
	}
}

func TestPlay_OversizedTextRejected(t *testing.T) {
	synthesizer := &stubSynthesizer{}
	session := newTestSession(&stubTranslator{}, synthesizer, &fakePlayer{})

	session.SetText(strings.Repeat("x", domain.MaxSynthesisTextLength+1))
	if err := session.Play(); err == nil {
		t.Fatal("expected an error for oversized text")
	}
	if len(synthesizer.calls) != 0 {
		t.Error("no synthesis must be attempted for oversized input")
	}
}

func TestPlay_MultibyteTextWithinLimitAccepted(t *testing.T) {
	synthesizer := &stubSynthesizer{}
	session := newTestSession(&stubTranslator{}, synthesizer, &fakePlayer{})

	// Two-byte characters up to the limit: counted per character, not
	// per byte.
	session.SetText(strings.Repeat("é", domain.MaxSynthesisTextLength))
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}

	waitForPhase(t, session, inbound.PhasePlaying)
	if len(synthesizer.calls) != 1 {
		t.Fatalf("expected one synthesize call, got %d", len(synthesizer.calls))
	}
}

func TestPlay_TranslatesThenSynthesizes(t *testing.T) {
	translator := &stubTranslator{}
	synthesizer := &stubSynthesizer{}
	player := &fakePlayer{}
	session := newTestSession(translator, synthesizer, player)

	session.SetText(englishText)
	session.SetLanguage("fr-FR")
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}

	snap := waitForPhase(t, session, inbound.PhasePlaying)
	if len(translator.calls) != 1 {
		t.Fatalf("expected one translate call, got %d", len(translator.calls))
	}
	if translator.calls[0].TargetLanguage != "fr" {
		t.Errorf("translate target = %q, want fr", translator.calls[0].TargetLanguage)
	}
	if len(synthesizer.calls) != 1 {
		t.Fatalf("expected one synthesize call, got %d", len(synthesizer.calls))
	}
	if synthesizer.calls[0].Text != "[fr] "+englishText {
		t.Errorf("synthesis input = %q, want the translated text", synthesizer.calls[0].Text)
	}
	if synthesizer.calls[0].LanguageCode != "fr-FR" {
		t.Errorf("synthesis language = %q, want the originally selected code", synthesizer.calls[0].LanguageCode)
	}
	if snap.TranslatedText == "" {
		t.Error("translated text should be retained for display")
	}
}

func TestPlay_SkipsTranslationForDefaultLanguage(t *testing.T) {
	translator := &stubTranslator{}
	synthesizer := &stubSynthesizer{}
	session := newTestSession(translator, synthesizer, &fakePlayer{})

	session.SetText(englishText)
	session.SetLanguage("en-US")
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}

	waitForPhase(t, session, inbound.PhasePlaying)
	if len(translator.calls) != 0 {
		t.Error("translation must be skipped when the target is the default language")
	}
	if len(synthesizer.calls) != 1 || synthesizer.calls[0].Text != englishText {
		t.Error("original text must flow directly to synthesis")
	}
}

func TestPlay_SkipsTranslationForNonEnglishInput(t *testing.T) {
	translator := &stubTranslator{}
	synthesizer := &stubSynthesizer{}
	session := newTestSession(translator, synthesizer, &fakePlayer{})

	session.SetText("bonjour tout le monde ici on parle une autre langue entierement")
	session.SetLanguage("fr-FR")
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}

	waitForPhase(t, session, inbound.PhasePlaying)
	if len(translator.calls) != 0 {
		t.Error("translation must be skipped when the input does not read as English")
	}
}

// gateSynthesizer blocks its first call until the gate closes so a later
// play cycle can overtake the first.
type gateSynthesizer struct {
	mu    sync.Mutex
	calls int
	gate  chan struct{}
}

func (g *gateSynthesizer) Synthesize(_ context.Context, req domain.SynthesisRequest) ([]byte, error) {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()
	if first {
		<-g.gate
	}
	return []byte("mpeg:" + req.Text), nil
}

func (g *gateSynthesizer) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestPlay_SupersededCycleResultIsDiscarded(t *testing.T) {
	synthesizer := &gateSynthesizer{gate: make(chan struct{})}
	player := &fakePlayer{}
	session := NewPlaybackSession(noopLogger{}, &stubTranslator{}, synthesizer, player, &asyncDispatcher{})

	session.SetText(englishText)
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for synthesizer.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if synthesizer.callCount() == 0 {
		t.Fatal("first cycle never reached synthesis")
	}

	// Restart while the first cycle is still inside synthesis.
	if err := session.Play(); err != nil {
		t.Fatal("second play failed:", err)
	}
	waitForPhase(t, session, inbound.PhasePlaying)

	// Unblock the superseded cycle. Its audio must never reach the
	// player and the running playback must stay untouched.
	close(synthesizer.gate)
	deadline = time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		player.mu.Lock()
		n := len(player.handles)
		player.mu.Unlock()
		if n != 1 {
			t.Fatalf("player handles = %d, want only the overtaking cycle's handle", n)
		}
		time.Sleep(5 * time.Millisecond)
	}

	if snap := session.Snapshot(); snap.Phase != inbound.PhasePlaying {
		t.Errorf("phase = %q, want playing", snap.Phase)
	}
}

func TestPlay_TranslationFailureFallsBackToOriginalText(t *testing.T) {
	translator := &stubTranslator{err: fmt.Errorf("quota exceeded")}
	synthesizer := &stubSynthesizer{}
	session := newTestSession(translator, synthesizer, &fakePlayer{})

	session.SetText(englishText)
	session.SetLanguage("de-DE")
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}

	snap := waitForPhase(t, session, inbound.PhasePlaying)
	if snap.Warning == "" {
		t.Error("a failed translation should surface a warning")
	}
	if len(synthesizer.calls) != 1 || synthesizer.calls[0].Text != englishText {
		t.Error("synthesis must fall back to the original text on translation failure")
	}
}

func TestPlay_SynthesisFailureEntersErrorState(t *testing.T) {
	synthesizer := &stubSynthesizer{err: fmt.Errorf("speech synthesis failed: cancelled")}
	session := newTestSession(&stubTranslator{}, synthesizer, &fakePlayer{})

	session.SetText(englishText)
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}

	snap := waitForPhase(t, session, inbound.PhaseError)
	if snap.Error != "speech synthesis failed: cancelled" {
		t.Errorf("error = %q, want the forwarder message verbatim", snap.Error)
	}
}

func TestStop_PausesAndReturnsToIdle(t *testing.T) {
	player := &fakePlayer{}
	session := newTestSession(&stubTranslator{}, &stubSynthesizer{}, player)

	session.SetText(englishText)
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}
	waitForPhase(t, session, inbound.PhasePlaying)

	session.Stop()

	snap := session.Snapshot()
	if snap.Phase != inbound.PhaseIdle {
		t.Errorf("phase after stop = %q, want idle", snap.Phase)
	}
	handle := player.handles[0]
	if !handle.paused || !handle.rewound {
		t.Error("stop must pause and rewind the audio handle")
	}
	if handle.released {
		t.Error("stop must not release the handle; release happens on the next cycle or teardown")
	}
}

func TestPlay_ReleasesPriorHandle(t *testing.T) {
	player := &fakePlayer{}
	session := newTestSession(&stubTranslator{}, &stubSynthesizer{}, player)

	session.SetText(englishText)
	if err := session.Play(); err != nil {
		t.Fatal("first play failed:", err)
	}
	waitForPhase(t, session, inbound.PhasePlaying)

	if err := session.Play(); err != nil {
		t.Fatal("second play failed:", err)
	}
	waitForPhase(t, session, inbound.PhasePlaying)

	if len(player.handles) != 2 {
		t.Fatalf("expected two handles, got %d", len(player.handles))
	}
	if !player.handles[0].released {
		t.Error("starting a new cycle must release the prior handle")
	}
	if player.handles[1].released {
		t.Error("the current handle must remain active")
	}
}

func TestNaturalCompletionReturnsToIdle(t *testing.T) {
	player := &fakePlayer{}
	dispatcher := &asyncDispatcher{}
	session := NewPlaybackSession(noopLogger{}, &stubTranslator{}, &stubSynthesizer{}, player, dispatcher)
	defer session.Close()

	session.SetText(englishText)
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}
	waitForPhase(t, session, inbound.PhasePlaying)

	player.handles[0].finish(nil)
	waitForPhase(t, session, inbound.PhaseIdle)
}

func TestPlaybackFailureEntersErrorState(t *testing.T) {
	player := &fakePlayer{}
	dispatcher := &asyncDispatcher{}
	session := NewPlaybackSession(noopLogger{}, &stubTranslator{}, &stubSynthesizer{}, player, dispatcher)
	defer session.Close()

	session.SetText(englishText)
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}
	waitForPhase(t, session, inbound.PhasePlaying)

	player.handles[0].finish(fmt.Errorf("decoder error"))
	snap := waitForPhase(t, session, inbound.PhaseError)
	if snap.Error != "decoder error" {
		t.Errorf("error = %q, want the playback failure message", snap.Error)
	}
}

func TestSetTextClearsDisplayedResults(t *testing.T) {
	translator := &stubTranslator{}
	session := newTestSession(translator, &stubSynthesizer{}, &fakePlayer{})

	session.SetText(englishText)
	session.SetLanguage("es-ES")
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}
	snap := waitForPhase(t, session, inbound.PhasePlaying)
	if snap.TranslatedText == "" {
		t.Fatal("expected a displayed translation before the edit")
	}

	session.SetText("something new")
	snap = session.Snapshot()
	if snap.TranslatedText != "" || snap.Error != "" || snap.Warning != "" {
		t.Error("editing the text must clear the displayed translation and errors")
	}
}

func TestClose_ReleasesHandle(t *testing.T) {
	player := &fakePlayer{}
	session := newTestSession(&stubTranslator{}, &stubSynthesizer{}, player)

	session.SetText(englishText)
	if err := session.Play(); err != nil {
		t.Fatal("play failed:", err)
	}
	waitForPhase(t, session, inbound.PhasePlaying)

	session.Close()
	if !player.handles[0].released {
		t.Error("teardown must release the active handle")
	}
	if err := session.Play(); err == nil {
		t.Error("play on a closed session must fail")
	}
}
