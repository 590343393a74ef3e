package inbound

type PlaybackPhase string

const (
	PhaseIdle         PlaybackPhase = "idle"
	PhaseTranslating  PlaybackPhase = "translating"
	PhaseSynthesizing PlaybackPhase = "synthesizing"
	PhasePlaying      PlaybackPhase = "playing"
	PhaseError        PlaybackPhase = "error"
)

// PlaybackSnapshot is a point-in-time copy of the session state for display.
type PlaybackSnapshot struct {
	Phase          PlaybackPhase
	Text           string
	LanguageCode   string
	TranslatedText string
	Warning        string
	Error          string
}

// PlaybackSessionPort drives one text-to-speech playback UI instance.
// SetText and SetLanguage mirror user edits, Play starts a play cycle and
// Stop pauses the current audio. All methods are safe for concurrent use.
type PlaybackSessionPort interface {
	SetText(text string)
	SetLanguage(languageCode string)
	Play() error
	Stop()
	Snapshot() PlaybackSnapshot
	Close()
}
