package domain

import "sort"

const (
	// MaxSynthesisTextLength is the longest text the speech service accepts in one request.
	MaxSynthesisTextLength = 5000
	// MaxTranslationTextLength is the longest text the translator accepts in one request.
	MaxTranslationTextLength = 10000

	DefaultSourceLanguage = "en"
	DefaultLanguageCode   = "en-US"
)

type SynthesisRequest struct {
	Text         string
	LanguageCode string
}

type TranslationRequest struct {
	Text           string
	TargetLanguage string
	SourceLanguage string
}

type TranslationResult struct {
	TranslatedText   string
	DetectedLanguage string
	Confidence       float64
}

type Language struct {
	Code          string
	TranslateCode string
	VoiceName     string
}

var languages = map[string]Language{
	"en-US": {Code: "en-US", TranslateCode: "en", VoiceName: "en-US-JennyNeural"},
	"pt-PT": {Code: "pt-PT", TranslateCode: "pt", VoiceName: "pt-PT-DuarteNeural"},
	"es-ES": {Code: "es-ES", TranslateCode: "es", VoiceName: "es-ES-ElviraNeural"},
	"fr-FR": {Code: "fr-FR", TranslateCode: "fr", VoiceName: "fr-FR-DeniseNeural"},
	"de-DE": {Code: "de-DE", TranslateCode: "de", VoiceName: "de-DE-KatjaNeural"},
}

// VoiceFor returns the neural voice bound to the given language code.
// Unrecognized codes fall back to the default English voice.
func VoiceFor(languageCode string) string {
	if lang, ok := languages[languageCode]; ok {
		return lang.VoiceName
	}
	return languages[DefaultLanguageCode].VoiceName
}

// TranslateCodeFor returns the translator language code for a spoken
// language code, reporting whether a mapping exists.
func TranslateCodeFor(languageCode string) (string, bool) {
	lang, ok := languages[languageCode]
	if !ok {
		return "", false
	}
	return lang.TranslateCode, true
}

// SupportedLanguages lists every language the voice table knows about,
// ordered by spoken language code.
func SupportedLanguages() []Language {
	result := make([]Language, 0, len(languages))
	for _, lang := range languages {
		result = append(result, lang)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}
