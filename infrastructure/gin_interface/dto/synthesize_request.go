package dto

type SynthesizeRequest struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
