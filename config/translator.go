package config

import (
	"fmt"
	"os"
)

const defaultTranslatorEndpoint = "https://api.cognitive.microsofttranslator.com/"

type TranslatorConfig struct {
	Key      string
	Region   string
	Endpoint string
}

// GetTranslatorConfig reads the Azure Translator credentials from the
// environment. The region falls back to the shared AZURE_SERVICE_REGION
// and the endpoint defaults to the public translator endpoint.
func GetTranslatorConfig() (*TranslatorConfig, error) {
	key := os.Getenv("AZURE_TRANSLATOR_KEY")
	region := os.Getenv("AZURE_TRANSLATOR_REGION")
	if region == "" {
		region = os.Getenv("AZURE_SERVICE_REGION")
	}
	if key == "" || region == "" {
		return nil, fmt.Errorf("Azure Translator credentials are missing")
	}
	endpoint := os.Getenv("AZURE_TRANSLATOR_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultTranslatorEndpoint
	}
	return &TranslatorConfig{
		Key:      key,
		Region:   region,
		Endpoint: endpoint,
	}, nil
}
