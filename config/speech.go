package config

import (
	"fmt"
	"os"
)

type SpeechConfig struct {
	Key    string
	Region string
}

// GetSpeechConfig reads the Azure Speech Service credentials from the
// environment. AZURE_SERVICE_REGION takes precedence, with
// AZURE_SPEECH_REGION kept as an alias.
func GetSpeechConfig() (*SpeechConfig, error) {
	key := os.Getenv("AZURE_SPEECH_KEY")
	region := os.Getenv("AZURE_SERVICE_REGION")
	if region == "" {
		region = os.Getenv("AZURE_SPEECH_REGION")
	}
	if key == "" || region == "" {
		return nil, fmt.Errorf("Azure Speech Service credentials are missing")
	}
	return &SpeechConfig{
		Key:    key,
		Region: region,
	}, nil
}
