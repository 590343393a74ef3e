package outbound

import (
	"context"

	"github.com/BisiOlaYemi/Text2speech/domain"
)

type TranslatorPort interface {
	Translate(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResult, error)
}
