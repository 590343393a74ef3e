package outbound

import (
	"context"

	"github.com/BisiOlaYemi/Text2speech/domain"
)

type SynthesizerPort interface {
	Synthesize(ctx context.Context, req domain.SynthesisRequest) ([]byte, error)
}
