package llm

import (
	"context"
	"fmt"

	"TextPredict/internal/modules/prediction/domain/generator"
)

// EchoGenerator 本地开发用，不访问任何模型，原样返回输入
type EchoGenerator struct{}

func NewEchoGenerator() *EchoGenerator {
	return &EchoGenerator{}
}

func (g *EchoGenerator) Generate(ctx context.Context, text string, maxLength int, numSequences int) ([]generator.Sequence, error) {
	if numSequences <= 0 {
		return nil, fmt.Errorf("numSequences must be positive, got %d", numSequences)
	}
	out := make([]generator.Sequence, numSequences)
	for i := range out {
		out[i] = generator.Sequence{GeneratedText: text}
	}
	return out, nil
}

var _ generator.Generator = (*EchoGenerator)(nil)
