package llm

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"TextPredict/internal/modules/prediction/domain/generator"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const continuationSystemPrompt = `You are a text completion engine.
Continue the user's text naturally from exactly where it stops.
Rules:
1. Output only the continuation, never repeat the given text.
2. Do not add explanations, quotes or formatting.`

// ChatGenerator 基于 eino ChatModel 的续写实现
//
// 每条序列一次 Generate 调用，结果为 输入 + 续写。
type ChatGenerator struct {
	chatModel   model.BaseChatModel
	meta        ChatModelMeta
	temperature float32
}

func NewChatGenerator(cm model.BaseChatModel, meta ChatModelMeta, temperature float32) *ChatGenerator {
	return &ChatGenerator{chatModel: cm, meta: meta, temperature: temperature}
}

func (g *ChatGenerator) Meta() ChatModelMeta {
	return g.meta
}

func (g *ChatGenerator) Generate(ctx context.Context, text string, maxLength int, numSequences int) ([]generator.Sequence, error) {
	if numSequences <= 0 {
		return nil, fmt.Errorf("numSequences must be positive, got %d", numSequences)
	}

	msgs := []*schema.Message{
		schema.SystemMessage(continuationSystemPrompt),
		schema.UserMessage(text),
	}
	opts := []model.Option{model.WithMaxTokens(maxLength)}
	if g.temperature > 0 {
		opts = append(opts, model.WithTemperature(g.temperature))
	}

	out := make([]generator.Sequence, 0, numSequences)
	for i := 0; i < numSequences; i++ {
		resp, err := g.chatModel.Generate(ctx, msgs, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s generate: %w", g.meta.Provider, err)
		}
		if resp == nil {
			return nil, fmt.Errorf("%s generate: empty response", g.meta.Provider)
		}
		out = append(out, generator.Sequence{GeneratedText: joinContinuation(text, resp.Content)})
	}
	return out, nil
}

// joinContinuation 拼接输入与续写，两侧都没有空白(且非中文)时补一个空格
func joinContinuation(prefix, continuation string) string {
	if continuation == "" {
		return prefix
	}
	last, _ := utf8.DecodeLastRuneInString(prefix)
	first, _ := utf8.DecodeRuneInString(continuation)
	if prefix == "" || unicode.IsSpace(last) || unicode.IsSpace(first) || unicode.IsPunct(first) ||
		unicode.Is(unicode.Han, last) || unicode.Is(unicode.Han, first) {
		return prefix + continuation
	}
	return prefix + " " + continuation
}

var _ generator.Generator = (*ChatGenerator)(nil)
