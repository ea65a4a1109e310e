package generator

import "context"

// Sequence 一条生成结果
type Sequence struct {
	GeneratedText string `json:"generated_text"`
}

// Generator 文本生成能力
//
// 返回的 GeneratedText 包含原始输入作为前缀，后接模型续写内容。
// 实现需可被多个请求并发调用。
type Generator interface {
	Generate(ctx context.Context, text string, maxLength int, numSequences int) ([]Sequence, error)
}
