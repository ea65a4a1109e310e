package llm

import (
	"context"
	"strings"

	"TextPredict/internal/config"
	"TextPredict/internal/modules/prediction/domain/generator"
	"TextPredict/pkg/zlog"

	"go.uber.org/zap"
)

// NewGeneratorFromConfig 根据配置创建生成器，进程启动时调用一次
func NewGeneratorFromConfig(ctx context.Context, conf config.GeneratorConfig) (generator.Generator, error) {
	if strings.EqualFold(strings.TrimSpace(conf.Provider), ProviderEcho) {
		zlog.Warn("echo generator in use, predictions will repeat the input")
		return NewEchoGenerator(), nil
	}

	cm, meta, err := NewChatModelFromConfig(ctx, conf)
	if err != nil {
		return nil, err
	}
	gen := NewChatGenerator(cm, meta, conf.Temperature)
	m := gen.Meta()
	zlog.Info("generator model created",
		zap.String("provider", m.Provider),
		zap.String("model", m.Model))
	return gen, nil
}
