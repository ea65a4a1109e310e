package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"TextPredict/internal/modules/prediction/application/dto/request"
	"TextPredict/internal/modules/prediction/application/dto/respond"
	"TextPredict/internal/modules/prediction/domain/generator"
	"TextPredict/pkg/metrics"
	"TextPredict/pkg/xerr"
	"TextPredict/pkg/zlog"

	"go.uber.org/zap"
)

// 请求约束
const (
	MinTextChars     = 1
	MaxTextChars     = 500
	MinMaxLength     = 10
	MaxMaxLength     = 200
	DefaultMaxLength = 50

	numSequences = 1
)

// ErrNoSequence 生成端没有返回任何结果
var ErrNoSequence = errors.New("generator returned no sequences")

// PredictionService 文本预测服务接口
type PredictionService interface {
	// Info 服务标识
	Info() respond.ServiceInfoRespond

	// Predict 校验请求并调用生成模型。
	// 返回的错误均为 *xerr.CodeError：KindValidation 或 KindGeneration。
	Predict(ctx context.Context, req request.PredictRequest) (*respond.PredictRespond, error)
}

type predictionServiceImpl struct {
	info    respond.ServiceInfoRespond
	gen     generator.Generator
	metrics metrics.Recorder
}

// NewPredictionService 创建 PredictionService
func NewPredictionService(name, version string, gen generator.Generator, rec metrics.Recorder) PredictionService {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &predictionServiceImpl{
		info:    respond.ServiceInfoRespond{Message: name, Version: version},
		gen:     gen,
		metrics: rec,
	}
}

func (s *predictionServiceImpl) Info() respond.ServiceInfoRespond {
	return s.info
}

func (s *predictionServiceImpl) Predict(ctx context.Context, req request.PredictRequest) (*respond.PredictRespond, error) {
	text, maxLength, verr := ValidatePredictRequest(req)
	if verr != nil {
		s.metrics.ObserveGeneration(metrics.OutcomeInvalid, 0)
		return nil, verr
	}

	start := time.Now()
	seqs, err := s.gen.Generate(ctx, text, maxLength, numSequences)
	if err == nil && len(seqs) == 0 {
		err = ErrNoSequence
	}
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveGeneration(metrics.OutcomeFailed, elapsed.Seconds())
		zlog.Error("generate failed",
			zap.Error(err),
			zap.Int("input_length", utf8.RuneCountInString(text)),
			zap.Int("max_length", maxLength),
			zap.Duration("latency", elapsed))
		return nil, xerr.NewGeneration(err)
	}
	s.metrics.ObserveGeneration(metrics.OutcomeSuccess, elapsed.Seconds())

	resp := shape(text, seqs[0].GeneratedText)
	zlog.Info("predict done",
		zap.Int("input_length", resp.InputLength),
		zap.Int("generated_length", resp.GeneratedLength),
		zap.Int("max_length", maxLength),
		zap.Duration("latency", elapsed))
	return resp, nil
}

// shape 计算长度。generated_length 不做下限截断。
func shape(trimmed, prediction string) *respond.PredictRespond {
	inputLength := utf8.RuneCountInString(trimmed)
	return &respond.PredictRespond{
		Prediction:      prediction,
		InputLength:     inputLength,
		GeneratedLength: utf8.RuneCountInString(prediction) - inputLength,
	}
}

// isStripSpace 与 unicode.IsSpace 相比还包括 \x1c-\x1f 分隔符
func isStripSpace(r rune) bool {
	if r >= 0x1c && r <= 0x1f {
		return true
	}
	return unicode.IsSpace(r)
}

func trimText(s string) string {
	return strings.TrimFunc(s, isStripSpace)
}

// ValidatePredictRequest 校验请求，返回去除首尾空白后的文本和生效的 max_length。
// 所有违反的约束一并返回。
func ValidatePredictRequest(req request.PredictRequest) (string, int, *xerr.CodeError) {
	var fields []xerr.FieldError

	var text string
	if req.Text == nil {
		fields = append(fields, xerr.FieldError{
			Field:   "text",
			Message: "Field required",
			Type:    "field_required",
		})
	} else {
		text = trimText(*req.Text)
		n := utf8.RuneCountInString(text)
		switch {
		case n < MinTextChars:
			fields = append(fields, xerr.FieldError{
				Field:   "text",
				Message: "Text cannot be empty or whitespace only",
				Type:    "string_empty",
			})
		case n > MaxTextChars:
			fields = append(fields, xerr.FieldError{
				Field:   "text",
				Message: fmt.Sprintf("String should have at most %d characters", MaxTextChars),
				Type:    "string_too_long",
			})
		}
	}

	maxLength := DefaultMaxLength
	if req.MaxLength != nil {
		maxLength = req.MaxLength.Int()
		if maxLength < MinMaxLength || maxLength > MaxMaxLength {
			fields = append(fields, xerr.FieldError{
				Field:   "max_length",
				Message: fmt.Sprintf("Input should be between %d and %d", MinMaxLength, MaxMaxLength),
				Type:    "out_of_range",
			})
		}
	}

	if len(fields) > 0 {
		return "", 0, xerr.NewValidation(fields...)
	}
	return text, maxLength, nil
}
