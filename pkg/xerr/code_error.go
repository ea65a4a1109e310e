package xerr

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind int

const (
	// KindValidation 请求参数不满足约束（客户端错误）
	KindValidation Kind = iota + 1
	// KindGeneration 文本生成失败（服务端错误）
	KindGeneration
	// KindInternal 其他未分类的系统错误
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindGeneration:
		return "generation"
	default:
		return "internal"
	}
}

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// CodeError 自定义错误结构
//
// Code 即 HTTP 状态码。校验错误携带 Fields，生成错误携带 Detail。
type CodeError struct {
	Kind    Kind         `json:"-"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Detail  string       `json:"detail,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// Error 实现 error 接口
func (e *CodeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("Code: %d, Message: %s, Detail: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// New 创建新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{Kind: KindInternal, Code: code, Message: msg}
}

// 常用通用错误码
const (
	UnprocessableEntity = 422
	InternalServerError = 500
)

const (
	ValidationFailedMessage = "Validation failed"
	PredictionFailedMessage = "Prediction failed"
	generationDetailPrefix  = "Model prediction failed: "
)

// ErrServerError 未分类的系统错误
var ErrServerError = New(InternalServerError, "Internal server error")

// NewValidation 构造校验错误
func NewValidation(fields ...FieldError) *CodeError {
	return &CodeError{
		Kind:    KindValidation,
		Code:    UnprocessableEntity,
		Message: ValidationFailedMessage,
		Fields:  fields,
	}
}

// NewGeneration 把生成端返回的任意错误包装为预测失败
func NewGeneration(cause error) *CodeError {
	msg := "<nil>"
	if cause != nil {
		msg = cause.Error()
	}
	return &CodeError{
		Kind:    KindGeneration,
		Code:    InternalServerError,
		Message: PredictionFailedMessage,
		Detail:  generationDetailPrefix + msg,
	}
}

// From 从错误链中取出 CodeError
func From(err error) (*CodeError, bool) {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsKind 判断错误链中是否存在指定类别的 CodeError
func IsKind(err error, kind Kind) bool {
	ce, ok := From(err)
	return ok && ce.Kind == kind
}
