package http

import (
	"encoding/json"
	"errors"
	"io"

	"TextPredict/internal/modules/prediction/application/dto/request"
	"TextPredict/internal/modules/prediction/application/service"
	"TextPredict/pkg/back"
	"TextPredict/pkg/xerr"
	"TextPredict/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PredictionHandler struct {
	svc service.PredictionService
}

func NewPredictionHandler(svc service.PredictionService) *PredictionHandler {
	return &PredictionHandler{svc: svc}
}

// Root 服务标识
//
//	GET /
//	{"message": "Text Prediction API", "version": "1.0"}
func (h *PredictionHandler) Root(c *gin.Context) {
	back.Success(c, h.svc.Info())
}

// Predict 文本续写
//
//	POST /predict
//	{"text": "Hello world", "max_length": 50}
//
// 成功返回 {"prediction", "input_length", "generated_length"}；
// 参数错误 422，生成失败 500。
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req request.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("predict bind json failed", zap.Error(err))
		back.CodeError(c, bindError(err))
		return
	}

	resp, err := h.svc.Predict(c.Request.Context(), req)
	if err != nil {
		if xerr.IsKind(err, xerr.KindValidation) {
			zlog.Info("predict rejected", zap.Error(err))
		}
		back.Result(c, nil, err)
		return
	}
	back.Result(c, resp, nil)
}

// bindError 把 JSON 解码错误转换为字段级校验错误
func bindError(err error) *xerr.CodeError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return xerr.NewValidation(xerr.FieldError{
				Field:   "body",
				Message: "Input should be a valid JSON object",
				Type:    "type_error",
			})
		}
		return xerr.NewValidation(xerr.FieldError{
			Field:   typeErr.Field,
			Message: "Input should be a valid " + typeErr.Type.String(),
			Type:    "type_error",
		})
	}
	if errors.Is(err, io.EOF) {
		return xerr.NewValidation(xerr.FieldError{
			Field:   "body",
			Message: "Field required",
			Type:    "missing",
		})
	}
	return xerr.NewValidation(xerr.FieldError{
		Field:   "body",
		Message: "JSON decode error: " + err.Error(),
		Type:    "json_invalid",
	})
}
