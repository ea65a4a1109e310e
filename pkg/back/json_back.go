package back

import (
	"net/http"

	"TextPredict/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 统一错误响应结构
//
// Detail 对校验错误是字段列表，对生成错误是原始错误信息。
type ErrorResponse struct {
	Error      string      `json:"error"`
	Detail     interface{} `json:"detail"`
	StatusCode int         `json:"status_code"`
}

// Result 统一返回入口
func Result(c *gin.Context, data interface{}, err error) {
	if err == nil {
		Success(c, data)
		return
	}

	// 判断是否为自定义错误
	if e, ok := xerr.From(err); ok {
		CodeError(c, e)
		return
	}

	// 默认为系统错误
	CodeError(c, xerr.ErrServerError)
}

// Success 成功返回，直接输出业务数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// CodeError 按 CodeError 的状态码返回
func CodeError(c *gin.Context, e *xerr.CodeError) {
	var detail interface{} = e.Detail
	if e.Kind == xerr.KindValidation {
		fields := e.Fields
		if fields == nil {
			fields = []xerr.FieldError{}
		}
		detail = fields
	}
	c.AbortWithStatusJSON(e.Code, ErrorResponse{
		Error:      e.Message,
		Detail:     detail,
		StatusCode: e.Code,
	})
}
