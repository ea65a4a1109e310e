package requestid

import (
	"TextPredict/pkg/util"

	"github.com/gin-gonic/gin"
)

const (
	Header     = "X-Request-ID"
	ContextKey = "request_id"
)

// RequestID 透传合法的 X-Request-ID，否则生成新的
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" || len(id) > 64 || !util.IsUUID(id) {
			id = util.GenerateUUID()
		}
		c.Set(ContextKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

// Get 读取当前请求的 id
func Get(c *gin.Context) string {
	return c.GetString(ContextKey)
}
