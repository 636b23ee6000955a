package middleware

import (
	"tec_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// RequestMetaMiddleware 把客户端 IP 和 UA 放入请求上下文，供行为日志使用
func RequestMetaMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := util.WithRequestMeta(c.Request.Context(), util.RequestMeta{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
