package middleware

import (
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"Strategus/internal/shared/security"
)

const CtxKeyUID = "uid"

// JWTAuth 校验 Bearer Token 并把 uid 放进请求上下文。
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(nethttp.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "msg": "缺少凭证"})
			return
		}
		_, claims, err := security.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(nethttp.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "msg": "凭证无效"})
			return
		}
		c.Set(CtxKeyUID, claims.Uid)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	// websocket 握手带不了自定义 header，退回 query 参数
	return c.Query("token")
}

// UID 读取 JWTAuth 写入的用户标识；未认证返回 0。
func UID(c *gin.Context) int64 {
	v, ok := c.Get(CtxKeyUID)
	if !ok {
		return 0
	}
	uid, ok := v.(int)
	if !ok {
		return 0
	}
	return int64(uid)
}
