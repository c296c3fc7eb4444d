package profile

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// IdentityKey 是Gin上下文中存放访问者身份的键
	IdentityKey = "identity"
)

// bearerToken 从Authorization头中取出令牌，兼容带与不带Bearer前缀两种格式
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return header
}

// RequireAuthMiddleware 鉴权中间件：没有有效令牌的请求被拒绝。
// 通过后把访问者身份（含管理员标记）放入上下文。
func RequireAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未提供认证令牌"})
			c.Abort()
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "令牌无效或已过期"})
			c.Abort()
			return
		}

		c.Set(IdentityKey, Identity{
			ID:            claims.UserID,
			IsAdmin:       IsAdmin(claims.UserID),
			Authenticated: true,
		})
		c.Next()
	}
}

// LoadIdentityMiddleware 可选鉴权中间件：有令牌则加载身份，没有也放行。
// 供读多写少的公共路由使用。
func LoadIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr != "" {
			if claims, err := ParseToken(tokenStr); err == nil {
				c.Set(IdentityKey, Identity{
					ID:            claims.UserID,
					IsAdmin:       IsAdmin(claims.UserID),
					Authenticated: true,
				})
			}
		}
		c.Next()
	}
}

// CurrentIdentity 从Gin上下文取出访问者身份；未认证时返回零值
func CurrentIdentity(c *gin.Context) Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}
