package middleware

import (
	"net/http"
	"strings"

	"github.com/cydxin/notice-sdk/response"
	"github.com/cydxin/notice-sdk/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextReceiverKey gin context 里保存接收者标识的 key
	ContextReceiverKey = "receiver_id"
	ContextTokenKey    = "token"
)

// AuthOptions 可选配置。
type AuthOptions struct {
	// HeaderKey 默认 Authorization
	HeaderKey string
	// QueryKey 默认 token
	QueryKey string
	// ReceiverKey 默认 receiver_id
	ReceiverKey string
	// TokenKey 默认 token
	TokenKey string

	// IdentityFn 宿主自带登录体系时的接入点：直接从请求里解析出接收者标识。
	// 配置后不再走 Redis token 校验。
	IdentityFn func(c *gin.Context) (string, error)
}

func (o *AuthOptions) withDefaults() AuthOptions {
	if o == nil {
		return AuthOptions{HeaderKey: "Authorization", QueryKey: "token", ReceiverKey: ContextReceiverKey, TokenKey: ContextTokenKey}
	}
	out := *o
	if out.HeaderKey == "" {
		out.HeaderKey = "Authorization"
	}
	if out.QueryKey == "" {
		out.QueryKey = "token"
	}
	if out.ReceiverKey == "" {
		out.ReceiverKey = ContextReceiverKey
	}
	if out.TokenKey == "" {
		out.TokenKey = ContextTokenKey
	}
	return out
}

/*
	GinAuthMiddleware Gin 鉴权中间件：

- 配了 IdentityFn 时直接用宿主的身份解析
- 否则优先从 Authorization: Bearer <token> 读取，没有再从 query 参数读取（默认 token=xxx）
- 校验 token -> receiver（Redis）成功后，写入 gin.Context

使用：router.Use(middleware.GinAuthMiddleware(authService, nil))
*/
func GinAuthMiddleware(auth *service.AuthService, opt *AuthOptions) gin.HandlerFunc {
	cfg := opt.withDefaults()

	return func(c *gin.Context) {
		if cfg.IdentityFn != nil {
			receiver, err := cfg.IdentityFn(c)
			if err != nil || receiver == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.AuthFailed())
				return
			}
			c.Set(cfg.ReceiverKey, receiver)
			c.Next()
			return
		}

		if auth == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.AuthFailed())
			return
		}

		// 1) header bearer
		token := ""
		ah := strings.TrimSpace(c.GetHeader(cfg.HeaderKey))
		if ah != "" {
			parts := strings.SplitN(ah, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = strings.TrimSpace(parts[1])
			}
		}

		// 2) query fallback
		if token == "" {
			token = strings.TrimSpace(c.Query(cfg.QueryKey))
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.AuthFailed())
			return
		}

		receiver, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.AuthFailed())
			return
		}

		c.Set(cfg.ReceiverKey, receiver)
		c.Set(cfg.TokenKey, token)
		c.Next()
	}
}
