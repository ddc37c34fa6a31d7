package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	tokenKeyPrefix    = "notice:token:"    // token -> receiver
	receiverKeyPrefix = "notice:receiver:" // receiver -> token 集合
)

// DefaultTokenTTL token 默认有效期
const DefaultTokenTTL = 7 * 24 * time.Hour

// AuthService 提供"鉴权核心能力"，供调用方自建中间件/拦截器使用。
// - 解析 token（Bearer 优先，其次 query）
// - 校验 token -> receiver（Redis）
// - 颁发/注销 token
//
// 宿主已有自己的登录体系时可以不用它，直接在中间件里挂 IdentityFn。
type AuthService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAuthService(rdb *redis.Client, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{rdb: rdb, ttl: ttl}
}

// GrantToken 给接收者颁发一个访问 token。
func (a *AuthService) GrantToken(ctx context.Context, receiver string) (string, error) {
	receiver = strings.TrimSpace(receiver)
	if receiver == "" {
		return "", errors.New("receiver is required")
	}
	if a.rdb == nil {
		return "", errors.New("redis is not configured")
	}

	token := uuid.NewString()
	if err := a.rdb.Set(ctx, tokenKeyPrefix+token, receiver, a.ttl).Err(); err != nil {
		return "", err
	}
	// 记录接收者名下的 token，便于整体注销
	if err := a.rdb.SAdd(ctx, receiverKeyPrefix+receiver, token).Err(); err != nil {
		return "", err
	}
	_ = a.rdb.Expire(ctx, receiverKeyPrefix+receiver, a.ttl).Err()
	return token, nil
}

// ExtractToken 从 HTTP 请求中提取 token：优先 Authorization: Bearer，其次 query: token。
func (a *AuthService) ExtractToken(r *http.Request) string {
	if r == nil {
		return ""
	}

	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah != "" {
		parts := strings.SplitN(ah, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// Authenticate 根据 token 获取接收者标识。
func (a *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("missing token")
	}
	if a.rdb == nil {
		return "", errors.New("redis is not configured")
	}

	receiver, err := a.rdb.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("invalid token")
		}
		return "", err
	}
	return receiver, nil
}

// RevokeToken 注销单个 token。
func (a *AuthService) RevokeToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" || a.rdb == nil {
		return nil
	}
	receiver, err := a.rdb.Get(ctx, tokenKeyPrefix+token).Result()
	if err == nil && receiver != "" {
		_ = a.rdb.SRem(ctx, receiverKeyPrefix+receiver, token).Err()
	}
	return a.rdb.Del(ctx, tokenKeyPrefix+token).Err()
}

// RevokeReceiver 注销接收者名下全部 token。
func (a *AuthService) RevokeReceiver(ctx context.Context, receiver string) error {
	if receiver == "" || a.rdb == nil {
		return nil
	}
	tokens, err := a.rdb.SMembers(ctx, receiverKeyPrefix+receiver).Result()
	if err != nil {
		return err
	}
	for _, token := range tokens {
		_ = a.rdb.Del(ctx, tokenKeyPrefix+token).Err()
	}
	return a.rdb.Del(ctx, receiverKeyPrefix+receiver).Err()
}
