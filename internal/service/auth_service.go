package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"time"

	"roundtable/internal/pkg/jwt"
)

const (
	// AuthCookieName 访问凭证 cookie 名
	AuthCookieName = "roundtable-auth"
	// AuthCookieMaxAge cookie 与凭证的有效期
	AuthCookieMaxAge = 30 * 24 * time.Hour

	authTokenKey     = "roundtable-auth-key"
	authTokenSubject = "roundtable"
)

// AuthService 共享密码访问控制
// 凭证是以密码派生密钥签名的 JWT，不保存会话；修改密码即令所有已签发 cookie 失效
type AuthService struct {
	password string
	tokens   *jwt.JWT
}

// NewAuthService 创建认证服务，password 为空时拒绝一切登录
func NewAuthService(password string) *AuthService {
	return &AuthService{
		password: password,
		tokens:   jwt.NewJWT(deriveTokenSecret(password), AuthCookieMaxAge),
	}
}

// deriveTokenSecret HMAC-SHA256(authTokenKey, password)
func deriveTokenSecret(password string) []byte {
	mac := hmac.New(sha256.New, []byte(authTokenKey))
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

// Enabled 是否配置了访问密码
func (s *AuthService) Enabled() bool {
	return s.password != ""
}

// VerifyPassword 常量时间比较密码
func (s *AuthService) VerifyPassword(input string) bool {
	if s.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(input), []byte(s.password)) == 1
}

// Token 签发 cookie 中保存的凭证
func (s *AuthService) Token() (string, error) {
	if s.password == "" {
		return "", fmt.Errorf("%w: access password is not configured", ErrUnavailable)
	}
	return s.tokens.GenerateToken(authTokenSubject)
}

// VerifyToken 校验凭证签名与有效期
func (s *AuthService) VerifyToken(token string) bool {
	if token == "" || s.password == "" {
		return false
	}
	claims, err := s.tokens.ValidateToken(token)
	return err == nil && claims.Subject == authTokenSubject
}
