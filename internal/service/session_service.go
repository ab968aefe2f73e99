package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionIssuer = "vitrine"

// SessionClaims 匿名会话声明，Subject 为购物车持有者 ID
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Session 会话令牌
type Session struct {
	Token     string    `json:"token"`
	Owner     string    `json:"owner"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService 匿名会话服务
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService 创建会话服务
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &SessionService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue 签发新的匿名会话
func (s *SessionService) Issue() (*Session, error) {
	return s.IssueFor(uuid.NewString())
}

// IssueFor 为已有持有者续签
func (s *SessionService) IssueFor(owner string) (*Session, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if _, err := uuid.Parse(owner); err != nil {
		return nil, ErrSessionInvalid
	}
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   owner,
			Issuer:    sessionIssuer,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &Session{Token: signed, Owner: owner, ExpiresAt: expiresAt}, nil
}

// Parse 校验令牌并返回持有者 ID
func (s *SessionService) Parse(tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	token, err := parser.ParseWithClaims(strings.TrimSpace(tokenString), &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrSessionExpired
		}
		return "", ErrSessionInvalid
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", ErrSessionInvalid
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrSessionInvalid
	}
	return claims.Subject, nil
}
