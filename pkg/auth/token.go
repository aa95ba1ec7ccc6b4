package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the validated content of an access token
type TokenClaims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and validates HMAC-signed access tokens
type TokenService struct {
	secret   []byte
	issuer   string
	validity time.Duration
}

func NewTokenService(secret, issuer string, validity time.Duration) *TokenService {
	if validity <= 0 {
		validity = 24 * time.Hour
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		validity: validity,
	}
}

// GenerateAccessToken issues a signed token for the subject
func (s *TokenService) GenerateAccessToken(subject, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.validity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", ErrTokenGeneration().WithDetail("cause", err.Error())
	}
	return signed, nil
}

// ValidateAccessToken parses and verifies a token string
func (s *TokenService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken()
	}

	subject, _ := claims.GetSubject()
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken()
	}

	email, _ := claims["email"].(string)

	return &TokenClaims{
		Subject:   subject,
		Email:     email,
		ExpiresAt: exp.Time,
	}, nil
}
