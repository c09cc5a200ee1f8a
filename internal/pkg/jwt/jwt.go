package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(userID int64, username string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}

	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID int64, username string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":  userID,
		"username": username,
		"role":     string(role),
		"type":     "access",
		"exp":      expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ClaimsFromContext extracts the caller identity placed on the context by
// jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (auth.Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if claims == nil {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	var out auth.Claims
	switch v := claims["user_id"].(type) {
	case float64:
		out.UserID = int64(v)
	case int64:
		out.UserID = v
	}
	out.Username, _ = claims["username"].(string)
	out.Role, _ = claims["role"].(string)

	if out.Role == "" {
		return auth.Claims{}, errors.Join(auth.ErrInvalidToken, errors.New("role claim is missing"))
	}
	return out, nil
}
