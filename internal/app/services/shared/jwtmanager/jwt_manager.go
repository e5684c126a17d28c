package jwtmanager

import (
	"fmt"
	"strings"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"

	"github.com/golang-jwt/jwt/v4"
)

// JWTManager verifies bearer tokens issued by the identity provider and
// signs short-lived tokens for internal tooling.
type JWTManager struct {
	secret []byte
}

// TokenClaims is the subset of claims the booking service cares about.
type TokenClaims struct {
	UID  string
	Role string
}

func NewJWTManager(cfg *config.InternalConfig) *JWTManager {
	return &JWTManager{secret: []byte(cfg.JWT.Secret)}
}

// CreateToken signs an HS256 token with standard claims plus the user role.
// It sets iat, nbf to now and exp to now + ttl.
func (j *JWTManager) CreateToken(uid, role string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(uid) == "" {
		return "", fmt.Errorf("uid is required")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  uid,
		"role": role,
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// VerifyToken validates signature and expiry and returns the decoded claims.
func (j *JWTManager) VerifyToken(tokenString string) (*TokenClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, fmt.Errorf("token is required")
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Header["alg"])
		}
		return j.secret, nil
	}

	parsed, err := jwt.Parse(tokenString, keyFunc)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	out := &TokenClaims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		out.UID = sub
	}
	if role, ok := mapClaims["role"].(string); ok {
		out.Role = role
	}
	if out.UID == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return out, nil
}
