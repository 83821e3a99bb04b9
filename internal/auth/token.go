package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the signed session claim set. The token identifier (ID/jti)
// doubles as the entry in the per-user revocation list.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenService{secret: secret, ttl: ttl}
}

func (t *TokenService) TTL() time.Duration {
	return t.ttl
}

// Issue signs a fresh session token for the user and returns the compact
// token string together with its identifier. The caller is responsible for
// recording the identifier in the user's active session collection.
func (t *TokenService) Issue(userID string, role Role) (token string, jti string, err error) {
	now := time.Now()
	jti = uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			ID:        jti,
		},
		Role: role,
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// Verify checks signature and expiry only; it performs no store lookup.
// Revocation is the caller's second check against the session collection.
func (t *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
