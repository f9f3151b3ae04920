package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/venuehub/booking-api/internal/core/domain"
)

const tokenIssuer = "venuehub"

// DefaultTokenTTL is the lifetime of an access token.
const DefaultTokenTTL = 30 * 24 * time.Hour

// tokenClaims is the wire shape. Exactly one of UserID / ProviderID is set;
// ProviderID is the discriminator. IssuedAtMs repeats iat in milliseconds so
// revocation cutoffs can separate tokens issued within the same second.
type tokenClaims struct {
	UserID     string `json:"userId,omitempty"`
	ProviderID string `json:"providerId,omitempty"`
	Email      string `json:"email"`
	IssuedAtMs int64  `json:"iatMs,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 bearer tokens with a shared secret.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

func NewTokenCodec(secret string) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token codec: secret is required")
	}
	return &TokenCodec{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs claims with an expiry of now+ttl. A fresh jti is generated when
// claims.TokenID is empty.
func (c *TokenCodec) Issue(claims domain.Claims, ttl time.Duration) (string, error) {
	if claims.ActorID == "" {
		return "", errors.New("token codec: actor id is required")
	}
	now := c.now().UTC()
	tokenID := claims.TokenID
	if tokenID == "" {
		tokenID = uuid.NewString()
	}

	wire := tokenClaims{
		Email:      claims.Email,
		IssuedAtMs: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    tokenIssuer,
			Subject:   claims.ActorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	switch claims.Kind {
	case domain.KindProvider:
		wire.ProviderID = claims.ActorID
	case domain.KindUser:
		wire.UserID = claims.ActorID
	default:
		return "", fmt.Errorf("token codec: unknown actor kind %q", claims.Kind)
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(c.secret)
}

// Verify checks signature and expiry and returns the decoded claims.
func (c *TokenCodec) Verify(token string) (domain.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	var wire tokenClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	_, err := parser.ParseWithClaims(token, &wire, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claims{}, domain.ErrTokenExpired
		}
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims := domain.Claims{
		Email:   wire.Email,
		TokenID: wire.ID,
	}
	switch {
	case wire.ProviderID != "":
		claims.ActorID, claims.Kind = wire.ProviderID, domain.KindProvider
	case wire.UserID != "":
		claims.ActorID, claims.Kind = wire.UserID, domain.KindUser
	default:
		return domain.Claims{}, fmt.Errorf("%w: missing actor identifier", domain.ErrInvalidToken)
	}
	switch {
	case wire.IssuedAtMs > 0:
		claims.IssuedAt = time.UnixMilli(wire.IssuedAtMs).UTC()
	case wire.IssuedAt != nil:
		claims.IssuedAt = wire.IssuedAt.Time
	}
	if wire.ExpiresAt != nil {
		claims.ExpiresAt = wire.ExpiresAt.Time
	}
	return claims, nil
}
