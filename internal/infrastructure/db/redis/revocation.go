package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// RevocationStore keeps revoked tokens in Redis until they would have
// expired anyway.
//
// Key formats:
//
//	revoked:jti:<token id>     -> "1", TTL until the token's exp
//	revoked:actor:<actor id>   -> unix milliseconds cutoff, TTL = max token lifetime
//
// A token is rejected when its jti is listed or when it was issued strictly
// before the actor's cutoff, compared in milliseconds.
type RevocationStore struct {
	client   *redis.Client
	tokenTTL time.Duration
}

// NewRevocationStore wraps client. tokenTTL must be the longest lifetime the
// codec issues; actor cutoffs older than that cannot match a live token.
func NewRevocationStore(client *redis.Client, tokenTTL time.Duration) *RevocationStore {
	return &RevocationStore{client: client, tokenTTL: tokenTTL}
}

// keepLatest stores ARGV[1] unless the key already holds a later cutoff.
var keepLatest = redis.NewScript(`
local cur = redis.call("GET", KEYS[1])
if cur and tonumber(cur) >= tonumber(ARGV[1]) then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
  return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

func (s *RevocationStore) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, tokenKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RevocationStore) RevokeActor(ctx context.Context, actorID string, at time.Time) error {
	err := keepLatest.Run(ctx, s.client, []string{actorKey(actorID)},
		at.UnixMilli(), s.tokenTTL.Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("revoke actor: %w", err)
	}
	return nil
}

// IsRevoked reads both keys in one round trip.
func (s *RevocationStore) IsRevoked(ctx context.Context, claims domain.Claims) (bool, error) {
	keys := []string{actorKey(claims.ActorID)}
	if claims.TokenID != "" {
		keys = append(keys, tokenKey(claims.TokenID))
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("revocation lookup: %w", err)
	}

	if len(vals) > 1 && vals[1] != nil {
		return true, nil
	}
	if raw, ok := vals[0].(string); ok {
		cutoff, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return false, fmt.Errorf("revocation lookup: bad cutoff %q: %w", raw, err)
		}
		return claims.IssuedAt.UnixMilli() < cutoff, nil
	}
	return false, nil
}

func tokenKey(tokenID string) string {
	return "revoked:jti:" + tokenID
}

func actorKey(actorID string) string {
	return "revoked:actor:" + actorID
}
