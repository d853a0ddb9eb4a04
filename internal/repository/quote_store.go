package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marianaluz/balloon-event-booking/internal/quote"
)

// QuoteStore keeps in-progress quote drafts in Redis, keyed by an opaque
// token handed to the client.  Drafts carry a TTL so abandoned quiz sessions
// clean themselves up; every save refreshes the TTL.  Quotes are
// single-session, single-writer state, so a plain SET per mutation is
// enough; there is nothing to coordinate.
type QuoteStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewQuoteStore returns a QuoteStore bound to the given Redis client.
func NewQuoteStore(rdb *redis.Client, ttl time.Duration) *QuoteStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &QuoteStore{rdb: rdb, ttl: ttl}
}

func quoteKey(token string) string { return "quote:" + token }

// Create stores a fresh empty quote and returns its token.
func (s *QuoteStore) Create(ctx context.Context) (string, *quote.Quote, error) {
	token, err := randomToken(16)
	if err != nil {
		return "", nil, err
	}
	q := quote.New()
	if err := s.Save(ctx, token, q); err != nil {
		return "", nil, err
	}
	return token, q, nil
}

// Get loads the draft behind a token.  Missing or expired drafts return
// ErrQuoteNotFound.
func (s *QuoteStore) Get(ctx context.Context, token string) (*quote.Quote, error) {
	raw, err := s.rdb.Get(ctx, quoteKey(token)).Bytes()
	if err == redis.Nil {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	var q quote.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Save serializes the draft and refreshes its TTL.
func (s *QuoteStore) Save(ctx context.Context, token string, q *quote.Quote) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, quoteKey(token), raw, s.ttl).Err()
}

// Delete removes the draft, typically right after checkout consumed it.
func (s *QuoteStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, quoteKey(token)).Err()
}

// randomToken returns n random bytes hex-encoded.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
