package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "undangan:session:"

// Store keeps each snapshot as a JSON string under prefix+id, plus a sorted
// set of ids scored by expiry so List never has to SCAN.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires sessions after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix replaces DefaultPrefix. An empty prefix is ignored.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New dials address and returns a Store on the new client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient wraps a client the caller already owns.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client exposes the underlying client so a Locker can share it.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Prefix returns the configured key prefix.
func (s *Store) Prefix() string {
	return s.prefix
}

func (s *Store) key(sessionID string) string { return s.prefix + sessionID }

// indexKey names the sorted set of session ids, scored by expiry.
func (s *Store) indexKey() string { return s.prefix + "index" }

// noExpiry scores index entries for stores without a TTL.
const noExpiry = math.MaxInt64

func (s *Store) expiry(now time.Time) float64 {
	if s.ttl <= 0 {
		return noExpiry
	}
	return float64(now.Add(s.ttl).Unix())
}

// Save writes the snapshot and its index entry in one round trip.
func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", sessionID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(p backend.Pipeliner) error {
		p.Set(ctx, s.key(sessionID), payload, s.ttl)
		p.ZAdd(ctx, s.indexKey(), backend.Z{Score: s.expiry(time.Now()), Member: sessionID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	switch {
	case errors.Is(err, backend.Nil):
		return nil, domain.ErrSessionNotFound
	case err != nil:
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	snap := new(domain.Snapshot)
	if err := json.Unmarshal(payload, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", sessionID, err)
	}
	return snap, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.client.TxPipelined(ctx, func(p backend.Pipeliner) error {
		p.Del(ctx, s.key(sessionID))
		p.ZRem(ctx, s.indexKey(), sessionID)
		return nil
	})
	return err
}

// List returns the ids whose expiry lies in the future, soonest first.
// Expired index entries are dropped in the same transaction.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)

	var live *backend.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(p backend.Pipeliner) error {
		p.ZRemRangeByScore(ctx, s.indexKey(), "-inf", now)
		live = p.ZRangeByScore(ctx, s.indexKey(), &backend.ZRangeBy{Min: "(" + now, Max: "+inf"})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return live.Val(), nil
}

// Ping checks connectivity, used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client, including one passed to NewFromClient.
func (s *Store) Close() error {
	return s.client.Close()
}
