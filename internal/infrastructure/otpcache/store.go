// Package otpcache holds pending signature codes in process memory. Codes
// are ephemeral: a restart drops them all and clients simply re-request.
package otpcache

import (
	"crypto/rand"
	"fmt"
	"hash/fnv"
	"math/big"
	"sync"
	"time"
)

const (
	// codeMax bounds the random draw; codes are always printed as four digits.
	codeMax    = 10000
	codeFormat = "%04d"

	numShards = 32
)

type credential struct {
	code      string
	issuedAt  time.Time
	expiresAt time.Time
}

type shard struct {
	mu      sync.Mutex
	entries map[string]credential
}

// Store keeps at most one live code per subject, with TTL expiry checked
// lazily at Check time. The map is sharded by subject so concurrent
// operations on unrelated subjects never contend on one lock.
type Store struct {
	shards [numShards]*shard
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces the wall clock, for deterministic expiry in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store whose codes expire ttl after issuance.
func New(ttl time.Duration, opts ...Option) *Store {
	s := &Store{ttl: ttl, now: time.Now}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]credential)}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue generates a fresh code for the subject, replacing any prior
// unconsumed one, and returns it. The code is independent of any previous
// code for the subject.
func (s *Store) Issue(subjectID string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := fmt.Sprintf(codeFormat, n.Int64())

	now := s.now()
	sh := s.shardFor(subjectID)
	sh.mu.Lock()
	sh.entries[subjectID] = credential{
		code:      code,
		issuedAt:  now,
		expiresAt: now.Add(s.ttl),
	}
	sh.mu.Unlock()
	return code, nil
}

// Check reports whether a live code for the subject exactly equals the
// submitted one. On a match the credential is removed under the shard lock,
// so two concurrent checks with the correct code see exactly one success.
// A wrong code leaves the credential in place for retry within the window;
// an expired entry is dropped and treated as absent.
func (s *Store) Check(subjectID, submittedCode string) bool {
	sh := s.shardFor(subjectID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	c, ok := sh.entries[subjectID]
	if !ok {
		return false
	}
	if s.now().After(c.expiresAt) {
		delete(sh.entries, subjectID)
		return false
	}
	if c.code != submittedCode {
		return false
	}
	delete(sh.entries, subjectID)
	return true
}

// Clear removes any live code for the subject. Idempotent.
func (s *Store) Clear(subjectID string) {
	sh := s.shardFor(subjectID)
	sh.mu.Lock()
	delete(sh.entries, subjectID)
	sh.mu.Unlock()
}

func (s *Store) shardFor(subjectID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return s.shards[h.Sum32()%numShards]
}
