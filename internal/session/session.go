// Package session holds the user's session tokens and mirrors them to a durable Storage.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// storage key names
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// errors
var (
	ErrKeyNotFound    = errors.New("session: key not found")
	ErrNotInitialized = errors.New("session: store not initialized")
	ErrNoSession      = errors.New("session: no session")
)

// Storage represents a durable string key-value storage
type Storage interface {
	// Get returns ErrKeyNotFound when the key doesn't exist
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// Store holds the session tokens
// the in-memory copy is the source of truth, the Storage is a mirror updated on every change
type Store struct {
	storage Storage
	prefix  string

	mu           sync.RWMutex
	initialized  bool
	accessToken  string
	refreshToken string
	listeners    []func(exist bool)

	mirrorMu sync.Mutex
	mirrored map[string]string // values as last read from or written to storage
}

// NewStore creates an uninitialized Store mirrored to the given storage, with optional key prefix
func NewStore(storage Storage, keyPrefix string) *Store {
	return &Store{
		storage:  storage,
		prefix:   keyPrefix,
		mirrored: make(map[string]string, 2),
	}
}

// key returns the storage key name of the given token key
func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

// Init reads the tokens from storage, only the first call has effect
func (s *Store) Init(ctx context.Context) error {
	s.mirrorMu.Lock()
	defer s.mirrorMu.Unlock()
	if s.Initialized() {
		return nil
	}

	values := make(map[string]string, 2)
	for _, name := range []string{KeyAccessToken, KeyRefreshToken} {
		value, err := s.storage.Get(ctx, s.key(name))
		if err != nil && !errors.Is(err, ErrKeyNotFound) {
			return err
		}
		values[name] = value
		s.mirrored[name] = value
	}

	s.mu.Lock()
	s.initialized = true
	s.accessToken = values[KeyAccessToken]
	s.refreshToken = values[KeyRefreshToken]
	exist := s.exist()
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	log.WithField("exist", exist).Debug("session initialized")
	if exist {
		notify(listeners, true)
	}
	return nil
}

// Initialized reports whether the tokens have been read from storage
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Exist reports whether there's a session: the store is initialized and both tokens are set
func (s *Store) Exist() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exist()
}

func (s *Store) exist() bool {
	return s.initialized && s.accessToken != "" && s.refreshToken != ""
}

// Token implements the oauth2.TokenSource interface
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.exist() {
		return nil, ErrNoSession
	}
	return &oauth2.Token{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
	}, nil
}

// ID returns an identifier of the session's account: every account has its unique refresh token
func (s *Store) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Subscribe registers a function called whenever the session starts or ends
func (s *Store) Subscribe(fn func(exist bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetTokens replaces both tokens
func (s *Store) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	return s.update(ctx, func() {
		s.accessToken = accessToken
		s.refreshToken = refreshToken
	})
}

// SetAccessToken replaces the access token only
func (s *Store) SetAccessToken(ctx context.Context, accessToken string) error {
	return s.update(ctx, func() {
		s.accessToken = accessToken
	})
}

// RemoveTokens clears both tokens
func (s *Store) RemoveTokens(ctx context.Context) error {
	return s.SetTokens(ctx, "", "")
}

// update applies the given change, mirrors the result to storage and notifies listeners if the session started or ended
func (s *Store) update(ctx context.Context, change func()) error {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	before := s.exist()
	change()
	after := s.exist()
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	s.mirror(ctx)
	if before != after {
		notify(listeners, after)
	}
	return nil
}

// mirror synchronizes each token independently to storage: set values are written, empty ones deleted
// failures are logged only, as storage is just a mirror of the in-memory state
func (s *Store) mirror(ctx context.Context) {
	s.mirrorMu.Lock()
	defer s.mirrorMu.Unlock()

	s.mu.RLock()
	values := map[string]string{
		KeyAccessToken:  s.accessToken,
		KeyRefreshToken: s.refreshToken,
	}
	s.mu.RUnlock()

	for _, name := range []string{KeyAccessToken, KeyRefreshToken} {
		value := values[name]
		if value == s.mirrored[name] {
			continue
		}

		var err error
		if value != "" {
			err = s.storage.Set(ctx, s.key(name), value)
		} else {
			err = s.storage.Del(ctx, s.key(name))
		}
		if err != nil {
			log.WithField("key", name).Errorf("failed to mirror session token: %v", err)
			continue
		}
		s.mirrored[name] = value
	}
}

func notify(listeners []func(bool), exist bool) {
	for _, fn := range listeners {
		fn(exist)
	}
}
