// Package auth keeps the signed-in user's profile in step with the session.
package auth

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"Reposition/pkg/repoapi"
)

// State represents the state of the profile store
type State int

// states
const (
	Uninitialized State = iota
	Anonymous           // no session
	Loading             // fetching the profile
	Loaded
	LoadError
)

var stateNames = map[State]string{
	Uninitialized: "uninitialized",
	Anonymous:     "anonymous",
	Loading:       "loading",
	Loaded:        "loaded",
	LoadError:     "load-error",
}

// String implements the fmt.Stringer interface
func (s State) String() string {
	return stateNames[s]
}

// errors
var (
	ErrNotSignedIn = errors.New("auth: not signed in")
)

// API is the part of the API client the profile store uses
type API interface {
	GetProfile(ctx context.Context) (repoapi.Profile, error)
	SignIn(ctx context.Context, email, password string) (repoapi.Credentials, error)
}

// Session is the part of the session store the profile store uses
type Session interface {
	Init(ctx context.Context) error
	Exist() bool
	SetTokens(ctx context.Context, accessToken, refreshToken string) error
	RemoveTokens(ctx context.Context) error
	Subscribe(fn func(exist bool))
}

// Store holds the signed-in user's profile, fetched once per session
type Store struct {
	api     API
	session Session

	mu      sync.Mutex
	state   State
	profile *repoapi.Profile
	loadErr error
}

// NewStore creates a Store, dropping the profile whenever the session ends
func NewStore(api API, s Session) *Store {
	st := &Store{api: api, session: s}
	s.Subscribe(func(exist bool) {
		if exist {
			return
		}
		st.mu.Lock()
		defer st.mu.Unlock()
		st.profile = nil
		st.loadErr = nil
		st.state = Anonymous
		log.Debug("session ended, profile dropped")
	})
	return st
}

// Init initializes the session and fetches the profile if a session exists
// a profile already cached, e.g. by Login, is reused instead of being fetched again
func (s *Store) Init(ctx context.Context) error {
	if err := s.session.Init(ctx); err != nil {
		return errors.Wrap(err, "auth: error initializing session")
	}

	s.mu.Lock()
	if !s.session.Exist() {
		s.state = Anonymous
		s.profile = nil
		s.mu.Unlock()
		return nil
	}
	if s.profile != nil {
		s.state = Loaded
		s.mu.Unlock()
		return nil
	}
	s.state = Loading
	s.mu.Unlock()

	profile, err := s.api.GetProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if !s.session.Exist() {
			// the session was removed by the failed request
			s.state = Anonymous
			return ErrNotSignedIn
		}
		s.state = LoadError
		s.loadErr = err
		return errors.Wrap(err, "auth: error fetching profile")
	}
	s.state = Loaded
	s.profile = &profile
	s.loadErr = nil
	log.WithField("user_id", profile.ID).Debug("profile loaded")
	return nil
}

// Login signs in, stores the new session and caches the profile returned along with its tokens
func (s *Store) Login(ctx context.Context, email, password string) (repoapi.Profile, error) {
	creds, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		return repoapi.Profile{}, err
	}
	if err = s.session.Init(ctx); err != nil {
		return repoapi.Profile{}, errors.Wrap(err, "auth: error initializing session")
	}

	profile := creds.Profile
	if err = s.session.SetTokens(ctx, creds.AccessToken, creds.RefreshToken); err != nil {
		return repoapi.Profile{}, errors.Wrap(err, "auth: error storing session")
	}
	// cached after the tokens are set, so the session listener doesn't drop it
	s.mu.Lock()
	s.profile = &profile
	s.loadErr = nil
	s.mu.Unlock()

	if err = s.Init(ctx); err != nil {
		return repoapi.Profile{}, err
	}
	log.WithField("user_id", profile.ID).Info("signed in")
	return profile, nil
}

// Logout removes the session
func (s *Store) Logout(ctx context.Context) error {
	if err := s.session.Init(ctx); err != nil {
		return errors.Wrap(err, "auth: error initializing session")
	}
	return s.session.RemoveTokens(ctx)
}

// Profile returns the signed-in user's profile, if loaded
func (s *Store) Profile() (repoapi.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return repoapi.Profile{}, false
	}
	return *s.profile, true
}

// Authorized reports whether a session exists
func (s *Store) Authorized() bool {
	return s.session.Exist()
}

// Role returns the signed-in user's role, empty if the profile isn't loaded
func (s *Store) Role() string {
	p, _ := s.Profile()
	return p.Role
}

// LoadError returns the error of the last failed profile fetch
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// State returns the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
