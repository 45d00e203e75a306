package credential

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
)

const (
	// QueryParam is the location query parameter a login redirect hands the
	// token over in.
	QueryParam = "token"
	// StorageKey is the key the token is persisted under.
	StorageKey = "token"
)

// Location exposes the query parameters of the page the client was opened
// from.
type Location interface {
	Query() url.Values
}

// NoLocation is a Location without query parameters.
var NoLocation Location = urlLocation{}

type urlLocation struct {
	values url.Values
}

func (l urlLocation) Query() url.Values {
	return l.values
}

// URLLocation parses a handoff URL such as "http://host/?token=abc".
func URLLocation(raw string) (Location, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NoLocation, nil
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse location %q: %w", raw, err)
	}
	return urlLocation{values: u.Query()}, nil
}

// ErrNoTokenParam is returned by ParseLogin for a URL without a token
// parameter.
var ErrNoTokenParam = errors.New("URL has no token parameter")

// ParseLogin accepts either a handoff URL carrying ?token= or a bare token.
// Exactly one of the returned location and token is set.
func ParseLogin(value string) (Location, string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, "", errors.New("paste the login URL or a token")
	}
	if !strings.Contains(v, "://") && !strings.Contains(v, "?") && !strings.HasPrefix(v, "/") {
		return nil, v, nil
	}
	loc, err := URLLocation(v)
	if err != nil {
		return nil, "", err
	}
	if !loc.Query().Has(QueryParam) {
		return nil, "", ErrNoTokenParam
	}
	return loc, "", nil
}

// Store owns the single bearer token. It checks the current location for a
// token parameter on every read and otherwise serves the persisted value.
type Store struct {
	storage Storage
	logger  *slog.Logger

	mu       sync.Mutex
	location Location
}

// NewStore builds a Store over storage. loc may be nil.
func NewStore(storage Storage, loc Location, logger *slog.Logger) *Store {
	if loc == nil {
		loc = NoLocation
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{storage: storage, location: loc, logger: logger}
}

// SetLocation replaces the location consulted by Token.
func (s *Store) SetLocation(loc Location) {
	if loc == nil {
		loc = NoLocation
	}
	s.mu.Lock()
	s.location = loc
	s.mu.Unlock()
}

// Token returns the current credential. A token query parameter on the
// location overwrites storage before the read. Storage faults are logged and
// reported as an absent credential.
func (s *Store) Token() (string, bool) {
	if s == nil || s.storage == nil {
		return "", false
	}

	s.mu.Lock()
	loc := s.location
	s.mu.Unlock()

	if values := loc.Query(); values != nil && values.Has(QueryParam) {
		if err := s.storage.Set(StorageKey, values.Get(QueryParam)); err != nil {
			s.logger.Error("error getting token", slog.Any("error", err))
			return "", false
		}
	}

	token, ok, err := s.storage.Get(StorageKey)
	if err != nil {
		s.logger.Error("error getting token", slog.Any("error", err))
		return "", false
	}
	return token, ok
}

// Set stores token directly, as if it had arrived on the location.
func (s *Store) Set(token string) error {
	if err := s.storage.Set(StorageKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Clear removes the persisted credential. Clearing an absent credential is a
// no-op. The location is reset as well so a stale handoff URL does not
// restore the token on the next read.
func (s *Store) Clear() error {
	s.SetLocation(NoLocation)
	if err := s.storage.Delete(StorageKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
