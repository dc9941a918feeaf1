// Package settings holds the request logger configuration as immutable snapshots
// and publishes them to concurrent readers.
package settings

import (
	"fmt"
	"maps"
	"regexp"
	"strings"
)

// Snapshot is a point-in-time, read-only view of the configuration.
// The element template and the URI pattern are validated when the snapshot is built.
type Snapshot struct {
	values     map[string]string
	template   Template
	uriPattern *regexp.Regexp
}

// NewSnapshot copies values and validates them. Every key in RequiredKeys must be present.
func NewSnapshot(values map[string]string) (*Snapshot, error) {
	s := &Snapshot{values: maps.Clone(values)}
	if s.values == nil {
		s.values = map[string]string{}
	}

	for _, key := range RequiredKeys {
		if _, ok := s.values[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
	}

	tmpl, err := ParseTemplate(s.values[KeyElementPattern])
	if err != nil {
		return nil, err
	}
	s.template = tmpl

	if expr := s.values[KeyURIsLoggedPattern]; expr != Wildcard {
		// anchored so the whole URI has to match, not a substring
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, expr, err)
		}
		s.uriPattern = re
	}

	return s, nil
}

// String returns the raw value of key.
func (s *Snapshot) String(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return v, nil
}

// Bool reports whether key is set to "true", ignoring case. Any other value is false.
func (s *Snapshot) Bool(key string) (bool, error) {
	v, err := s.String(key)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(v, "true"), nil
}

// Template returns the per-element format template.
func (s *Snapshot) Template() Template {
	return s.template
}

// MatchURI reports whether uri passes the configured URI filter.
func (s *Snapshot) MatchURI(uri string) bool {
	if s.uriPattern == nil {
		return true
	}
	return s.uriPattern.MatchString(uri)
}

// Values returns a copy of the raw key/value pairs.
func (s *Snapshot) Values() map[string]string {
	return maps.Clone(s.values)
}

// With returns a new snapshot with key set to value.
func (s *Snapshot) With(key, value string) (*Snapshot, error) {
	values := s.Values()
	values[key] = value
	return NewSnapshot(values)
}
