package settings

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		drop    bool
		wantErr error
	}{
		{name: "Defaults are valid"},
		{name: "Custom pattern", key: KeyURIsLoggedPattern, value: "^(/api/v1/.*)$"},
		{name: "Escaped percent in template", key: KeyElementPattern, value: "%s=%s (100%%)"},
		{name: "Missing key", key: KeyURIEnabled, drop: true, wantErr: ErrMissingKey},
		{name: "Broken regular expression", key: KeyURIsLoggedPattern, value: "^(/api", wantErr: ErrInvalidPattern},
		{name: "Template with one slot", key: KeyElementPattern, value: "%s", wantErr: ErrInvalidTemplate},
		{name: "Template with three slots", key: KeyElementPattern, value: "%s %s %s", wantErr: ErrInvalidTemplate},
		{name: "Template with numeric verb", key: KeyElementPattern, value: "%s: %d", wantErr: ErrInvalidTemplate},
		{name: "Template with dangling percent", key: KeyElementPattern, value: "%s: %s%", wantErr: ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Defaults()
			if tt.key != "" {
				if tt.drop {
					delete(values, tt.key)
				} else {
					values[tt.key] = tt.value
				}
			}

			snap, err := NewSnapshot(values)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, snap)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, snap)
		})
	}
}

func TestSnapshot_Reads(t *testing.T) {
	values := Defaults()
	values[KeyURIEnabled] = "TRUE"
	values[KeyIPAddressEnabled] = "yes"
	snap, err := NewSnapshot(values)
	require.NoError(t, err)

	t.Run("Bool accepts true in any case", func(t *testing.T) {
		v, err := snap.Bool(KeyURIEnabled)
		require.NoError(t, err)
		assert.True(t, v)
	})

	t.Run("Bool treats other words as false", func(t *testing.T) {
		v, err := snap.Bool(KeyIPAddressEnabled)
		require.NoError(t, err)
		assert.False(t, v)
	})

	t.Run("String returns raw value", func(t *testing.T) {
		v, err := snap.String(KeyHTTPMethodsLogged)
		require.NoError(t, err)
		assert.Equal(t, "*", v)
	})

	t.Run("Unknown key fails", func(t *testing.T) {
		_, err := snap.String("log.nothing")
		assert.ErrorIs(t, err, ErrMissingKey)

		_, err = snap.Bool("log.nothing")
		assert.ErrorIs(t, err, ErrMissingKey)
	})
}

func TestSnapshot_IsolatedFromCaller(t *testing.T) {
	values := Defaults()
	snap, err := NewSnapshot(values)
	require.NoError(t, err)

	values[KeyIPAddressEnabled] = "false"
	v, err := snap.Bool(KeyIPAddressEnabled)
	require.NoError(t, err)
	assert.True(t, v)

	out := snap.Values()
	out[KeyIPAddressEnabled] = "false"
	v, err = snap.Bool(KeyIPAddressEnabled)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestSnapshot_MatchURI(t *testing.T) {
	tests := []struct {
		pattern string
		uri     string
		want    bool
	}{
		{pattern: "*", uri: "/", want: true},
		{pattern: "*", uri: "", want: true},
		{pattern: "^(/api/v1/.*)$", uri: "/", want: false},
		{pattern: "^(/api/v1/.*)$", uri: "/api/v1/users", want: true},
		{pattern: ".*/users/.*", uri: "/api/v1/users", want: false},
		{pattern: ".*/users/.*", uri: "/api/v1/users/42", want: true},
		// a bare substring is not enough
		{pattern: "users", uri: "/api/v1/users", want: false},
		{pattern: "/a|/b", uri: "/b", want: true},
		{pattern: "/a|/b", uri: "/ab", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.uri, func(t *testing.T) {
			values := Defaults()
			values[KeyURIsLoggedPattern] = tt.pattern
			snap, err := NewSnapshot(values)
			require.NoError(t, err)

			assert.Equal(t, tt.want, snap.MatchURI(tt.uri))
		})
	}
}

func TestSnapshot_With(t *testing.T) {
	base, err := NewSnapshot(Defaults())
	require.NoError(t, err)

	next, err := base.With(KeyIPAddressEnabled, "false")
	require.NoError(t, err)

	v, _ := next.Bool(KeyIPAddressEnabled)
	assert.False(t, v)
	v, _ = base.Bool(KeyIPAddressEnabled)
	assert.True(t, v)

	_, err = base.With(KeyURIsLoggedPattern, "(")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestTemplate_Format(t *testing.T) {
	tmpl, err := ParseTemplate("%s: %s")
	require.NoError(t, err)
	assert.Equal(t, "IP: 127.0.0.1", tmpl.Format("IP", "127.0.0.1"))

	tmpl, err = ParseTemplate("[%v=%v]")
	require.NoError(t, err)
	assert.Equal(t, "[URI=GET /]", tmpl.Format("URI", "GET /"))
}

func TestStore(t *testing.T) {
	t.Run("Empty store", func(t *testing.T) {
		var s Store
		assert.Nil(t, s.Current())

		_, err := s.String(KeyURIEnabled)
		assert.ErrorIs(t, err, ErrNotRegistered)
		_, err = s.Bool(KeyURIEnabled)
		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("Register replaces snapshot", func(t *testing.T) {
		first, err := NewSnapshot(Defaults())
		require.NoError(t, err)
		second, err := first.With(KeyURIEnabled, "false")
		require.NoError(t, err)

		s := NewStore(first)
		v, err := s.Bool(KeyURIEnabled)
		require.NoError(t, err)
		assert.True(t, v)

		s.Register(second)
		v, err = s.Bool(KeyURIEnabled)
		require.NoError(t, err)
		assert.False(t, v)
		assert.Same(t, second, s.Current())
	})

	t.Run("Concurrent readers see whole snapshots", func(t *testing.T) {
		on, err := NewSnapshot(Defaults())
		require.NoError(t, err)
		offValues := Defaults()
		offValues[KeyIPAddressEnabled] = "false"
		offValues[KeyURIEnabled] = "false"
		off, err := NewSnapshot(offValues)
		require.NoError(t, err)

		s := NewStore(on)
		var wg sync.WaitGroup
		torn := make(chan struct{}, 1)

		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 1000; j++ {
					snap := s.Current()
					ip, _ := snap.Bool(KeyIPAddressEnabled)
					uri, _ := snap.Bool(KeyURIEnabled)
					if ip != uri {
						select {
						case torn <- struct{}{}:
						default:
						}
					}
				}
			}()
		}
		for j := 0; j < 1000; j++ {
			if j%2 == 0 {
				s.Register(off)
			} else {
				s.Register(on)
			}
		}
		wg.Wait()

		assert.Empty(t, torn)
	})
}
