package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"request-logger/internal/settings"
)

// FeatureEnvPrefix prefixes environment overrides of feature keys:
// log.uri.enabled -> REQLOG_LOG_URI_ENABLED.
const FeatureEnvPrefix = "REQLOG"

// Features resolves request logging keys from built-in defaults, an optional
// file (YAML, JSON or TOML, picked by extension) and the environment, in
// increasing priority.
type Features struct {
	v *viper.Viper
}

func LoadFeatures(path string) (*Features, error) {
	v := viper.New()

	for key, value := range settings.Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(FeatureEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read features file: %w", err)
		}
	}

	return &Features{v: v}, nil
}

// Values returns every known key with its effective value as a string.
func (f *Features) Values() map[string]string {
	keys := f.v.AllKeys()
	values := make(map[string]string, len(keys))
	for _, key := range keys {
		values[key] = cast.ToString(f.v.Get(key))
	}
	return values
}

// Snapshot validates the current values into a settings.Snapshot.
func (f *Features) Snapshot() (*settings.Snapshot, error) {
	snap, err := settings.NewSnapshot(f.Values())
	if err != nil {
		return nil, fmt.Errorf("failed to build feature snapshot: %w", err)
	}
	return snap, nil
}

// Watch calls onChange with a fresh snapshot each time the features file is
// written. It is a no-op when no file was loaded.
func (f *Features) Watch(onChange func(snap *settings.Snapshot, err error)) {
	if f.v.ConfigFileUsed() == "" {
		return
	}
	f.v.OnConfigChange(func(fsnotify.Event) {
		onChange(f.Snapshot())
	})
	f.v.WatchConfig()
}
