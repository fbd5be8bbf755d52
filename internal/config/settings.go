package config

import (
	"time"

	"github.com/spf13/cast"
)

// DriverSettings is the raw key/value section of one driver.
// Values come from YAML or the environment, so accessors coerce with cast.
type DriverSettings map[string]any

// Clone returns a shallow copy. Values are scalars so the copy is independent.
func (s DriverSettings) Clone() DriverSettings {
	out := make(DriverSettings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// String returns the value at key as a string, or "" when missing.
func (s DriverSettings) String(key string) string {
	return cast.ToString(s[key])
}

// Bool returns the value at key as a bool. "1", "true" and true are true.
func (s DriverSettings) Bool(key string) bool {
	return cast.ToBool(s[key])
}

// Seconds reads key as a whole number of seconds, falling back to def
// when missing, unparseable or not positive.
func (s DriverSettings) Seconds(key string, def time.Duration) time.Duration {
	raw, ok := s[key]
	if !ok {
		return def
	}
	n, err := cast.ToIntE(raw)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
