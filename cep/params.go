package cep

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Params is the string-keyed configuration mapping handed to a strategy.
// Values are converted leniently: 50, int64(50), 50.0 and "50" all read as 50;
// 1, "1", "true" read as true. nil, "None" and "null" mean "unset".
type Params map[string]any

// Has reports whether key holds a set (non-null) value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "none", "null", "nil":
			return false
		}
	}

	return true
}

// Int returns the value of key as an int, or def when unset.
func (p Params) Int(key string, def int) (int, error) {
	if !p.Has(key) {
		return def, nil
	}
	v, err := cast.ToIntE(p[key])
	if err != nil {
		return def, fmt.Errorf("%w: %s=%v: %v", ErrBadParam, key, p[key], err)
	}

	return v, nil
}

// Int64 returns the value of key as an int64, or def when unset.
func (p Params) Int64(key string, def int64) (int64, error) {
	if !p.Has(key) {
		return def, nil
	}
	v, err := cast.ToInt64E(p[key])
	if err != nil {
		return def, fmt.Errorf("%w: %s=%v: %v", ErrBadParam, key, p[key], err)
	}

	return v, nil
}

// Float returns the value of key as a float64, or def when unset.
func (p Params) Float(key string, def float64) (float64, error) {
	if !p.Has(key) {
		return def, nil
	}
	v, err := cast.ToFloat64E(p[key])
	if err != nil {
		return def, fmt.Errorf("%w: %s=%v: %v", ErrBadParam, key, p[key], err)
	}

	return v, nil
}

// Bool returns the value of key as a bool, or def when unset.
func (p Params) Bool(key string, def bool) (bool, error) {
	if !p.Has(key) {
		return def, nil
	}
	v, err := cast.ToBoolE(p[key])
	if err != nil {
		return def, fmt.Errorf("%w: %s=%v: %v", ErrBadParam, key, p[key], err)
	}

	return v, nil
}

// String returns the value of key as a string, or def when unset.
func (p Params) String(key string, def string) (string, error) {
	if !p.Has(key) {
		return def, nil
	}
	v, err := cast.ToStringE(p[key])
	if err != nil {
		return def, fmt.Errorf("%w: %s=%v: %v", ErrBadParam, key, p[key], err)
	}

	return v, nil
}

// Objective returns the value of key parsed as an Objective, or def when unset.
func (p Params) Objective(key string, def Objective) (Objective, error) {
	s, err := p.String(key, string(def))
	if err != nil {
		return def, err
	}

	return ParseObjective(s)
}
