// Package config loads validated settings from the environment for
// long-running components. Loading is fail-open: a value that cannot be
// parsed or fails validation is replaced by its default and reported as a
// warning, so a typo in one variable never keeps the worker from starting.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of loading one setting.
type Result[T any] struct {
	Value           T
	FallbackApplied bool
	Warnings        []string
}

// Load reads key, parses it and validates it. An unset or blank variable
// yields def without a warning. validate may be nil.
func Load[T any](key string, def T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return Result[T]{Value: def}
	}

	v, err := parse(raw)
	if err != nil {
		return fallback(def, fmt.Sprintf("%s=%q could not be parsed, using default %v: %v", key, raw, def, err))
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return fallback(def, fmt.Sprintf("%s=%q is invalid, using default %v: %v", key, raw, def, err))
		}
	}
	return Result[T]{Value: v}
}

func fallback[T any](def T, warning string) Result[T] {
	return Result[T]{Value: def, FallbackApplied: true, Warnings: []string{warning}}
}

// LoadString loads a string setting.
func LoadString(key, def string, validate func(string) error) Result[string] {
	return Load(key, def, func(s string) (string, error) { return s, nil }, validate)
}

// LoadInt loads a base-10 integer setting.
func LoadInt(key string, def int, validate func(int) error) Result[int] {
	return Load(key, def, strconv.Atoi, validate)
}

// LoadDuration loads a setting in time.ParseDuration syntax ("90s", "2m").
func LoadDuration(key string, def time.Duration, validate func(time.Duration) error) Result[time.Duration] {
	return Load(key, def, time.ParseDuration, validate)
}
