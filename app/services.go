package app

import (
	"fmt"
	"sort"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeServiceNotFound     = "SERVICE_NOT_FOUND"
	TextCodeServiceTypeMismatch = "SERVICE_TYPE_MISMATCH"
	TextCodeServiceConflict     = "SERVICE_CONFLICT"
	TextCodeInvalidService      = "INVALID_SERVICE"
)

// Services is a registry of named dependencies shared by extensions and
// components.
type Services struct {
	mu    sync.RWMutex
	items map[string]any
}

func NewServices() *Services {
	return &Services{items: make(map[string]any)}
}

// Register adds svc under key. Keys can only be registered once.
func (s *Services) Register(key string, svc any) error {
	if key == "" || svc == nil {
		return goerrors.New("service key and value are required", goerrors.CategoryValidation).
			WithTextCode(TextCodeInvalidService).
			WithMetadata(map[string]any{"key": key})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; ok {
		return goerrors.New(fmt.Sprintf("service %q already registered", key), goerrors.CategoryConflict).
			WithTextCode(TextCodeServiceConflict).
			WithMetadata(map[string]any{"key": key})
	}
	s.items[key] = svc
	return nil
}

func (s *Services) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.items[key]
	return svc, ok
}

func (s *Services) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the service under key as a T.
func Lookup[T any](s *Services, key string) (T, error) {
	var zero T

	svc, ok := s.Get(key)
	if !ok {
		return zero, goerrors.New(fmt.Sprintf("service %q not registered", key), goerrors.CategoryNotFound).
			WithTextCode(TextCodeServiceNotFound).
			WithMetadata(map[string]any{"key": key})
	}

	typed, ok := svc.(T)
	if !ok {
		return zero, goerrors.New(fmt.Sprintf("service %q has type %T, want %T", key, svc, zero), goerrors.CategoryValidation).
			WithTextCode(TextCodeServiceTypeMismatch).
			WithMetadata(map[string]any{
				"key":  key,
				"type": fmt.Sprintf("%T", svc),
			})
	}
	return typed, nil
}
