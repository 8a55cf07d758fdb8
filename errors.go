package navigation

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors raised by this package.
const (
	TextCodeInvalidPattern = "INVALID_PATTERN"
	TextCodeHistoryUpdate  = "HISTORY_UPDATE_FAILED"
	TextCodeRouteNotFound  = "ROUTE_NOT_FOUND"
	TextCodeRouteShadowed  = "ROUTE_SHADOWED"
	TextCodeInvalidHook    = "INVALID_HOOK"
	TextCodeRenderFailed   = "RENDER_FAILED"
)

// NewInvalidPatternError is returned when a route pattern can not be compiled.
// Registration is rejected and the route table is left untouched.
func NewInvalidPatternError(pattern, reason string, metadata ...map[string]any) error {
	meta := map[string]any{
		"pattern": pattern,
		"reason":  reason,
	}
	for _, m := range metadata {
		for k, v := range m {
			meta[k] = v
		}
	}

	return goerrors.New(fmt.Sprintf("invalid route pattern %q: %s", pattern, reason), goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidPattern).
		WithMetadata(meta)
}

// NewHistoryUpdateError wraps a failure raised by a History implementation.
func NewHistoryUpdateError(location string, err error) error {
	if err == nil {
		err = errors.New("history update failed")
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, fmt.Sprintf("failed to update history location %q", location)).
		WithCode(http.StatusInternalServerError).
		WithTextCode(TextCodeHistoryUpdate).
		WithMetadata(map[string]any{
			"location": location,
		})
}

// NewNotFoundError describes a path that no route and no default could serve.
// Router does not return it from Navigate; adapters such as ssr use it.
func NewNotFoundError(path string) error {
	return goerrors.New(fmt.Sprintf("no route matches %q", path), goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(TextCodeRouteNotFound).
		WithMetadata(map[string]any{
			"path": path,
		})
}

// NewRenderError wraps an error produced while rendering a handler.
func NewRenderError(handler string, err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("failed to render %q", handler)).
		WithCode(http.StatusInternalServerError).
		WithTextCode(TextCodeRenderFailed).
		WithMetadata(map[string]any{
			"handler": handler,
		})
}

func newInvalidHookError(name, reason string) error {
	return goerrors.New(fmt.Sprintf("invalid hook %q: %s", name, reason), goerrors.CategoryValidation).
		WithTextCode(TextCodeInvalidHook).
		WithMetadata(map[string]any{
			"hook":   name,
			"reason": reason,
		})
}

// HasTextCode reports whether err, or any error it wraps, is a go-errors
// error carrying the given text code.
func HasTextCode(err error, code string) bool {
	for err != nil {
		var rich *goerrors.Error
		if !errors.As(err, &rich) {
			return false
		}
		if rich.TextCode == code {
			return true
		}
		err = errors.Unwrap(rich)
	}
	return false
}

func IsInvalidPattern(err error) bool {
	return HasTextCode(err, TextCodeInvalidPattern)
}

func IsHistoryUpdate(err error) bool {
	return HasTextCode(err, TextCodeHistoryUpdate)
}

func IsNotFound(err error) bool {
	return HasTextCode(err, TextCodeRouteNotFound)
}
