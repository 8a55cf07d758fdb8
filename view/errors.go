package view

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeComponentNotFound = "COMPONENT_NOT_FOUND"
	TextCodeInvalidComponent  = "INVALID_COMPONENT"
	TextCodeTemplateFailed    = "TEMPLATE_FAILED"
)

func NewComponentNotFoundError(name string) error {
	return goerrors.New(fmt.Sprintf("component %q is not registered", name), goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(TextCodeComponentNotFound).
		WithMetadata(map[string]any{
			"component": name,
		})
}

func newInvalidComponentError(name, reason string) error {
	return goerrors.New(fmt.Sprintf("invalid component %q: %s", name, reason), goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidComponent).
		WithMetadata(map[string]any{
			"component": name,
			"reason":    reason,
		})
}

func newTemplateError(name string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("failed to render template %q", name)).
		WithCode(http.StatusInternalServerError).
		WithTextCode(TextCodeTemplateFailed).
		WithMetadata(map[string]any{
			"template": name,
		})
}
