package navigation

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

type routeShadow struct {
	earlier string
	later   string
	handler string
	index   int
	segment string
}

// Validate reports routes that can never be reached because an earlier
// registration matches every path they match. The table is not modified;
// the result is advisory.
func (t *RouteTable) Validate() []error {
	var errs []error

	for i := 0; i < len(t.entries); i++ {
		for j := i + 1; j < len(t.entries); j++ {
			if shadow := detectShadow(t.entries[i].pattern, t.entries[j].pattern); shadow != nil {
				shadow.handler = t.entries[j].handler
				errs = append(errs, newRouteShadowError(shadow))
			}
		}
	}

	return errs
}

// detectShadow returns a shadow when every path matched by later is also
// matched by earlier.
func detectShadow(earlier, later string) *routeShadow {
	earlierParts := splitPathSegments(earlier)
	laterParts := splitPathSegments(later)

	if len(earlierParts) != len(laterParts) {
		return nil
	}

	shadow := &routeShadow{
		earlier: earlier,
		later:   later,
		index:   -1,
	}

	for i := range earlierParts {
		earlierSegment := earlierParts[i]
		laterSegment := laterParts[i]
		earlierKind := classifySegment(earlierSegment)
		laterKind := classifySegment(laterSegment)

		switch {
		case earlierKind == segmentParam:
			if laterKind == segmentStatic && shadow.index < 0 {
				shadow.index = i
				shadow.segment = laterSegment
			}
		case laterKind == segmentParam:
			return nil
		case earlierSegment != laterSegment:
			return nil
		}
	}

	return shadow
}

func newRouteShadowError(shadow *routeShadow) error {
	message := fmt.Sprintf("route lint: %s is unreachable, %s is registered first", shadow.later, shadow.earlier)

	metadata := map[string]any{
		"pattern":          shadow.later,
		"handler":          shadow.handler,
		"shadowed_by":      shadow.earlier,
		"resolution_order": "registration",
	}
	if shadow.index >= 0 {
		metadata["segment_index"] = shadow.index
		metadata["segment"] = shadow.segment
	}

	return goerrors.New(message, goerrors.CategoryConflict).
		WithTextCode(TextCodeRouteShadowed).
		WithMetadata(metadata)
}
