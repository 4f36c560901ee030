package openapi

import (
	"errors"
	"fmt"
	"mime"
	"slices"

	"github.com/vitalvas/typedresults/results"
)

// ErrInvalidContentType is returned when a declared content type is not a
// valid media type.
var ErrInvalidContentType = errors.New("invalid content type")

// defaultContentTypes mirrors the formatters net/http JSON APIs usually
// negotiate when nothing else is declared.
var defaultContentTypes = []string{"application/json", "text/json", "text/plain"}

// DefaultContentTypes returns the content types used when an operation
// declares none.
func DefaultContentTypes() []string {
	return slices.Clone(defaultContentTypes)
}

// ResolveContentTypes returns the content types a typed response is
// documented under. The first non-empty declaration wins: the operation,
// then its group, then results.Produces endpoint metadata, then
// DefaultContentTypes.
func ResolveContentTypes(d OperationDescriptor) []string {
	if len(d.MethodProduces) > 0 {
		return slices.Clone(d.MethodProduces)
	}
	if len(d.DeclaringProduces) > 0 {
		return slices.Clone(d.DeclaringProduces)
	}
	for _, item := range d.EndpointMetadata {
		var p results.Produces
		switch v := item.(type) {
		case results.Produces:
			p = v
		case *results.Produces:
			if v == nil {
				continue
			}
			p = *v
		default:
			continue
		}
		if len(p.ContentTypes) > 0 {
			return slices.Clone(p.ContentTypes)
		}
	}
	return DefaultContentTypes()
}

func validateContentTypes(contentTypes []string) error {
	for _, ct := range contentTypes {
		if _, _, err := mime.ParseMediaType(ct); err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidContentType, ct, err)
		}
	}
	return nil
}
