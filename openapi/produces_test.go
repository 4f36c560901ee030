package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/typedresults/results"
)

func TestResolveContentTypes(t *testing.T) {
	tests := []struct {
		name string
		desc OperationDescriptor
		want []string
	}{
		{
			name: "nothing declared",
			want: []string{"application/json", "text/json", "text/plain"},
		},
		{
			name: "method wins",
			desc: OperationDescriptor{
				MethodProduces:    []string{"application/xml"},
				DeclaringProduces: []string{"text/csv"},
				EndpointMetadata:  []any{results.Produces{ContentTypes: []string{"application/yaml"}}},
			},
			want: []string{"application/xml"},
		},
		{
			name: "group before endpoint metadata",
			desc: OperationDescriptor{
				DeclaringProduces: []string{"text/csv"},
				EndpointMetadata:  []any{results.Produces{ContentTypes: []string{"application/yaml"}}},
			},
			want: []string{"text/csv"},
		},
		{
			name: "endpoint metadata",
			desc: OperationDescriptor{
				EndpointMetadata: []any{"unrelated", results.Produces{ContentTypes: []string{"application/yaml"}}},
			},
			want: []string{"application/yaml"},
		},
		{
			name: "endpoint metadata pointer",
			desc: OperationDescriptor{
				EndpointMetadata: []any{(*results.Produces)(nil), &results.Produces{ContentTypes: []string{"text/html"}}},
			},
			want: []string{"text/html"},
		},
		{
			name: "empty declarations fall through",
			desc: OperationDescriptor{
				MethodProduces:    []string{},
				DeclaringProduces: []string{},
				EndpointMetadata:  []any{results.Produces{}},
			},
			want: []string{"application/json", "text/json", "text/plain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveContentTypes(tt.desc))
		})
	}
}

func TestResolveContentTypesCopies(t *testing.T) {
	declared := []string{"application/xml"}
	got := ResolveContentTypes(OperationDescriptor{MethodProduces: declared})
	got[0] = "text/plain"
	assert.Equal(t, "application/xml", declared[0])

	defaults := DefaultContentTypes()
	defaults[0] = "text/html"
	assert.Equal(t, "application/json", DefaultContentTypes()[0])
}

func TestValidateContentTypes(t *testing.T) {
	require.NoError(t, validateContentTypes([]string{
		"application/json",
		"application/problem+json",
		"text/plain; charset=utf-8",
	}))

	for _, ct := range []string{"", "application/", "not a media type", "text/plain; charset"} {
		t.Run(ct, func(t *testing.T) {
			err := validateContentTypes([]string{"application/json", ct})
			assert.ErrorIs(t, err, ErrInvalidContentType)
		})
	}
}
