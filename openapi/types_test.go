package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaType(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		tests := []struct {
			name     string
			input    SchemaType
			expected string
		}{
			{"single type", TypeString("string"), `"string"`},
			{"multiple types", TypeArray("integer", "null"), `["integer","null"]`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				data, err := json.Marshal(tt.input)
				require.NoError(t, err)
				assert.JSONEq(t, tt.expected, string(data))
			})
		}
	})

	t.Run("unmarshal", func(t *testing.T) {
		var st SchemaType
		require.NoError(t, json.Unmarshal([]byte(`"object"`), &st))
		assert.Equal(t, []string{"object"}, st.Values())

		require.NoError(t, json.Unmarshal([]byte(`["string","null"]`), &st))
		assert.Equal(t, []string{"string", "null"}, st.Values())

		assert.Error(t, json.Unmarshal([]byte(`42`), &st))
	})

	t.Run("unset type is omitted", func(t *testing.T) {
		assert.True(t, SchemaType{}.IsZero())
		assert.False(t, TypeString("string").IsZero())

		data, err := json.Marshal(&Schema{Ref: "#/components/schemas/User"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"$ref":"#/components/schemas/User"}`, string(data))
	})
}

func TestResponseJSON(t *testing.T) {
	t.Run("description is always present", func(t *testing.T) {
		data, err := json.Marshal(&Response{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"description":""}`, string(data))
	})

	t.Run("content per media type", func(t *testing.T) {
		schema := &Schema{Ref: "#/components/schemas/User"}
		resp := &Response{
			Description: "200",
			Content: map[string]*MediaType{
				"application/json": {Schema: schema},
				"text/plain":       {Schema: schema},
			},
		}
		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"description": "200",
			"content": {
				"application/json": {"schema": {"$ref": "#/components/schemas/User"}},
				"text/plain": {"schema": {"$ref": "#/components/schemas/User"}}
			}
		}`, string(data))
	})
}

func TestOperationSecurityJSON(t *testing.T) {
	data, err := json.Marshal(&Operation{OperationID: "health"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"operationId":"health"}`, string(data))

	data, err = json.Marshal(&Operation{OperationID: "health", Security: []SecurityRequirement{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"operationId":"health","security":[]}`, string(data))
}

func TestDocumentJSON(t *testing.T) {
	doc := Document{
		OpenAPI: "3.1.0",
		Info:    Info{Title: "Orders", Version: "2.0.0", License: &License{Name: "MIT"}},
		Servers: []Server{{URL: "https://api.example.com"}},
		Paths: map[string]*PathItem{
			"/orders/{id}": {
				Get: &Operation{
					OperationID: "getOrdersId",
					Parameters: []*Parameter{
						{Name: "id", In: "path", Required: true, Schema: &Schema{Type: TypeString("string"), Format: "uuid"}},
					},
					Responses: map[string]*Response{
						"404": {Description: "404"},
					},
				},
			},
		},
		Tags: []Tag{{Name: "orders"}},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"openapi": "3.1.0",
		"info": {"title": "Orders", "version": "2.0.0", "license": {"name": "MIT"}},
		"servers": [{"url": "https://api.example.com"}],
		"paths": {
			"/orders/{id}": {
				"get": {
					"operationId": "getOrdersId",
					"parameters": [
						{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}
					],
					"responses": {"404": {"description": "404"}}
				}
			}
		},
		"tags": [{"name": "orders"}]
	}`, string(data))

	var roundtrip Document
	require.NoError(t, json.Unmarshal(data, &roundtrip))
	assert.Equal(t, doc, roundtrip)
}
