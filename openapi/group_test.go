package openapi

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/typedresults/results"
)

func TestRouteGroup(t *testing.T) {
	t.Run("defaults are inherited", func(t *testing.T) {
		r := mux.NewRouter()
		spec := NewSpec(Info{Title: "Test", Version: "1.0.0"})

		users := spec.Group().
			Tags("users").
			Security(SecurityRequirement{"bearer": {}}).
			Deprecated().
			Parameter(&Parameter{Name: "X-Tenant", In: "header", Schema: &Schema{Type: TypeString("string")}}).
			Response(http.StatusForbidden, results.Problem{}).
			ResponseDescription(http.StatusForbidden, "Not your tenant")

		users.Route(r.HandleFunc("/users", dummyHandler).Methods(http.MethodGet)).
			Tags("admin")

		doc, err := spec.Build(r)
		require.NoError(t, err)

		op := doc.Paths["/users"].Get
		require.NotNil(t, op)
		assert.Equal(t, []string{"users", "admin"}, op.Tags)
		require.Len(t, op.Security, 1)
		assert.Contains(t, op.Security[0], "bearer")
		assert.True(t, op.Deprecated)
		require.Len(t, op.Parameters, 1)
		assert.Equal(t, "X-Tenant", op.Parameters[0].Name)
		require.Contains(t, op.Responses, "403")
		assert.Equal(t, "Not your tenant", op.Responses["403"].Description)
		assert.Equal(t, "#/components/schemas/Problem", op.Responses["403"].Content["application/json"].Schema.Ref)
	})

	t.Run("public group", func(t *testing.T) {
		r := mux.NewRouter()
		spec := NewSpec(Info{Title: "Test", Version: "1.0.0"}).
			SetSecurity(SecurityRequirement{"bearer": {}})

		spec.Group().Security().Route(r.HandleFunc("/health", dummyHandler).Methods(http.MethodGet))

		doc, err := spec.Build(r)
		require.NoError(t, err)
		assert.NotNil(t, doc.Paths["/health"].Get.Security)
		assert.Empty(t, doc.Paths["/health"].Get.Security)
	})

	t.Run("bodiless group response", func(t *testing.T) {
		r := mux.NewRouter()
		spec := NewSpec(Info{Title: "Test", Version: "1.0.0"})

		spec.Group().Response(http.StatusUnauthorized, nil).
			Route(r.HandleFunc("/me", dummyHandler).Methods(http.MethodGet))

		doc, err := spec.Build(r)
		require.NoError(t, err)
		resp := doc.Paths["/me"].Get.Responses["401"]
		require.NotNil(t, resp)
		assert.Equal(t, "Unauthorized", resp.Description)
		assert.Nil(t, resp.Content)
	})

	t.Run("builders do not share state", func(t *testing.T) {
		spec := NewSpec(Info{Title: "Test", Version: "1.0.0"})
		g := spec.Group().Tags("orders").Response(http.StatusNotFound, results.Problem{})

		first := g.Op("getOrder").Tags("read").ResponseContent(http.StatusNotFound, "text/plain", "")
		second := g.Op("deleteOrder")

		assert.Equal(t, []string{"orders", "read"}, first.meta.tags)
		assert.Equal(t, []string{"orders"}, second.meta.tags)
		assert.Len(t, first.meta.responseContents["404"], 2)
		assert.Len(t, second.meta.responseContents["404"], 1)
	})

	t.Run("op returns the registered builder", func(t *testing.T) {
		spec := NewSpec(Info{Title: "Test", Version: "1.0.0"})
		b := spec.Op("listOrders")
		assert.Same(t, b, spec.Group().Tags("ignored").Op("listOrders"))
		assert.Empty(t, b.meta.tags)
	})

	t.Run("produces", func(t *testing.T) {
		spec := NewSpec(Info{Title: "Test", Version: "1.0.0"})
		g := spec.Group().Produces("application/xml").Produces("text/csv")

		b := g.Op("exportOrders")
		assert.Equal(t, []string{"application/xml", "text/csv"}, b.groupProduces)

		g.Produces("text/plain")
		assert.Equal(t, []string{"application/xml", "text/csv"}, b.groupProduces)

		d := b.descriptor(nil)
		assert.Equal(t, []string{"application/xml", "text/csv"}, d.DeclaringProduces)
		assert.Nil(t, d.MethodProduces)
	})

	t.Run("produces does not affect explicit responses", func(t *testing.T) {
		r := mux.NewRouter()
		spec := NewSpec(Info{Title: "Test", Version: "1.0.0"}).UseTypedResults(nil)

		spec.Group().Produces("application/xml").
			Route(r.Handle("/users/{id}", results.Handle(getUser)).Methods(http.MethodGet)).
			Response(http.StatusBadRequest, results.Problem{})

		doc, err := spec.Build(r)
		require.NoError(t, err)

		op := doc.Paths["/users/{id}"].Get
		assert.Contains(t, op.Responses["400"].Content, "application/json")
		assert.Len(t, op.Responses["400"].Content, 1)
		assert.Contains(t, op.Responses["200"].Content, "application/xml")
		assert.Len(t, op.Responses["200"].Content, 1)
	})
}
