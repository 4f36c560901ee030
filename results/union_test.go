package results

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionResultTypes(t *testing.T) {
	t.Run("order is preserved", func(t *testing.T) {
		got := Results3[OkOf[testUser], BadRequestOf[Problem], NotFound]{}.ResultTypes()
		assert.Equal(t, []reflect.Type{
			reflect.TypeFor[OkOf[testUser]](),
			reflect.TypeFor[BadRequestOf[Problem]](),
			reflect.TypeFor[NotFound](),
		}, got)
	})

	t.Run("all arities", func(t *testing.T) {
		assert.Len(t, Results2[Ok, NotFound]{}.ResultTypes(), 2)
		assert.Len(t, Results3[Ok, NotFound, Conflict]{}.ResultTypes(), 3)
		assert.Len(t, Results4[Ok, NotFound, Conflict, Forbidden]{}.ResultTypes(), 4)
		assert.Len(t, Results5[Ok, NotFound, Conflict, Forbidden, BadRequest]{}.ResultTypes(), 5)
		assert.Len(t, Results6[Ok, NotFound, Conflict, Forbidden, BadRequest, Unauthorized]{}.ResultTypes(), 6)
	})

	t.Run("union is not a status coder", func(t *testing.T) {
		var u any = Results2[Ok, NotFound]{}
		_, ok := u.(StatusCoder)
		assert.False(t, ok)
	})
}

func TestUnionWriteResult(t *testing.T) {
	type result = Results2[OkOf[testUser], NotFound]

	t.Run("delegates to member", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		require.NoError(t, result{Result: NotFound{}}.WriteResult(w, r))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := result{}.WriteResult(w, r)
		assert.ErrorIs(t, err, ErrEmptyResult)
	})
}
