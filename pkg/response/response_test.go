package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/showroom/pkg/paginate"
	"github.com/shashiranjanraj/showroom/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]string{"name": "Camry"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.EqualValues(t, 200, body["status"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Camry", data["name"])
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Created(rec, map[string]uint{"id": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, http.StatusConflict, "insufficient stock")

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 409, body["status"])
	assert.Equal(t, "insufficient stock", body["message"])
	assert.NotContains(t, body, "data")
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"email": "The email must be a valid email address."})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
}

func TestPaginatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Paginated(rec, []string{"a", "b"}, paginate.New(1, 2, 5))

	body := decode(t, rec)
	data := body["data"].(map[string]any)
	assert.Len(t, data["items"], 2)

	p := data["pagination"].(map[string]any)
	assert.EqualValues(t, 1, p["page"])
	assert.EqualValues(t, 2, p["per_page"])
	assert.EqualValues(t, 5, p["total"])
	assert.EqualValues(t, 3, p["total_pages"])
}

func TestShorthandStatuses(t *testing.T) {
	cases := []struct {
		name string
		send func(http.ResponseWriter)
		code int
	}{
		{"unauthorized", func(w http.ResponseWriter) { response.Unauthorized(w) }, http.StatusUnauthorized},
		{"forbidden", func(w http.ResponseWriter) { response.Forbidden(w) }, http.StatusForbidden},
		{"not found", func(w http.ResponseWriter) { response.NotFound(w) }, http.StatusNotFound},
		{"conflict", func(w http.ResponseWriter) { response.Conflict(w, "dup") }, http.StatusConflict},
		{"internal", func(w http.ResponseWriter) { response.Internal(w) }, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.send(rec)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
