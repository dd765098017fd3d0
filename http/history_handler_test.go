package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policy-illustrator/repository"
)

func getRecent(t *testing.T, h http.Handler, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/illustrations/recent"+query, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHistoryHandler_Recent(t *testing.T) {
	h := newTestRouter(nil)

	w := getRecent(t, h, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	body6 := validBody
	body8 := `{"product": "Test WL", "budget": 10000, "age": 30, "pay_term": 8,
		"crediting_mode": "increase_paid_up", "horizon_years": 10}`
	require.Equal(t, http.StatusOK, post(t, h, "/illustrations", body6).Code)
	require.Equal(t, http.StatusOK, post(t, h, "/illustrations", body8).Code)

	w = getRecent(t, h, "")
	require.Equal(t, http.StatusOK, w.Code)
	var records []repository.IllustrationRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, 8, records[0].Result.PayTerm)
	assert.Equal(t, 6, records[1].Result.PayTerm)
	assert.False(t, records[0].CreatedAt.IsZero())

	w = getRecent(t, h, "?limit=1")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 8, records[0].Result.PayTerm)
}

func TestHistoryHandler_BadRequests(t *testing.T) {
	h := newTestRouter(nil)
	for _, q := range []string{"?limit=0", "?limit=-3", "?limit=many"} {
		assert.Equal(t, http.StatusBadRequest, getRecent(t, h, q).Code, q)
	}

	req := httptest.NewRequest(http.MethodPost, "/illustrations/recent", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
