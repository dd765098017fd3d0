package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policy-illustrator/domain"
)

func getProducts(t *testing.T, query string) (*httptest.ResponseRecorder, []string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/products"+query, nil)
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		return w, nil
	}
	var products []domain.PolicyProduct
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return w, names
}

func TestProductHandler_Filters(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Short Pay", "Test WL"}},
		{"?sex=m", []string{"Test WL"}},
		{"?pay_term=20", []string{"Test WL"}},
		{"?age=10", []string{"Test WL"}},
		{"?face=60000", []string{"Short Pay"}},
		{"?feature=Paid-Up%20Additions", []string{"Test WL"}},
		{"?age=99", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w, names := getProducts(t, tt.query)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestProductHandler_BadQuery(t *testing.T) {
	for _, q := range []string{"?age=abc", "?pay_term=-1", "?face=lots"} {
		w, _ := getProducts(t, q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestProductHandler_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestProductHandler_CSV(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?sex=M&format=csv", nil)
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products.csv")

	body := strings.TrimPrefix(w.Body.String(), "\ufeff")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "name,"))
	assert.True(t, strings.HasPrefix(lines[1], "Test WL,"))
}

func TestProductHandler_UnknownFormat(t *testing.T) {
	w, _ := getProducts(t, "?format=xml")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
