package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"policy-illustrator/domain"
	"policy-illustrator/repository"
	"policy-illustrator/service"
)

func testCatalog() *domain.Catalog {
	return domain.NewCatalog([]domain.PolicyProduct{
		{
			Name:           "Test WL",
			MaxIssueAge:    80,
			PayTerms:       []int{6, 8, 12, 20},
			BasePremPer10k: 50,
			DeclaredRate:   0.04,
			GuaranteedRate: 0.02,
			MinFaceUSD:     100_000,
			Features:       []string{"paid-up additions"},
		},
		{
			Name:           "Short Pay",
			MinIssueAge:    18,
			MaxIssueAge:    60,
			PayTerms:       []int{6},
			BasePremPer10k: 900,
			DeclaredRate:   0.035,
			GuaranteedRate: 0.02,
			MinFaceUSD:     50_000,
			Sexes:          []domain.Sex{domain.SexFemale},
		},
	})
}

func newTestRouter(limiter *RateLimiter) http.Handler {
	log := zap.NewNop()
	cat := testCatalog()
	history := repository.NewIllustrationRepositoryMemory(10)
	ill := service.NewIllustrationService(cat, history, repository.NewMemoryCache(0), log,
		service.DefaultIllustrationOptions())
	return NewRouter(
		NewIllustrationHandler(ill, service.NewPayTermComparisonService(ill, log), log),
		NewProductHandler(service.NewProductFinder(cat), log),
		NewHistoryHandler(history, log),
		limiter,
		log,
	)
}

const validBody = `{
	"product": "Test WL",
	"budget": 10000,
	"age": 30,
	"pay_term": 6,
	"load_rate": 0.01,
	"crediting_mode": "increase_paid_up",
	"horizon_years": 10
}`

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIllustrateHandler_OK(t *testing.T) {
	w := post(t, newTestRouter(nil), "/illustrations", validBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var result domain.ProjectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(2_000_000), result.FaceAmount)
	assert.Len(t, result.CashValues, 10)
	assert.True(t, result.IRRConverged)
}

func TestIllustrateHandler_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/illustrations", nil)
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestIllustrateHandler_BadRequest(t *testing.T) {
	w := post(t, newTestRouter(nil), "/illustrations", `{invalid-json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestIllustrateHandler_UnsupportedMediaType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/illustrations", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestIllustrateHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"invalid pay term", `"pay_term": 6`, `"pay_term": 7`, http.StatusBadRequest},
		{"insufficient budget", `"budget": 10000`, `"budget": 100`, http.StatusUnprocessableEntity},
		{"unknown product", `"Test WL"`, `"Nope"`, http.StatusNotFound},
		{"unknown crediting mode", `"increase_paid_up"`, `"dividends"`, http.StatusBadRequest},
		{"bad age", `"age": 30`, `"age": 95`, http.StatusBadRequest},
	}
	h := newTestRouter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, "/illustrations", strings.Replace(validBody, tt.from, tt.to, 1))
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, w.Header().Get(RequestIDHeader), resp.RequestID)
		})
	}
}

func TestCompareHandler_OK(t *testing.T) {
	body := strings.Replace(validBody, `"horizon_years": 10`, `"horizon_years": 30`, 1)
	w := post(t, newTestRouter(nil), "/illustrations/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cmp domain.PayTermComparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	assert.Len(t, cmp.Options, 4)
	assert.Equal(t, cmp.Options[0].PayTerm, cmp.BestPayTerm)
}

func TestReportHandlers(t *testing.T) {
	h := newTestRouter(nil)

	w := post(t, h, "/illustrations/report.csv", validBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "illustration.csv")
	assert.Equal(t, 11, strings.Count(w.Body.String(), "\n"))

	w = post(t, h, "/illustrations/report.pdf", validBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = post(t, h, "/illustrations/report.pdf", strings.Replace(validBody, `"budget": 10000`, `"budget": 100`, 1))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_RateLimited(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	h := newTestRouter(limiter)

	first := post(t, h, "/illustrations", validBody)
	require.Equal(t, http.StatusOK, first.Code)

	second := post(t, h, "/illustrations", validBody)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// catalog reads are not limited
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Healthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRouter_PanicIsAccessLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := withMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	access := logs.FilterMessage("http request").All()
	require.Len(t, access, 1)
	assert.EqualValues(t, http.StatusInternalServerError, access[0].ContextMap()["status"])
	assert.Len(t, logs.FilterMessage("panic serving request").All(), 1)
}
