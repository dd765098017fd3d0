package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"policy-illustrator/domain"
	"policy-illustrator/report"
	"policy-illustrator/service"
)

type ProductHandler struct {
	finder *service.ProductFinder
	log    *zap.Logger
}

func NewProductHandler(finder *service.ProductFinder, log *zap.Logger) *ProductHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductHandler{finder: finder, log: log}
}

// List handles GET /products?sex=&age=&pay_term=&face=&feature=&format=json|csv.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filter := domain.ProductFilter{
		Sex:     domain.Sex(strings.ToUpper(q.Get("sex"))),
		Feature: q.Get("feature"),
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"age", &filter.Age},
		{"pay_term", &filter.PayTerm},
	}
	for _, p := range ints {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			http.Error(w, "invalid "+p.name, http.StatusBadRequest)
			return
		}
		*p.dst = v
	}
	if raw := q.Get("face"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			http.Error(w, "invalid face", http.StatusBadRequest)
			return
		}
		filter.FaceAmount = v
	}

	products := h.finder.Find(filter)
	switch q.Get("format") {
	case "", "json":
		writeJSON(w, r, h.log, http.StatusOK, products)
	case "csv":
		var buf bytes.Buffer
		if err := report.WriteProductsCSV(&buf, products); err != nil {
			writeError(w, r, h.log, fmt.Errorf("render csv: %w", err))
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
		if _, err := buf.WriteTo(w); err != nil {
			h.log.Warn("write products csv", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
		}
	default:
		http.Error(w, "invalid format", http.StatusBadRequest)
	}
}
