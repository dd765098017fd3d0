package http

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"policy-illustrator/repository"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type HistoryReader interface {
	Recent(n int) []repository.IllustrationRecord
}

type HistoryHandler struct {
	history HistoryReader
	log     *zap.Logger
}

func NewHistoryHandler(history HistoryReader, log *zap.Logger) *HistoryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HistoryHandler{history: history, log: log}
}

// Recent handles GET /illustrations/recent?limit=, newest first.
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(v, maxHistoryLimit)
	}

	writeJSON(w, r, h.log, http.StatusOK, h.history.Recent(limit))
}
