package repository

import (
	"context"
	"sync"
	"time"

	"policy-illustrator/domain"
)

// IllustrationRecord is one entry of the in-process illustration history.
type IllustrationRecord struct {
	Request   domain.ProjectionRequest `json:"request"`
	Result    domain.ProjectionResult  `json:"result"`
	CreatedAt time.Time                `json:"created_at"`
}

// IllustrationRepositoryMemory keeps the most recent illustrations in a
// bounded ring. Nothing outlives the process.
type IllustrationRepositoryMemory struct {
	mu    sync.Mutex
	limit int
	data  []IllustrationRecord
}

// NewIllustrationRepositoryMemory creates a history holding at most limit
// records; limit <= 0 means unbounded.
func NewIllustrationRepositoryMemory(limit int) *IllustrationRepositoryMemory {
	return &IllustrationRepositoryMemory{limit: limit}
}

func (r *IllustrationRepositoryMemory) Save(
	_ context.Context,
	req domain.ProjectionRequest,
	result domain.ProjectionResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, IllustrationRecord{
		Request:   req,
		Result:    result,
		CreatedAt: time.Now(),
	})
	if r.limit > 0 && len(r.data) > r.limit {
		r.data = r.data[len(r.data)-r.limit:]
	}
	return nil
}

// Recent returns up to n records, newest first.
func (r *IllustrationRepositoryMemory) Recent(n int) []IllustrationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || n > len(r.data) {
		n = len(r.data)
	}
	out := make([]IllustrationRecord, 0, n)
	for i := len(r.data) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.data[i])
	}
	return out
}
