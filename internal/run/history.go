package run

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nae2121/ISC-onlinejudge/internal/storage"
)

// Record is the persisted trace of one submission, written when the run
// is accepted and again at its terminal state.
type Record struct {
	ID        string    `json:"id"`
	Token     string    `json:"token,omitempty"`
	TargetID  int       `json:"targetId"`
	State     State     `json:"state"`
	Output    string    `json:"output,omitempty"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HistoryStore persists submission records. Writes are best-effort: a
// history miss never fails a run.
type HistoryStore struct {
	kv     storage.KV
	logger *zap.Logger
}

func NewHistoryStore(kv storage.KV, logger *zap.Logger) *HistoryStore {
	return &HistoryStore{kv: kv, logger: logger}
}

func (h *HistoryStore) put(ctx context.Context, record Record) {
	raw, err := json.Marshal(record)
	if err != nil {
		h.logger.Warn("marshal history record", zap.String("id", record.ID), zap.Error(err))
		return
	}
	if err := h.kv.Set(ctx, h.key(record.ID), raw); err != nil {
		h.logger.Warn("save history record", zap.String("id", record.ID), zap.Error(err))
	}
}

func (h *HistoryStore) Get(ctx context.Context, id string) (Record, error) {
	raw, err := h.kv.Get(ctx, h.key(id))
	if err != nil {
		return Record{}, err
	}
	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return Record{}, fmt.Errorf("unmarshal history record: %w", err)
	}
	return record, nil
}

func (h *HistoryStore) key(id string) string {
	return "history:" + id
}
