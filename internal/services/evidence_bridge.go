package services

import (
	"context"

	"github.com/questgo/backend/domain"
	"github.com/questgo/backend/internal/infrastructure/evidence"
	"github.com/questgo/backend/usecase"
)

// EvidenceBridge adapts the Bolt-backed evidence store to the use-case port.
type EvidenceBridge struct {
	store *evidence.Store
}

func NewEvidenceBridge(store *evidence.Store) *EvidenceBridge {
	return &EvidenceBridge{store: store}
}

func (b *EvidenceBridge) StoreEvidence(ctx context.Context, ev *domain.Evidence) error {
	if b.store == nil || ev == nil {
		return domain.ErrInvalidPayload
	}
	return b.store.Put(evidence.Item{
		ID:          ev.ID,
		UserID:      ev.UserID,
		TaskID:      ev.TaskID,
		FileID:      ev.FileID,
		SubmittedAt: ev.SubmittedAt,
	})
}

var _ usecase.EvidenceVault = (*EvidenceBridge)(nil)
