package usecase

import (
	"context"

	"github.com/questgo/backend/domain"
)

// EvidenceVault abstracts evidence storage so the quest use case stays
// storage-agnostic. A vault failure aborts the submitting transition
// before any completion flag is written.
type EvidenceVault interface {
	StoreEvidence(ctx context.Context, ev *domain.Evidence) error
}
