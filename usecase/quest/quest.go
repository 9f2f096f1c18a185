package quest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/questgo/backend/domain"
	"github.com/questgo/backend/internal/catalog"
	"github.com/questgo/backend/internal/tracker"
	"github.com/questgo/backend/repository"
	"github.com/questgo/backend/usecase"
	progressUC "github.com/questgo/backend/usecase/progress"
)

// UseCase is the quest state machine. Per user the transient state is either
// Idle (no active assignment) or Attempting (tracker holds a task id);
// completed pairs live only in the store, so a user can be Idle while
// holding any number of historical completions.
type UseCase struct {
	users       repository.UserRepository
	completions repository.CompletionRepository
	cache       repository.ProgressCache
	vault       usecase.EvidenceVault
	tracker     *tracker.Tracker
	catalog     *catalog.Catalog
	logger      *zap.Logger
}

func New(
	users repository.UserRepository,
	completions repository.CompletionRepository,
	cache repository.ProgressCache,
	vault usecase.EvidenceVault,
	tr *tracker.Tracker,
	cat *catalog.Catalog,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:       users,
		completions: completions,
		cache:       cache,
		vault:       vault,
		tracker:     tr,
		catalog:     cat,
		logger:      logger,
	}
}

// Activate handles a scan-triggered deep link. A recognized catalog key
// becomes the user's active assignment, silently replacing any previous
// one; anything else downgrades to the greeting. The user row is ensured
// first so completions always have a parent.
func (uc *UseCase) Activate(ctx context.Context, userID int64, handle, arg string) (*domain.Reply, error) {
	if err := uc.users.EnsureUser(ctx, &domain.User{ID: userID, Handle: handle}); err != nil {
		return nil, domain.StorageFault("ensure user", err)
	}

	def, ok := uc.catalog.Get(arg)
	if !ok {
		if arg != "" {
			uc.logger.Debug("unknown catalog key, greeting instead",
				zap.Int64("user_id", userID), zap.String("arg", arg))
		}
		return &domain.Reply{Kind: domain.ReplyGreeting}, nil
	}

	uc.tracker.Set(userID, def.ID)
	uc.logger.Info("task activated",
		zap.Int64("user_id", userID), zap.String("task_id", def.ID))

	return &domain.Reply{Kind: domain.ReplyTaskIntro, Task: &def}, nil
}

// SubmitEvidence credits the user's active task. The completion flag is
// written before the assignment is cleared: a crash in between leaves the
// user Attempting a task already marked complete, and the next submit
// short-circuits on the idempotency check instead of re-crediting.
func (uc *UseCase) SubmitEvidence(ctx context.Context, userID int64, fileID string) (*domain.Reply, error) {
	taskID, ok := uc.tracker.Get(userID)
	if !ok {
		return &domain.Reply{Kind: domain.ReplyNeedsActivation}, nil
	}

	done, err := uc.completions.GetCompletion(ctx, userID, taskID)
	if err != nil {
		return nil, domain.StorageFault("get completion", err)
	}
	if done {
		return &domain.Reply{Kind: domain.ReplyAlreadyDone}, nil
	}

	if uc.vault != nil {
		ev := &domain.Evidence{
			UserID:      userID,
			TaskID:      taskID,
			FileID:      fileID,
			SubmittedAt: time.Now(),
		}
		if err := uc.vault.StoreEvidence(ctx, ev); err != nil {
			return nil, domain.StorageFault("store evidence", err)
		}
	}

	if err := uc.completions.SetCompletion(ctx, userID, taskID, true); err != nil {
		return nil, domain.StorageFault("set completion", err)
	}

	uc.tracker.Clear(userID)
	uc.invalidateCache(ctx, userID)
	uc.logger.Info("task credited",
		zap.Int64("user_id", userID), zap.String("task_id", taskID))

	return &domain.Reply{
		Kind:     domain.ReplyCredited,
		Progress: uc.freshProgress(ctx, userID),
	}, nil
}

// Cancel clears the active assignment. If that task was already credited
// the flag flips back to incomplete; only the currently active task can
// ever be reverted.
func (uc *UseCase) Cancel(ctx context.Context, userID int64) (*domain.Reply, error) {
	taskID, ok := uc.tracker.Get(userID)
	if !ok {
		return &domain.Reply{Kind: domain.ReplyNeedsActivation}, nil
	}

	done, err := uc.completions.GetCompletion(ctx, userID, taskID)
	if err != nil {
		return nil, domain.StorageFault("get completion", err)
	}

	kind := domain.ReplyCleared
	if done {
		if err := uc.completions.SetCompletion(ctx, userID, taskID, false); err != nil {
			return nil, domain.StorageFault("revert completion", err)
		}
		uc.invalidateCache(ctx, userID)
		kind = domain.ReplyReverted
		uc.logger.Info("completion reverted",
			zap.Int64("user_id", userID), zap.String("task_id", taskID))
	}

	uc.tracker.Clear(userID)

	return &domain.Reply{
		Kind:     kind,
		Progress: uc.freshProgress(ctx, userID),
	}, nil
}

// Progress is read-only. A user with no completion records at all gets the
// onboarding prompt rather than an empty progress view.
func (uc *UseCase) Progress(ctx context.Context, userID int64) (*domain.Reply, error) {
	if uc.cache != nil {
		// Cache entries exist only for users with at least one record and
		// are invalidated on every flag change, so a hit skips both the
		// store read and the onboarding check.
		if view, err := uc.cache.Get(ctx, userID); err != nil {
			uc.logger.Warn("progress cache read failed", zap.Error(err))
		} else if view != nil {
			return &domain.Reply{Kind: domain.ReplyProgressView, Progress: view}, nil
		}
	}

	completions, err := uc.completions.ListCompletions(ctx, userID)
	if err != nil {
		return nil, domain.StorageFault("list completions", err)
	}
	if len(completions) == 0 {
		return &domain.Reply{Kind: domain.ReplyOnboardingPrompt}, nil
	}

	view := progressUC.Render(uc.catalog, completions)
	uc.cacheProgress(ctx, userID, &view)

	return &domain.Reply{Kind: domain.ReplyProgressView, Progress: &view}, nil
}

// freshProgress renders the post-transition progress attached to credit,
// revert and clear replies. The transition itself already committed, so a
// render failure is logged and the reply simply carries no view.
func (uc *UseCase) freshProgress(ctx context.Context, userID int64) *domain.ProgressView {
	completions, err := uc.completions.ListCompletions(ctx, userID)
	if err != nil {
		uc.logger.Warn("progress render skipped",
			zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}
	view := progressUC.Render(uc.catalog, completions)
	// Only cache when records exist, so a record-less user still hits the
	// onboarding branch on the next progress query.
	if len(completions) > 0 {
		uc.cacheProgress(ctx, userID, &view)
	}
	return &view
}

func (uc *UseCase) cacheProgress(ctx context.Context, userID int64, view *domain.ProgressView) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, userID, view); err != nil {
		uc.logger.Warn("progress cache write failed", zap.Error(err))
	}
}

func (uc *UseCase) invalidateCache(ctx context.Context, userID int64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.logger.Warn("progress cache invalidation failed", zap.Error(err))
	}
}
