package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/agreement"
	"solarops/internal/domain/checklist"
	checklistvo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/domain/shared/events"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/db"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type CompleteVisitCommand struct {
	VisitID string
	Notes   *string
}

type CompleteVisitUseCase struct {
	visitRepo     visit.Repository
	checklistRepo checklist.Repository
	planRepo      agreement.ServicePlanRepository
	txMgr         db.Transactor
	publisher     events.EventPublisher
	metrics       VisitMetrics
	logger        logger.Interface
}

func NewCompleteVisitUseCase(
	visitRepo visit.Repository,
	checklistRepo checklist.Repository,
	planRepo agreement.ServicePlanRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	metrics VisitMetrics,
	logger logger.Interface,
) *CompleteVisitUseCase {
	return &CompleteVisitUseCase{
		visitRepo:     visitRepo,
		checklistRepo: checklistRepo,
		planRepo:      planRepo,
		txMgr:         txMgr,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute completes the visit while holding its row lock, so a checklist cannot
// be attached between the open-checklist count and the status change.
func (uc *CompleteVisitUseCase) Execute(ctx context.Context, cmd CompleteVisitCommand) (*dto.VisitDTO, error) {
	uc.logger.Infow("executing complete visit use case", "visit_id", cmd.VisitID)

	if cmd.VisitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}

	var v *visit.Visit
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		v, err = uc.visitRepo.GetByIDForUpdate(txCtx, cmd.VisitID)
		if err != nil {
			return err
		}

		open, err := uc.checklistRepo.CountByVisitExcludingStatus(txCtx, v.ID(), checklistvo.ChecklistStatusCompleted)
		if err != nil {
			return fmt.Errorf("failed to count open checklists: %w", err)
		}

		now := biztime.NowUTC()
		if cmd.Notes != nil {
			if err := v.UpdateNotes(*cmd.Notes, now); err != nil {
				return err
			}
		}
		if err := v.Complete(open, now); err != nil {
			return err
		}
		if err := uc.visitRepo.Update(txCtx, v); err != nil {
			return err
		}

		plan, err := uc.planRepo.GetByAgreementID(txCtx, v.AgreementID())
		if stderrors.Is(err, agreement.ErrServicePlanNotFound) {
			uc.logger.Warnw("agreement has no service plan", "agreement_id", v.AgreementID())
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load service plan: %w", err)
		}
		plan.Advance(now)
		if err := uc.planRepo.Update(txCtx, plan); err != nil {
			return fmt.Errorf("failed to advance service plan: %w", err)
		}
		return nil
	})
	if err != nil {
		if stderrors.Is(err, visit.ErrChecklistsIncomplete) {
			uc.metrics.VisitCompletionRejected()
			uc.logger.Warnw("visit completion rejected", "visit_id", cmd.VisitID, "error", err)
		} else {
			uc.logger.Errorw("failed to complete visit", "visit_id", cmd.VisitID, "error", err)
		}
		return nil, mapDomainError(err, "failed to complete visit")
	}

	uc.metrics.VisitCompleted()
	if err := uc.publisher.PublishAll(v.GetEvents()); err != nil {
		uc.logger.Warnw("failed to publish visit events", "visit_id", v.ID(), "error", err)
	}

	uc.logger.Infow("visit completed successfully", "visit_id", v.ID(), "duration_minutes", v.DurationMinutes())
	return dto.ToVisitDTO(v, nil), nil
}
