package usecases

import (
	"context"

	"solarops/internal/domain/agreement"
	"solarops/internal/domain/shared/events"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/logger"
)

const maintainBatchSize = 100

type MaintainAgreementsResult struct {
	Renewed int `json:"renewed"`
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}

// MaintainAgreementsUseCase renews or expires agreements past their end date.
// It runs from the scheduler; one failing agreement does not stop the batch.
type MaintainAgreementsUseCase struct {
	agreementRepo agreement.Repository
	publisher     events.EventPublisher
	logger        logger.Interface
}

func NewMaintainAgreementsUseCase(
	agreementRepo agreement.Repository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *MaintainAgreementsUseCase {
	return &MaintainAgreementsUseCase{
		agreementRepo: agreementRepo,
		publisher:     publisher,
		logger:        logger,
	}
}

func (uc *MaintainAgreementsUseCase) Execute(ctx context.Context) (*MaintainAgreementsResult, error) {
	now := biztime.NowUTC()
	result := &MaintainAgreementsResult{}

	lapsed, err := uc.agreementRepo.ListLapsed(ctx, now, maintainBatchSize)
	if err != nil {
		uc.logger.Errorw("failed to list lapsed agreements", "error", err)
		return nil, err
	}

	for _, a := range lapsed {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		renewed, err := a.Lapse(now)
		if err != nil {
			uc.logger.Warnw("failed to lapse agreement", "agreement_id", a.ID(), "error", err)
			result.Failed++
			continue
		}
		if err := uc.agreementRepo.Update(ctx, a); err != nil {
			uc.logger.Errorw("failed to update lapsed agreement", "agreement_id", a.ID(), "error", err)
			result.Failed++
			continue
		}
		if renewed {
			result.Renewed++
		} else {
			result.Expired++
		}
		if err := uc.publisher.PublishAll(a.GetEvents()); err != nil {
			uc.logger.Warnw("failed to publish agreement events", "agreement_id", a.ID(), "error", err)
		}
	}

	if len(lapsed) > 0 {
		uc.logger.Infow("agreement maintenance finished",
			"renewed", result.Renewed,
			"expired", result.Expired,
			"failed", result.Failed,
		)
	}
	return result, nil
}
