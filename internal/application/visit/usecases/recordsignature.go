package usecases

import (
	"context"
	"strings"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type RecordSignatureCommand struct {
	VisitID string
	// Signature is the customer's signature as a data URL or base64 image.
	Signature string
}

type RecordSignatureUseCase struct {
	visitRepo visit.Repository
	logger    logger.Interface
}

func NewRecordSignatureUseCase(visitRepo visit.Repository, logger logger.Interface) *RecordSignatureUseCase {
	return &RecordSignatureUseCase{
		visitRepo: visitRepo,
		logger:    logger,
	}
}

func (uc *RecordSignatureUseCase) Execute(ctx context.Context, cmd RecordSignatureCommand) (*dto.VisitDTO, error) {
	uc.logger.Infow("executing record signature use case", "visit_id", cmd.VisitID)

	if cmd.VisitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}
	if strings.TrimSpace(cmd.Signature) == "" {
		return nil, errors.NewValidationError("signature is required")
	}

	v, err := uc.visitRepo.GetByID(ctx, cmd.VisitID)
	if err != nil {
		uc.logger.Errorw("failed to get visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to get visit")
	}

	if err := v.RecordSignature(cmd.Signature, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("signature rejected", "visit_id", cmd.VisitID, "status", v.Status(), "error", err)
		return nil, mapDomainError(err, "failed to record signature")
	}

	if err := uc.visitRepo.Update(ctx, v); err != nil {
		uc.logger.Errorw("failed to update visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to update visit")
	}

	uc.logger.Infow("customer signature recorded", "visit_id", v.ID())
	return dto.ToVisitDTO(v, nil), nil
}
