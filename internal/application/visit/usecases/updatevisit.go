package usecases

import (
	"context"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

// UpdateVisitCommand is a partial update; nil fields are left unchanged.
type UpdateVisitCommand struct {
	VisitID      string
	Notes        *string
	TechnicianID *string
}

type UpdateVisitUseCase struct {
	visitRepo   visit.Repository
	technicians TechnicianDirectory
	logger      logger.Interface
}

func NewUpdateVisitUseCase(visitRepo visit.Repository, technicians TechnicianDirectory, logger logger.Interface) *UpdateVisitUseCase {
	return &UpdateVisitUseCase{
		visitRepo:   visitRepo,
		technicians: technicians,
		logger:      logger,
	}
}

func (uc *UpdateVisitUseCase) Execute(ctx context.Context, cmd UpdateVisitCommand) (*dto.VisitDTO, error) {
	uc.logger.Infow("executing update visit use case", "visit_id", cmd.VisitID)

	if cmd.VisitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}
	if cmd.Notes == nil && cmd.TechnicianID == nil {
		return nil, errors.NewValidationError("nothing to update")
	}

	v, err := uc.visitRepo.GetByID(ctx, cmd.VisitID)
	if err != nil {
		uc.logger.Errorw("failed to get visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to get visit")
	}

	now := biztime.NowUTC()
	if cmd.TechnicianID != nil && *cmd.TechnicianID != v.TechnicianID() {
		if uc.technicians != nil {
			ok, err := uc.technicians.TechnicianExists(ctx, *cmd.TechnicianID)
			if err != nil {
				uc.logger.Errorw("failed to look up technician", "technician_id", *cmd.TechnicianID, "error", err)
				return nil, errors.NewInternalError("failed to look up technician")
			}
			if !ok {
				return nil, errors.NewNotFoundError("technician not found", *cmd.TechnicianID)
			}
		}
		if err := v.Reassign(*cmd.TechnicianID, now); err != nil {
			uc.logger.Warnw("visit cannot be reassigned", "visit_id", cmd.VisitID, "status", v.Status(), "error", err)
			return nil, mapDomainError(err, "failed to reassign visit")
		}
	}
	if cmd.Notes != nil {
		if err := v.UpdateNotes(*cmd.Notes, now); err != nil {
			return nil, mapDomainError(err, "failed to update visit notes")
		}
	}

	if err := uc.visitRepo.Update(ctx, v); err != nil {
		uc.logger.Errorw("failed to update visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to update visit")
	}

	uc.logger.Infow("visit updated", "visit_id", v.ID())
	return dto.ToVisitDTO(v, nil), nil
}
