package usecases

import (
	"context"
	"fmt"
	"time"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/agreement"
	"solarops/internal/domain/shared"
	"solarops/internal/domain/visit"
	vo "solarops/internal/domain/visit/valueobjects"
	"solarops/internal/shared/db"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type CreateVisitCommand struct {
	AgreementID      string
	TechnicianID     string
	ScheduledDate    time.Time
	ScheduledEndDate *time.Time
	VisitType        string
	Notes            string
}

type CreateVisitUseCase struct {
	visitRepo     visit.Repository
	agreementRepo agreement.Repository
	sequences     shared.SequenceAllocator
	technicians   TechnicianDirectory
	txMgr         db.Transactor
	logger        logger.Interface
}

// NewCreateVisitUseCase wires the use case. technicians may be nil, in which
// case technician IDs are accepted as given.
func NewCreateVisitUseCase(
	visitRepo visit.Repository,
	agreementRepo agreement.Repository,
	sequences shared.SequenceAllocator,
	technicians TechnicianDirectory,
	txMgr db.Transactor,
	logger logger.Interface,
) *CreateVisitUseCase {
	return &CreateVisitUseCase{
		visitRepo:     visitRepo,
		agreementRepo: agreementRepo,
		sequences:     sequences,
		technicians:   technicians,
		txMgr:         txMgr,
		logger:        logger,
	}
}

func (uc *CreateVisitUseCase) Execute(ctx context.Context, cmd CreateVisitCommand) (*dto.VisitDTO, error) {
	uc.logger.Infow("executing create visit use case", "agreement_id", cmd.AgreementID, "technician_id", cmd.TechnicianID)

	visitType, err := uc.validateCommand(cmd)
	if err != nil {
		return nil, err
	}

	a, err := uc.agreementRepo.GetByID(ctx, cmd.AgreementID)
	if err != nil {
		uc.logger.Errorw("failed to get agreement", "agreement_id", cmd.AgreementID, "error", err)
		return nil, mapDomainError(err, "failed to get agreement")
	}
	if !a.Status().IsActive() {
		return nil, errors.NewInvalidStateError("visits can only be scheduled on an active agreement", a.Status().String())
	}

	if uc.technicians != nil {
		ok, err := uc.technicians.TechnicianExists(ctx, cmd.TechnicianID)
		if err != nil {
			uc.logger.Errorw("failed to look up technician", "technician_id", cmd.TechnicianID, "error", err)
			return nil, errors.NewInternalError("failed to look up technician")
		}
		if !ok {
			return nil, errors.NewNotFoundError("technician not found", cmd.TechnicianID)
		}
	}

	var v *visit.Visit
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		seed := func(ctx context.Context) (int64, error) {
			n, err := uc.visitRepo.MaxVisitNumber(ctx, a.ID())
			return int64(n), err
		}
		seq, err := uc.sequences.Next(txCtx, visit.VisitNumberSequence(a.ID()), seed)
		if err != nil {
			return fmt.Errorf("failed to allocate visit number: %w", err)
		}
		v, err = visit.NewVisit(a.ID(), cmd.TechnicianID, int(seq), cmd.ScheduledDate, cmd.ScheduledEndDate, visitType, cmd.Notes)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.visitRepo.Create(txCtx, v); err != nil {
			return fmt.Errorf("failed to save visit: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create visit", "agreement_id", cmd.AgreementID, "error", err)
		return nil, mapDomainError(err, "failed to create visit")
	}

	uc.logger.Infow("visit created successfully", "visit_id", v.ID(), "visit_number", v.VisitNumber())
	return dto.ToVisitDTO(v, nil), nil
}

func (uc *CreateVisitUseCase) validateCommand(cmd CreateVisitCommand) (vo.VisitType, error) {
	if cmd.AgreementID == "" {
		return "", errors.NewValidationError("agreement ID is required")
	}
	if cmd.TechnicianID == "" {
		return "", errors.NewValidationError("technician ID is required")
	}
	if cmd.ScheduledDate.IsZero() {
		return "", errors.NewValidationError("scheduled date is required")
	}
	visitType := vo.VisitTypeRoutine
	if cmd.VisitType != "" {
		t, err := vo.NewVisitType(cmd.VisitType)
		if err != nil {
			return "", errors.NewValidationError(err.Error())
		}
		visitType = t
	}
	if cmd.ScheduledEndDate != nil && !cmd.ScheduledEndDate.After(cmd.ScheduledDate) {
		return "", errors.NewValidationError("scheduled end must be after scheduled start")
	}
	return visitType, nil
}
