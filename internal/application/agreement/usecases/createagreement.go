package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/domain/installation"
	"solarops/internal/domain/shared"
	"solarops/internal/domain/shared/events"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/db"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type CreateAgreementCommand struct {
	InstallationID     string
	AgreementType      string
	SLALevel           string
	StartDate          time.Time
	EndDate            *time.Time
	BasePrice          *decimal.Decimal
	DiscountPercent    *decimal.Decimal
	AutoRenew          bool
	VisitFrequency     int
	PreferredVisitDay  string
	PreferredVisitTime string
	Notes              string
	SeasonalAdjust     bool
	Addons             []AddonInput
}

type CreateAgreementResult struct {
	Agreement *dto.AgreementDTO         `json:"agreement"`
	Price     *agreement.PriceBreakdown `json:"price"`
}

type CreateAgreementUseCase struct {
	agreementRepo    agreement.Repository
	planRepo         agreement.ServicePlanRepository
	addonRepo        agreement.AddonProductRepository
	installationRepo installation.Repository
	sequences        shared.SequenceAllocator
	txMgr            db.Transactor
	publisher        events.EventPublisher
	metrics          AgreementMetrics
	logger           logger.Interface
}

func NewCreateAgreementUseCase(
	agreementRepo agreement.Repository,
	planRepo agreement.ServicePlanRepository,
	addonRepo agreement.AddonProductRepository,
	installationRepo installation.Repository,
	sequences shared.SequenceAllocator,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	metrics AgreementMetrics,
	logger logger.Interface,
) *CreateAgreementUseCase {
	return &CreateAgreementUseCase{
		agreementRepo:    agreementRepo,
		planRepo:         planRepo,
		addonRepo:        addonRepo,
		installationRepo: installationRepo,
		sequences:        sequences,
		txMgr:            txMgr,
		publisher:        publisher,
		metrics:          metrics,
		logger:           logger,
	}
}

func (uc *CreateAgreementUseCase) Execute(ctx context.Context, cmd CreateAgreementCommand) (*CreateAgreementResult, error) {
	uc.logger.Infow("executing create agreement use case", "installation_id", cmd.InstallationID, "type", cmd.AgreementType)

	params, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Errorw("invalid create agreement command", "error", err)
		return nil, err
	}

	exists, err := uc.installationRepo.Exists(ctx, cmd.InstallationID)
	if err != nil {
		uc.logger.Errorw("failed to check installation", "installation_id", cmd.InstallationID, "error", err)
		return nil, errors.NewInternalError("failed to check installation")
	}
	if !exists {
		return nil, errors.NewNotFoundError("installation not found", cmd.InstallationID)
	}

	products, err := loadProducts(ctx, uc.addonRepo, addonIDs(cmd.Addons), false)
	if err != nil {
		uc.logger.Warnw("failed to resolve add-ons", "error", err)
		return nil, mapDomainError(err, "failed to resolve add-ons")
	}

	a, err := agreement.NewAgreement(params)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	addons, err := buildAddons(cmd.Addons)
	if err != nil {
		return nil, err
	}
	if err := a.ReplaceAddons(addons); err != nil {
		return nil, mapDomainError(err, "failed to attach add-ons")
	}
	breakdown := a.Reprice(products)

	plan, err := agreement.NewServicePlan(a.ID(), a.VisitFrequency(), a.StartDate(), cmd.SeasonalAdjust)
	if err != nil {
		return nil, mapDomainError(err, "failed to create service plan")
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		seq, err := uc.sequences.Next(txCtx, agreement.AgreementNumberSequence, uc.agreementRepo.MaxSequence)
		if err != nil {
			return fmt.Errorf("failed to allocate agreement number: %w", err)
		}
		if err := a.AssignNumber(agreement.FormatAgreementNumber(seq, biztime.YearOf(a.CreatedAt()))); err != nil {
			return err
		}
		if err := uc.agreementRepo.Create(txCtx, a); err != nil {
			return fmt.Errorf("failed to save agreement: %w", err)
		}
		if err := uc.planRepo.Create(txCtx, plan); err != nil {
			return fmt.Errorf("failed to save service plan: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create agreement", "installation_id", cmd.InstallationID, "error", err)
		return nil, mapDomainError(err, "failed to create agreement")
	}

	uc.metrics.AgreementCreated()
	if err := uc.publisher.PublishAll(a.GetEvents()); err != nil {
		uc.logger.Warnw("failed to publish agreement events", "agreement_id", a.ID(), "error", err)
	}

	uc.logger.Infow("agreement created successfully",
		"agreement_id", a.ID(),
		"agreement_number", a.AgreementNumber(),
		"calculated_price", breakdown.Total.String(),
	)

	return &CreateAgreementResult{
		Agreement: dto.ToAgreementDTO(a, plan),
		Price:     dto.ToPriceBreakdownDTO(breakdown),
	}, nil
}

func (uc *CreateAgreementUseCase) validateCommand(cmd CreateAgreementCommand) (agreement.NewAgreementParams, error) {
	var p agreement.NewAgreementParams
	if cmd.InstallationID == "" {
		return p, errors.NewValidationError("installation ID is required")
	}
	agreementType, err := vo.NewAgreementType(cmd.AgreementType)
	if err != nil {
		return p, errors.NewValidationError(err.Error())
	}
	slaLevel := vo.SLALevelStandard
	if cmd.SLALevel != "" {
		if slaLevel, err = vo.NewSLALevel(cmd.SLALevel); err != nil {
			return p, errors.NewValidationError(err.Error())
		}
	}
	if cmd.StartDate.IsZero() {
		return p, errors.NewValidationError("start date is required")
	}

	p = agreement.NewAgreementParams{
		InstallationID:     cmd.InstallationID,
		AgreementType:      agreementType,
		SLALevel:           slaLevel,
		StartDate:          cmd.StartDate,
		EndDate:            cmd.EndDate,
		BasePrice:          cmd.BasePrice,
		DiscountPercent:    cmd.DiscountPercent,
		AutoRenew:          cmd.AutoRenew,
		VisitFrequency:     cmd.VisitFrequency,
		PreferredVisitDay:  cmd.PreferredVisitDay,
		PreferredVisitTime: cmd.PreferredVisitTime,
		Notes:              cmd.Notes,
	}

	in := agreement.PriceInput{
		BasePrice:       agreementType.DefaultBasePrice(),
		DiscountPercent: p.DiscountPercent,
		Addons:          selections(cmd.Addons),
	}
	if cmd.BasePrice != nil {
		in.BasePrice = *cmd.BasePrice
	}
	if err := agreement.ValidatePriceInput(in); err != nil {
		return p, errors.NewValidationError(err.Error())
	}
	return p, nil
}
