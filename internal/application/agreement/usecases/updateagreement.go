package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/db"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

// UpdateAgreementCommand is a partial update. A non-nil Addons replaces the
// whole add-on set; an empty slice removes every add-on.
type UpdateAgreementCommand struct {
	AgreementID        string
	AgreementType      *string
	SLALevel           *string
	StartDate          *time.Time
	EndDate            *time.Time
	ClearEndDate       bool
	BasePrice          *decimal.Decimal
	DiscountPercent    *decimal.Decimal
	ClearDiscount      bool
	AutoRenew          *bool
	VisitFrequency     *int
	PreferredVisitDay  *string
	PreferredVisitTime *string
	Notes              *string
	Addons             []AddonInput
}

type UpdateAgreementResult struct {
	Agreement *dto.AgreementDTO         `json:"agreement"`
	Price     *agreement.PriceBreakdown `json:"price,omitempty"`
}

type UpdateAgreementUseCase struct {
	agreementRepo agreement.Repository
	planRepo      agreement.ServicePlanRepository
	addonRepo     agreement.AddonProductRepository
	txMgr         db.Transactor
	logger        logger.Interface
}

func NewUpdateAgreementUseCase(
	agreementRepo agreement.Repository,
	planRepo agreement.ServicePlanRepository,
	addonRepo agreement.AddonProductRepository,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateAgreementUseCase {
	return &UpdateAgreementUseCase{
		agreementRepo: agreementRepo,
		planRepo:      planRepo,
		addonRepo:     addonRepo,
		txMgr:         txMgr,
		logger:        logger,
	}
}

func (uc *UpdateAgreementUseCase) Execute(ctx context.Context, cmd UpdateAgreementCommand) (*UpdateAgreementResult, error) {
	uc.logger.Infow("executing update agreement use case", "agreement_id", cmd.AgreementID)

	patch, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Errorw("invalid update agreement command", "error", err)
		return nil, err
	}

	var (
		a         *agreement.Agreement
		plan      *agreement.ServicePlan
		breakdown *agreement.PriceBreakdown
	)
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		a, err = uc.agreementRepo.GetByID(txCtx, cmd.AgreementID)
		if err != nil {
			return err
		}
		existingAddons := a.AddonIDs()

		res, err := a.Update(patch)
		if err != nil {
			return err
		}

		repriceNeeded := res.RepriceNeeded
		if cmd.Addons != nil {
			addons, err := buildAddons(cmd.Addons)
			if err != nil {
				return err
			}
			if err := uc.checkNewAddonsActive(txCtx, cmd.Addons, existingAddons); err != nil {
				return err
			}
			if err := a.ReplaceAddons(addons); err != nil {
				return err
			}
			repriceNeeded = true
		}

		if repriceNeeded {
			// Products referenced by the agreement may have been deactivated
			// since they were attached; they keep their price.
			products, err := loadProducts(txCtx, uc.addonRepo, a.AddonIDs(), true)
			if err != nil {
				return err
			}
			b := a.Reprice(products)
			breakdown = &b
		}

		if err := uc.agreementRepo.Update(txCtx, a); err != nil {
			return err
		}

		if res.FrequencyChanged {
			plan, err = uc.planRepo.GetByAgreementID(txCtx, a.ID())
			if err != nil {
				return fmt.Errorf("failed to load service plan: %w", err)
			}
			if err := plan.ChangeFrequency(a.VisitFrequency(), biztime.NowUTC()); err != nil {
				return err
			}
			if err := uc.planRepo.Update(txCtx, plan); err != nil {
				return fmt.Errorf("failed to update service plan: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update agreement", "agreement_id", cmd.AgreementID, "error", err)
		return nil, mapDomainError(err, "failed to update agreement")
	}

	uc.logger.Infow("agreement updated successfully", "agreement_id", a.ID(), "repriced", breakdown != nil)

	result := &UpdateAgreementResult{Agreement: dto.ToAgreementDTO(a, plan)}
	if breakdown != nil {
		result.Price = dto.ToPriceBreakdownDTO(*breakdown)
	}
	return result, nil
}

// checkNewAddonsActive requires newly added products to be active. Products
// already on the agreement may stay even when they have been deactivated.
func (uc *UpdateAgreementUseCase) checkNewAddonsActive(ctx context.Context, inputs []AddonInput, existing []string) error {
	known := make(map[string]bool, len(existing))
	for _, addonID := range existing {
		known[addonID] = true
	}
	var added []string
	for _, addonID := range addonIDs(inputs) {
		if !known[addonID] {
			added = append(added, addonID)
		}
	}
	_, err := loadProducts(ctx, uc.addonRepo, added, false)
	return err
}

func (uc *UpdateAgreementUseCase) validateCommand(cmd UpdateAgreementCommand) (agreement.AgreementPatch, error) {
	patch := agreement.AgreementPatch{
		StartDate:          cmd.StartDate,
		EndDate:            cmd.EndDate,
		ClearEndDate:       cmd.ClearEndDate,
		BasePrice:          cmd.BasePrice,
		DiscountPercent:    cmd.DiscountPercent,
		ClearDiscount:      cmd.ClearDiscount,
		AutoRenew:          cmd.AutoRenew,
		VisitFrequency:     cmd.VisitFrequency,
		PreferredVisitDay:  cmd.PreferredVisitDay,
		PreferredVisitTime: cmd.PreferredVisitTime,
		Notes:              cmd.Notes,
	}
	if strings.TrimSpace(cmd.AgreementID) == "" {
		return patch, errors.NewValidationError("agreement ID is required")
	}
	if cmd.AgreementType != nil {
		t, err := vo.NewAgreementType(*cmd.AgreementType)
		if err != nil {
			return patch, errors.NewValidationError(err.Error())
		}
		patch.AgreementType = &t
	}
	if cmd.SLALevel != nil {
		l, err := vo.NewSLALevel(*cmd.SLALevel)
		if err != nil {
			return patch, errors.NewValidationError(err.Error())
		}
		patch.SLALevel = &l
	}
	for _, in := range cmd.Addons {
		if in.Quantity < 1 {
			return patch, errors.NewValidationError(fmt.Sprintf("quantity for add-on %s must be at least 1", in.AddonID))
		}
	}
	return patch, nil
}
