package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

// CalculatePriceCommand previews a price. When BasePrice is nil the default
// for AgreementType is used.
type CalculatePriceCommand struct {
	AgreementType   string
	BasePrice       *decimal.Decimal
	DiscountPercent *decimal.Decimal
	Addons          []AddonInput
}

type CalculatePriceUseCase struct {
	addonRepo agreement.AddonProductRepository
	logger    logger.Interface
}

func NewCalculatePriceUseCase(addonRepo agreement.AddonProductRepository, logger logger.Interface) *CalculatePriceUseCase {
	return &CalculatePriceUseCase{
		addonRepo: addonRepo,
		logger:    logger,
	}
}

func (uc *CalculatePriceUseCase) Execute(ctx context.Context, cmd CalculatePriceCommand) (*agreement.PriceBreakdown, error) {
	in, err := uc.buildInput(cmd)
	if err != nil {
		return nil, err
	}

	products, err := loadProducts(ctx, uc.addonRepo, addonIDs(cmd.Addons), false)
	if err != nil {
		uc.logger.Warnw("failed to resolve add-ons for price preview", "error", err)
		return nil, mapDomainError(err, "failed to resolve add-ons")
	}
	in.Products = products

	breakdown := agreement.CalculatePrice(in)
	uc.logger.Debugw("price calculated", "total", breakdown.Total.String(), "addons", len(cmd.Addons))
	return dto.ToPriceBreakdownDTO(breakdown), nil
}

func (uc *CalculatePriceUseCase) buildInput(cmd CalculatePriceCommand) (agreement.PriceInput, error) {
	in := agreement.PriceInput{
		DiscountPercent: cmd.DiscountPercent,
		Addons:          selections(cmd.Addons),
	}
	switch {
	case cmd.BasePrice != nil:
		in.BasePrice = *cmd.BasePrice
	case cmd.AgreementType != "":
		t, err := vo.NewAgreementType(cmd.AgreementType)
		if err != nil {
			return in, errors.NewValidationError(err.Error())
		}
		in.BasePrice = t.DefaultBasePrice()
	default:
		return in, errors.NewValidationError("base price or agreement type is required")
	}
	if err := agreement.ValidatePriceInput(in); err != nil {
		return in, errors.NewValidationError(err.Error())
	}
	return in, nil
}
