package usecases

import (
	"context"
	stderrors "errors"

	"github.com/shopspring/decimal"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type CreateAddonProductCommand struct {
	Name        string
	Description string
	Category    string
	Frequency   string
	BasePrice   decimal.Decimal
	Unit        string
	SortOrder   int
}

type CreateAddonProductUseCase struct {
	addonRepo agreement.AddonProductRepository
	logger    logger.Interface
}

func NewCreateAddonProductUseCase(addonRepo agreement.AddonProductRepository, logger logger.Interface) *CreateAddonProductUseCase {
	return &CreateAddonProductUseCase{addonRepo: addonRepo, logger: logger}
}

func (uc *CreateAddonProductUseCase) Execute(ctx context.Context, cmd CreateAddonProductCommand) (*dto.AddonProductDTO, error) {
	uc.logger.Infow("executing create add-on product use case", "name", cmd.Name)

	category, err := vo.NewAddonCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	frequency, err := vo.NewAddonFrequency(cmd.Frequency)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	p, err := agreement.NewAddonProduct(cmd.Name, cmd.Description, category, frequency, cmd.BasePrice, cmd.Unit, cmd.SortOrder)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.addonRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create add-on product", "name", cmd.Name, "error", err)
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("add-on product already exists")
		}
		return nil, errors.NewInternalError("failed to create add-on product")
	}

	uc.logger.Infow("add-on product created successfully", "addon_id", p.ID())
	return dto.ToAddonProductDTO(p), nil
}

// UpdateAddonProductCommand is a partial update. Active toggles availability
// for new agreements; existing agreements keep the product.
type UpdateAddonProductCommand struct {
	AddonID     string
	Name        *string
	Description *string
	BasePrice   *decimal.Decimal
	Unit        *string
	SortOrder   *int
	Active      *bool
}

type UpdateAddonProductUseCase struct {
	addonRepo agreement.AddonProductRepository
	logger    logger.Interface
}

func NewUpdateAddonProductUseCase(addonRepo agreement.AddonProductRepository, logger logger.Interface) *UpdateAddonProductUseCase {
	return &UpdateAddonProductUseCase{addonRepo: addonRepo, logger: logger}
}

func (uc *UpdateAddonProductUseCase) Execute(ctx context.Context, cmd UpdateAddonProductCommand) (*dto.AddonProductDTO, error) {
	uc.logger.Infow("executing update add-on product use case", "addon_id", cmd.AddonID)

	if cmd.AddonID == "" {
		return nil, errors.NewValidationError("add-on ID is required")
	}

	p, err := uc.addonRepo.GetByID(ctx, cmd.AddonID)
	if err != nil {
		if stderrors.Is(err, agreement.ErrAddonProductNotFound) {
			return nil, errors.NewNotFoundError("add-on product not found", cmd.AddonID)
		}
		uc.logger.Errorw("failed to get add-on product", "addon_id", cmd.AddonID, "error", err)
		return nil, errors.NewInternalError("failed to get add-on product")
	}

	if err := p.Update(cmd.Name, cmd.Description, cmd.BasePrice, cmd.Unit, cmd.SortOrder); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		if *cmd.Active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}

	if err := uc.addonRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update add-on product", "addon_id", cmd.AddonID, "error", err)
		return nil, errors.NewInternalError("failed to update add-on product")
	}

	uc.logger.Infow("add-on product updated successfully", "addon_id", p.ID(), "active", p.IsActive())
	return dto.ToAddonProductDTO(p), nil
}

type ListAddonProductsQuery struct {
	ActiveOnly bool
}

type ListAddonProductsUseCase struct {
	addonRepo agreement.AddonProductRepository
	logger    logger.Interface
}

func NewListAddonProductsUseCase(addonRepo agreement.AddonProductRepository, logger logger.Interface) *ListAddonProductsUseCase {
	return &ListAddonProductsUseCase{addonRepo: addonRepo, logger: logger}
}

func (uc *ListAddonProductsUseCase) Execute(ctx context.Context, query ListAddonProductsQuery) ([]*dto.AddonProductDTO, error) {
	products, err := uc.addonRepo.List(ctx, query.ActiveOnly)
	if err != nil {
		uc.logger.Errorw("failed to list add-on products", "error", err)
		return nil, errors.NewInternalError("failed to list add-on products")
	}

	out := make([]*dto.AddonProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToAddonProductDTO(p))
	}
	return out, nil
}
