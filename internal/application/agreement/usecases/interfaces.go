package usecases

import (
	"context"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
)

// AgreementMetrics counts lifecycle outcomes.
type AgreementMetrics interface {
	AgreementCreated()
}

type CreateAgreementExecutor interface {
	Execute(ctx context.Context, cmd CreateAgreementCommand) (*CreateAgreementResult, error)
}

type UpdateAgreementExecutor interface {
	Execute(ctx context.Context, cmd UpdateAgreementCommand) (*UpdateAgreementResult, error)
}

type ActivateAgreementExecutor interface {
	Execute(ctx context.Context, cmd ActivateAgreementCommand) (*dto.AgreementDTO, error)
}

type CancelAgreementExecutor interface {
	Execute(ctx context.Context, cmd CancelAgreementCommand) (*dto.AgreementDTO, error)
}

type ChangeAgreementStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeAgreementStatusCommand) (*dto.AgreementDTO, error)
}

type CalculatePriceExecutor interface {
	Execute(ctx context.Context, cmd CalculatePriceCommand) (*agreement.PriceBreakdown, error)
}

type GetAgreementExecutor interface {
	Execute(ctx context.Context, query GetAgreementQuery) (*dto.AgreementDTO, error)
}

type ListAgreementsExecutor interface {
	Execute(ctx context.Context, query ListAgreementsQuery) (*ListAgreementsResult, error)
}

type MaintainAgreementsExecutor interface {
	Execute(ctx context.Context) (*MaintainAgreementsResult, error)
}

type CreateAddonProductExecutor interface {
	Execute(ctx context.Context, cmd CreateAddonProductCommand) (*dto.AddonProductDTO, error)
}

type UpdateAddonProductExecutor interface {
	Execute(ctx context.Context, cmd UpdateAddonProductCommand) (*dto.AddonProductDTO, error)
}

type ListAddonProductsExecutor interface {
	Execute(ctx context.Context, query ListAddonProductsQuery) ([]*dto.AddonProductDTO, error)
}
