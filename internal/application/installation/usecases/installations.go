// Package usecases holds the installation registry operations. Installations
// are reference data for agreements; customer management lives elsewhere.
package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/shopspring/decimal"

	"solarops/internal/domain/installation"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

type InstallationDTO struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Address      string          `json:"address"`
	SystemType   string          `json:"system_type"`
	CapacityKw   decimal.Decimal `json:"capacity_kw"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toInstallationDTO(i *installation.Installation) *InstallationDTO {
	return &InstallationDTO{
		ID:           i.ID(),
		CustomerName: i.CustomerName(),
		Address:      i.Address(),
		SystemType:   i.SystemType().String(),
		CapacityKw:   i.CapacityKw(),
		Notes:        i.Notes(),
		CreatedAt:    i.CreatedAt(),
		UpdatedAt:    i.UpdatedAt(),
	}
}

type CreateInstallationCommand struct {
	CustomerName string
	Address      string
	SystemType   string
	CapacityKw   decimal.Decimal
	Notes        string
}

type CreateInstallationUseCase struct {
	repo   installation.Repository
	logger logger.Interface
}

func NewCreateInstallationUseCase(repo installation.Repository, logger logger.Interface) *CreateInstallationUseCase {
	return &CreateInstallationUseCase{repo: repo, logger: logger}
}

func (uc *CreateInstallationUseCase) Execute(ctx context.Context, cmd CreateInstallationCommand) (*InstallationDTO, error) {
	uc.logger.Infow("executing create installation use case", "system_type", cmd.SystemType)

	inst, err := installation.NewInstallation(cmd.CustomerName, cmd.Address, installation.SystemType(cmd.SystemType), cmd.CapacityKw, cmd.Notes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Create(ctx, inst); err != nil {
		uc.logger.Errorw("failed to create installation", "error", err)
		return nil, errors.NewInternalError("failed to create installation")
	}

	uc.logger.Infow("installation created successfully", "installation_id", inst.ID())
	return toInstallationDTO(inst), nil
}

type GetInstallationUseCase struct {
	repo   installation.Repository
	logger logger.Interface
}

func NewGetInstallationUseCase(repo installation.Repository, logger logger.Interface) *GetInstallationUseCase {
	return &GetInstallationUseCase{repo: repo, logger: logger}
}

func (uc *GetInstallationUseCase) Execute(ctx context.Context, installationID string) (*InstallationDTO, error) {
	if installationID == "" {
		return nil, errors.NewValidationError("installation ID is required")
	}
	inst, err := uc.repo.GetByID(ctx, installationID)
	if err != nil {
		if stderrors.Is(err, installation.ErrInstallationNotFound) {
			return nil, errors.NewNotFoundError("installation not found", installationID)
		}
		uc.logger.Errorw("failed to get installation", "installation_id", installationID, "error", err)
		return nil, errors.NewInternalError("failed to get installation")
	}
	return toInstallationDTO(inst), nil
}

type ListInstallationsResult struct {
	Installations []*InstallationDTO `json:"installations"`
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	PageSize      int                `json:"page_size"`
}

type ListInstallationsUseCase struct {
	repo   installation.Repository
	logger logger.Interface
}

func NewListInstallationsUseCase(repo installation.Repository, logger logger.Interface) *ListInstallationsUseCase {
	return &ListInstallationsUseCase{repo: repo, logger: logger}
}

func (uc *ListInstallationsUseCase) Execute(ctx context.Context, page, pageSize int) (*ListInstallationsResult, error) {
	p := utils.ValidatePagination(page, pageSize)
	items, total, err := uc.repo.List(ctx, p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list installations", "error", err)
		return nil, errors.NewInternalError("failed to list installations")
	}

	out := make([]*InstallationDTO, 0, len(items))
	for _, inst := range items {
		out = append(out, toInstallationDTO(inst))
	}
	return &ListInstallationsResult{Installations: out, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}
