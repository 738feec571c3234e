package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"solarops/internal/domain/checklist"
	"solarops/internal/shared/db"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type SeedTemplatesResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// SeedTemplatesUseCase installs the built-in templates. A template whose name
// already exists is left alone, so running the seed twice is harmless.
type SeedTemplatesUseCase struct {
	templateRepo checklist.TemplateRepository
	source       TemplateSource
	txMgr        db.Transactor
	logger       logger.Interface
}

func NewSeedTemplatesUseCase(
	templateRepo checklist.TemplateRepository,
	source TemplateSource,
	txMgr db.Transactor,
	logger logger.Interface,
) *SeedTemplatesUseCase {
	return &SeedTemplatesUseCase{
		templateRepo: templateRepo,
		source:       source,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *SeedTemplatesUseCase) Execute(ctx context.Context) (*SeedTemplatesResult, error) {
	defs, err := uc.source.Definitions()
	if err != nil {
		uc.logger.Errorw("failed to load built-in templates", "error", err)
		return nil, errors.NewInternalError("failed to load built-in templates")
	}

	result := &SeedTemplatesResult{Created: []string{}, Skipped: []string{}}
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, def := range defs {
			_, err := uc.templateRepo.GetByName(txCtx, def.Name)
			if err == nil {
				result.Skipped = append(result.Skipped, def.Name)
				continue
			}
			if !stderrors.Is(err, checklist.ErrTemplateNotFound) {
				return fmt.Errorf("failed to look up template %q: %w", def.Name, err)
			}

			tpl, err := checklist.NewTemplate(def)
			if err != nil {
				return fmt.Errorf("built-in template %q: %w", def.Name, err)
			}
			if err := uc.templateRepo.Create(txCtx, tpl); err != nil {
				return fmt.Errorf("failed to save template %q: %w", def.Name, err)
			}
			result.Created = append(result.Created, def.Name)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to seed templates", "error", err)
		return nil, mapDomainError(err, "failed to seed templates")
	}

	uc.logger.Infow("built-in templates seeded", "created", len(result.Created), "skipped", len(result.Skipped))
	return result, nil
}
