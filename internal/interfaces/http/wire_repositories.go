package http

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"solarops/internal/domain/agreement"
	"solarops/internal/domain/checklist"
	"solarops/internal/domain/installation"
	"solarops/internal/domain/shared"
	"solarops/internal/domain/visit"
	"solarops/internal/infrastructure/cache"
	"solarops/internal/infrastructure/repository"
	"solarops/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	installationRepo installation.Repository
	agreementRepo    agreement.Repository
	planRepo         agreement.ServicePlanRepository
	addonRepo        agreement.AddonProductRepository
	visitRepo        visit.Repository
	photoRepo        visit.PhotoRepository
	checklistRepo    checklist.Repository
	templateRepo     checklist.TemplateRepository
	sequences        shared.SequenceAllocator
}

// newRepositories creates all repository instances from the database connection.
// Add-on products are read through Redis when a client is available.
func newRepositories(db *gorm.DB, redisClient *redis.Client, log logger.Interface) *repositories {
	addonRepo := repository.NewAddonProductRepository(db, log)
	if redisClient != nil {
		addonRepo = cache.NewAddonProductCache(addonRepo, redisClient, log)
	}

	return &repositories{
		installationRepo: repository.NewInstallationRepository(db, log),
		agreementRepo:    repository.NewAgreementRepository(db, log),
		planRepo:         repository.NewServicePlanRepository(db, log),
		addonRepo:        addonRepo,
		visitRepo:        repository.NewVisitRepository(db, log),
		photoRepo:        repository.NewPhotoRepository(db, log),
		checklistRepo:    repository.NewChecklistRepository(db, log),
		templateRepo:     repository.NewChecklistTemplateRepository(db, log),
		sequences:        repository.NewSequenceAllocator(db, log),
	}
}
