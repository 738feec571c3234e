package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection would otherwise get its own empty in-memory database
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = gdb.AutoMigrate(
		&models.InstallationModel{},
		&models.AgreementModel{},
		&models.AgreementAddonModel{},
		&models.AddonProductModel{},
		&models.ServicePlanModel{},
		&models.VisitModel{},
		&models.VisitPhotoModel{},
		&models.ChecklistTemplateModel{},
		&models.TemplateItemModel{},
		&models.ChecklistModel{},
		&models.ChecklistItemModel{},
		&models.SequenceModel{},
	)
	require.NoError(t, err)

	return gdb
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}
