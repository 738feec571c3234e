package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"solarops/internal/shared/constants"
)

func TestNewManager_StrategyByDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{driver: "mysql", want: "golang_migrate"},
		{driver: "MySQL", want: "golang_migrate"},
		{driver: "sqlite", want: "gorm_auto_migrate"},
		{driver: "", want: "gorm_auto_migrate"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			m := NewManager(tt.driver)
			assert.Equal(t, tt.want, m.GetStrategy().GetName())
			_, versioned := m.Versioned()
			assert.Equal(t, tt.want == "golang_migrate", versioned)
			assert.NotEqual(t, "Unknown migration strategy", m.GetStrategyInfo()["description"])
		})
	}
}

func TestManager_AutoMigrateCreatesAllTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, NewManager(DriverSQLite).Migrate(db))

	for _, table := range []string{
		constants.TableInstallations,
		constants.TableServiceAgreements,
		constants.TableAgreementAddons,
		constants.TableAddonProducts,
		constants.TableServicePlans,
		constants.TableServiceVisits,
		constants.TableVisitPhotos,
		constants.TableChecklistTemplates,
		constants.TableTemplateItems,
		constants.TableChecklists,
		constants.TableChecklistItems,
		constants.TableSequences,
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestEmbeddedScripts_PairedAndCoverEveryTable(t *testing.T) {
	entries, err := fs.ReadDir(scriptsFS, "scripts")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	var allUp strings.Builder
	for _, e := range entries {
		match := migrationFileRegex.FindStringSubmatch(e.Name())
		require.NotNil(t, match, e.Name())
		base := strings.TrimSuffix(strings.TrimSuffix(e.Name(), ".up.sql"), ".down.sql")
		if match[2] == "up" {
			ups[base] = true
			body, err := fs.ReadFile(scriptsFS, "scripts/"+e.Name())
			require.NoError(t, err)
			allUp.Write(body)
		} else {
			downs[base] = true
		}
	}
	assert.Equal(t, ups, downs)

	for _, model := range AutoMigrateModels() {
		tabler, ok := model.(interface{ TableName() string })
		require.True(t, ok)
		assert.Contains(t, allUp.String(), "CREATE TABLE IF NOT EXISTS "+tabler.TableName()+" (")
	}
}

func TestGenerator_CreateMigration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000004_create_checklist_tables.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0o644))

	g := NewGenerator(dir)
	g.now = func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }

	up, down, err := g.CreateMigration("add_visit_rating")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "000005_add_visit_rating.up.sql"), up)
	assert.Equal(t, filepath.Join(dir, "000005_add_visit_rating.down.sql"), down)

	body, err := os.ReadFile(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- Created: 2026-03-01 08:00:00")

	_, _, err = g.CreateMigration("Add Rating")
	assert.Error(t, err)
}

func TestGolangMigrateStrategy_RejectsNonPositiveSteps(t *testing.T) {
	err := NewGolangMigrateStrategy().MigrateDown(nil, 0)
	assert.Error(t, err)
}
