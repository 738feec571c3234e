package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"solarops/internal/shared/logger"
)

var (
	migrationFileRegex = regexp.MustCompile(`^(\d+)_.+\.(up|down)\.sql$`)
	migrationNameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// Generator handles creation of new migration files
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().Named("migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes an up/down pair numbered one past the highest
// existing script and returns both paths.
func (g *Generator) CreateMigration(name string) (string, string, error) {
	if !migrationNameRegex.MatchString(name) {
		return "", "", fmt.Errorf("invalid migration name %q: use lowercase letters, digits and underscores", name)
	}
	g.logger.Infow("creating new migration", "name", name)

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	version, err := g.nextVersion()
	if err != nil {
		return "", "", err
	}

	prefix := fmt.Sprintf("%06d_%s", version, name)
	upFilePath := filepath.Join(g.scriptsPath, prefix+".up.sql")
	downFilePath := filepath.Join(g.scriptsPath, prefix+".down.sql")

	created := g.now().Format("2006-01-02 15:04:05")
	upContent := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", name, created)
	downContent := fmt.Sprintf("-- Rollback Migration: %s\n-- Created: %s\n\n", name, created)

	if err := os.WriteFile(upFilePath, []byte(upContent), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create up migration file: %w", err)
	}
	if err := os.WriteFile(downFilePath, []byte(downContent), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created successfully",
		"up_file", upFilePath,
		"down_file", downFilePath)

	return upFilePath, downFilePath, nil
}

func (g *Generator) nextVersion() (int, error) {
	entries, err := os.ReadDir(g.scriptsPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read scripts directory: %w", err)
	}
	highest := 0
	for _, e := range entries {
		match := migrationFileRegex.FindStringSubmatch(e.Name())
		if match == nil {
			continue
		}
		v, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if v > highest {
			highest = v
		}
	}
	return highest + 1, nil
}
