package service

import (
	"database/sql"
	"fmt"
	"maps"

	"github.com/ndewijer/RemitWise-Backend/internal/database"
	"github.com/ndewijer/RemitWise-Backend/internal/model"
	"github.com/ndewijer/RemitWise-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	model    string
	features map[string]bool
}

// NewSystemService creates a new SystemService.
// model is the AI model name reported by the health endpoint; features are
// the optional capabilities reported by the version endpoint.
func NewSystemService(db *sql.DB, model string, features map[string]bool) *SystemService {
	return &SystemService{
		db:       db,
		model:    model,
		features: features,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// Model returns the configured AI model name.
func (s *SystemService) Model() string {
	return s.model
}

// CheckVersion reports the application version, the applied schema version
// and whether embedded migrations are still pending.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	current, err := database.Version(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	latest, err := database.LatestVersion()
	if err != nil {
		return model.VersionInfo{}, err
	}

	features := make(map[string]bool, len(s.features))
	maps.Copy(features, s.features)

	info := model.VersionInfo{
		AppVersion:          version.Version,
		Model:               s.model,
		SchemaVersion:       current,
		LatestSchemaVersion: latest,
		Features:            features,
	}
	if info.MigrationPending() {
		info.MigrationMessage = fmt.Sprintf("database schema is at version %d, latest is %d; run the migrate command", current, latest)
	}
	return info, nil
}
