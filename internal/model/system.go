package model

// VersionInfo describes the running build and the state of its record store schema.
type VersionInfo struct {
	AppVersion          string          `json:"appVersion"`
	Model               string          `json:"model"`
	SchemaVersion       int64           `json:"schemaVersion"`
	LatestSchemaVersion int64           `json:"latestSchemaVersion"`
	Features            map[string]bool `json:"features"`
	// MigrationMessage is set when SchemaVersion is behind LatestSchemaVersion.
	MigrationMessage string `json:"migrationMessage,omitempty"`
}

// MigrationPending reports whether embedded migrations have not been applied yet.
func (v VersionInfo) MigrationPending() bool {
	return v.SchemaVersion < v.LatestSchemaVersion
}
