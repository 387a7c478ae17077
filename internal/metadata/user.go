// Package metadata manages scientific provenance metadata for exported
// figures: user identity and affiliation, licensing defaults, and XMP
// packets embedded into the exported files.
package metadata

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"scatterforge/internal/version"
)

const userFile = "user_metadata.json"

// User identifies the person producing the figure.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ORCID string `json:"orcid"`
}

// Affiliation identifies the user's institution.
type Affiliation struct {
	Institution string `json:"institution"`
	Department  string `json:"department"`
	ROR         string `json:"ror"`
}

// ExportDefaults control what gets stamped into exported figures.
type ExportDefaults struct {
	License           string `json:"license"`
	AutoTimestamp     bool   `json:"auto_timestamp"`
	IncludeProvenance bool   `json:"include_provenance"`
	GenerateUUID      bool   `json:"generate_uuid"`
}

// UserMetadata is the persisted metadata profile.
type UserMetadata struct {
	Version        string         `json:"version"`
	User           User           `json:"user"`
	Affiliation    Affiliation    `json:"affiliation"`
	ExportDefaults ExportDefaults `json:"export_defaults"`
	LastModified   time.Time      `json:"last_modified"`
}

// NewUserMetadata returns an empty profile with sensible defaults.
func NewUserMetadata() *UserMetadata {
	return &UserMetadata{
		Version: "1.0",
		ExportDefaults: ExportDefaults{
			License:           "CC-BY-4.0",
			AutoTimestamp:     true,
			IncludeProvenance: true,
		},
		LastModified: time.Now().UTC(),
	}
}

// LoadUserMetadata reads a profile from dir, returning defaults when the
// file does not exist. Profiles can live outside the default config dir,
// e.g. on a shared drive for team use.
func LoadUserMetadata(dir string) *UserMetadata {
	data, err := os.ReadFile(filepath.Join(dir, userFile))
	if err != nil {
		return NewUserMetadata()
	}
	um := NewUserMetadata()
	if err := json.Unmarshal(data, um); err != nil {
		return NewUserMetadata()
	}
	return um
}

// Save writes the profile to dir.
func (um *UserMetadata) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create metadata dir: %w", err)
	}
	um.LastModified = time.Now().UTC()
	data, err := json.MarshalIndent(um, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, userFile), data, 0644)
}

// Fields assembles the flat metadata field set for one export: document
// fields, user identity, and software provenance, subject to the
// profile's export defaults.
func (um *UserMetadata) Fields(title, description string) map[string]string {
	f := map[string]string{
		"Title":   title,
		"Subject": description,
		"License": um.ExportDefaults.License,
	}
	if um.User.Name != "" {
		f["Author"] = um.User.Name
	}
	if um.User.ORCID != "" {
		f["ORCID"] = um.User.ORCID
	}
	if um.Affiliation.Institution != "" {
		f["Institution"] = um.Affiliation.Institution
	}
	if um.Affiliation.ROR != "" {
		f["ROR"] = um.Affiliation.ROR
	}
	if um.ExportDefaults.AutoTimestamp {
		f["CreateDate"] = time.Now().UTC().Format(time.RFC3339)
	}
	if um.ExportDefaults.IncludeProvenance {
		for k, v := range version.Provenance() {
			f["provenance_"+k] = v
		}
	}
	if um.ExportDefaults.GenerateUUID {
		f["DocumentID"] = "uuid:" + newUUID()
	}
	return f
}

// newUUID returns a random RFC 4122 version 4 UUID.
func newUUID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "00000000-0000-4000-8000-000000000000"
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
