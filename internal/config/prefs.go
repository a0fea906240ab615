package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/acameron/flightduty/backend/internal/domain"
)

// The preferences file is the single piece of persisted state: the
// presentation layer's last-used form defaults and regulator choice.
// The engine only consumes it as a domain.UserPreferences value.

// DefaultPreferences returns in-memory defaults for a first run.
func DefaultPreferences() domain.UserPreferences {
	return domain.UserPreferences{
		Regulator:         domain.RegulatorTC,
		AcclZone:          "America/Vancouver",
		ReferenceZone:     "America/Vancouver",
		TimeFormat:        "24h",
		Theme:             "light",
		LastSectors:       1,
		LastAvgSectorTime: domain.AvgSectorUnder30,
	}
}

// NormalizePreferences fills missing or invalid values with defaults so a
// partially filled or hand-edited file still behaves. Unknown zone names
// fall back rather than erroring: a bad preferences file must not brick
// the engine.
func NormalizePreferences(p *domain.UserPreferences) {
	def := DefaultPreferences()
	if _, err := domain.ParseRegulator(string(p.Regulator)); err != nil {
		p.Regulator = def.Regulator
	}
	if !validZone(p.AcclZone) {
		p.AcclZone = def.AcclZone
	}
	if !validZone(p.ReferenceZone) {
		p.ReferenceZone = def.ReferenceZone
	}
	if p.TimeFormat != "24h" && p.TimeFormat != "12h" {
		p.TimeFormat = def.TimeFormat
	}
	if p.Theme != "light" && p.Theme != "dark" {
		p.Theme = def.Theme
	}
	if p.LastSectors < 1 {
		p.LastSectors = def.LastSectors
	}
	if _, err := domain.ParseAvgSectorTime(string(p.LastAvgSectorTime)); err != nil {
		p.LastAvgSectorTime = def.LastAvgSectorTime
	}
}

// LoadPreferences reads the YAML preferences file at path. A missing file
// is created with defaults and 0600 permissions; an existing one is
// unmarshalled and normalized.
func LoadPreferences(path string) (domain.UserPreferences, error) {
	if path == "" {
		return domain.UserPreferences{}, errors.New("preferences path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			prefs := DefaultPreferences()
			if err := SavePreferences(path, prefs); err != nil {
				return prefs, err
			}
			return prefs, nil
		}
		return domain.UserPreferences{}, err
	}

	var prefs domain.UserPreferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return domain.UserPreferences{}, err
	}
	NormalizePreferences(&prefs)
	return prefs, nil
}

// SavePreferences writes the preferences atomically via a temp file and
// rename, ending with 0600 permissions.
func SavePreferences(path string, prefs domain.UserPreferences) error {
	if path == "" {
		return errors.New("preferences path is empty")
	}
	NormalizePreferences(&prefs)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".flightduty-prefs-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func validZone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}
