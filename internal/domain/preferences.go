package domain

// UserPreferences is the explicit value object carrying the settings the
// presentation layer persists. The engine never reads ambient storage; the
// caller passes the current preferences into every validation and synthesis
// call that needs them.
type UserPreferences struct {
	// Regulator selects the active rule tables.
	Regulator Regulator `yaml:"regulator"`

	// AcclZone is the global default acclimatization zone, used for any duty
	// that does not carry its own.
	AcclZone string `yaml:"acclimatization_zone"`

	// ReferenceZone anchors local calendar days (day windows, the local
	// night rest clock bounds) when no duty-specific zone applies.
	ReferenceZone string `yaml:"reference_zone"`

	// TimeFormat is "24h" or "12h"; display only.
	TimeFormat string `yaml:"time_format"`

	// Theme is "light" or "dark"; carried for the presentation layer,
	// never consulted by the engine.
	Theme string `yaml:"theme"`

	// LastSectors and LastAvgSectorTime pre-fill the duty form.
	LastSectors       int           `yaml:"last_sectors"`
	LastAvgSectorTime AvgSectorTime `yaml:"last_avg_sector_time"`
}

// DutyInput is the candidate duty record collected by the presentation layer.
// Date and time components arrive as the form strings the user typed; the
// validator owns parsing so that missing-field and bad-format failures follow
// the same error taxonomy as the regulatory checks.
type DutyInput struct {
	StartDate string // "2006-01-02"
	StartTime string // "15:04"
	EndDate   string
	EndTime   string

	Sectors       int
	AvgSectorTime AvgSectorTime

	// AcclZone overrides the global acclimatization zone when non-empty.
	AcclZone string

	RestType RestType
}
