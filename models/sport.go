package models

// SportType controls which kind of participant a sport schedules.
type SportType string

const (
	SportTypeTeam       SportType = "team"
	SportTypeIndividual SportType = "individual"
	SportTypeMixed      SportType = "mixed"
)

type Sport struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SportType SportType `json:"sport_type" db:"sport_type"`

	// Code selects the scoring handler (e.g. "CRICKET"). Sports without a
	// code fall back to name matching and, failing that, generic scoring.
	Code *string `json:"code,omitempty" db:"code"`
}
