package models

import "time"

// Score is the current score for a match. One row per match, superseded in
// place on every update; ScoreUpdate keeps the immutable history.
//
// HomeScore and AwayScore are the sport-agnostic headline pair. They are
// floats because chess reports a draw as 0.5 a side.
type Score struct {
	ID        int     `json:"id" db:"id"`
	MatchID   int     `json:"match_id" db:"match_id"`
	HomeScore float64 `json:"home_score" db:"home_score"`
	AwayScore float64 `json:"away_score" db:"away_score"`
	Period    *string `json:"period,omitempty" db:"period"` // "1st Half", "Set 2", "Q1"

	// AdditionalInfo is the sport-specific payload as a JSON document.
	// Opaque to everything outside the owning scoring handler.
	AdditionalInfo *string `json:"additional_info,omitempty" db:"additional_info"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// ScoreUpdate is one entry in a match's append-only score history.
type ScoreUpdate struct {
	ID          int       `json:"id" db:"id"`
	MatchID     int       `json:"match_id" db:"match_id"`
	HomeScore   float64   `json:"home_score" db:"home_score"`
	AwayScore   float64   `json:"away_score" db:"away_score"`
	Period      *string   `json:"period,omitempty" db:"period"`
	UpdateType  *string   `json:"update_type,omitempty" db:"update_type"` // "goal", "wicket", ...
	Description *string   `json:"description,omitempty" db:"description"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
