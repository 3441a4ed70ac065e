package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
	MatchStatusPostponed MatchStatus = "postponed"
)

type Match struct {
	ID              int         `json:"id" db:"id"`
	MatchNumber     string      `json:"match_number" db:"match_number"` // "M001", "Final-7"
	Round           int         `json:"round" db:"round"`
	ScheduledTime   time.Time   `json:"scheduled_time" db:"scheduled_time"`
	ActualStartTime *time.Time  `json:"actual_start_time,omitempty" db:"actual_start_time"`
	ActualEndTime   *time.Time  `json:"actual_end_time,omitempty" db:"actual_end_time"`
	Status          MatchStatus `json:"status" db:"status"`
	Notes           *string     `json:"notes,omitempty" db:"notes"`

	SportID    int  `json:"sport_id" db:"sport_id"`
	ScheduleID *int `json:"schedule_id,omitempty" db:"schedule_id"`

	// Nil for individual sports; those carry MatchParticipation rows instead.
	HomeTeamID *int `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID *int `json:"away_team_id,omitempty" db:"away_team_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MatchParticipation links a player to a match for individual sports.
type MatchParticipation struct {
	ID       int  `json:"id" db:"id"`
	MatchID  int  `json:"match_id" db:"match_id"`
	PlayerID int  `json:"player_id" db:"player_id"`
	IsHome   bool `json:"is_home" db:"is_home"`
}
