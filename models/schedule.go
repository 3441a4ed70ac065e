package models

import "time"

type ScheduleType string

const (
	ScheduleTypeRoundRobin ScheduleType = "round_robin"
	ScheduleTypeKnockout   ScheduleType = "knockout"
)

type Schedule struct {
	ID           int          `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	ScheduleType ScheduleType `json:"schedule_type" db:"schedule_type"`
	SportID      int          `json:"sport_id" db:"sport_id"`
	StartDate    time.Time    `json:"start_date" db:"start_date"`
	EndDate      *time.Time   `json:"end_date,omitempty" db:"end_date"`
	IsActive     bool         `json:"is_active" db:"is_active"`
	Description  *string      `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}
