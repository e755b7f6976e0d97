package domain

import (
	"time"

	"github.com/google/uuid"
)

type Visit struct {
	ID          uuid.UUID   `json:"id" db:"visit_id"`
	WellID      uuid.UUID   `json:"well_id" db:"well_id"`
	AnalystID   uuid.UUID   `json:"analyst_id" db:"analyst_id"`
	ScheduledAt time.Time   `json:"scheduled_at" db:"scheduled_at"`
	Status      VisitStatus `json:"status" db:"status"`
	Notes       *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`

	Analyst *User `json:"analyst,omitempty" db:"-"`
	Well    *Well `json:"well,omitempty" db:"-"`
}

type VisitStatus string

const (
	VisitScheduled VisitStatus = "SCHEDULED"
	VisitCompleted VisitStatus = "COMPLETED"
	VisitCancelled VisitStatus = "CANCELLED"
)

type ScheduleVisitInput struct {
	WellID      uuid.UUID `json:"well_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateVisitInput struct {
	ScheduledAt *time.Time   `json:"scheduled_at,omitempty"`
	Status      *VisitStatus `json:"status,omitempty" validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED"`
	Notes       **string     `json:"notes,omitempty"`
}
