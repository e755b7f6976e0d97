package domain

import (
	"time"

	"github.com/google/uuid"
)

type Well struct {
	ID          uuid.UUID  `json:"id" db:"well_id"`
	OwnerID     uuid.UUID  `json:"owner_id" db:"owner_id"`
	Name        string     `json:"name" db:"name"`
	Latitude    float64    `json:"latitude" db:"latitude"`
	Longitude   float64    `json:"longitude" db:"longitude"`
	Address     string     `json:"address" db:"address"`
	DepthMeters *float64   `json:"depth_meters,omitempty" db:"depth_meters"`
	PhotoPath   *string    `json:"-" db:"photo_path"`
	Status      WellStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`

	PhotoURL *string `json:"photo_url,omitempty" db:"-"`
	Owner    *User   `json:"owner,omitempty" db:"-"`
}

type WellStatus string

const (
	WellActive   WellStatus = "ACTIVE"
	WellInactive WellStatus = "INACTIVE"
)

type CreateWellInput struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Latitude    float64  `json:"latitude" validate:"required"`
	Longitude   float64  `json:"longitude" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	DepthMeters *float64 `json:"depth_meters,omitempty"`
}

type UpdateWellInput struct {
	Name        *string     `json:"name,omitempty" validate:"omitempty,min=2"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Address     *string     `json:"address,omitempty"`
	DepthMeters **float64   `json:"depth_meters,omitempty"`
	Status      *WellStatus `json:"status,omitempty"`
}
