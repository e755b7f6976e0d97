package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidParameter marks measurement values that are not numeric.
var ErrInvalidParameter = errors.New("invalid parameter value")

// Parameters is the fixed set of water-quality measurements collected during a
// sampling event. Every field is optional; a nil value means the measurement
// was not taken.
type Parameters struct {
	AirTemperature       *float64 `json:"air_temperature,omitempty" db:"air_temperature"`
	SampleTemperature    *float64 `json:"sample_temperature,omitempty" db:"sample_temperature"`
	PH                   *float64 `json:"ph,omitempty" db:"ph"`
	Alkalinity           *float64 `json:"alkalinity,omitempty" db:"alkalinity"`
	Acidity              *float64 `json:"acidity,omitempty" db:"acidity"`
	Color                *float64 `json:"color,omitempty" db:"color"`
	Turbidity            *float64 `json:"turbidity,omitempty" db:"turbidity"`
	Conductivity         *float64 `json:"conductivity,omitempty" db:"conductivity"`
	TotalDissolvedSolids *float64 `json:"tds,omitempty" db:"tds"`
	TotalSuspendedSolids *float64 `json:"tss,omitempty" db:"tss"`
	TotalChlorine        *float64 `json:"total_chlorine,omitempty" db:"total_chlorine"`
	FreeChlorine         *float64 `json:"free_chlorine,omitempty" db:"free_chlorine"`
	TotalColiforms       *float64 `json:"total_coliforms,omitempty" db:"total_coliforms"`
	EColi                *float64 `json:"ecoli,omitempty" db:"ecoli"`
}

// ParameterInput carries the raw form values as submitted by the mobile client.
// Empty strings mean the measurement was skipped.
type ParameterInput struct {
	AirTemperature       string `json:"air_temperature"`
	SampleTemperature    string `json:"sample_temperature"`
	PH                   string `json:"ph"`
	Alkalinity           string `json:"alkalinity"`
	Acidity              string `json:"acidity"`
	Color                string `json:"color"`
	Turbidity            string `json:"turbidity"`
	Conductivity         string `json:"conductivity"`
	TotalDissolvedSolids string `json:"tds"`
	TotalSuspendedSolids string `json:"tss"`
	TotalChlorine        string `json:"total_chlorine"`
	FreeChlorine         string `json:"free_chlorine"`
	TotalColiforms       string `json:"total_coliforms"`
	EColi                string `json:"ecoli"`
}

// Parse validates and converts the raw form values. Unparseable values are
// rejected here so the stored record only ever carries numbers.
func (in ParameterInput) Parse() (Parameters, error) {
	var p Parameters

	fields := []struct {
		name string
		raw  string
		dest **float64
	}{
		{"air_temperature", in.AirTemperature, &p.AirTemperature},
		{"sample_temperature", in.SampleTemperature, &p.SampleTemperature},
		{"ph", in.PH, &p.PH},
		{"alkalinity", in.Alkalinity, &p.Alkalinity},
		{"acidity", in.Acidity, &p.Acidity},
		{"color", in.Color, &p.Color},
		{"turbidity", in.Turbidity, &p.Turbidity},
		{"conductivity", in.Conductivity, &p.Conductivity},
		{"tds", in.TotalDissolvedSolids, &p.TotalDissolvedSolids},
		{"tss", in.TotalSuspendedSolids, &p.TotalSuspendedSolids},
		{"total_chlorine", in.TotalChlorine, &p.TotalChlorine},
		{"free_chlorine", in.FreeChlorine, &p.FreeChlorine},
		{"total_coliforms", in.TotalColiforms, &p.TotalColiforms},
		{"ecoli", in.EColi, &p.EColi},
	}

	for _, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Parameters{}, fmt.Errorf("%w: %s %q is not a number", ErrInvalidParameter, f.name, f.raw)
		}
		v := value
		*f.dest = &v
	}

	return p, nil
}

type AnalysisRequest struct {
	ID              uuid.UUID     `json:"id" db:"request_id"`
	AnalystID       uuid.UUID     `json:"analyst_id" db:"analyst_id"`
	WellID          uuid.UUID     `json:"well_id" db:"well_id"`
	SampledAt       time.Time     `json:"sampled_at" db:"sampled_at"`
	Outcome         SampleOutcome `json:"outcome" db:"outcome"`
	Parameters      `json:"parameters"`
	Status          RequestStatus `json:"status" db:"status"`
	ReviewedBy      *uuid.UUID    `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt      *time.Time    `json:"reviewed_at,omitempty" db:"reviewed_at"`
	AnalysisID      *uuid.UUID    `json:"analysis_id,omitempty" db:"analysis_id"`
	RejectionReason *string       `json:"rejection_reason,omitempty" db:"rejection_reason"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`

	Analyst *User `json:"analyst,omitempty" db:"-"`
	Well    *Well `json:"well,omitempty" db:"-"`
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

func (s RequestStatus) IsValid() bool {
	return s == RequestPending || s == RequestApproved || s == RequestRejected
}

// SampleOutcome is the field-test verdict asserted by the submitting analyst.
// It is independent from the administrative approve/reject decision.
type SampleOutcome string

const (
	OutcomePassed SampleOutcome = "PASSED"
	OutcomeFailed SampleOutcome = "FAILED"
)

func (o SampleOutcome) IsValid() bool {
	return o == OutcomePassed || o == OutcomeFailed
}

type CreateAnalysisRequestInput struct {
	WellID     uuid.UUID      `json:"well_id" validate:"required"`
	SampledAt  time.Time      `json:"sampled_at" validate:"required"`
	Outcome    SampleOutcome  `json:"outcome" validate:"required,oneof=PASSED FAILED"`
	Parameters ParameterInput `json:"parameters"`
}

type ReviewAnalysisRequestInput struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// Analysis is the canonical approved water-quality record. It is only ever
// produced by the approval of an AnalysisRequest.
type Analysis struct {
	ID         uuid.UUID     `json:"id" db:"analysis_id"`
	WellID     uuid.UUID     `json:"well_id" db:"well_id"`
	AnalystID  uuid.UUID     `json:"analyst_id" db:"analyst_id"`
	ApprovedBy uuid.UUID     `json:"approved_by" db:"approved_by"`
	SampledAt  time.Time     `json:"sampled_at" db:"sampled_at"`
	Outcome    SampleOutcome `json:"outcome" db:"outcome"`
	Parameters `json:"parameters"`
	Status     AnalysisStatus `json:"status" db:"status"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`

	Analyst *User `json:"analyst,omitempty" db:"-"`
	Well    *Well `json:"well,omitempty" db:"-"`
}

type AnalysisStatus string

const (
	AnalysisActive   AnalysisStatus = "ACTIVE"
	AnalysisArchived AnalysisStatus = "ARCHIVED"
)

type AnalysisFilter struct {
	WellID    *uuid.UUID
	AnalystID *uuid.UUID
	Outcome   *SampleOutcome
	From      *time.Time
	To        *time.Time
}
