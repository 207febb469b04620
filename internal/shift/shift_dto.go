package shift

import "time"

// LocationSampleRequest is the raw GPS fix from the mobile client.
// Any client-computed distance is deliberately absent from this shape.
// Latitude and longitude are pointers so a legal zero coordinate
// (equator, Greenwich meridian) survives the required check.
type LocationSampleRequest struct {
	Latitude             *float64  `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude            *float64  `json:"longitude" binding:"required,min=-180,max=180"`
	AccuracyMeters       float64   `json:"accuracy_meters" binding:"required,gt=0"`
	SampleTimestamp      time.Time `json:"sample_timestamp" binding:"required"`
	SpeedMetersPerSecond *float64  `json:"speed_mps,omitempty"`
	HeadingDegrees       *float64  `json:"heading_degrees,omitempty"`
	AltitudeMeters       *float64  `json:"altitude_meters,omitempty"`
}

type ClockInRequest struct {
	Sample            LocationSampleRequest `json:"sample" binding:"required"`
	OverrideRequestID *string               `json:"override_request_id,omitempty"`
}

type ClockOutRequest struct {
	Sample            LocationSampleRequest `json:"sample" binding:"required"`
	Notes             *string               `json:"notes,omitempty"`
	OverrideRequestID *string               `json:"override_request_id,omitempty"`
}

type ResolveRequest struct {
	Resolution     string     `json:"resolution" binding:"required"`
	ActualClockOut *time.Time `json:"actual_clock_out,omitempty"`
	Note           *string    `json:"note,omitempty"`
}

type VerificationResponse struct {
	Verified       bool     `json:"verified"`
	DistanceMeters float64  `json:"distance_meters"`
	AccuracyMeters float64  `json:"accuracy_meters"`
	Flags          []string `json:"flags,omitempty"`
	SampleAt       string   `json:"sample_at,omitempty"`
}

type DurationResponse struct {
	TotalMinutes    int    `json:"total_minutes"`
	BreakMinutes    int    `json:"break_minutes"`
	NetMinutes      int    `json:"net_minutes"`
	Formatted       string `json:"formatted"`
	CrossedMidnight bool   `json:"crossed_midnight"`
	AttributedDate  string `json:"attributed_date"`
}

type ShiftResponse struct {
	ID                   string                `json:"id"`
	UserID               string                `json:"user_id"`
	OrganizationID       string                `json:"organization_id"`
	LocationID           *string               `json:"location_id,omitempty"`
	Status               string                `json:"status"`
	ShiftDate            string                `json:"shift_date"`
	ClockInAt            string                `json:"clock_in_at"`
	ClockOutAt           *string               `json:"clock_out_at,omitempty"`
	ClockInVerification  VerificationResponse  `json:"clock_in_verification"`
	ClockOutVerification *VerificationResponse `json:"clock_out_verification,omitempty"`
	Duration             *DurationResponse     `json:"duration,omitempty"`
	IsRevised            bool                  `json:"is_revised"`
	ResolutionNote       *string               `json:"resolution_note,omitempty"`
	Notes                *string               `json:"notes,omitempty"`
}
