package geofence

import (
	"math"
	"net/http"
	"time"

	"geoshift/internal/shared/apperror"
)

const earthRadiusMeters = 6371000.0

var ErrInvalidSample = apperror.New(
	apperror.CodeInvalidInput,
	"location sample has out-of-range coordinates or missing accuracy",
	http.StatusBadRequest,
)

// LocationSample is a single GPS fix reported by the mobile client.
// The client-reported distance is never part of this shape; distance
// is always recomputed server-side.
type LocationSample struct {
	Latitude             float64
	Longitude            float64
	AccuracyMeters       float64
	SampleTimestamp      time.Time
	SpeedMetersPerSecond *float64
	HeadingDegrees       *float64
	AltitudeMeters       *float64
}

// Policy carries the anti-spoofing thresholds for one organization.
type Policy struct {
	MaxAcceptableAccuracyMeters float64
	RequireRecentTimestamp      bool
	MaxTimestampAge             time.Duration
}

// Flag is an advisory marker attached to a verification. The set is
// open-ended so further heuristics (implausible speed between samples,
// mock-provider detection) can be added without changing the contract.
type Flag string

const (
	FlagAccuracyTooLow Flag = "accuracy_too_low"
	FlagTimestampStale Flag = "timestamp_stale"
	FlagOutOfRange     Flag = "out_of_range"
)

// Blocking reports whether the flag alone forces rejection. Being out
// of range is reported distinctly so callers can route the employee to
// the override workflow instead of hard-failing.
func (f Flag) Blocking() bool {
	switch f {
	case FlagAccuracyTooLow, FlagTimestampStale:
		return true
	default:
		return false
	}
}

// Result is the outcome of verifying one sample against one target.
type Result struct {
	Verified       bool      `json:"verified"`
	DistanceMeters float64   `json:"distance_meters"`
	AccuracyMeters float64   `json:"accuracy_meters"`
	SampleAt       time.Time `json:"sample_at"`
	Flags          []Flag    `json:"flags,omitempty"`
}

func (r Result) Has(flag Flag) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

func (r Result) HasBlockingFlag() bool {
	for _, f := range r.Flags {
		if f.Blocking() {
			return true
		}
	}
	return false
}

// OutOfRangeOnly reports that the sample failed solely on distance,
// the case eligible for an out-of-range override request.
func (r Result) OutOfRangeOnly() bool {
	return !r.Verified && r.Has(FlagOutOfRange) && !r.HasBlockingFlag()
}

// Verifier classifies location samples. It holds only a clock so the
// verification itself stays a pure function of its inputs.
type Verifier struct {
	now func() time.Time
}

func NewVerifier() *Verifier {
	return &Verifier{now: time.Now}
}

// NewVerifierAt pins the clock, for tests.
func NewVerifierAt(now func() time.Time) *Verifier {
	return &Verifier{now: now}
}

// Verify computes the authoritative distance between the sample and the
// target center and classifies the sample against the policy.
func (v *Verifier) Verify(sample LocationSample, target *Target, policy Policy) (Result, error) {
	if err := validateSample(sample); err != nil {
		return Result{}, err
	}

	distance := Haversine(sample.Latitude, sample.Longitude, target.Latitude, target.Longitude)
	inRange := distance <= target.RadiusMeters

	var flags []Flag
	if policy.MaxAcceptableAccuracyMeters > 0 && sample.AccuracyMeters > policy.MaxAcceptableAccuracyMeters {
		flags = append(flags, FlagAccuracyTooLow)
	}
	if policy.RequireRecentTimestamp && v.now().Sub(sample.SampleTimestamp) > policy.MaxTimestampAge {
		flags = append(flags, FlagTimestampStale)
	}
	if !inRange {
		flags = append(flags, FlagOutOfRange)
	}

	result := Result{
		Verified:       inRange && len(flags) == 0,
		DistanceMeters: distance,
		AccuracyMeters: sample.AccuracyMeters,
		SampleAt:       sample.SampleTimestamp,
		Flags:          flags,
	}
	return result, nil
}

// VerifyNearest runs Verify against every target and returns the result
// for the closest one. Targets is assumed non-empty.
func (v *Verifier) VerifyNearest(sample LocationSample, targets []Target, policy Policy) (Result, *Target, error) {
	var (
		best       Result
		bestTarget *Target
	)
	for i := range targets {
		res, err := v.Verify(sample, &targets[i], policy)
		if err != nil {
			return Result{}, nil, err
		}
		if bestTarget == nil || res.DistanceMeters < best.DistanceMeters {
			best = res
			bestTarget = &targets[i]
		}
	}
	return best, bestTarget, nil
}

func validateSample(sample LocationSample) error {
	if sample.Latitude < -90 || sample.Latitude > 90 {
		return ErrInvalidSample
	}
	if sample.Longitude < -180 || sample.Longitude > 180 {
		return ErrInvalidSample
	}
	if sample.AccuracyMeters <= 0 {
		return ErrInvalidSample
	}
	return nil
}

// Haversine returns the great-circle distance in meters between two
// points on a spherical Earth.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
