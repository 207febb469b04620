package orgpolicy_test

import (
	"context"
	"testing"
	"time"

	"geoshift/internal/config"
	"geoshift/internal/orgpolicy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePolicyRepo struct {
	row *orgpolicy.Override
	err error
}

func (f *fakePolicyRepo) FindByOrganization(ctx context.Context, organizationID string) (*orgpolicy.Override, error) {
	return f.row, f.err
}

func testDefaults() config.Config {
	return config.Config{
		StaleThresholdHours:      16,
		BreakThresholdHours:      6,
		BreakMinutes:             30,
		MaxAccuracyMeters:        100,
		MaxSampleAgeMilliseconds: 120000,
		ReasonMinLength:          10,
		DefaultTimezone:          "UTC",
	}
}

func TestResolve_DefaultsWhenNoOverride(t *testing.T) {
	r := orgpolicy.NewResolver(&fakePolicyRepo{}, testDefaults())

	resolved, err := r.Resolve(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, 16*time.Hour, resolved.StaleThreshold)
	assert.Equal(t, 6, resolved.BreakPolicy.ThresholdHours)
	assert.Equal(t, 30, resolved.BreakPolicy.BreakMinutes)
	assert.Equal(t, 100.0, resolved.GeofencePolicy.MaxAcceptableAccuracyMeters)
	assert.Equal(t, 2*time.Minute, resolved.GeofencePolicy.MaxTimestampAge)
	assert.Equal(t, 10, resolved.ReasonMinLength)
	assert.Equal(t, time.UTC, resolved.Location)
}

func TestResolve_OverridesApply(t *testing.T) {
	tz := "Asia/Jakarta"
	staleHours := 12
	breakMinutes := 45
	repo := &fakePolicyRepo{row: &orgpolicy.Override{
		Timezone:            &tz,
		StaleThresholdHours: &staleHours,
		BreakMinutes:        &breakMinutes,
	}}

	r := orgpolicy.NewResolver(repo, testDefaults())
	resolved, err := r.Resolve(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, 12*time.Hour, resolved.StaleThreshold)
	assert.Equal(t, 45, resolved.BreakPolicy.BreakMinutes)
	// Non-overridden values keep the defaults.
	assert.Equal(t, 6, resolved.BreakPolicy.ThresholdHours)
	assert.Equal(t, "Asia/Jakarta", resolved.Location.String())
}

func TestResolve_BadTimezoneFallsBackToUTC(t *testing.T) {
	tz := "Mars/Olympus_Mons"
	repo := &fakePolicyRepo{row: &orgpolicy.Override{Timezone: &tz}}

	r := orgpolicy.NewResolver(repo, testDefaults())
	resolved, err := r.Resolve(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, resolved.Location)
}
