package orgpolicy

import (
	"context"
	"time"

	"geoshift/internal/config"
	"geoshift/internal/geofence"
	"geoshift/internal/worktime"

	"go.uber.org/zap"
)

// Resolved is the effective policy for one organization: defaults with
// the organization's overrides applied, in the shapes the domain
// packages consume.
type Resolved struct {
	Location        *time.Location
	StaleThreshold  time.Duration
	BreakPolicy     worktime.BreakPolicy
	GeofencePolicy  geofence.Policy
	ReasonMinLength int
	Attribution     worktime.AttributionPolicy
}

//go:generate mockgen -source=policy_resolver.go -destination=mock/policy_resolver_mock.go -package=mock
type Resolver interface {
	Resolve(ctx context.Context, organizationID string) (Resolved, error)
}

type resolver struct {
	repo     Repository
	defaults config.Config
	logger   *zap.Logger
}

func NewResolver(repo Repository, defaults config.Config) Resolver {
	return &resolver{
		repo:     repo,
		defaults: defaults,
		logger:   zap.L().Named("orgpolicy.resolver"),
	}
}

func (r *resolver) Resolve(ctx context.Context, organizationID string) (Resolved, error) {
	override, err := r.repo.FindByOrganization(ctx, organizationID)
	if err != nil {
		return Resolved{}, err
	}

	resolved := Resolved{
		StaleThreshold: time.Duration(r.defaults.StaleThresholdHours) * time.Hour,
		BreakPolicy: worktime.BreakPolicy{
			ThresholdHours: r.defaults.BreakThresholdHours,
			BreakMinutes:   r.defaults.BreakMinutes,
		},
		GeofencePolicy: geofence.Policy{
			MaxAcceptableAccuracyMeters: r.defaults.MaxAccuracyMeters,
			RequireRecentTimestamp:      true,
			MaxTimestampAge:             time.Duration(r.defaults.MaxSampleAgeMilliseconds) * time.Millisecond,
		},
		ReasonMinLength: r.defaults.ReasonMinLength,
		Attribution:     worktime.AttributeToStartDate,
	}

	tzName := r.defaults.DefaultTimezone
	if override != nil {
		if override.Timezone != nil && *override.Timezone != "" {
			tzName = *override.Timezone
		}
		if override.StaleThresholdHours != nil {
			resolved.StaleThreshold = time.Duration(*override.StaleThresholdHours) * time.Hour
		}
		if override.BreakThresholdHours != nil {
			resolved.BreakPolicy.ThresholdHours = *override.BreakThresholdHours
		}
		if override.BreakMinutes != nil {
			resolved.BreakPolicy.BreakMinutes = *override.BreakMinutes
		}
		if override.MaxAccuracyMeters != nil {
			resolved.GeofencePolicy.MaxAcceptableAccuracyMeters = *override.MaxAccuracyMeters
		}
		if override.MaxSampleAgeMs != nil {
			resolved.GeofencePolicy.MaxTimestampAge = time.Duration(*override.MaxSampleAgeMs) * time.Millisecond
		}
		if override.ReasonMinLength != nil {
			resolved.ReasonMinLength = *override.ReasonMinLength
		}
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		r.logger.Warn("unknown organization timezone, falling back to UTC",
			zap.String("organization_id", organizationID),
			zap.String("timezone", tzName),
		)
		loc = time.UTC
	}
	resolved.Location = loc

	return resolved, nil
}
