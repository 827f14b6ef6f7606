package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/scopophobic/vinciUI/internal/tiers"
	"github.com/scopophobic/vinciUI/internal/usage"
)

// outcome of a quota check for a single pending action
type Result struct {
	Allowed        bool       `json:"allowed"`
	Message        string     `json:"message,omitempty"`
	ResetTime      *time.Time `json:"resetTime,omitempty"`
	RemainingQuota int        `json:"remainingQuota"`
}

// enforces per-tier quotas and cooldowns against the usage store
type Limiter struct {
	store usage.Store

	// overridable for tests
	Now func() time.Time
}

func New(store usage.Store) *Limiter {
	return &Limiter{store: store, Now: time.Now}
}

// decides whether the user may perform the action right now. When the
// returned error is non-nil the store could not be consulted and the
// result always denies: quota checks fail closed.
func (l *Limiter) Check(ctx context.Context, userID string, tier tiers.Tier, action usage.Action) (Result, error) {
	limits := tiers.LimitsFor(tier)

	switch action {
	case usage.ActionImage:
		return l.checkImage(ctx, userID, limits)
	case usage.ActionEnhancement:
		return l.checkEnhancement(ctx, userID, limits)
	default:
		return Result{Allowed: false, Message: "Invalid action type"}, nil
	}
}

func (l *Limiter) checkImage(ctx context.Context, userID string, limits tiers.Limits) (Result, error) {
	record, err := l.store.Today(ctx, userID)
	if err != nil {
		return failClosed(), err
	}

	used := record.ImagesGenerated

	if limits.LifetimeImageCap {
		// the cap counts every image the user has ever generated and
		// never resets, so there is no reset time to report
		total, err := l.store.LifetimeImages(ctx, userID)
		if err != nil {
			return failClosed(), err
		}

		used = total

		if total >= limits.ImagesPerDay {
			return Result{
				Allowed:        false,
				Message:        fmt.Sprintf("Free tier image limit reached (%d total). Upgrade for daily generations.", limits.ImagesPerDay),
				RemainingQuota: 0,
			}, nil
		}
	} else if record.ImagesGenerated >= limits.ImagesPerDay {
		reset := usage.NextReset(l.Now())
		return Result{
			Allowed:        false,
			Message:        fmt.Sprintf("Daily image generation limit reached (%d). Resets at midnight.", limits.ImagesPerDay),
			ResetTime:      &reset,
			RemainingQuota: 0,
		}, nil
	}

	if limits.Cooldown > 0 {
		last, err := l.store.LastSuccess(ctx, userID)
		if err != nil {
			return failClosed(), err
		}

		if last != nil {
			elapsed := l.Now().Sub(*last)

			if elapsed < limits.Cooldown {
				remaining := limits.Cooldown - elapsed
				waitMinutes := int((remaining + time.Minute - 1) / time.Minute)
				ready := last.Add(limits.Cooldown)

				return Result{
					Allowed:        false,
					Message:        fmt.Sprintf("Please wait %d minutes before next generation (free tier cooldown).", waitMinutes),
					ResetTime:      &ready,
					RemainingQuota: limits.ImagesPerDay - used,
				}, nil
			}
		}
	}

	return Result{
		Allowed:        true,
		RemainingQuota: limits.ImagesPerDay - used - 1,
	}, nil
}

func (l *Limiter) checkEnhancement(ctx context.Context, userID string, limits tiers.Limits) (Result, error) {
	record, err := l.store.Today(ctx, userID)
	if err != nil {
		return failClosed(), err
	}

	if record.PromptsEnhanced >= limits.EnhancementsDay {
		reset := usage.NextReset(l.Now())
		return Result{
			Allowed:        false,
			Message:        fmt.Sprintf("Daily prompt enhancement limit reached (%d). Resets at midnight.", limits.EnhancementsDay),
			ResetTime:      &reset,
			RemainingQuota: 0,
		}, nil
	}

	return Result{
		Allowed:        true,
		RemainingQuota: limits.EnhancementsDay - record.PromptsEnhanced - 1,
	}, nil
}

func failClosed() Result {
	return Result{Allowed: false, Message: "Rate limit check failed"}
}
