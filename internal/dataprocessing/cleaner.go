package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jstetich/CBEP-OA-1/internal/config"
	apperrors "github.com/jstetich/CBEP-OA-1/internal/errors"
	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// Cleaner applies the curated cleaning policy to a loaded observation
// series: informationless duplicate rows are dropped, fields inside
// exclusion windows are nulled, and the single known-bad record is
// removed by exact timestamp.
type Cleaner struct {
	policy *config.CleaningPolicy
	logger *slog.Logger
}

// NewCleaner creates a cleaner for the given policy.
func NewCleaner(policy *config.CleaningPolicy, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{policy: policy, logger: logger}
}

// Clean runs the full cleaning pass and returns a new series. The input
// slice is not modified. Cleaning is idempotent: running it on already
// cleaned data returns the same rows.
func (c *Cleaner) Clean(ctx context.Context, obs []domain.Observation) ([]domain.Observation, error) {
	c.logger.InfoContext(ctx, "cleaning observation series",
		slog.Int("rows", len(obs)),
		slog.Int("windows", len(c.policy.Windows)))

	// Duplicate-timestamp artifacts from deployment overlaps carry no
	// sensor data at all; they are dropped, never merged.
	cleaned, dropped := dropEmptyRows(obs)
	c.logger.InfoContext(ctx, "dropped empty duplicate rows",
		slog.Int("dropped", dropped))

	nulled := c.applyWindows(cleaned)

	// Nulling can leave rows with nothing left to say.
	cleaned, dropped = dropEmptyRows(cleaned)
	c.logger.InfoContext(ctx, "applied exclusion windows",
		slog.Int("fields_nulled", nulled),
		slog.Int("rows_dropped", dropped))

	cleaned, err := c.removeBadRecord(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	if err := checkUniqueTimestamps(cleaned); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "cleaning complete",
		slog.Int("rows_in", len(obs)),
		slog.Int("rows_out", len(cleaned)))

	return cleaned, nil
}

// dropEmptyRows removes rows whose sensor fields are all NA.
func dropEmptyRows(obs []domain.Observation) ([]domain.Observation, int) {
	out := make([]domain.Observation, 0, len(obs))
	for _, o := range obs {
		if o.SensorEmpty() {
			continue
		}
		out = append(out, o)
	}
	return out, len(obs) - len(out)
}

// applyWindows nulls the listed fields of every row inside an exclusion
// window. Removal is by whole-day/range granularity rather than by
// per-observation pH thresholds, which would bias the retained sample.
// Returns the number of field values nulled.
func (c *Cleaner) applyWindows(obs []domain.Observation) int {
	nulled := 0
	for i := range obs {
		for wi := range c.policy.Windows {
			w := &c.policy.Windows[wi]
			if !w.Contains(obs[i].Timestamp) {
				continue
			}
			for _, f := range w.Fields {
				if !domain.IsNA(obs[i].Field(f)) {
					nulled++
				}
				obs[i].SetField(f, domain.NA())
			}
		}
	}
	return nulled
}

// removeBadRecord drops the configured sensor-malfunction record. The
// record is located by exact timestamp, and its absence is an error:
// removing "whichever row has the lowest pH" would silently delete a
// different row whenever upstream data changes.
func (c *Cleaner) removeBadRecord(ctx context.Context, obs []domain.Observation) ([]domain.Observation, error) {
	badTS, ok := c.policy.BadRecordTime()
	if !ok {
		return obs, nil
	}

	idx := -1
	for i := range obs {
		if obs[i].Timestamp.Equal(badTS) {
			idx = i
			break
		}
	}
	if idx == -1 {
		// The record may already have been removed by a previous
		// cleaning pass or swallowed by an exclusion window; either way
		// there is nothing left to remove and cleaning stays idempotent
		// only if this is not fatal when the timestamp is entirely
		// outside the series. Distinguish the two cases.
		if withinSeries(obs, badTS) {
			return obs, nil
		}
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("bad record %s", badTS.Format(time.RFC3339))).
			WithContext("hint", "exclusions.yaml bad_record does not match any observation")
	}

	c.logger.InfoContext(ctx, "removed known-bad record",
		slog.String("timestamp", badTS.Format(time.RFC3339)),
		slog.Float64("ph", obs[idx].PH))

	out := make([]domain.Observation, 0, len(obs)-1)
	out = append(out, obs[:idx]...)
	out = append(out, obs[idx+1:]...)
	return out, nil
}

// withinSeries reports whether ts falls inside the time span covered by
// obs, at calendar-day granularity. Used to tell "already removed" apart
// from "never existed". The span must be day-granular: removing a row at
// the edge of the series shrinks the exact span past its own timestamp,
// and a second cleaning pass over that output must still treat the
// record as already removed.
func withinSeries(obs []domain.Observation, ts time.Time) bool {
	if len(obs) == 0 {
		return false
	}
	first, last := obs[0].Timestamp, obs[0].Timestamp
	for _, o := range obs {
		if o.Timestamp.Before(first) {
			first = o.Timestamp
		}
		if o.Timestamp.After(last) {
			last = o.Timestamp
		}
	}
	first = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	last = time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC).
		Add(24*time.Hour - time.Second)
	return !ts.Before(first) && !ts.After(last)
}

// checkUniqueTimestamps enforces the post-cleaning invariant that every
// remaining row has a distinct timestamp.
func checkUniqueTimestamps(obs []domain.Observation) error {
	seen := make(map[time.Time]struct{}, len(obs))
	for _, o := range obs {
		if _, dup := seen[o.Timestamp]; dup {
			return apperrors.NewValidationError(
				fmt.Sprintf("duplicate timestamp %s survived cleaning",
					o.Timestamp.Format(time.RFC3339)))
		}
		seen[o.Timestamp] = struct{}{}
	}
	return nil
}
