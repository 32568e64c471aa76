package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	apperrors "github.com/jstetich/CBEP-OA-1/internal/errors"
	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// Layouts accepted for timestamps in the exclusions file. Date-only
// windows cover the whole day.
const (
	windowTimeLayout = "2006-01-02T15:04"
	windowDateLayout = "2006-01-02"
)

// ExclusionWindow is one manually curated range of untrustworthy data.
// Fields listed here are nulled, not deleted, for every observation whose
// timestamp falls inside [Start, End].
type ExclusionWindow struct {
	Start  string   `yaml:"start" validate:"required"`
	End    string   `yaml:"end" validate:"required"`
	Fields []string `yaml:"fields" validate:"required,min=1"`
	Reason string   `yaml:"reason"`

	start time.Time
	end   time.Time
}

// Contains reports whether ts falls inside the window, endpoints included.
func (w *ExclusionWindow) Contains(ts time.Time) bool {
	return !ts.Before(w.start) && !ts.After(w.end)
}

// CleaningPolicy externalizes the curated exclusion ranges and the single
// known-bad record so the exclusion policy is auditable independent of
// the pipeline code.
type CleaningPolicy struct {
	Windows []ExclusionWindow `yaml:"windows" validate:"dive"`

	// BadRecord identifies the sensor-malfunction outlier by its exact
	// timestamp. Cleaning fails loudly when the record is absent rather
	// than removing whatever row happens to hold the series minimum.
	BadRecord string `yaml:"bad_record"`

	badRecord time.Time
}

// BadRecordTime returns the parsed bad-record timestamp and whether one
// was configured.
func (p *CleaningPolicy) BadRecordTime() (time.Time, bool) {
	return p.badRecord, p.BadRecord != ""
}

// LoadCleaningPolicy reads and validates the exclusions file. A missing
// file is fatal: running the cleaner without the curated policy would
// silently keep known-bad pH data.
func LoadCleaningPolicy(path string) (*CleaningPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to read exclusions file", err).
			WithContext("path", path)
	}

	var policy CleaningPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, apperrors.NewConfigError("failed to parse exclusions file", err).
			WithContext("path", path)
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return &policy, nil
}

// Validate checks structural constraints with the validator and then the
// cross-field rules the tags cannot express.
func (p *CleaningPolicy) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return apperrors.NewConfigError("invalid exclusion policy", err)
	}

	for i := range p.Windows {
		w := &p.Windows[i]

		start, err := parseWindowTime(w.Start, false)
		if err != nil {
			return apperrors.NewValidationError(
				fmt.Sprintf("window %d: invalid start %q", i, w.Start)).
				WithContext("cause", err.Error())
		}
		end, err := parseWindowTime(w.End, true)
		if err != nil {
			return apperrors.NewValidationError(
				fmt.Sprintf("window %d: invalid end %q", i, w.End)).
				WithContext("cause", err.Error())
		}
		if end.Before(start) {
			return apperrors.NewValidationError(
				fmt.Sprintf("window %d: end %s before start %s", i, w.End, w.Start))
		}
		w.start = start
		w.end = end

		for _, f := range w.Fields {
			if !domain.KnownField(f) {
				return apperrors.NewValidationError(
					fmt.Sprintf("window %d: unknown field %q", i, f))
			}
		}
	}

	if p.BadRecord != "" {
		ts, err := parseWindowTime(p.BadRecord, false)
		if err != nil {
			return apperrors.NewValidationError(
				fmt.Sprintf("invalid bad_record timestamp %q", p.BadRecord)).
				WithContext("cause", err.Error())
		}
		p.badRecord = ts
	}

	return nil
}

// parseWindowTime parses either a full timestamp or a bare date. A bare
// date used as a window end extends through the last hour of that day.
func parseWindowTime(s string, endOfDay bool) (time.Time, error) {
	if ts, err := time.ParseInLocation(windowTimeLayout, s, time.UTC); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(windowDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q matches neither %s nor %s",
			s, windowTimeLayout, windowDateLayout)
	}
	if endOfDay {
		ts = ts.Add(24*time.Hour - time.Second)
	}
	return ts, nil
}
