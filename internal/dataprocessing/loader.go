package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jstetich/CBEP-OA-1/internal/errors"
	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// regex for filenames like "casco_2016.csv"
var yearFileRe = regexp.MustCompile(`^casco_(\d{4})\.csv$`)

// Raw deployment files carry _min/_mean/_max/_std/_median aggregate
// columns per sensor; only the median column is retained.
const medianSuffix = "_median"

// timestampColumns lead every deployment file, in this order.
var timestampColumns = []string{"yyyy", "mm", "dd", "hh"}

// DiscoverYears scans dir for per-year deployment files and returns the
// years found, ascending.
func DiscoverYears(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read data directory", err).
			WithContext("dir", dir)
	}

	var years []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := yearFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)

	if len(years) == 0 {
		return nil, apperrors.NewNotFoundError("deployment files").
			WithContext("dir", dir).
			WithContext("pattern", yearFileRe.String())
	}

	// A hole in the year range is more often a misplaced file than a
	// skipped deployment; flag it but let the run proceed.
	for _, gap := range missingYears(years) {
		slog.Warn("No deployment file for year inside discovered range",
			slog.Int("year", gap),
			slog.String("dir", dir))
	}

	return years, nil
}

// missingYears returns the years absent between the first and last
// entries of a sorted, non-empty year list.
func missingYears(years []int) []int {
	var gaps []int
	for i := 0; i < len(years)-1; i++ {
		for y := years[i] + 1; y < years[i+1]; y++ {
			gaps = append(gaps, y)
		}
	}
	return gaps
}

// YearFilePath returns the deployment file path for the given year.
func YearFilePath(dir string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("casco_%d.csv", year))
}

// LoadYears reads the deployment file for each year in order and
// concatenates the observations, preserving row order within and across
// years. A missing or malformed year file is fatal: this is an offline
// batch pipeline and a partial record would silently bias every
// downstream statistic.
func LoadYears(dir string, years []int) ([]domain.Observation, error) {
	var all []domain.Observation
	for _, year := range years {
		path := YearFilePath(dir, year)
		obs, err := LoadYearFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading year %d: %w", year, err)
		}
		slog.Info("Loaded deployment file",
			slog.Int("year", year),
			slog.String("path", path),
			slog.Int("rows", len(obs)))
		all = append(all, obs...)
	}
	return all, nil
}

// LoadYearFile reads one per-year deployment file. Columns whose suffix
// is not _median are discarded; the suffix is stripped from retained
// columns so downstream code sees plain sensor names.
func LoadYearFile(path string) ([]domain.Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open deployment file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read header row", err).
			WithContext("path", path)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var obs []domain.Observation
	rowNum := 1
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("failed to read row %d", rowNum+1), err).
				WithContext("path", path)
		}
		rowNum++

		o, err := parseRow(row, columns)
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("row %d", rowNum), err).
				WithContext("path", path)
		}
		obs = append(obs, o)
	}

	return obs, nil
}

// columnMap records where the timestamp parts and each retained sensor
// column sit in a deployment file.
type columnMap struct {
	timestamp map[string]int // yyyy/mm/dd/hh -> index
	sensors   map[string]int // canonical field name -> index
}

// mapColumns builds the column map from a header row. Aggregate columns
// other than _median are skipped; a _median column for an unrecognized
// sensor is skipped with a warning rather than treated as fatal, since
// deployment files occasionally carry extra instrument channels.
func mapColumns(header []string) (*columnMap, error) {
	cm := &columnMap{
		timestamp: make(map[string]int),
		sensors:   make(map[string]int),
	}

	for i, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))

		isTimestamp := false
		for _, tc := range timestampColumns {
			if name == tc {
				cm.timestamp[tc] = i
				isTimestamp = true
				break
			}
		}
		if isTimestamp {
			continue
		}

		if !strings.HasSuffix(name, medianSuffix) {
			continue // min/mean/max/std aggregates are discarded
		}
		sensor := strings.TrimSuffix(name, medianSuffix)
		if !domain.KnownField(sensor) {
			slog.Warn("Skipping unrecognized median column",
				slog.String("column", name))
			continue
		}
		cm.sensors[sensor] = i
	}

	for _, tc := range timestampColumns {
		if _, ok := cm.timestamp[tc]; !ok {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("missing timestamp column %q", tc), nil)
		}
	}
	if len(cm.sensors) == 0 {
		return nil, apperrors.NewParsingError("no median sensor columns found", nil)
	}

	return cm, nil
}

// parseRow converts one data row into an Observation.
func parseRow(row []string, cm *columnMap) (domain.Observation, error) {
	parts := make(map[string]int, len(timestampColumns))
	for _, tc := range timestampColumns {
		idx := cm.timestamp[tc]
		if idx >= len(row) {
			return domain.Observation{}, fmt.Errorf("row too short for column %q", tc)
		}
		v, err := strconv.Atoi(strings.TrimSpace(row[idx]))
		if err != nil {
			return domain.Observation{}, fmt.Errorf("invalid %s value %q", tc, row[idx])
		}
		parts[tc] = v
	}

	ts := time.Date(parts["yyyy"], time.Month(parts["mm"]), parts["dd"],
		parts["hh"], 0, 0, 0, time.UTC)
	o := domain.NewObservation(ts)

	for sensor, idx := range cm.sensors {
		if idx >= len(row) {
			return domain.Observation{}, fmt.Errorf("row too short for column %q",
				sensor+medianSuffix)
		}
		v, err := parseValue(row[idx])
		if err != nil {
			return domain.Observation{}, fmt.Errorf("invalid %s value %q", sensor, row[idx])
		}
		o.SetField(sensor, v)
	}

	return o, nil
}

// parseValue parses a sensor reading. Empty cells and the literal "NA"
// are missing values.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NA") {
		return domain.NA(), nil
	}
	return strconv.ParseFloat(s, 64)
}
