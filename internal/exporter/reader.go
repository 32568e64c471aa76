package exporter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jstetich/CBEP-OA-1/internal/errors"
	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// LoadCombined reads a combined cleaned observation CSV back into
// memory, the inverse of ExportCombined. The report command runs after
// the processor and consumes its output file.
func LoadCombined(path string) ([]domain.Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open combined data file", err).
			WithContext("path", path).
			WithContext("hint", "run the processor first to generate combined data")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read combined data header", err).
			WithContext("path", path)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"yyyy", "mm", "dd", "hh"} {
		if _, ok := columns[required]; !ok {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("combined data missing column %q", required), nil).
				WithContext("path", path)
		}
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
				fmt.Sprintf("failed to read combined data row %d", rowNum+1), err).
				WithContext("path", path)
		}
		rowNum++

		o, err := combinedRow(row, columns)
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("combined data row %d", rowNum), err).
				WithContext("path", path)
		}
		obs = append(obs, o)
	}

	return obs, nil
}

func combinedRow(row []string, columns map[string]int) (domain.Observation, error) {
	intAt := func(name string) (int, error) {
		idx := columns[name]
		if idx >= len(row) {
			return 0, fmt.Errorf("row too short for column %q", name)
		}
		return strconv.Atoi(strings.TrimSpace(row[idx]))
	}

	yyyy, err := intAt("yyyy")
	if err != nil {
		return domain.Observation{}, err
	}
	mm, err := intAt("mm")
	if err != nil {
		return domain.Observation{}, err
	}
	dd, err := intAt("dd")
	if err != nil {
		return domain.Observation{}, err
	}
	hh, err := intAt("hh")
	if err != nil {
		return domain.Observation{}, err
	}

	o := domain.NewObservation(time.Date(yyyy, time.Month(mm), dd, hh, 0, 0, 0, time.UTC))

	fields := append(append([]string{}, domain.SensorFields...), domain.DerivedFields...)
	for _, f := range fields {
		idx, ok := columns[f]
		if !ok || idx >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return domain.Observation{}, fmt.Errorf("invalid %s value %q", f, cell)
		}
		o.SetField(f, v)
	}

	return o, nil
}
