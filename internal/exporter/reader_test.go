package exporter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

func TestLoadCombined_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "combined.csv")

	a := domain.NewObservation(time.Date(2016, 6, 1, 10, 0, 0, 0, time.UTC))
	a.Temp = 14.5
	a.Sal = 30.2
	a.CO2 = 410
	a.CO2Corr = 376.74
	a.PH = 7.95
	a.OmegaA = 1.42

	b := domain.NewObservation(time.Date(2016, 6, 1, 11, 0, 0, 0, time.UTC))
	b.Temp = 14.7
	// everything else stays NA

	exp := NewObservationExporter()
	require.NoError(t, exp.ExportCombined(path, []domain.Observation{a, b}))

	loaded, err := LoadCombined(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, a.Timestamp, loaded[0].Timestamp)
	assert.InDelta(t, 14.5, loaded[0].Temp, 1e-9)
	assert.InDelta(t, 376.74, loaded[0].CO2Corr, 1e-9)
	assert.InDelta(t, 1.42, loaded[0].OmegaA, 1e-9)

	assert.Equal(t, b.Timestamp, loaded[1].Timestamp)
	assert.InDelta(t, 14.7, loaded[1].Temp, 1e-9)
	assert.True(t, domain.IsNA(loaded[1].CO2))
	assert.True(t, domain.IsNA(loaded[1].OmegaA))
}

func TestLoadCombined_MissingFile(t *testing.T) {
	_, err := LoadCombined(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "combined data")
}

func TestLoadCombined_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("yyyy,mm,dd\n2016,6,1\n"), 0o644))

	_, err := LoadCombined(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"hh"`)
}

func TestLoadCombined_BadValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	data := "yyyy,mm,dd,hh,temp\n2016,6,1,10,abc\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := LoadCombined(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temp")
}
