package exporter

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestObservationExporter_ExportCombined(t *testing.T) {
	o := domain.NewObservation(time.Date(2016, 7, 15, 6, 0, 0, 0, time.UTC))
	o.Temp = 18.5
	o.CO2 = 420
	o.CO2Corr = 395.21
	o.DO = 250
	o.DOMgPerL = 8.2155

	path := filepath.Join(t.TempDir(), "combined.csv")
	err := NewObservationExporter().ExportCombined(path, []domain.Observation{o})
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"doy", "yyyy", "mm", "dd", "hh",
		"temp", "sal", "co2", "co2_corr", "do", "do_mgpl",
		"ph", "omega_a", "omega_c", "alkalinity", "co2_thermal",
	}, rows[0])

	row := rows[1]
	assert.Equal(t, "197", row[0]) // day of year for 2016-07-15 (leap year)
	assert.Equal(t, "2016", row[1])
	assert.Equal(t, "7", row[2])
	assert.Equal(t, "15", row[3])
	assert.Equal(t, "6", row[4])
	assert.Equal(t, "18.5", row[5])
	assert.Equal(t, "", row[6]) // sal is NA -> empty cell
	assert.Equal(t, "420", row[7])
	assert.Equal(t, "395.21", row[8])
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", formatValue(math.NaN()))
	assert.Equal(t, "1.5", formatValue(1.5))
	assert.Equal(t, "400", formatValue(400))
}
