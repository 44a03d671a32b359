package cmd

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/OuyangWenyu/hydro-model/xaj"
)

// loadForcingCSV reads a forcing table with header basin,prcp,pet and
// returns one timestep series per configured basin, in the order of names.
// Rows for a basin are consumed in file order; every configured basin must
// appear and all series must have equal length.
func loadForcingCSV(path string, names []string) [][]xaj.Forcing {
	file, err := os.Open(path)
	if err != nil {
		logrus.Fatalf("failed to open forcing file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header row
	if _, err := reader.Read(); err != nil {
		logrus.Fatalf("failed to read forcing header: %v", err)
	}

	byBasin := make(map[string][]xaj.Forcing, len(names))
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logrus.Fatalf("error reading forcing at row %d: %v", row, err)
		}
		if len(record) < 3 {
			logrus.Fatalf("forcing row %d has %d columns, want basin,prcp,pet", row, len(record))
		}

		prcp, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			logrus.Fatalf("invalid precipitation at row %d: %v", row, err)
		}
		pet, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			logrus.Fatalf("invalid pet at row %d: %v", row, err)
		}

		basin := record[0]
		byBasin[basin] = append(byBasin[basin], xaj.Forcing{Prcp: prcp, PET: pet})
		row++
	}

	forcing := make([][]xaj.Forcing, len(names))
	for i, name := range names {
		series, ok := byBasin[name]
		if !ok {
			logrus.Fatalf("forcing file has no rows for basin %q", name)
		}
		if i > 0 && len(series) != len(forcing[0]) {
			logrus.Fatalf("basin %q has %d timesteps, basin %q has %d",
				name, len(series), names[0], len(forcing[0]))
		}
		forcing[i] = series
	}
	return forcing
}

// writeDischargeCSV writes the simulated discharge as basin,timestep,q rows.
func writeDischargeCSV(path string, names []string, q [][]float64) {
	file, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("failed to create output file: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"basin", "timestep", "discharge"}); err != nil {
		logrus.Fatalf("failed to write output header: %v", err)
	}
	for i, series := range q {
		for t, v := range series {
			rec := []string{names[i], strconv.Itoa(t), strconv.FormatFloat(v, 'g', -1, 64)}
			if err := w.Write(rec); err != nil {
				logrus.Fatalf("failed to write output row: %v", err)
			}
		}
	}
}
