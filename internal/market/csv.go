package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCSV reads a bar series from a CSV file with rows of
// ts,open,high,low,close,volume. Timestamps may be RFC3339 or unix seconds.
// A header row is skipped when the first field does not parse as a timestamp.
func LoadCSV(path string, tf Timeframe) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars csv: %w", err)
	}
	defer file.Close()

	series, err := ReadCSV(file, tf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// ReadCSV parses bar rows from the supplied reader into a validated Series.
func ReadCSV(r io.Reader, tf Timeframe) (*Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6

	series := &Series{Timeframe: tf}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line+1, err)
		}
		line++

		ts, err := parseTimestamp(record[0])
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		bar := Bar{Ts: ts}
		fields := []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume}
		for i, dst := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", line, i+2, err)
			}
			*dst = v
		}

		if err := series.Append(bar); err != nil {
			return nil, err
		}
	}
	return series, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return ts.UTC(), nil
}
