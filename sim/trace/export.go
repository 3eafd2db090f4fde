package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/inference-sim/opsim/sim"
)

// Header is the stable CSV column order for customer records.
var Header = []string{
	"id",
	"interarrival_time",
	"arrival_time",
	"service_start_time",
	"queue_wait",
	"service_time",
	"service_end_time",
	"system_time",
}

// EventHeader is the stable CSV column order for lifecycle events.
var EventHeader = []string{"time", "customer_id", "from", "to"}

// WriteCSV writes the trace as CSV with Header as the first row.
// Floats are written with full precision so the file reproduces the trace exactly.
func WriteCSV(w io.Writer, tr sim.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}
	for _, c := range tr {
		row := []string{
			strconv.Itoa(c.ID),
			formatFloat(c.InterarrivalTime),
			formatFloat(c.ArrivalTime),
			formatFloat(c.ServiceStartTime),
			formatFloat(c.QueueWait),
			formatFloat(c.ServiceTime),
			formatFloat(c.ServiceEndTime),
			formatFloat(c.SystemTime),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing customer %d: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEventsCSV writes the trace's lifecycle events, in sim.Timeline order,
// as CSV with EventHeader as the first row.
func WriteEventsCSV(w io.Writer, tr sim.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EventHeader); err != nil {
		return fmt.Errorf("writing event header: %w", err)
	}
	for _, e := range sim.Timeline(tr) {
		row := []string{formatFloat(e.Time), strconv.Itoa(e.CustomerID), e.From.String(), e.To.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing event for customer %d: %w", e.CustomerID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a trace previously written by WriteCSV.
func ReadCSV(r io.Reader) (sim.Trace, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trace csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("trace csv is empty")
	}
	for i, h := range Header {
		if i >= len(rows[0]) || rows[0][i] != h {
			return nil, fmt.Errorf("trace csv column %d: want %q", i, h)
		}
	}
	tr := make(sim.Trace, 0, len(rows)-1)
	for n, row := range rows[1:] {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d id: %w", n+1, err)
		}
		vals := make([]float64, len(Header)-1)
		for i := range vals {
			if vals[i], err = strconv.ParseFloat(row[i+1], 64); err != nil {
				return nil, fmt.Errorf("row %d %s: %w", n+1, Header[i+1], err)
			}
		}
		tr = append(tr, sim.CustomerRecord{
			ID:               id,
			InterarrivalTime: vals[0],
			ArrivalTime:      vals[1],
			ServiceStartTime: vals[2],
			QueueWait:        vals[3],
			ServiceTime:      vals[4],
			ServiceEndTime:   vals[5],
			SystemTime:       vals[6],
		})
	}
	return tr, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
