package sim

import (
	"fmt"
	"math"
)

// Simulate folds pre-drawn variates into a single-server FIFO trace.
//
// interarrival[i] is the time between customer i-1 and customer i; the first
// entry is ignored because customer 1 arrives at time 0. The only state
// carried between customers is the time the server next becomes free, and it
// lives entirely inside this call.
//
// Every variate is checked before the fold starts, so a negative, NaN or
// infinite value fails with ErrInvalidVariate and no partial trace.
// Empty input yields an empty trace.
func Simulate(interarrival, service []float64) (Trace, error) {
	if len(interarrival) != len(service) {
		return nil, fmt.Errorf("got %d interarrival and %d service variates: %w",
			len(interarrival), len(service), ErrInvalidParameter)
	}
	if err := checkDurations(StreamInterarrival, interarrival); err != nil {
		return nil, err
	}
	if err := checkDurations(StreamService, service); err != nil {
		return nil, err
	}

	trace := make(Trace, len(service))
	arrival, serverFreeAt := 0.0, 0.0
	for i := range service {
		var gap float64
		if i > 0 {
			gap = interarrival[i]
			arrival += gap
		}
		trace[i], serverFreeAt = step(i+1, gap, arrival, service[i], serverFreeAt)
	}
	return trace, nil
}

// step advances one customer through Arrived → InService → Departed and
// returns its record together with the new server-free-at time.
func step(id int, gap, arrival, service, serverFreeAt float64) (CustomerRecord, float64) {
	start := math.Max(arrival, serverFreeAt)
	end := start + service
	return CustomerRecord{
		ID:               id,
		InterarrivalTime: gap,
		ArrivalTime:      arrival,
		ServiceStartTime: start,
		QueueWait:        start - arrival,
		ServiceTime:      service,
		ServiceEndTime:   end,
		SystemTime:       end - arrival,
	}, end
}

func checkDurations(stream string, vals []float64) error {
	for i, v := range vals {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s variate %d = %v is not a finite non-negative duration: %w",
				stream, i, v, ErrInvalidVariate)
		}
	}
	return nil
}
