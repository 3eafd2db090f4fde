package sim

import "sort"

// Event is one lifecycle transition of one customer.
type Event struct {
	Time       float64
	CustomerID int
	From, To   CustomerState
}

// Timeline expands a trace into its ordered lifecycle events, three per
// customer. Simultaneous events are ordered by customer ID, then by lifecycle
// state. Under FIFO with one server that order is also causal: a departure
// precedes the next customer's arrival or service start at the same instant.
func Timeline(trace Trace) []Event {
	events := make([]Event, 0, 3*len(trace))
	for _, c := range trace {
		events = append(events,
			Event{Time: c.ArrivalTime, CustomerID: c.ID, From: Idle, To: Arrived},
			Event{Time: c.ServiceStartTime, CustomerID: c.ID, From: Arrived, To: InService},
			Event{Time: c.ServiceEndTime, CustomerID: c.ID, From: InService, To: Departed},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		if a.CustomerID != b.CustomerID {
			return a.CustomerID < b.CustomerID
		}
		return a.To < b.To
	})
	return events
}

// InSystemAtArrival returns, for each customer, how many earlier customers
// are still in the system (waiting or in service) at that customer's arrival.
// Earlier customers arriving at the same instant count as present, matching
// the ID order Timeline gives simultaneous events.
func InSystemAtArrival(trace Trace) []int {
	out := make([]int, len(trace))
	for i, c := range trace {
		n := 0
		for j := 0; j < i; j++ {
			if trace[j].ServiceEndTime > c.ArrivalTime {
				n++
			}
		}
		out[i] = n
	}
	return out
}
