package sim

// CustomerState is a customer's position in the single-server lifecycle.
// States advance strictly Idle → Arrived → InService → Departed.
type CustomerState int

const (
	Idle CustomerState = iota
	Arrived
	InService
	Departed
)

func (s CustomerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Arrived:
		return "arrived"
	case InService:
		return "in_service"
	case Departed:
		return "departed"
	default:
		return "unknown"
	}
}

// CustomerRecord is one simulated arrival. All times are in minutes.
type CustomerRecord struct {
	ID               int     `yaml:"id"`
	InterarrivalTime float64 `yaml:"interarrival_time"` // 0 for the first customer
	ArrivalTime      float64 `yaml:"arrival_time"`
	ServiceStartTime float64 `yaml:"service_start_time"`
	QueueWait        float64 `yaml:"queue_wait"`
	ServiceTime      float64 `yaml:"service_time"`
	ServiceEndTime   float64 `yaml:"service_end_time"`
	SystemTime       float64 `yaml:"system_time"`
}

// Trace is the ordered, immutable sequence of customer records from one run.
type Trace []CustomerRecord

// Len returns the number of customers in the trace.
func (t Trace) Len() int { return len(t) }

// ServiceEndTimes returns the server-free-at value after each customer,
// which is the customer's service end time.
func (t Trace) ServiceEndTimes() []float64 {
	out := make([]float64, len(t))
	for i, c := range t {
		out[i] = c.ServiceEndTime
	}
	return out
}

// Column extracts one field of every record.
func (t Trace) Column(field func(CustomerRecord) float64) []float64 {
	out := make([]float64, len(t))
	for i, c := range t {
		out[i] = field(c)
	}
	return out
}
