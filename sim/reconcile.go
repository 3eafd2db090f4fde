package sim

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MinutesPerHour converts per-hour rates to the minute clock of a trace.
const MinutesPerHour = 60.0

// Stable metric keys in Reconciliation.Metrics.
const (
	MetricRho    = "rho"
	MetricLambda = "lambda"
	MetricLs     = "Ls"
	MetricLq     = "Lq"
	MetricWs     = "Ws"
	MetricWq     = "Wq"
)

// MetricKeys lists the compared metrics in report order.
var MetricKeys = []string{MetricRho, MetricLambda, MetricLs, MetricLq, MetricWs, MetricWq}

// Rates are the nominal arrival and service rates of a run.
type Rates struct {
	ArrivalRate float64 // λ, customers per rate unit
	ServiceRate float64 // μ, customers per rate unit
	TimeUnit    float64 // trace time units per rate unit (60 for per-hour rates on a minute trace)
}

// NewRates returns per-hour rates for a trace measured in minutes.
func NewRates(lambda, mu float64) Rates {
	return Rates{ArrivalRate: lambda, ServiceRate: mu, TimeUnit: MinutesPerHour}
}

// Rho returns the nominal utilization λ/μ.
func (r Rates) Rho() float64 {
	return r.ArrivalRate / r.ServiceRate
}

// Validate checks that all rates are finite and positive.
func (r Rates) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"arrival rate", r.ArrivalRate},
		{"service rate", r.ServiceRate},
		{"time unit", r.TimeUnit},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s = %v must be a finite positive number: %w", f.name, f.v, ErrInvalidParameter)
		}
	}
	return nil
}

// Comparison pairs an observed metric with its closed-form counterpart.
type Comparison struct {
	Observed    Value `yaml:"observed"`
	Theoretical Value `yaml:"theoretical"`
	Delta       Value `yaml:"delta"` // |observed - theoretical|
}

// Observed holds trace-only statistics that have no closed-form counterpart.
type Observed struct {
	TotalCustomers      int   `yaml:"total_customers"`
	TotalTime           Value `yaml:"total_time"`       // trace units
	TotalTimeUnits      Value `yaml:"total_time_units"` // rate units
	AvgServiceTime      Value `yaml:"avg_service_time"`
	AvgInterarrivalTime Value `yaml:"avg_interarrival_time"`
	MaxQueueWait        Value `yaml:"max_queue_wait"`
}

// Reconciliation is the output of Reconcile.
type Reconciliation struct {
	Rates    Rates                 `yaml:"-"`
	Metrics  map[string]Comparison `yaml:"metrics"`
	Observed Observed              `yaml:"observed"`

	// Warning is ErrInstability when λ/μ >= 1, nil otherwise.
	Warning error `yaml:"-"`
}

// Stable reports whether the closed-form metrics exist.
func (r *Reconciliation) Stable() bool {
	return r.Warning == nil
}

// Flatten returns every value under a flat stable key: "<metric>_observed",
// "<metric>_theoretical" and "<metric>_delta" for each compared metric, plus
// the observed-only statistics under their own names.
func (r *Reconciliation) Flatten() map[string]Value {
	out := make(map[string]Value, 3*len(r.Metrics)+6)
	for name, c := range r.Metrics {
		out[name+"_observed"] = c.Observed
		out[name+"_theoretical"] = c.Theoretical
		out[name+"_delta"] = c.Delta
	}
	out["total_customers"] = Defined(float64(r.Observed.TotalCustomers))
	out["total_time"] = r.Observed.TotalTime
	out["total_time_units"] = r.Observed.TotalTimeUnits
	out["avg_service_time"] = r.Observed.AvgServiceTime
	out["avg_interarrival_time"] = r.Observed.AvgInterarrivalTime
	out["max_queue_wait"] = r.Observed.MaxQueueWait
	return out
}

// FlatKeys returns the keys of Flatten in sorted order.
func (r *Reconciliation) FlatKeys() []string {
	flat := r.Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reconcile computes observed performance from trace and compares it with
// the M/M/1 closed forms for rates.
//
// Only invalid rates return an error. An empty trace yields Undefined
// observed values; rho >= 1 yields Unstable closed-form values for Ls, Lq, Ws
// and Wq and sets Warning to ErrInstability. Reconcile does not modify trace.
func Reconcile(trace Trace, rates Rates) (*Reconciliation, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	obs, observed := observe(trace, rates)
	theo, warning := closedForm(rates)

	metrics := make(map[string]Comparison, len(MetricKeys))
	for _, k := range MetricKeys {
		metrics[k] = Comparison{
			Observed:    obs[k],
			Theoretical: theo[k],
			Delta:       absDelta(obs[k], theo[k]),
		}
	}
	return &Reconciliation{
		Rates:    rates,
		Metrics:  metrics,
		Observed: observed,
		Warning:  warning,
	}, nil
}

// observe computes the trace-side metrics. Times stay in trace units; the
// observed arrival rate is converted to rate units.
//
// The observed arrival rate divides N-1 arrivals by the total time: the first
// customer arrives at time 0 and so closes no interarrival interval. This
// boundary correction is preserved from the classroom model; with N = 1 it
// makes the observed rate, Ls and Lq zero.
func observe(trace Trace, rates Rates) (map[string]Value, Observed) {
	observed := Observed{TotalCustomers: len(trace)}
	obs := make(map[string]Value, len(MetricKeys))
	for _, k := range MetricKeys {
		obs[k] = Undefined
	}
	if len(trace) == 0 {
		return obs, observed
	}

	service := trace.Column(func(c CustomerRecord) float64 { return c.ServiceTime })
	waits := trace.Column(func(c CustomerRecord) float64 { return c.QueueWait })
	sojourns := trace.Column(func(c CustomerRecord) float64 { return c.SystemTime })
	gaps := trace.Column(func(c CustomerRecord) float64 { return c.InterarrivalTime })

	observed.AvgServiceTime = Defined(stat.Mean(service, nil))
	observed.AvgInterarrivalTime = Defined(stat.Mean(gaps, nil))
	observed.MaxQueueWait = Defined(floats.Max(waits))

	totalTime := floats.Max(trace.ServiceEndTimes())
	if totalTime <= 0 {
		return obs, observed
	}
	observed.TotalTime = Defined(totalTime)
	observed.TotalTimeUnits = Defined(totalTime / rates.TimeUnit)

	wq := stat.Mean(waits, nil)
	ws := stat.Mean(sojourns, nil)
	lambda := float64(len(trace)-1) / totalTime * rates.TimeUnit

	obs[MetricRho] = Defined(floats.Sum(service) / totalTime)
	obs[MetricLambda] = Defined(lambda)
	obs[MetricWq] = Defined(wq)
	obs[MetricWs] = Defined(ws)
	obs[MetricLq] = Defined(lambda * wq / rates.TimeUnit)
	obs[MetricLs] = Defined(lambda * ws / rates.TimeUnit)
	return obs, observed
}

// closedForm returns the M/M/1 steady-state metrics, waits in trace units.
func closedForm(rates Rates) (map[string]Value, error) {
	lambda, mu := rates.ArrivalRate, rates.ServiceRate
	rho := rates.Rho()
	theo := map[string]Value{
		MetricRho:    Defined(rho),
		MetricLambda: Defined(lambda),
	}
	if rho >= 1 {
		for _, k := range []string{MetricLs, MetricLq, MetricWs, MetricWq} {
			theo[k] = Unstable
		}
		return theo, fmt.Errorf("lambda=%v mu=%v rho=%.4f: %w", lambda, mu, rho, ErrInstability)
	}
	theo[MetricLs] = Defined(rho / (1 - rho))
	theo[MetricLq] = Defined(rho * rho / (1 - rho))
	theo[MetricWs] = Defined(rates.TimeUnit / (mu - lambda))
	theo[MetricWq] = Defined(rho * rates.TimeUnit / (mu - lambda))
	return theo, nil
}
