package sim

import (
	"errors"

	"github.com/inference-sim/opsim/sim/variate"
)

// Error taxonomy. The variate sentinels are re-exported so callers of the
// queue core can match everything against package sim.
var (
	ErrInvalidParameter    = variate.ErrInvalidParameter
	ErrInvalidDistribution = variate.ErrInvalidDistribution
	ErrInvalidVariate      = variate.ErrInvalidVariate

	// ErrInstability is carried in Reconciliation.Warning when rho >= 1.
	// It is a reportable condition, never a returned error.
	ErrInstability = errors.New("unstable queue: rho >= 1")
)
