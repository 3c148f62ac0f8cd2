// Package signal: sentinel error set shared by the data-model types.
// All constructors and projections MUST return these sentinels and tests
// MUST check them via errors.Is. Indexers (At, Row, Column by position)
// panic on out-of-range access, mirroring the gonum/mat convention used by
// the numeric packages downstream; panics are reserved for programmer
// errors, never for data-dependent conditions.
package signal

import "errors"

// Sentinel errors for data-model construction and projection.
var (
	// ErrEmptyMatrix indicates zero rows or zero columns where data is required.
	ErrEmptyMatrix = errors.New("signal: empty matrix")

	// ErrRagged indicates input rows of unequal length.
	ErrRagged = errors.New("signal: ragged rows")

	// ErrNaNInf indicates a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("signal: NaN or Inf encountered")

	// ErrShapeMismatch indicates two time-aligned matrices with different row counts.
	ErrShapeMismatch = errors.New("signal: row count mismatch")

	// ErrUnknownConfound indicates a projection or derivative referenced a
	// confound column name that does not exist.
	ErrUnknownConfound = errors.New("signal: unknown confound column")

	// ErrDuplicateConfound indicates two confound columns sharing one name.
	ErrDuplicateConfound = errors.New("signal: duplicate confound column")

	// ErrUnknownConfoundSet indicates a ConfoundSet value outside the closed
	// enumeration. The set of nuisance models is fixed at compile time.
	ErrUnknownConfoundSet = errors.New("signal: unknown confound set")
)

// ConfoundSet names one of the two supported nuisance models.
//
// The set is a closed enumeration: switches over it must be exhaustive and
// any other value is rejected with ErrUnknownConfoundSet.
type ConfoundSet int

const (
	// SetStandard regresses the base confound columns only.
	SetStandard ConfoundSet = iota

	// SetGlobalSignal additionally regresses the cross-unit mean series
	// (global signal regression).
	SetGlobalSignal
)

// String returns the canonical name of the confound set.
func (s ConfoundSet) String() string {
	switch s {
	case SetStandard:
		return "standard"
	case SetGlobalSignal:
		return "global-signal"
	default:
		return "unknown"
	}
}

// GlobalSignalColumn is the column name under which ForSet attaches the
// cross-unit mean series.
const GlobalSignalColumn = "global_signal"
