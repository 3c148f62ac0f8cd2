// Package signal defines the in-memory data model for the connectivity
// pipeline: a time-by-unit activity matrix (SignalMatrix) and a parallel
// time-by-confound matrix with named columns (ConfoundMatrix).
//
// Both types are constructed once, validated up front, and treated as
// immutable afterwards: every pipeline operation that transforms a matrix
// returns a fresh value. There is no shared mutable state between stages,
// so values may be handed to concurrent orchestration code freely.
//
// Validation policy:
//
//   - Input rows must be rectangular (ErrRagged) and non-empty (ErrEmptyMatrix).
//   - NaN and ±Inf are rejected at construction (ErrNaNInf); callers that
//     hold raw scanner output with holes use NewSignalMatrixZeroFill, which
//     zero-fills non-finite entries and reports how many were touched.
//   - Confound column names must be unique (ErrDuplicateConfound) and every
//     projection or derivative must reference a known name (ErrUnknownConfound).
//
// ConfoundMatrix owns the temporal-derivative convention: for a column x,
// the derived column x_dt is the first-order backward difference with
// x_dt[0] = 0. Derivatives are recomputed from the current source columns
// at the time WithDerivatives is called.
//
// The closed ConfoundSet enumeration (SetStandard, SetGlobalSignal) names
// the two nuisance models the pipeline supports; GlobalSignal computes the
// cross-unit mean series for the global-signal-regression variant.
package signal
