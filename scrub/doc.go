// Package scrub censors motion-contaminated timepoints from time-aligned
// matrices.
//
// BuildMask turns a framewise-displacement series into a retain Mask
// (true = keep): a violation at index v, motion[v] > threshold, censors the
// inclusive index range [v−1, v+W] clipped to the series bounds — one sample
// before the violation (filtering smears artifact backward by one sample)
// and W trailing samples (motion aftereffects persist).
//
// Applying a Mask selects exactly the rows where the mask is true,
// preserving relative order. It never reorders and never interpolates.
// An all-true mask returns an equal-valued copy (idempotence).
//
// Mask.Require enforces a caller-chosen floor on retained timepoints and
// returns ErrInsufficientData, with the retained count, when the floor is
// not met — downstream estimation must not proceed silently on too little
// data.
package scrub
