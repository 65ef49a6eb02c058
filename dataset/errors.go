// SPDX-License-Identifier: MIT
// Package dataset: sentinel error set.
// All functions return these sentinels (possibly wrapped with context via
// fmt.Errorf("op: %w", ErrX)); tests match them with errors.Is.

package dataset

import "errors"

var (
	// ErrShape is returned when a stored observable's array shape disagrees
	// with the layout the configuration implies (e.g. a force array whose
	// length is not the atom count, a malformed virial). Silently accepting
	// such data would corrupt the design matrix, so it fails loudly.
	ErrShape = errors.New("dataset: stored observable shape mismatch")

	// ErrValueType is returned when a stored value has a type the typed
	// accessors cannot interpret (e.g. a string where numbers are expected).
	ErrValueType = errors.New("dataset: unsupported value type")

	// ErrAbsent is returned by typed observable accessors when the
	// corresponding key did not resolve at record construction.
	// Callers are expected to gate on the Has* predicates instead.
	ErrAbsent = errors.New("dataset: observable not present")

	// ErrNilConfiguration is returned when a nil *Configuration is passed
	// where one is required.
	ErrNilConfiguration = errors.New("dataset: nil configuration")
)
