// SPDX-License-Identifier: MIT

package assemble

import "errors"

// ErrEmptyBasis is returned when a feature matrix is requested for a basis
// with no functions; a design matrix needs at least one column.
var ErrEmptyBasis = errors.New("assemble: basis has no functions")
