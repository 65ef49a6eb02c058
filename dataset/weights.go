// SPDX-License-Identifier: MIT

package dataset

import "strings"

// Weights is the per-record weight triple applied to energy, force and
// virial rows of the assembled system. Site-energy rows deliberately do not
// consult it; see assemble.WeightVector.
type Weights struct {
	E float64
	F float64
	V float64
}

// DefaultWeights is the hardcoded fallback used when neither a group entry
// nor a "default" entry of the weight table applies.
var DefaultWeights = Weights{E: 1.0, F: 1.0, V: 1.0}

// WeightTable maps a group label to its weight triple. The distinguished
// entry under DefaultGroup ("default") replaces the hardcoded fallback for
// records whose group matches no other entry. Lookups are case-insensitive.
type WeightTable map[string]Weights

// Lookup scans the table for label, folding case on both sides.
// Iteration over the table is irrelevant here because the fold of the query
// is compared against the fold of each entry key; duplicate keys differing
// only in case are a configuration mistake, not something Lookup arbitrates.
func (t WeightTable) Lookup(label string) (Weights, bool) {
	fold := strings.ToLower(label)
	for k, w := range t {
		if strings.ToLower(k) == fold {
			return w, true
		}
	}

	return Weights{}, false
}
