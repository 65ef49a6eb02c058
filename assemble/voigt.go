// SPDX-License-Identifier: MIT

package assemble

// VoigtComponents is the number of independent components extracted from a
// symmetric 3×3 tensor.
const VoigtComponents = 6

// Voigt extracts the six independent components of a 3×3 tensor in the
// fixed order [xx, yy, zz, yz, xz, xy] — row-major linear positions
// 0, 4, 8, 5, 2, 1. Every consumer of virial rows (assembly and error
// aggregation) shares this order.
func Voigt(t [3][3]float64) [VoigtComponents]float64 {
	return [VoigtComponents]float64{
		t[0][0], // xx
		t[1][1], // yy
		t[2][2], // zz
		t[1][2], // yz
		t[0][2], // xz
		t[0][1], // xy
	}
}
