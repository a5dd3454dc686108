// Package bn254 provides constant-time arithmetic over the BN254 curve:
// the base field Fp with Montgomery representation and lazy-reduction
// accumulators, a batched field layer with a runtime-probed wide kernel,
// and the G1 group with secret-scalar multiplication.
//
// The entry points live in the subpackages:
//   - ecc/bn254/fp: field elements, accumulators, vectors
//   - ecc/bn254: G1 in affine and Jacobian coordinates
//   - polynomial: dense polynomials over Fp
package bn254

import (
	"github.com/blang/semver/v4"

	"github.com/zerosync/bn254/ecc"
)

var Version = semver.MustParse("0.1.0")

// Curves returns the curves supported by this module.
func Curves() []ecc.ID {
	return []ecc.ID{ecc.BN254}
}
