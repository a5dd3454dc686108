package bn254

import (
	"sync"

	"github.com/zerosync/bn254/ecc"
	"github.com/zerosync/bn254/ecc/bn254/fp"
	"github.com/zerosync/bn254/logger"
)

// E: y² = x³ + 3

var bn254 Curve
var initOnce sync.Once

// ID bn254 ID
const ID = ecc.BN254

// window parameters for ScalarMulByGen
const sGen = 4
const bGen = sGen

// BN254 returns the BN254 curve. Constants are computed once; the returned
// value is immutable after initialization and safe for concurrent reads.
func BN254() *Curve {
	initOnce.Do(initBN254)
	return &bn254
}

// Curve represents the BN254 curve and pre-computed constants
type Curve struct {
	B fp.Element // constant term of the curve equation

	g1Gen    G1Jac    // generator of the G1 group
	g1GenAff G1Affine // generator in affine coordinates

	g1Infinity G1Jac // infinity (in Jacobian coords, Z == 0)

	// precomputed multiples of the generator for ScalarMulByGen;
	// tGenG1[i] = (i+1)·g, built once from the public generator
	tGenG1 [(1 << bGen) - 1]G1Jac
}

func initBN254() {

	// curve equation constant in Mont form
	bn254.B.SetUint64(3)

	// generator
	bn254.g1Gen.X.SetString("1")
	bn254.g1Gen.Y.SetString("2")
	bn254.g1Gen.Z.SetString("1")
	bn254.g1GenAff.FromJacobian(&bn254.g1Gen)

	// infinity point
	bn254.g1Infinity.X.SetOne()
	bn254.g1Infinity.Y.SetOne()
	bn254.g1Infinity.Z.SetZero()

	// precomputed window table for ScalarMulByGen
	bn254.tGenG1[0].Set(&bn254.g1Gen)
	for j := 1; j < len(bn254.tGenG1)-1; j = j + 2 {
		bn254.tGenG1[j].Set(&bn254.tGenG1[j/2]).Double()
		bn254.tGenG1[j+1].Set(&bn254.tGenG1[(j+1)/2]).Add(&bn254.tGenG1[j/2])
	}

	log := logger.Logger().With().Str("curve", ID.String()).Logger()
	log.Debug().Int("windowSize", sGen).Msg("curve constants initialized")
}
