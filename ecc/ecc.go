// Package ecc holds curve-family identifiers and scalar-decomposition
// helpers shared by the curve packages.
package ecc

// ID identifies an elliptic curve.
type ID uint16

const (
	UNKNOWN ID = iota
	BN254
)

func (id ID) String() string {
	if id == BN254 {
		return "bn254"
	}
	return "unknown"
}
