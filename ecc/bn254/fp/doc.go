// Package fp implements arithmetic in the BN254 base field, i.e. modular
// arithmetic with
//
//	q = 21888242871839275222246405745257275088696311157297823662689037894645226208583
//
// Elements are stored on 4 uint64 words in Montgomery form. All exported
// operations return fully reduced values; the Acc type carries bounded
// unreduced sums between normalizations.
//
// The arithmetic has no secret-dependent branches or memory accesses:
// comparisons fold over all limbs and selections go through arithmetic
// masks.
package fp
