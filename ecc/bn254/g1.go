// Copyright 2026 ZeroSync Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bn254

import (
	"errors"
	"math/big"

	"github.com/zerosync/bn254/ecc"
	"github.com/zerosync/bn254/ecc/bn254/fp"
)

// ErrPointNotOnCurve is returned when externally supplied coordinates do
// not satisfy the curve equation.
var ErrPointNotOnCurve = errors.New("bn254: point is not on the curve")

// G1Affine is a point in G1 in affine coordinates. The identity is carried
// by the Infinity marker, not by a coordinate pair.
type G1Affine struct {
	X, Y     fp.Element
	Infinity bool
}

// G1Jac is a point in G1 in Jacobian coordinates (x = X/Z², y = Y/Z³).
// Z == 0 encodes the point at infinity.
type G1Jac struct {
	X, Y, Z fp.Element
}

// -------------------------------------------------------------------------
// affine

// Set p = a
func (p *G1Affine) Set(a *G1Affine) *G1Affine {
	p.X.Set(&a.X)
	p.Y.Set(&a.Y)
	p.Infinity = a.Infinity
	return p
}

// SetInfinity sets p to the group identity
func (p *G1Affine) SetInfinity() *G1Affine {
	p.X.SetZero()
	p.Y.SetZero()
	p.Infinity = true
	return p
}

// IsInfinity returns whether p is the group identity
func (p *G1Affine) IsInfinity() bool {
	return p.Infinity
}

// SetCoordinates sets p from externally supplied coordinates, validating
// the curve equation; it returns ErrPointNotOnCurve on failure and leaves
// p at infinity.
func (p *G1Affine) SetCoordinates(x, y *fp.Element) error {
	p.X.Set(x)
	p.Y.Set(y)
	p.Infinity = false
	if !p.IsOnCurve() {
		p.SetInfinity()
		return ErrPointNotOnCurve
	}
	return nil
}

// IsOnCurve returns whether p satisfies y² = x³ + 3; the identity is
// always valid
func (p *G1Affine) IsOnCurve() bool {
	if p.Infinity {
		return true
	}
	var lhs, rhs fp.Element
	lhs.Square(&p.Y)
	rhs.Square(&p.X)
	rhs.Mul(&rhs, &p.X)
	rhs.Add(&rhs, &BN254().B)
	return lhs.Equal(&rhs)
}

// Neg p = -a
func (p *G1Affine) Neg(a *G1Affine) *G1Affine {
	p.X.Set(&a.X)
	p.Y.Neg(&a.Y)
	p.Infinity = a.Infinity
	return p
}

// Equal returns p == a
func (p *G1Affine) Equal(a *G1Affine) bool {
	if p.Infinity || a.Infinity {
		return p.Infinity == a.Infinity
	}
	return p.X.Equal(&a.X) && p.Y.Equal(&a.Y)
}

// Add p = a + b. All group-law cases (identities, doubling, opposite
// points, generic chord) are evaluated through the masked Jacobian path;
// no branch depends on which case occurred.
func (p *G1Affine) Add(a, b *G1Affine) *G1Affine {
	var aj, bj G1Jac
	aj.FromAffine(a)
	bj.FromAffine(b)
	aj.AddUnified(&bj)
	return p.FromJacobian(&aj)
}

// Double p = a + a
func (p *G1Affine) Double(a *G1Affine) *G1Affine {
	var j G1Jac
	j.FromAffine(a)
	j.Double()
	return p.FromJacobian(&j)
}

// ScalarMul p = s·a with a fixed-iteration schedule suitable for secret
// scalars; see G1Jac.ScalarMul.
func (p *G1Affine) ScalarMul(a *G1Affine, s *big.Int) *G1Affine {
	var aj, rj G1Jac
	aj.FromAffine(a)
	rj.ScalarMul(&aj, s)
	return p.FromJacobian(&rj)
}

// FromJacobian rescales a point in Jacobian coordinates
func (p *G1Affine) FromJacobian(q *G1Jac) *G1Affine {
	if q.Z.IsZero() {
		return p.SetInfinity()
	}
	p.Infinity = false
	var zInv, t fp.Element
	zInv.Inverse(&q.Z) //nolint:errcheck // Z != 0 here
	t.Square(&zInv)
	p.X.Mul(&q.X, &t)
	t.Mul(&t, &zInv)
	p.Y.Mul(&q.Y, &t)
	return p
}

// ToJacobian sets q to p and returns q
func (p *G1Affine) ToJacobian(q *G1Jac) *G1Jac {
	return q.FromAffine(p)
}

func (p *G1Affine) String() string {
	if p.Infinity {
		return "O"
	}
	return "(" + p.X.String() + ", " + p.Y.String() + ")"
}

// Bytes returns the canonical 64-byte encoding X||Y (big-endian regular
// form); the identity encodes as 64 zero bytes
func (p *G1Affine) Bytes() (res [2 * fp.Bytes]byte) {
	if p.Infinity {
		return
	}
	x := p.X.Bytes()
	y := p.Y.Bytes()
	copy(res[:fp.Bytes], x[:])
	copy(res[fp.Bytes:], y[:])
	return
}

// SetBytes decodes a 64-byte affine encoding, validating both coordinates
// and the curve equation
func (p *G1Affine) SetBytes(e []byte) (*G1Affine, error) {
	if len(e) != 2*fp.Bytes {
		return nil, fp.ErrInvalidEncoding
	}
	allZero := true
	for _, b := range e {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return p.SetInfinity(), nil
	}
	var x, y fp.Element
	if _, err := x.SetBytes(e[:fp.Bytes]); err != nil {
		return nil, err
	}
	if _, err := y.SetBytes(e[fp.Bytes:]); err != nil {
		return nil, err
	}
	if err := p.SetCoordinates(&x, &y); err != nil {
		return nil, err
	}
	return p, nil
}

// -------------------------------------------------------------------------
// jacobian

// Set p = a
func (p *G1Jac) Set(a *G1Jac) *G1Jac {
	p.X.Set(&a.X)
	p.Y.Set(&a.Y)
	p.Z.Set(&a.Z)
	return p
}

// FromAffine sets p from a point in affine coordinates
func (p *G1Jac) FromAffine(a *G1Affine) *G1Jac {
	if a.Infinity {
		p.X.SetOne()
		p.Y.SetOne()
		p.Z.SetZero()
		return p
	}
	p.X.Set(&a.X)
	p.Y.Set(&a.Y)
	p.Z.SetOne()
	return p
}

// IsInfinity returns whether p is the group identity
func (p *G1Jac) IsInfinity() bool {
	return p.Z.IsZero()
}

// Neg p = -a
func (p *G1Jac) Neg(a *G1Jac) *G1Jac {
	p.X.Set(&a.X)
	p.Y.Neg(&a.Y)
	p.Z.Set(&a.Z)
	return p
}

// Equal compares p and a up to the Jacobian rescaling
func (p *G1Jac) Equal(a *G1Jac) bool {
	pInf := p.Z.IsZero()
	aInf := a.Z.IsZero()
	if pInf || aInf {
		return pInf == aInf
	}
	var pz2, az2, l, r fp.Element
	pz2.Square(&p.Z)
	az2.Square(&a.Z)
	l.Mul(&p.X, &az2)
	r.Mul(&a.X, &pz2)
	if !l.Equal(&r) {
		return false
	}
	pz2.Mul(&pz2, &p.Z)
	az2.Mul(&az2, &a.Z)
	l.Mul(&p.Y, &az2)
	r.Mul(&a.Y, &pz2)
	return l.Equal(&r)
}

// selectJac sets p to a if c == 0 and to b otherwise, coordinate-wise
// through arithmetic masks; c must be 0 or 1
func (p *G1Jac) selectJac(c uint64, a, b *G1Jac) *G1Jac {
	p.X.Select(int(c), &a.X, &b.X)
	p.Y.Select(int(c), &a.Y, &b.Y)
	p.Z.Select(int(c), &a.Z, &b.Z)
	return p
}

// Double doubles p in place
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#doubling-dbl-2007-bl
//
// The formula is branchless: the identity (Z == 0) maps to itself.
func (p *G1Jac) Double() *G1Jac {
	var XX, YY, YYYY, ZZ, S, M, T fp.Element

	XX.Square(&p.X)
	YY.Square(&p.Y)
	YYYY.Square(&YY)
	ZZ.Square(&p.Z)

	// S = 2*((X1+YY)²-XX-YYYY)
	S.Add(&p.X, &YY)
	S.Square(&S)
	S.Sub(&S, &XX)
	S.Sub(&S, &YYYY)
	S.Double(&S)

	// M = 3*XX (a = 0)
	M.Double(&XX)
	M.Add(&M, &XX)

	// Z3 = (Y1+Z1)²-YY-ZZ
	p.Z.Add(&p.Z, &p.Y)
	p.Z.Square(&p.Z)
	p.Z.Sub(&p.Z, &YY)
	p.Z.Sub(&p.Z, &ZZ)

	// X3 = M²-2*S
	T.Square(&M)
	p.X.Set(&T)
	T.Double(&S)
	p.X.Sub(&p.X, &T)

	// Y3 = M*(S-X3)-8*YYYY
	p.Y.Sub(&S, &p.X)
	p.Y.Mul(&p.Y, &M)
	YYYY.Double(&YYYY)
	YYYY.Double(&YYYY)
	YYYY.Double(&YYYY)
	p.Y.Sub(&p.Y, &YYYY)

	return p
}

// Add p = p + a, branchy fast path for public inputs.
// Note: calling Add with p == a routes to Double.
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (p *G1Jac) Add(a *G1Jac) *G1Jac {
	// p is infinity, return a
	if p.Z.IsZero() {
		return p.Set(a)
	}
	// a is infinity, return p
	if a.Z.IsZero() {
		return p
	}

	var Z1Z1, Z2Z2, U1, U2, S1, S2, H, I, J, r, V fp.Element

	Z1Z1.Square(&a.Z)
	Z2Z2.Square(&p.Z)
	U1.Mul(&a.X, &Z2Z2)
	U2.Mul(&p.X, &Z1Z1)
	S1.Mul(&a.Y, &p.Z)
	S1.Mul(&S1, &Z2Z2)
	S2.Mul(&p.Y, &a.Z)
	S2.Mul(&S2, &Z1Z1)

	// same point: route to the doubling formula
	if U1.Equal(&U2) && S1.Equal(&S2) {
		return p.Double()
	}

	H.Sub(&U2, &U1)
	I.Double(&H)
	I.Square(&I)
	J.Mul(&H, &I)
	r.Sub(&S2, &S1)
	r.Double(&r)
	V.Mul(&U1, &I)

	// X3 = r²-J-2*V
	p.X.Square(&r)
	p.X.Sub(&p.X, &J)
	p.X.Sub(&p.X, &V)
	p.X.Sub(&p.X, &V)

	// Y3 = r*(V-X3)-2*S1*J
	p.Y.Sub(&V, &p.X)
	p.Y.Mul(&p.Y, &r)
	S1.Mul(&S1, &J)
	S1.Double(&S1)
	p.Y.Sub(&p.Y, &S1)

	// Z3 = ((Z1+Z2)²-Z1Z1-Z2Z2)*H
	p.Z.Add(&p.Z, &a.Z)
	p.Z.Square(&p.Z)
	p.Z.Sub(&p.Z, &Z1Z1)
	p.Z.Sub(&p.Z, &Z2Z2)
	p.Z.Mul(&p.Z, &H)

	return p
}

// AddMixed p = p + a with a in affine coordinates, branchy fast path.
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#addition-madd-2007-bl
func (p *G1Jac) AddMixed(a *G1Affine) *G1Jac {
	// a is infinity, return p
	if a.Infinity {
		return p
	}
	// p is infinity, return a
	if p.Z.IsZero() {
		p.X.Set(&a.X)
		p.Y.Set(&a.Y)
		p.Z.SetOne()
		return p
	}

	var Z1Z1, U2, S2, H, HH, I, J, r, V fp.Element

	Z1Z1.Square(&p.Z)
	U2.Mul(&a.X, &Z1Z1)
	S2.Mul(&a.Y, &p.Z)
	S2.Mul(&S2, &Z1Z1)

	// same point: route to the doubling formula
	if U2.Equal(&p.X) && S2.Equal(&p.Y) {
		return p.Double()
	}

	H.Sub(&U2, &p.X)
	HH.Square(&H)
	I.Double(&HH)
	I.Double(&I)
	J.Mul(&H, &I)
	r.Sub(&S2, &p.Y)
	r.Double(&r)
	V.Mul(&p.X, &I)

	// X3 = r²-J-2*V
	p.X.Square(&r)
	p.X.Sub(&p.X, &J)
	p.X.Sub(&p.X, &V)
	p.X.Sub(&p.X, &V)

	// Y3 = r*(V-X3)-2*Y1*J
	J.Mul(&J, &p.Y)
	J.Double(&J)
	p.Y.Sub(&V, &p.X)
	p.Y.Mul(&p.Y, &r)
	p.Y.Sub(&p.Y, &J)

	// Z3 = (Z1+H)²-Z1Z1-HH
	p.Z.Add(&p.Z, &H)
	p.Z.Square(&p.Z)
	p.Z.Sub(&p.Z, &Z1Z1)
	p.Z.Sub(&p.Z, &HH)

	return p
}

// AddUnified p = p + a. Every group-law case is computed unconditionally
// and the outcome is chosen through masked selects, so neither timing nor
// the memory-access pattern reveals which case occurred.
func (p *G1Jac) AddUnified(a *G1Jac) *G1Jac {
	infP := p.Z.IsZeroMask()
	infA := a.Z.IsZeroMask()

	var Z1Z1, Z2Z2, U1, U2, S1, S2, H, I, J, r, V fp.Element

	Z1Z1.Square(&a.Z)
	Z2Z2.Square(&p.Z)
	U1.Mul(&a.X, &Z2Z2)
	U2.Mul(&p.X, &Z1Z1)
	S1.Mul(&a.Y, &p.Z)
	S1.Mul(&S1, &Z2Z2)
	S2.Mul(&p.Y, &a.Z)
	S2.Mul(&S2, &Z1Z1)

	dbl := U1.EqMask(&U2) & S1.EqMask(&S2)

	// doubling result, computed whether needed or not
	var doubled G1Jac
	doubled.Set(p)
	doubled.Double()

	// generic chord result; when U1 == U2 it degenerates to Z == 0
	// (the correct representation of infinity for the opposite-y case)
	// and is overridden by the selects below for the doubling case
	var res G1Jac
	H.Sub(&U2, &U1)
	I.Double(&H)
	I.Square(&I)
	J.Mul(&H, &I)
	r.Sub(&S2, &S1)
	r.Double(&r)
	V.Mul(&U1, &I)

	res.X.Square(&r)
	res.X.Sub(&res.X, &J)
	res.X.Sub(&res.X, &V)
	res.X.Sub(&res.X, &V)

	res.Y.Sub(&V, &res.X)
	res.Y.Mul(&res.Y, &r)
	S1.Mul(&S1, &J)
	S1.Double(&S1)
	res.Y.Sub(&res.Y, &S1)

	res.Z.Add(&p.Z, &a.Z)
	res.Z.Square(&res.Z)
	res.Z.Sub(&res.Z, &Z1Z1)
	res.Z.Sub(&res.Z, &Z2Z2)
	res.Z.Mul(&res.Z, &H)

	res.selectJac(dbl, &res, &doubled)
	res.selectJac(infA, &res, p)
	res.selectJac(infP, &res, a)

	return p.Set(&res)
}

// ScalarMul p = s·a for secret scalars: a fixed 256-iteration
// double-and-always-add over masked selects. The operation count and the
// memory-access pattern are independent of the scalar's value and bit
// pattern; no iteration is skipped on a zero bit. The magnitude of s must
// fit in 256 bits.
func (p *G1Jac) ScalarMul(a *G1Jac, s *big.Int) *G1Jac {
	var k big.Int
	k.Set(s)
	var base G1Jac
	base.Set(a)
	if k.Sign() == -1 {
		k.Neg(&k)
		base.Neg(&base)
	}

	// materialize the scalar once into a fixed-width buffer so bit reads
	// are position-indexed, not length-dependent
	var kb [32]byte
	k.FillBytes(kb[:])

	acc := BN254().g1Infinity
	var t G1Jac
	for i := 0; i < 256; i++ {
		acc.Double()
		t.Set(&acc)
		t.AddUnified(&base)
		bit := uint64(kb[i/8]>>(7-uint(i)%8)) & 1
		acc.selectJac(bit, &acc, &t)
	}
	return p.Set(&acc)
}

// ScalarMulPublic p = s·a, NAF double-and-add fast path. The work depends
// on the scalar's bit pattern: public scalars only.
func (p *G1Jac) ScalarMulPublic(a *G1Jac, s *big.Int) *G1Jac {
	var k big.Int
	k.Set(s)
	var base G1Jac
	base.Set(a)
	if k.Sign() == -1 {
		k.Neg(&k)
		base.Neg(&base)
	}

	// a NAF has at most BitLen+1 trits
	naf := make([]int8, k.BitLen()+2)
	l := ecc.NafDecomposition(&k, naf)

	var baseAff, baseNeg G1Affine
	baseAff.FromJacobian(&base)
	baseNeg.Neg(&baseAff)

	res := BN254().g1Infinity
	for i := l - 1; i >= 0; i-- {
		res.Double()
		switch naf[i] {
		case 1:
			res.AddMixed(&baseAff)
		case -1:
			res.AddMixed(&baseNeg)
		}
	}
	return p.Set(&res)
}

// ScalarMulByGen p = s·g using the window table precomputed from the
// public generator. The table scan touches every entry with a masked
// select, so the access pattern does not depend on the scalar digits.
// The magnitude of s must fit in 256 bits.
func (p *G1Jac) ScalarMulByGen(curve *Curve, s *big.Int) *G1Jac {
	var k big.Int
	k.Set(s)
	neg := k.Sign() == -1
	if neg {
		k.Neg(&k)
	}

	var kb [32]byte
	k.FillBytes(kb[:])

	acc := curve.g1Infinity
	var entry, t G1Jac
	for w := 0; w < 2*len(kb); w++ {
		for j := 0; j < sGen; j++ {
			acc.Double()
		}
		var d uint64
		if w%2 == 0 {
			d = uint64(kb[w/2] >> 4)
		} else {
			d = uint64(kb[w/2] & 0x0f)
		}

		// masked scan; a zero digit selects infinity, which AddUnified
		// absorbs, so the add always happens
		entry.Set(&curve.g1Infinity)
		for i := 0; i < len(curve.tGenG1); i++ {
			entry.selectJac(eqWord(d, uint64(i+1)), &entry, &curve.tGenG1[i])
		}
		t.Set(&acc)
		t.AddUnified(&entry)
		acc.Set(&t)
	}
	if neg {
		acc.Neg(&acc)
	}
	return p.Set(&acc)
}

// eqWord returns 1 when a == b without branching.
func eqWord(a, b uint64) uint64 {
	w := a ^ b
	return 1 ^ ((w | -w) >> 63)
}

func (p *G1Jac) String() string {
	var aff G1Affine
	aff.FromJacobian(p)
	return aff.String()
}
