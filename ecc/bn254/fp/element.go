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

package fp

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
	"math/big"
	"math/bits"
)

// Element represents a field element stored on 4 words (uint64)
//
// Element are assumed to be in Montgomery form in all methods.
//
// Modulus q =
//
//	q[base10] = 21888242871839275222246405745257275088696311157297823662689037894645226208583
//	q[base16] = 0x30644e72e131a029b85045b68181585d97816a916871ca8d3c208c16d87cfd47
type Element [4]uint64

const (
	Limbs = 4         // number of 64 bits words needed to represent a Element
	Bits  = 254       // number of bits needed to represent a Element
	Bytes = Limbs * 8 // number of bytes needed to represent a Element
)

// Field modulus q
const (
	q0 uint64 = 4332616871279656263
	q1 uint64 = 10917124144477883021
	q2 uint64 = 13281191951274694749
	q3 uint64 = 3486998266802970665
)

var qElement = Element{
	q0,
	q1,
	q2,
	q3,
}

// q + r'.r = 1, i.e., qInvNeg = - q⁻¹ mod r
// used for Montgomery reduction
const qInvNeg uint64 = 9786893198990664585

// rSquare = 2⁵¹² mod q, used to enter the Montgomery domain
var rSquare = Element{
	17522657719365597833,
	13107472804851548667,
	5164255478447964150,
	493319470278259999,
}

// q - 2, the Fermat inversion exponent
var qMinusTwo = [Limbs]uint64{
	4332616871279656261,
	10917124144477883021,
	13281191951274694749,
	3486998266802970665,
}

// (q + 1) / 4; q ≡ 3 mod 4 so x^((q+1)/4) is a square root candidate
var qPlusOneOver4 = [Limbs]uint64{
	5694840236247301970,
	7340967054546858659,
	7931984006246061591,
	871749566700742666,
}

var (
	// ErrInvalidModulus is returned when a caller supplies a modulus other
	// than the fixed BN254 base-field prime.
	ErrInvalidModulus = errors.New("fp: unsupported modulus, element is specialized to the BN254 base field")

	// ErrInvalidEncoding is returned by SetBytes when the encoded integer is
	// not a canonical residue (>= q).
	ErrInvalidEncoding = errors.New("fp: encoded value is not a canonical field element")

	// ErrNoInverse is returned when inverting the additive identity.
	ErrNoInverse = errors.New("fp: zero has no multiplicative inverse")

	// ErrNoSquareRoot is returned by Sqrt on a non-residue.
	ErrNoSquareRoot = errors.New("fp: element is not a square")
)

var _modulus big.Int

func init() {
	_modulus.SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)
}

// Modulus returns q as a big.Int
func Modulus() *big.Int {
	return new(big.Int).Set(&_modulus)
}

// NewElement reduces v into [0, q) and converts it to Montgomery form.
//
// The modulus parameter is a documentation convenience: the type is
// specialized to the BN254 base field and any other value yields
// ErrInvalidModulus. Pass nil to use the fixed prime implicitly.
func NewElement(v *big.Int, modulus *big.Int) (Element, error) {
	if modulus != nil && modulus.Cmp(&_modulus) != 0 {
		return Element{}, ErrInvalidModulus
	}
	var z Element
	z.SetBigInt(v)
	return z, nil
}

// Set z = x
func (z *Element) Set(x *Element) *Element {
	z[0] = x[0]
	z[1] = x[1]
	z[2] = x[2]
	z[3] = x[3]
	return z
}

// SetZero z = 0
func (z *Element) SetZero() *Element {
	z[0] = 0
	z[1] = 0
	z[2] = 0
	z[3] = 0
	return z
}

// SetOne z = 1 (in Montgomery form)
func (z *Element) SetOne() *Element {
	z[0] = 15230403791020821917
	z[1] = 754611498739239741
	z[2] = 7381016538464732716
	z[3] = 1011752739694698287
	return z
}

// SetUint64 sets z to v and returns z
func (z *Element) SetUint64(v uint64) *Element {
	*z = Element{v}
	return z.Mul(z, &rSquare) // z.toMont()
}

// SetBigInt sets z to v mod q and returns z
func (z *Element) SetBigInt(v *big.Int) *Element {
	z.SetZero()

	var t big.Int
	t.Mod(v, &_modulus)
	words := t.Bits()
	// big.Word is 64 bits on all platforms this package targets
	for i := 0; i < len(words) && i < Limbs; i++ {
		z[i] = uint64(words[i])
	}
	return z.Mul(z, &rSquare)
}

// SetString sets z from a base-10 string; it panics if the string does not
// parse, this is meant for hardcoded constants only
func (z *Element) SetString(s string) *Element {
	var v big.Int
	if _, ok := v.SetString(s, 10); !ok {
		panic("fp: Element.SetString failed on " + s)
	}
	return z.SetBigInt(&v)
}

// SetRandom sets z to a uniform random value in [0, q) using rejection
// sampling from crypto/rand
func (z *Element) SetRandom() (*Element, error) {
	const k = (Bits + 7) / 8 // bytes needed to encode a value < q
	b := uint(Bits % 8)
	if b == 0 {
		b = 8
	}

	var bytes [Bytes]byte
	for {
		if _, err := io.ReadFull(rand.Reader, bytes[:k]); err != nil {
			return nil, err
		}
		// clear unused bits of the most significant byte to raise the
		// acceptance probability
		bytes[k-1] &= uint8(int(1<<b) - 1)
		z[0] = binary.LittleEndian.Uint64(bytes[0:8])
		z[1] = binary.LittleEndian.Uint64(bytes[8:16])
		z[2] = binary.LittleEndian.Uint64(bytes[16:24])
		z[3] = binary.LittleEndian.Uint64(bytes[24:32])

		if z.smallerThanModulus() {
			return z.Mul(z, &rSquare), nil
		}
	}
}

// smallerThanModulus returns true if z < q.
// The underlying borrow chain inspects every limb.
func (z *Element) smallerThanModulus() bool {
	return ctLessLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(&qElement)) == 1
}

// reduce brings z back below q with a masked conditional subtraction;
// z must be < 2q on entry
func (z *Element) reduce() {
	var t Element
	var b uint64
	t[0], b = bits.Sub64(z[0], q0, 0)
	t[1], b = bits.Sub64(z[1], q1, b)
	t[2], b = bits.Sub64(z[2], q2, b)
	t[3], b = bits.Sub64(z[3], q3, b)
	// b == 1 means z < q: keep z, else take z - q
	ctSelectLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(&t), (*[Limbs]uint64)(z), b)
}

// IsZero returns z == 0
func (z *Element) IsZero() bool {
	return (z[3] | z[2] | z[1] | z[0]) == 0
}

// IsOne returns z == 1
func (z *Element) IsOne() bool {
	var one Element
	one.SetOne()
	return z.Equal(&one)
}

// Equal returns z == x; the comparison folds over all limbs
func (z *Element) Equal(x *Element) bool {
	return ctEqLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(x)) == 1
}

// EqMask returns 1 when z == x and 0 otherwise, suitable for masked
// selection in callers that must not branch on the outcome.
func (z *Element) EqMask(x *Element) uint64 {
	return ctEqLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(x))
}

// IsZeroMask returns 1 when z == 0 and 0 otherwise, without branching.
func (z *Element) IsZeroMask() uint64 {
	return ctIsZero(z[0] | z[1] | z[2] | z[3])
}

// Select sets z to x0 if c == 0 and to x1 otherwise.
// The selection uses an arithmetic mask, never a jump; c must be 0 or 1.
func (z *Element) Select(c int, x0 *Element, x1 *Element) *Element {
	ctSelectLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(x0), (*[Limbs]uint64)(x1), uint64(c))
	return z
}

// Add z = x + y (mod q)
func (z *Element) Add(x, y *Element) *Element {
	var carry uint64
	z[0], carry = bits.Add64(x[0], y[0], 0)
	z[1], carry = bits.Add64(x[1], y[1], carry)
	z[2], carry = bits.Add64(x[2], y[2], carry)
	z[3], _ = bits.Add64(x[3], y[3], carry)
	// x, y < q < 2²⁵⁴ so the sum never carries out of the top limb
	z.reduce()
	return z
}

// Double z = x + x (mod q), aka Lsh 1
func (z *Element) Double(x *Element) *Element {
	var carry uint64
	z[0], carry = bits.Add64(x[0], x[0], 0)
	z[1], carry = bits.Add64(x[1], x[1], carry)
	z[2], carry = bits.Add64(x[2], x[2], carry)
	z[3], _ = bits.Add64(x[3], x[3], carry)
	z.reduce()
	return z
}

// Sub z = x - y (mod q)
func (z *Element) Sub(x, y *Element) *Element {
	var b uint64
	z[0], b = bits.Sub64(x[0], y[0], 0)
	z[1], b = bits.Sub64(x[1], y[1], b)
	z[2], b = bits.Sub64(x[2], y[2], b)
	z[3], b = bits.Sub64(x[3], y[3], b)
	// add q back when the subtraction borrowed, masked on the borrow bit
	m := mask64(b)
	var c uint64
	z[0], c = bits.Add64(z[0], q0&m, 0)
	z[1], c = bits.Add64(z[1], q1&m, c)
	z[2], c = bits.Add64(z[2], q2&m, c)
	z[3], _ = bits.Add64(z[3], q3&m, c)
	return z
}

// Neg z = q - x; the zero fixup is masked so timing does not depend on x
func (z *Element) Neg(x *Element) *Element {
	var b uint64
	var t Element
	t[0], b = bits.Sub64(q0, x[0], 0)
	t[1], b = bits.Sub64(q1, x[1], b)
	t[2], b = bits.Sub64(q2, x[2], b)
	t[3], _ = bits.Sub64(q3, x[3], b)
	// q - 0 == q is not canonical: zero the result when x == 0
	m := mask64(1 ^ ctIsZero(x[0]|x[1]|x[2]|x[3]))
	z[0] = t[0] & m
	z[1] = t[1] & m
	z[2] = t[2] & m
	z[3] = t[3] & m
	return z
}

// Mul z = x * y (mod q)
//
// x and y must be strictly inferior to q
func (z *Element) Mul(x, y *Element) *Element {
	// Implements CIOS multiplication -- section 2.3.2 of Tolga Acar's thesis
	// https://www.microsoft.com/en-us/research/wp-content/uploads/1998/06/97Acar.pdf
	//
	// Simplified single-carry variant, valid because the highest bit of q is
	// zero; see https://hackmd.io/@gnark/modular_multiplication
	_mulGeneric(z, x, y)
	return z
}

// Square z = x * x (mod q)
//
// the off-diagonal products are computed once and doubled instead of being
// computed twice, then a standalone Montgomery reduction pass folds the
// 512-bit square
func (z *Element) Square(x *Element) *Element {
	_squareGeneric(z, x)
	return z
}

func _mulGeneric(z, x, y *Element) {
	var t [4]uint64
	var c [3]uint64
	{
		// round 0
		v := x[0]
		c[1], c[0] = bits.Mul64(v, y[0])
		m := c[0] * qInvNeg
		c[2] = madd0(m, q0, c[0])
		c[1], c[0] = madd1(v, y[1], c[1])
		c[2], t[0] = madd2(m, q1, c[2], c[0])
		c[1], c[0] = madd1(v, y[2], c[1])
		c[2], t[1] = madd2(m, q2, c[2], c[0])
		c[1], c[0] = madd1(v, y[3], c[1])
		t[3], t[2] = madd3(m, q3, c[0], c[2], c[1])
	}
	{
		// round 1
		v := x[1]
		c[1], c[0] = madd1(v, y[0], t[0])
		m := c[0] * qInvNeg
		c[2] = madd0(m, q0, c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], t[0] = madd2(m, q1, c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], t[1] = madd2(m, q2, c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		t[3], t[2] = madd3(m, q3, c[0], c[2], c[1])
	}
	{
		// round 2
		v := x[2]
		c[1], c[0] = madd1(v, y[0], t[0])
		m := c[0] * qInvNeg
		c[2] = madd0(m, q0, c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], t[0] = madd2(m, q1, c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], t[1] = madd2(m, q2, c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		t[3], t[2] = madd3(m, q3, c[0], c[2], c[1])
	}
	{
		// round 3
		v := x[3]
		c[1], c[0] = madd1(v, y[0], t[0])
		m := c[0] * qInvNeg
		c[2] = madd0(m, q0, c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], z[0] = madd2(m, q1, c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], z[1] = madd2(m, q2, c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		z[3], z[2] = madd3(m, q3, c[0], c[2], c[1])
	}
	z.reduce()
}

func _squareGeneric(z, x *Element) {
	var t [8]uint64
	var c uint64

	// off-diagonal products, each cross term computed once
	c, t[1] = bits.Mul64(x[0], x[1])
	c, t[2] = madd1(x[0], x[2], c)
	c, t[3] = madd1(x[0], x[3], c)
	t[4] = c
	c, t[3] = madd1(x[1], x[2], t[3])
	c, t[4] = madd2(x[1], x[3], t[4], c)
	t[5] = c
	c, t[5] = madd1(x[2], x[3], t[5])
	t[6] = c

	// double the cross terms
	t[7] = t[6] >> 63
	t[6] = t[6]<<1 | t[5]>>63
	t[5] = t[5]<<1 | t[4]>>63
	t[4] = t[4]<<1 | t[3]>>63
	t[3] = t[3]<<1 | t[2]>>63
	t[2] = t[2]<<1 | t[1]>>63
	t[1] = t[1] << 1

	// add the diagonal x[i]²
	var hi, lo, carry uint64
	hi, lo = bits.Mul64(x[0], x[0])
	t[0], carry = bits.Add64(t[0], lo, 0)
	t[1], carry = bits.Add64(t[1], hi, carry)
	hi, lo = bits.Mul64(x[1], x[1])
	t[2], carry = bits.Add64(t[2], lo, carry)
	t[3], carry = bits.Add64(t[3], hi, carry)
	hi, lo = bits.Mul64(x[2], x[2])
	t[4], carry = bits.Add64(t[4], lo, carry)
	t[5], carry = bits.Add64(t[5], hi, carry)
	hi, lo = bits.Mul64(x[3], x[3])
	t[6], carry = bits.Add64(t[6], lo, carry)
	t[7], _ = bits.Add64(t[7], hi, carry)

	montReduce(z, &t)
}

// montReduce sets z = t · R⁻¹ mod q for a 512-bit t < q·2²⁵⁶
func montReduce(z *Element, t *[8]uint64) {
	var c, c2 uint64

	m := t[0] * qInvNeg
	c = madd0(m, q0, t[0])
	c, t[1] = madd2(m, q1, t[1], c)
	c, t[2] = madd2(m, q2, t[2], c)
	c, t[3] = madd2(m, q3, t[3], c)
	t[4], c2 = bits.Add64(t[4], c, 0)

	m = t[1] * qInvNeg
	c = madd0(m, q0, t[1])
	c, t[2] = madd2(m, q1, t[2], c)
	c, t[3] = madd2(m, q2, t[3], c)
	c, t[4] = madd2(m, q3, t[4], c)
	t[5], c2 = bits.Add64(t[5], c, c2)

	m = t[2] * qInvNeg
	c = madd0(m, q0, t[2])
	c, t[3] = madd2(m, q1, t[3], c)
	c, t[4] = madd2(m, q2, t[4], c)
	c, t[5] = madd2(m, q3, t[5], c)
	t[6], c2 = bits.Add64(t[6], c, c2)

	m = t[3] * qInvNeg
	c = madd0(m, q0, t[3])
	c, t[4] = madd2(m, q1, t[4], c)
	c, t[5] = madd2(m, q2, t[5], c)
	c, t[6] = madd2(m, q3, t[6], c)
	t[7], _ = bits.Add64(t[7], c, c2)

	z[0], z[1], z[2], z[3] = t[4], t[5], t[6], t[7]
	z.reduce()
}

// fromMont converts z in place from Montgomery to regular representation,
// i.e. z = z * R⁻¹; implemented as a modified CIOS multiplication by 1
func (z *Element) fromMont() *Element {
	for i := 0; i < 4; i++ {
		m := z[0] * qInvNeg
		c := madd0(m, q0, z[0])
		c, z[0] = madd2(m, q1, z[1], c)
		c, z[1] = madd2(m, q2, z[2], c)
		c, z[2] = madd2(m, q3, z[3], c)
		z[3] = c
	}
	z.reduce()
	return z
}

// ToMont converts a regular-form z to Montgomery form
func (z *Element) ToMont() *Element {
	return z.Mul(z, &rSquare)
}

// FromMont returns z in regular (non-Montgomery) representation
func (z Element) FromMont() Element {
	z.fromMont()
	return z
}

// Exp z = x^k (mod q), left-to-right square and multiply.
//
// The bit pattern of k governs the multiply schedule: use it for public
// exponents only. Inverse and Sqrt use fixed public exponents with an
// always-multiply schedule.
func (z *Element) Exp(x Element, k *big.Int) *Element {
	if k.Sign() == 0 {
		return z.SetOne()
	}
	if k.Sign() < 0 {
		panic("fp: Exp with negative exponent")
	}
	z.Set(&x)
	for i := k.BitLen() - 2; i >= 0; i-- {
		z.Square(z)
		if k.Bit(i) == 1 {
			z.Mul(z, &x)
		}
	}
	return z
}

// expFixed z = x^e for a fixed public exponent given as limbs.
// Every iteration performs both the squaring and the multiplication; the
// masked select keeps or drops the product so the schedule never varies
// with the operand.
func expFixed(z, x *Element, e *[Limbs]uint64, bitLen int) {
	var r, t Element
	r.SetOne()
	for i := bitLen - 1; i >= 0; i-- {
		r.Square(&r)
		t.Mul(&r, x)
		bit := int((e[i/64] >> (uint(i) % 64)) & 1)
		r.Select(bit, &r, &t)
	}
	z.Set(&r)
}

// Inverse returns z = x⁻¹ (mod q) via Fermat's little theorem (x^(q-2)),
// or ErrNoInverse when x is the additive identity.
//
// The exponentiation runs a fixed 254-iteration schedule independent of x.
func (z *Element) Inverse(x *Element) (*Element, error) {
	if x.IsZero() {
		return nil, ErrNoInverse
	}
	expFixed(z, x, &qMinusTwo, Bits)
	return z, nil
}

// inverseUnchecked sets z = x⁻¹, with z = 0 when x = 0. Internal helper for
// masked formulas that compute an inverse unconditionally and discard it.
func (z *Element) inverseUnchecked(x *Element) *Element {
	expFixed(z, x, &qMinusTwo, Bits)
	return z
}

// Sqrt returns z such that z² = x, or ErrNoSquareRoot if x is not a
// quadratic residue. Uses the q ≡ 3 mod 4 shortcut x^((q+1)/4).
func (z *Element) Sqrt(x *Element) (*Element, error) {
	var candidate, check Element
	expFixed(&candidate, x, &qPlusOneOver4, Bits)
	check.Square(&candidate)
	if !check.Equal(x) {
		return nil, ErrNoSquareRoot
	}
	z.Set(&candidate)
	return z, nil
}

// Cmp compares (lexicographic order) z and x on their regular form and
// returns -1, 0 or +1. Not constant time.
func (z *Element) Cmp(x *Element) int {
	l := z.FromMont()
	r := x.FromMont()
	for i := Limbs - 1; i >= 0; i-- {
		if l[i] < r[i] {
			return -1
		}
		if l[i] > r[i] {
			return 1
		}
	}
	return 0
}

// Bytes returns the canonical 32-byte big-endian encoding of the regular
// (non-Montgomery) residue
func (z *Element) Bytes() (res [Bytes]byte) {
	t := z.FromMont()
	binary.BigEndian.PutUint64(res[24:32], t[0])
	binary.BigEndian.PutUint64(res[16:24], t[1])
	binary.BigEndian.PutUint64(res[8:16], t[2])
	binary.BigEndian.PutUint64(res[0:8], t[3])
	return
}

// SetBytes decodes a canonical 32-byte big-endian encoding; it returns
// ErrInvalidEncoding if the integer is not strictly smaller than q
func (z *Element) SetBytes(e []byte) (*Element, error) {
	if len(e) != Bytes {
		return nil, ErrInvalidEncoding
	}
	z[0] = binary.BigEndian.Uint64(e[24:32])
	z[1] = binary.BigEndian.Uint64(e[16:24])
	z[2] = binary.BigEndian.Uint64(e[8:16])
	z[3] = binary.BigEndian.Uint64(e[0:8])
	if !z.smallerThanModulus() {
		z.SetZero()
		return nil, ErrInvalidEncoding
	}
	return z.Mul(z, &rSquare), nil
}

// BigInt returns the regular-form residue as a big.Int
func (z *Element) BigInt(res *big.Int) *big.Int {
	b := z.Bytes()
	return res.SetBytes(b[:])
}

func (z *Element) String() string {
	var v big.Int
	return z.BigInt(&v).String()
}

// Wipe overwrites the limbs with zero. Call it on every exit path of code
// holding secret material; WithSecret does so automatically.
func (z *Element) Wipe() {
	z[0] = 0
	z[1] = 0
	z[2] = 0
	z[3] = 0
}

// WithSecret runs fn with a scratch element that is wiped on every exit
// path, normal return or panic.
func WithSecret(fn func(*Element)) {
	var s Element
	defer s.Wipe()
	fn(&s)
}
