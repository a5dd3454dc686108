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
	"math/bits"
)

// madd0 hi = a*b + c (discards lo bits)
func madd0(a, b, c uint64) (hi uint64) {
	var carry, lo uint64
	hi, lo = bits.Mul64(a, b)
	_, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return
}

// madd1 hi, lo = a*b + c
func madd1(a, b, c uint64) (hi uint64, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return
}

// madd2 hi, lo = a*b + c + d
func madd2(a, b, c, d uint64) (hi uint64, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	c, carry = bits.Add64(c, d, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return
}

// madd3 hi, lo = a*b + c + d + e*2⁶⁴
func madd3(a, b, c, d, e uint64) (hi uint64, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	c, carry = bits.Add64(c, d, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, e, carry)
	return
}

// mask64 turns a 0/1 word into an all-zeros/all-ones mask.
func mask64(b uint64) uint64 {
	return -b
}

// ctIsZero returns 1 if w == 0, examining every bit of w.
func ctIsZero(w uint64) uint64 {
	return 1 ^ ((w | -w) >> 63)
}

// ctLessLimbs returns 1 if a < b interpreting both as little-endian
// 256-bit integers. The borrow chain touches all limbs; there is no
// early exit regardless of where the first differing limb sits.
func ctLessLimbs(a, b *[Limbs]uint64) uint64 {
	var borrow uint64
	_, borrow = bits.Sub64(a[0], b[0], 0)
	_, borrow = bits.Sub64(a[1], b[1], borrow)
	_, borrow = bits.Sub64(a[2], b[2], borrow)
	_, borrow = bits.Sub64(a[3], b[3], borrow)
	return borrow
}

// ctEqLimbs returns 1 if a == b, folding all limbs before deciding.
func ctEqLimbs(a, b *[Limbs]uint64) uint64 {
	w := (a[0] ^ b[0]) | (a[1] ^ b[1]) | (a[2] ^ b[2]) | (a[3] ^ b[3])
	return ctIsZero(w)
}

// ctSelectLimbs sets z to x0 if c == 0 and to x1 otherwise, using an
// arithmetic mask rather than a conditional jump.
func ctSelectLimbs(z, x0, x1 *[Limbs]uint64, c uint64) {
	m := mask64(c)
	z[0] = x0[0] ^ m&(x0[0]^x1[0])
	z[1] = x0[1] ^ m&(x0[1]^x1[1])
	z[2] = x0[2] ^ m&(x0[2]^x1[2])
	z[3] = x0[3] ^ m&(x0[3]^x1[3])
}
