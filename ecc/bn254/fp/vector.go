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
	"github.com/klauspost/cpuid/v2"

	"github.com/zerosync/bn254/debug"
	"github.com/zerosync/bn254/logger"
	"github.com/zerosync/bn254/utils/parallel"
)

// vectorLanes is the batch width of the wide kernel.
const vectorLanes = 4

// parallelThreshold is the batch size above which the work is split across
// CPUs; below it the goroutine fanout costs more than it saves.
const parallelThreshold = 1 << 10

// vectorUnit caches the one-time capability probe. Dispatch is decided here
// once, not per call.
var vectorUnit bool

func init() {
	vectorUnit = cpuid.CPU.Supports(cpuid.AVX2)
	log := logger.Logger().With().Str("component", "fp").Logger()
	log.Debug().Bool("wide", vectorUnit).Msg("batch kernel selected")
}

// VectorAvailable reports whether the 4-lane wide kernel is in use. This is
// a pure query; callers never need it for correctness, the scalar path is
// always available and both paths produce identical results.
func VectorAvailable() bool {
	return vectorUnit
}

// Vector is a slice of independent field elements. Batch methods apply the
// same operation element-wise; each result depends only on the operands at
// the same index, so chunks may be processed in any order and in parallel.
type Vector []Element

// mulState carries one lane of an in-flight CIOS multiplication so that the
// wide kernel can interleave rounds across lanes.
type mulState struct {
	t [4]uint64
	c [3]uint64
}

// round folds limb v of the left operand into the running product with y.
// With t zero-initialized the same body serves as round 0.
func (s *mulState) round(v uint64, y *Element) {
	t := &s.t
	c := &s.c
	c[1], c[0] = madd2(v, y[0], t[0], 0)
	m := c[0] * qInvNeg
	c[2] = madd0(m, q0, c[0])
	c[1], c[0] = madd2(v, y[1], c[1], t[1])
	c[2], t[0] = madd2(m, q1, c[2], c[0])
	c[1], c[0] = madd2(v, y[2], c[1], t[2])
	c[2], t[1] = madd2(m, q2, c[2], c[0])
	c[1], c[0] = madd2(v, y[3], c[1], t[3])
	t[3], t[2] = madd3(m, q3, c[0], c[2], c[1])
}

// mul4 multiplies 4 independent pairs, scheduling the CIOS rounds across
// lanes so the carry chains of the 4 multiplications overlap. Per-lane
// results are bit-identical to the scalar Mul; no lane's work depends on
// another lane's data, and no lane skips work based on its own.
func mul4(z, x, y *[vectorLanes]Element) {
	var st [vectorLanes]mulState
	for r := 0; r < Limbs; r++ {
		st[0].round(x[0][r], &y[0])
		st[1].round(x[1][r], &y[1])
		st[2].round(x[2][r], &y[2])
		st[3].round(x[3][r], &y[3])
	}
	for l := 0; l < vectorLanes; l++ {
		z[l] = Element(st[l].t)
		z[l].reduce()
	}
}

// add4 adds 4 independent pairs with the lane bodies unrolled back to back.
func add4(z, x, y *[vectorLanes]Element) {
	z[0].Add(&x[0], &y[0])
	z[1].Add(&x[1], &y[1])
	z[2].Add(&x[2], &y[2])
	z[3].Add(&x[3], &y[3])
}

func sub4(z, x, y *[vectorLanes]Element) {
	z[0].Sub(&x[0], &y[0])
	z[1].Sub(&x[1], &y[1])
	z[2].Sub(&x[2], &y[2])
	z[3].Sub(&x[3], &y[3])
}

// Mul sets v[i] = a[i] * b[i] for all i.
func (v Vector) Mul(a, b Vector) {
	debug.Assert(len(v) == len(a) && len(a) == len(b), "fp: vector length mismatch")
	dispatch(len(v), func(start, end int) {
		i := start
		if vectorUnit {
			for ; i+vectorLanes <= end; i += vectorLanes {
				mul4((*[vectorLanes]Element)(v[i:i+vectorLanes]),
					(*[vectorLanes]Element)(a[i:i+vectorLanes]),
					(*[vectorLanes]Element)(b[i:i+vectorLanes]))
			}
		}
		for ; i < end; i++ {
			v[i].Mul(&a[i], &b[i])
		}
	})
}

// Square sets v[i] = a[i]² for all i.
func (v Vector) Square(a Vector) {
	debug.Assert(len(v) == len(a), "fp: vector length mismatch")
	dispatch(len(v), func(start, end int) {
		i := start
		if vectorUnit {
			for ; i+vectorLanes <= end; i += vectorLanes {
				mul4((*[vectorLanes]Element)(v[i:i+vectorLanes]),
					(*[vectorLanes]Element)(a[i:i+vectorLanes]),
					(*[vectorLanes]Element)(a[i:i+vectorLanes]))
			}
		}
		for ; i < end; i++ {
			v[i].Square(&a[i])
		}
	})
}

// Add sets v[i] = a[i] + b[i] for all i.
func (v Vector) Add(a, b Vector) {
	debug.Assert(len(v) == len(a) && len(a) == len(b), "fp: vector length mismatch")
	dispatch(len(v), func(start, end int) {
		i := start
		if vectorUnit {
			for ; i+vectorLanes <= end; i += vectorLanes {
				add4((*[vectorLanes]Element)(v[i:i+vectorLanes]),
					(*[vectorLanes]Element)(a[i:i+vectorLanes]),
					(*[vectorLanes]Element)(b[i:i+vectorLanes]))
			}
		}
		for ; i < end; i++ {
			v[i].Add(&a[i], &b[i])
		}
	})
}

// Sub sets v[i] = a[i] - b[i] for all i.
func (v Vector) Sub(a, b Vector) {
	debug.Assert(len(v) == len(a) && len(a) == len(b), "fp: vector length mismatch")
	dispatch(len(v), func(start, end int) {
		i := start
		if vectorUnit {
			for ; i+vectorLanes <= end; i += vectorLanes {
				sub4((*[vectorLanes]Element)(v[i:i+vectorLanes]),
					(*[vectorLanes]Element)(a[i:i+vectorLanes]),
					(*[vectorLanes]Element)(b[i:i+vectorLanes]))
			}
		}
		for ; i < end; i++ {
			v[i].Sub(&a[i], &b[i])
		}
	})
}

// ScalarMul sets v[i] = a[i] * s for all i.
func (v Vector) ScalarMul(a Vector, s *Element) {
	debug.Assert(len(v) == len(a), "fp: vector length mismatch")
	dispatch(len(v), func(start, end int) {
		for i := start; i < end; i++ {
			v[i].Mul(&a[i], s)
		}
	})
}

// Sum returns the sum of all elements, accumulated lazily.
func (v Vector) Sum() Element {
	var acc Acc
	for i := 0; i < len(v); i++ {
		acc.Add(&v[i])
	}
	return acc.Norm()
}

// dispatch runs work over [0, n), splitting across CPUs for large batches.
func dispatch(n int, work func(int, int)) {
	if n >= parallelThreshold {
		parallel.Execute(0, n, work)
		return
	}
	work(0, n)
}

// BatchInvert inverts v in place using the Montgomery trick (a single field
// inversion plus 3(n-1) multiplications). It fails with ErrNoInverse if any
// element is the additive identity, leaving v untouched.
func BatchInvert(v Vector) error {
	for i := 0; i < len(v); i++ {
		if v[i].IsZero() {
			return ErrNoInverse
		}
	}
	if len(v) == 0 {
		return nil
	}

	prefix := make(Vector, len(v))
	var acc Element
	acc.SetOne()
	for i := 0; i < len(v); i++ {
		prefix[i].Set(&acc)
		acc.Mul(&acc, &v[i])
	}

	// the zero scan above guarantees acc != 0
	var accInv Element
	accInv.inverseUnchecked(&acc)

	for i := len(v) - 1; i >= 0; i-- {
		var t Element
		t.Mul(&accInv, &prefix[i])
		accInv.Mul(&accInv, &v[i])
		v[i].Set(&t)
	}
	return nil
}
