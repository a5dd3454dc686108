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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func randomVector(t *testing.T, n int) Vector {
	t.Helper()
	v := make(Vector, n)
	for i := range v {
		if _, err := v[i].SetRandom(); err != nil {
			t.Fatal(err)
		}
	}
	return v
}

// sizes that cover the wide kernel, the scalar tail and the parallel split
var vectorSizes = []int{0, 1, 3, 4, 5, 8, 31, 64, parallelThreshold + 5}

func TestVectorMatchesScalar(t *testing.T) {
	assert := require.New(t)

	for _, n := range vectorSizes {
		a := randomVector(t, n)
		b := randomVector(t, n)

		res := make(Vector, n)
		res.Mul(a, b)
		for i := 0; i < n; i++ {
			var want Element
			want.Mul(&a[i], &b[i])
			assert.True(res[i].Equal(&want), "Mul lane %d size %d", i, n)
		}

		res.Square(a)
		for i := 0; i < n; i++ {
			var want Element
			want.Square(&a[i])
			assert.True(res[i].Equal(&want), "Square lane %d size %d", i, n)
		}

		res.Add(a, b)
		for i := 0; i < n; i++ {
			var want Element
			want.Add(&a[i], &b[i])
			assert.True(res[i].Equal(&want), "Add lane %d size %d", i, n)
		}

		res.Sub(a, b)
		for i := 0; i < n; i++ {
			var want Element
			want.Sub(&a[i], &b[i])
			assert.True(res[i].Equal(&want), "Sub lane %d size %d", i, n)
		}
	}
}

func TestVectorScalarMul(t *testing.T) {
	assert := require.New(t)

	var s Element
	_, err := s.SetRandom()
	assert.NoError(err)

	for _, n := range vectorSizes {
		a := randomVector(t, n)
		res := make(Vector, n)
		res.ScalarMul(a, &s)
		for i := 0; i < n; i++ {
			var want Element
			want.Mul(&a[i], &s)
			assert.True(res[i].Equal(&want), "lane %d size %d", i, n)
		}
	}
}

func TestVectorSum(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	properties.Property("Sum == sequential adds", prop.ForAll(
		func(a, b, c, d, e Element) bool {
			v := Vector{a, b, c, d, e}
			sum := v.Sum()

			var want Element
			for i := range v {
				want.Add(&want, &v[i])
			}
			return sum.Equal(&want)
		},
		genElement(), genElement(), genElement(), genElement(), genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestMul4LaneExact(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	// the wide kernel must agree with the scalar path bit for bit
	properties.Property("mul4 == 4 scalar muls", prop.ForAll(
		func(a0, a1, a2, a3, b0, b1, b2, b3 Element) bool {
			x := [vectorLanes]Element{a0, a1, a2, a3}
			y := [vectorLanes]Element{b0, b1, b2, b3}
			var z [vectorLanes]Element
			mul4(&z, &x, &y)
			for i := 0; i < vectorLanes; i++ {
				var want Element
				want.Mul(&x[i], &y[i])
				if z[i] != want {
					return false
				}
			}
			return true
		},
		genElement(), genElement(), genElement(), genElement(),
		genElement(), genElement(), genElement(), genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestBatchInvert(t *testing.T) {
	assert := require.New(t)

	for _, n := range []int{1, 2, 7, 64, 255} {
		v := randomVector(t, n)
		orig := make(Vector, n)
		copy(orig, v)

		assert.NoError(BatchInvert(v))
		for i := 0; i < n; i++ {
			var prod Element
			prod.Mul(&orig[i], &v[i])
			assert.True(prod.IsOne(), "lane %d size %d", i, n)
		}
	}
}

func TestBatchInvertZero(t *testing.T) {
	assert := require.New(t)

	v := randomVector(t, 8)
	v[3].SetZero()
	orig := make(Vector, len(v))
	copy(orig, v)

	err := BatchInvert(v)
	assert.ErrorIs(err, ErrNoInverse)
	// the slice must be left untouched on failure
	for i := range v {
		assert.True(v[i].Equal(&orig[i]), "lane %d modified", i)
	}
}

func TestBatchInvertEmpty(t *testing.T) {
	require.NoError(t, BatchInvert(nil))
}

func TestVectorAvailableStable(t *testing.T) {
	// the probe is a one-time decision; two reads must agree
	require.Equal(t, VectorAvailable(), VectorAvailable())
}

func TestVectorSumEmpty(t *testing.T) {
	var v Vector
	sum := v.Sum()
	require.True(t, sum.IsZero())
}

func TestVectorRandomizedAgainstBig(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	properties.Property("vector mul then sum == sum of products", prop.ForAll(
		func(a, b, c, d Element) bool {
			v := Vector{a, b, c, d}
			w := Vector{d, c, b, a}
			res := make(Vector, 4)
			res.Mul(v, w)
			sum := res.Sum()

			var want, t Element
			for i := range v {
				t.Mul(&v[i], &w[i])
				want.Add(&want, &t)
			}
			return sum.Equal(&want)
		},
		genElement(), genElement(), genElement(), genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func BenchmarkVectorMul(b *testing.B) {
	n := 1 << 12
	v := make(Vector, n)
	w := make(Vector, n)
	for i := range v {
		v[i].SetRandom()
		w[i].SetRandom()
	}
	res := make(Vector, n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res.Mul(v, w)
	}
}

func BenchmarkBatchInvert(b *testing.B) {
	n := 1 << 10
	v := make(Vector, n)
	for i := range v {
		v[i].SetRandom()
	}
	work := make(Vector, n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(work, v)
		BatchInvert(work)
	}
}
