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

// Package polynomial provides dense univariate polynomials over the BN254
// base field, in coefficient form with the constant term first.
package polynomial

import (
	"errors"

	"github.com/zerosync/bn254/ecc/bn254/fp"
)

// ErrDuplicateNode is returned by Lagrange when two interpolation nodes
// coincide.
var ErrDuplicateNode = errors.New("polynomial: interpolation nodes must be distinct")

// Polynomial is a dense polynomial; Polynomial{a0, a1, a2} is
// a0 + a1·x + a2·x².
type Polynomial []fp.Element

// New returns the zero polynomial with capacity for the given degree.
func New(degree int) Polynomial {
	return make(Polynomial, degree+1)
}

// Degree returns the degree of p, ignoring leading zero coefficients.
// The zero polynomial has degree 0.
func (p Polynomial) Degree() int {
	for i := len(p) - 1; i > 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return 0
}

// Eval computes p(x) by Horner's rule.
func (p Polynomial) Eval(x *fp.Element) fp.Element {
	var res fp.Element
	if len(p) == 0 {
		return res
	}
	res.Set(&p[len(p)-1])
	for i := len(p) - 2; i >= 0; i-- {
		res.Mul(&res, x)
		res.Add(&res, &p[i])
	}
	return res
}

// Add sets p = a + b and returns p, growing p as needed.
func (p *Polynomial) Add(a, b Polynomial) *Polynomial {
	long, short := a, b
	if len(b) > len(a) {
		long, short = b, a
	}
	if cap(*p) < len(long) {
		*p = make(Polynomial, len(long))
	}
	*p = (*p)[:len(long)]
	for i := range short {
		(*p)[i].Add(&long[i], &short[i])
	}
	copy((*p)[len(short):], long[len(short):])
	return p
}

// Sub sets p = a - b and returns p.
func (p *Polynomial) Sub(a, b Polynomial) *Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	res := make(Polynomial, n)
	copy(res, a)
	for i := range b {
		res[i].Sub(&res[i], &b[i])
	}
	*p = res
	return p
}

// Mul sets p = a·b by schoolbook convolution and returns p.
func (p *Polynomial) Mul(a, b Polynomial) *Polynomial {
	if len(a) == 0 || len(b) == 0 {
		*p = (*p)[:0]
		return p
	}
	res := make(Polynomial, len(a)+len(b)-1)
	var t fp.Element
	for i := range a {
		for j := range b {
			t.Mul(&a[i], &b[j])
			res[i+j].Add(&res[i+j], &t)
		}
	}
	*p = res
	return p
}

// ScalarMul sets p = c·a coefficient-wise and returns p.
func (p *Polynomial) ScalarMul(a Polynomial, c *fp.Element) *Polynomial {
	res := make(Polynomial, len(a))
	fp.Vector(res).ScalarMul(fp.Vector(a), c)
	*p = res
	return p
}

// Lagrange interpolates the unique polynomial of degree < len(nodes)
// through the given (node, value) pairs. The barycentric weights are
// inverted in a single batch.
func Lagrange(nodes, values []fp.Element) (Polynomial, error) {
	n := len(nodes)
	if n != len(values) {
		return nil, errors.New("polynomial: nodes and values length mismatch")
	}
	if n == 0 {
		return Polynomial{}, nil
	}

	// w[i] = prod_{j != i} (x_i - x_j)
	w := make(fp.Vector, n)
	var d fp.Element
	for i := 0; i < n; i++ {
		w[i].SetOne()
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			d.Sub(&nodes[i], &nodes[j])
			if d.IsZero() {
				return nil, ErrDuplicateNode
			}
			w[i].Mul(&w[i], &d)
		}
	}
	if err := fp.BatchInvert(w); err != nil {
		return nil, err
	}

	// master = prod_i (x - x_i), built incrementally
	master := make(Polynomial, 1, n+1)
	master[0].SetOne()
	var negNode fp.Element
	for i := 0; i < n; i++ {
		negNode.Neg(&nodes[i])
		master = mulLinear(master, &negNode)
	}

	// res = sum_i values[i] * w[i] * master / (x - x_i)
	res := make(Polynomial, n)
	quot := make(Polynomial, n)
	var c fp.Element
	for i := 0; i < n; i++ {
		divLinear(quot, master, &nodes[i])
		c.Mul(&values[i], &w[i])
		for j := 0; j < n; j++ {
			quot[j].Mul(&quot[j], &c)
			res[j].Add(&res[j], &quot[j])
		}
	}
	return res, nil
}

// mulLinear returns p·(x + c), reusing p's backing array when possible.
func mulLinear(p Polynomial, c *fp.Element) Polynomial {
	n := len(p)
	res := append(p, fp.Element{})
	var t fp.Element
	res[n].Set(&res[n-1])
	for i := n - 1; i > 0; i-- {
		t.Mul(&res[i], c)
		res[i].Set(&res[i-1])
		res[i].Add(&res[i], &t)
	}
	res[0].Mul(&res[0], c)
	return res
}

// divLinear writes master / (x - node) into quot; the division is exact
// because node is a root of master.
func divLinear(quot Polynomial, master Polynomial, node *fp.Element) {
	n := len(quot)
	var t fp.Element
	quot[n-1].Set(&master[n])
	for i := n - 2; i >= 0; i-- {
		t.Mul(&quot[i+1], node)
		quot[i].Add(&master[i+1], &t)
	}
}
