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
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/zerosync/bn254/ecc/bn254/fp"
)

func genAff(x, y string) G1Affine {
	var p G1Affine
	p.X.SetString(x)
	p.Y.SetString(y)
	return p
}

// small multiples of the generator, computed independently
var (
	g2Aff = genAff(
		"1368015179489954701390400359078579693043519447331113978918064868415326638035",
		"9918110051302171585080402603319702774565515993150576347155970296011118125764",
	)
	g3Aff = genAff(
		"3353031288059533942658390886683067124040920775575537747144343083137631628272",
		"19321533766552368860946552437480515441416830039777911637913418824951667761761",
	)
	g5Aff = genAff(
		"10744596414106452074759370245733544594153395043370666422502510773307029471145",
		"848677436511517736191562425154572367705380862894644942948681172815252343932",
	)
)

func randomScalar(t *testing.T) *big.Int {
	t.Helper()
	bound := new(big.Int).Lsh(big.NewInt(1), 256)
	k, err := rand.Int(rand.Reader, bound)
	require.NoError(t, err)
	return k
}

// genScalar draws scalars from gopter's deterministic source for
// reproducible property runs.
func genScalar() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		k := new(big.Int)
		for i := 0; i < 4; i++ {
			k.Lsh(k, 64)
			k.Or(k, new(big.Int).SetUint64(genParams.NextUint64()))
		}
		return gopter.NewGenResult(k, gopter.NoShrinker)
	}
}

func testParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	return parameters
}

func TestG1Generator(t *testing.T) {
	assert := require.New(t)
	curve := BN254()
	assert.True(curve.g1GenAff.IsOnCurve())
	assert.Equal("1", curve.g1GenAff.X.String())
	assert.Equal("2", curve.g1GenAff.Y.String())
}

func TestG1SmallMultiples(t *testing.T) {
	assert := require.New(t)
	curve := BN254()
	g := curve.g1GenAff

	var p G1Affine
	p.Double(&g)
	assert.True(p.Equal(&g2Aff), "2G mismatch: %s", p.String())

	p.Add(&p, &g)
	assert.True(p.Equal(&g3Aff), "3G mismatch: %s", p.String())

	p.Add(&p, &g2Aff)
	assert.True(p.Equal(&g5Aff), "5G mismatch: %s", p.String())

	p.ScalarMul(&g, big.NewInt(5))
	assert.True(p.Equal(&g5Aff), "ScalarMul(g, 5) mismatch")
}

func TestG1ScalarMulKnownAnswer(t *testing.T) {
	assert := require.New(t)
	g := BN254().g1GenAff

	k, ok := new(big.Int).SetString("b3c4d79d41a91758cb49c3517c4604a520cff123608fc9cb", 16)
	assert.True(ok)

	want := genAff(
		"9717953554785695530171012736201711582066057048171216766067042393691044935312",
		"16460968250425543446028981775631045522280113359306664586749259656855967130574",
	)

	var p G1Affine
	p.ScalarMul(&g, k)
	assert.True(p.Equal(&want), "kG mismatch: %s", p.String())
}

func TestG1GroupLaws(t *testing.T) {
	properties := gopter.NewProperties(testParameters())
	curve := BN254()

	properties.Property("kG is on the curve", prop.ForAll(
		func(k *big.Int) bool {
			var p G1Jac
			p.ScalarMulPublic(&curve.g1Gen, k)
			var aff G1Affine
			aff.FromJacobian(&p)
			return aff.IsOnCurve()
		},
		genScalar(),
	))

	properties.Property("aG + bG == (a+b)G", prop.ForAll(
		func(a, b *big.Int) bool {
			var pa, pb, sum, want G1Jac
			pa.ScalarMulPublic(&curve.g1Gen, a)
			pb.ScalarMulPublic(&curve.g1Gen, b)
			sum.Set(&pa)
			sum.AddUnified(&pb)
			want.ScalarMulPublic(&curve.g1Gen, new(big.Int).Add(a, b))
			return sum.Equal(&want)
		},
		genScalar(), genScalar(),
	))

	properties.Property("P + (-P) == O", prop.ForAll(
		func(k *big.Int) bool {
			var p, n G1Jac
			p.ScalarMulPublic(&curve.g1Gen, k)
			n.Neg(&p)
			p.AddUnified(&n)
			return p.IsInfinity()
		},
		genScalar(),
	))

	properties.Property("P + P == Double(P)", prop.ForAll(
		func(k *big.Int) bool {
			var p, sum, dbl G1Jac
			p.ScalarMulPublic(&curve.g1Gen, k)
			sum.Set(&p)
			sum.AddUnified(&p)
			dbl.Set(&p)
			dbl.Double()
			return sum.Equal(&dbl)
		},
		genScalar(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG1ScalarMulPathsAgree(t *testing.T) {
	properties := gopter.NewProperties(testParameters())
	curve := BN254()

	properties.Property("constant-time ladder == NAF fast path", prop.ForAll(
		func(k *big.Int) bool {
			var ct, naf G1Jac
			ct.ScalarMul(&curve.g1Gen, k)
			naf.ScalarMulPublic(&curve.g1Gen, k)
			return ct.Equal(&naf)
		},
		genScalar(),
	))

	properties.Property("generator table == generic ladder", prop.ForAll(
		func(k *big.Int) bool {
			var tab, ct G1Jac
			tab.ScalarMulByGen(curve, k)
			ct.ScalarMul(&curve.g1Gen, k)
			return tab.Equal(&ct)
		},
		genScalar(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG1ScalarMulEdgeCases(t *testing.T) {
	assert := require.New(t)
	curve := BN254()

	var p G1Jac
	p.ScalarMul(&curve.g1Gen, big.NewInt(0))
	assert.True(p.IsInfinity(), "0·G must be the identity")

	p.ScalarMulPublic(&curve.g1Gen, big.NewInt(0))
	assert.True(p.IsInfinity())

	p.ScalarMulByGen(curve, big.NewInt(0))
	assert.True(p.IsInfinity())

	p.ScalarMul(&curve.g1Gen, big.NewInt(1))
	assert.True(p.Equal(&curve.g1Gen), "1·G must be G")

	// negative scalar: (-1)·G == -G
	var neg, want G1Jac
	neg.ScalarMul(&curve.g1Gen, big.NewInt(-1))
	want.Neg(&curve.g1Gen)
	assert.True(neg.Equal(&want))

	neg.ScalarMulPublic(&curve.g1Gen, big.NewInt(-5))
	var g5 G1Jac
	g5.FromAffine(&g5Aff)
	want.Neg(&g5)
	assert.True(neg.Equal(&want))

	neg.ScalarMulByGen(curve, big.NewInt(-5))
	assert.True(neg.Equal(&want))

	// scalar mul of the identity stays the identity
	var inf G1Jac
	inf.Set(&curve.g1Infinity)
	p.ScalarMul(&inf, big.NewInt(12345))
	assert.True(p.IsInfinity())
}

func TestG1AddUnifiedEdgeCases(t *testing.T) {
	assert := require.New(t)
	curve := BN254()

	var g, inf, r G1Jac
	g.Set(&curve.g1Gen)
	inf.Set(&curve.g1Infinity)

	// O + P == P
	r.Set(&inf)
	r.AddUnified(&g)
	assert.True(r.Equal(&g))

	// P + O == P
	r.Set(&g)
	r.AddUnified(&inf)
	assert.True(r.Equal(&g))

	// O + O == O
	r.Set(&inf)
	r.AddUnified(&inf)
	assert.True(r.IsInfinity())

	// the doubling case must be detected across different Z scalings
	var scaled G1Jac
	scaled.Set(&g)
	var z, z2 fp.Element
	z.SetUint64(7)
	z2.Square(&z)
	scaled.X.Mul(&scaled.X, &z2)
	z2.Mul(&z2, &z)
	scaled.Y.Mul(&scaled.Y, &z2)
	scaled.Z.Mul(&scaled.Z, &z)
	assert.True(scaled.Equal(&g))

	r.Set(&g)
	r.AddUnified(&scaled)
	var dbl G1Jac
	dbl.Set(&g)
	dbl.Double()
	assert.True(r.Equal(&dbl))
}

func TestG1AffineRoundTrip(t *testing.T) {
	assert := require.New(t)
	curve := BN254()

	k := randomScalar(t)
	var j G1Jac
	j.ScalarMulPublic(&curve.g1Gen, k)

	var aff G1Affine
	aff.FromJacobian(&j)
	var back G1Jac
	aff.ToJacobian(&back)
	assert.True(back.Equal(&j))
}

func TestG1Bytes(t *testing.T) {
	assert := require.New(t)

	b := g3Aff.Bytes()
	var p G1Affine
	_, err := p.SetBytes(b[:])
	assert.NoError(err)
	assert.True(p.Equal(&g3Aff))

	// identity round trip
	var inf G1Affine
	inf.SetInfinity()
	bi := inf.Bytes()
	for _, v := range bi {
		assert.Zero(v)
	}
	_, err = p.SetBytes(bi[:])
	assert.NoError(err)
	assert.True(p.IsInfinity())

	// wrong length
	_, err = p.SetBytes(b[:32])
	assert.ErrorIs(err, fp.ErrInvalidEncoding)

	// valid field elements that are not a curve point
	var x, y fp.Element
	x.SetUint64(1)
	y.SetUint64(1)
	var bad [64]byte
	xb := x.Bytes()
	yb := y.Bytes()
	copy(bad[:32], xb[:])
	copy(bad[32:], yb[:])
	_, err = p.SetBytes(bad[:])
	assert.ErrorIs(err, ErrPointNotOnCurve)
}

func TestG1SetCoordinates(t *testing.T) {
	assert := require.New(t)

	var x, y fp.Element
	x.SetUint64(1)
	y.SetUint64(2)
	var p G1Affine
	assert.NoError(p.SetCoordinates(&x, &y))
	assert.True(p.Equal(&BN254().g1GenAff))

	y.SetUint64(3)
	err := p.SetCoordinates(&x, &y)
	assert.ErrorIs(err, ErrPointNotOnCurve)
	assert.True(p.IsInfinity(), "rejected point must leave p at infinity")
}

func TestG1WindowTable(t *testing.T) {
	assert := require.New(t)
	curve := BN254()

	// tGenG1[i] must hold (i+1)·G
	var want G1Jac
	want.Set(&curve.g1Infinity)
	for i := 0; i < len(curve.tGenG1); i++ {
		want.AddMixed(&curve.g1GenAff)
		assert.True(curve.tGenG1[i].Equal(&want), "table entry %d", i)
	}
}

func BenchmarkG1ScalarMul(b *testing.B) {
	curve := BN254()
	k, _ := new(big.Int).SetString("b3c4d79d41a91758cb49c3517c4604a520cff123608fc9cb", 16)
	var p G1Jac
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarMul(&curve.g1Gen, k)
	}
}

func BenchmarkG1ScalarMulPublic(b *testing.B) {
	curve := BN254()
	k, _ := new(big.Int).SetString("b3c4d79d41a91758cb49c3517c4604a520cff123608fc9cb", 16)
	var p G1Jac
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarMulPublic(&curve.g1Gen, k)
	}
}

func BenchmarkG1ScalarMulByGen(b *testing.B) {
	curve := BN254()
	k, _ := new(big.Int).SetString("b3c4d79d41a91758cb49c3517c4604a520cff123608fc9cb", 16)
	var p G1Jac
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarMulByGen(curve, k)
	}
}

func BenchmarkG1AddUnified(b *testing.B) {
	curve := BN254()
	var p, q G1Jac
	p.Set(&curve.g1Gen)
	q.Set(&curve.g1Gen)
	q.Double()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.AddUnified(&q)
	}
}
