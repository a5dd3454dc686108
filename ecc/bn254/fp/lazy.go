package fp

import (
	"math/bits"

	"github.com/zerosync/bn254/debug"
)

// accHeadroom is the number of additions an Acc may defer before a
// normalization is forced. q has 254 bits, so the sum of accHeadroom+1
// canonical elements stays below 4q < 2²⁵⁶ and never carries out of the
// fourth limb.
const accHeadroom = 3

// 2q, used by the masked normalization
var qDouble = [Limbs]uint64{
	8665233742559312526,
	3387504215246214426,
	8115639828839837883,
	6973996533605941331,
}

// Acc is a lazy-reduction accumulator: a field element whose value may
// transiently exceed q by up to two extra bits while a chain of additions
// is in flight. It is a distinct type so that an unreduced value can never
// reach a routine expecting canonical form; the only way out is Norm.
//
// The zero Acc is ready to use and holds 0.
type Acc struct {
	limbs   [Limbs]uint64
	pending uint8
}

// NewAcc returns an accumulator seeded with x.
func NewAcc(x *Element) Acc {
	var a Acc
	a.limbs = [Limbs]uint64(*x)
	return a
}

// Add accumulates x without reducing. When the headroom budget is spent the
// accumulator normalizes itself first; the trigger depends only on the call
// count, never on the values.
func (a *Acc) Add(x *Element) *Acc {
	if a.pending == accHeadroom {
		a.norm()
	}
	var carry uint64
	a.limbs[0], carry = bits.Add64(a.limbs[0], x[0], 0)
	a.limbs[1], carry = bits.Add64(a.limbs[1], x[1], carry)
	a.limbs[2], carry = bits.Add64(a.limbs[2], x[2], carry)
	a.limbs[3], carry = bits.Add64(a.limbs[3], x[3], carry)
	debug.Assert(carry == 0, "fp: accumulator overflow, headroom invariant broken")
	a.pending++
	return a
}

// Sub accumulates -x. It costs one unit of headroom, same as Add.
func (a *Acc) Sub(x *Element) *Acc {
	var t Element
	t.Neg(x)
	return a.Add(&t)
}

// AddAcc folds another accumulator in. Both sides are normalized as needed
// to respect the headroom budget.
func (a *Acc) AddAcc(b *Acc) *Acc {
	x := b.Norm()
	return a.Add(&x)
}

// Norm reduces the accumulated value to canonical range and returns it as
// an Element. The accumulator is left holding the reduced value and can
// keep accumulating.
func (a *Acc) Norm() Element {
	a.norm()
	return Element(a.limbs)
}

// norm performs two masked conditional subtractions (2q then q), enough to
// bring any value < 4q back below q, in constant time.
func (a *Acc) norm() {
	var t [Limbs]uint64
	var b uint64
	t[0], b = bits.Sub64(a.limbs[0], qDouble[0], 0)
	t[1], b = bits.Sub64(a.limbs[1], qDouble[1], b)
	t[2], b = bits.Sub64(a.limbs[2], qDouble[2], b)
	t[3], b = bits.Sub64(a.limbs[3], qDouble[3], b)
	ctSelectLimbs(&a.limbs, &t, &a.limbs, b)

	t[0], b = bits.Sub64(a.limbs[0], q0, 0)
	t[1], b = bits.Sub64(a.limbs[1], q1, b)
	t[2], b = bits.Sub64(a.limbs[2], q2, b)
	t[3], b = bits.Sub64(a.limbs[3], q3, b)
	ctSelectLimbs(&a.limbs, &t, &a.limbs, b)

	a.pending = 0
}
