package isoline

import (
	"math"
	"math/big"
)

// Relative error bounds of the floating point filters. Results whose
// magnitude falls under them are recomputed exactly.
var (
	epsilon     = math.Ldexp(1, -53)
	orientBound = (3 + 16*epsilon) * epsilon
	circleBound = (10 + 96*epsilon) * epsilon
)

// farBound covers the rounding of the lifted rows and of the sums over the
// degree combinations in the far predicates.
const farBound = 1e-12

// orient returns twice the signed area of the triangle abc.
// Positive when a, b, c turn counterclockwise.
func orient(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// orientSign returns the exact sign of orient(a, b, c).
func orientSign(a, b, c Point) int {
	l := (b.X - a.X) * (c.Y - a.Y)
	r := (b.Y - a.Y) * (c.X - a.X)
	if d := l - r; math.Abs(d) > orientBound*(math.Abs(l)+math.Abs(r)) {
		return sign(d)
	}
	bx, by := ratSub(b.X, a.X), ratSub(b.Y, a.Y)
	cx, cy := ratSub(c.X, a.X), ratSub(c.Y, a.Y)
	return ratCross(bx, by, cx, cy).Sign()
}

// inCircle is positive when d lies inside the circle through a, b and c
// taken counterclockwise, negative outside and zero on the circle.
// Coordinates are translated to d first to keep the products small.
func inCircle(a, b, c, d Point) float64 {
	ad, bd, cd := a.Sub(d), b.Sub(d), c.Sub(d)
	return ad.LenSq()*bd.Cross(cd) - bd.LenSq()*ad.Cross(cd) + cd.LenSq()*ad.Cross(bd)
}

// inCircleSign returns the exact sign of inCircle(a, b, c, d).
func inCircleSign(a, b, c, d Point) int {
	ad, bd, cd := a.Sub(d), b.Sub(d), c.Sub(d)
	al, bl, cl := ad.LenSq(), bd.LenSq(), cd.LenSq()
	det := inCircle(a, b, c, d)
	perm := (math.Abs(bd.X*cd.Y)+math.Abs(cd.X*bd.Y))*al +
		(math.Abs(cd.X*ad.Y)+math.Abs(ad.X*cd.Y))*bl +
		(math.Abs(ad.X*bd.Y)+math.Abs(bd.X*ad.Y))*cl
	if math.Abs(det) > circleBound*perm {
		return sign(det)
	}

	ax, ay := ratSub(a.X, d.X), ratSub(a.Y, d.Y)
	bx, by := ratSub(b.X, d.X), ratSub(b.Y, d.Y)
	cx, cy := ratSub(c.X, d.X), ratSub(c.Y, d.Y)
	e := new(big.Rat).Mul(ratLenSq(ax, ay), ratCross(bx, by, cx, cy))
	e.Add(e, new(big.Rat).Mul(ratLenSq(bx, by), ratCross(cx, cy, ax, ay)))
	e.Add(e, new(big.Rat).Mul(ratLenSq(cx, cy), ratCross(ax, ay, bx, by)))
	return e.Sign()
}

// insideCircumcircle reports whether d lies strictly inside the circle
// through a, b and c, in either winding. Cocircular points are not inside.
func insideCircumcircle(a, b, c, d Point) bool {
	return orientSign(a, b, c)*inCircleSign(a, b, c, d) > 0
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func rat(v float64) *big.Rat { return new(big.Rat).SetFloat64(v) }

func ratSub(x, y float64) *big.Rat { return new(big.Rat).Sub(rat(x), rat(y)) }

func ratLenSq(x, y *big.Rat) *big.Rat {
	l := new(big.Rat).Mul(x, x)
	return l.Add(l, new(big.Rat).Mul(y, y))
}

func ratCross(x1, y1, x2, y2 *big.Rat) *big.Rat {
	c := new(big.Rat).Mul(x1, y2)
	return c.Sub(c, new(big.Rat).Mul(y1, x2))
}

// farPoint is a vertex written as base + R·dir for an unbounded R.
// Sample points have a zero dir. The vertices of the super triangle share the
// center of the sample bounds as base, so tests involving them are decided as
// if the super triangle were infinitely large, whatever margin placed them.
type farPoint struct {
	base, dir Point
}

func (f farPoint) finite() bool { return f.dir == Point{} }

// circleRows returns the rows (x, y, x²+y², 1) of the in-circle determinant
// for the R⁰, R¹ and R² terms of the point.
func (f farPoint) circleRows() [3][4]float64 {
	b, d := f.base, f.dir
	return [3][4]float64{
		{b.X, b.Y, b.LenSq(), 1},
		{d.X, d.Y, 2 * b.Dot(d), 0},
		{0, 0, d.LenSq(), 0},
	}
}

func (f farPoint) circleRowsRat() [3][4]*big.Rat {
	bx, by := rat(f.base.X), rat(f.base.Y)
	dx, dy := rat(f.dir.X), rat(f.dir.Y)
	dot := new(big.Rat).Mul(bx, dx)
	dot.Add(dot, new(big.Rat).Mul(by, dy))
	dot.Add(dot, dot)
	zero, one := new(big.Rat), big.NewRat(1, 1)
	return [3][4]*big.Rat{
		{bx, by, ratLenSq(bx, by), one},
		{dx, dy, dot, zero},
		{zero, zero, ratLenSq(dx, dy), zero},
	}
}

// orientRows returns the rows (x, y, 1) of the orientation determinant for
// the R⁰ and R¹ terms of the point.
func (f farPoint) orientRows() [2][3]float64 {
	return [2][3]float64{
		{f.base.X, f.base.Y, 1},
		{f.dir.X, f.dir.Y, 0},
	}
}

func (f farPoint) orientRowsRat() [2][3]*big.Rat {
	zero, one := new(big.Rat), big.NewRat(1, 1)
	return [2][3]*big.Rat{
		{rat(f.base.X), rat(f.base.Y), one},
		{rat(f.dir.X), rat(f.dir.Y), zero},
	}
}

// degree is the highest power of R with a non zero row.
func (f farPoint) degree(n int) int {
	if f.finite() {
		return 0
	}
	return n
}

// farOrient returns the sign of orient(a, b, c) as R grows without bound.
func farOrient(a, b, c farPoint) int {
	pts := [3]farPoint{a, b, c}
	var coef, perm [4]float64
	for k0 := 0; k0 <= a.degree(1); k0++ {
		for k1 := 0; k1 <= b.degree(1); k1++ {
			for k2 := 0; k2 <= c.degree(1); k2++ {
				m := [3][3]float64{
					pts[0].orientRows()[k0],
					pts[1].orientRows()[k1],
					pts[2].orientRows()[k2],
				}
				d, p := det3(m)
				coef[k0+k1+k2] += d
				perm[k0+k1+k2] += p
			}
		}
	}
	if s, ok := leadingSign(coef[:], perm[:]); ok {
		return s
	}

	var exact [4]*big.Rat
	for k0 := 0; k0 <= a.degree(1); k0++ {
		for k1 := 0; k1 <= b.degree(1); k1++ {
			for k2 := 0; k2 <= c.degree(1); k2++ {
				m := [3][3]*big.Rat{
					pts[0].orientRowsRat()[k0],
					pts[1].orientRowsRat()[k1],
					pts[2].orientRowsRat()[k2],
				}
				exact[k0+k1+k2] = ratAdd(exact[k0+k1+k2], det3Rat(m))
			}
		}
	}
	return leadingSignRat(exact[:])
}

// farInCircle returns the sign of inCircle(a, b, c, d) as R grows without
// bound. The determinant is a polynomial in R; its sign is the sign of the
// highest order non zero coefficient.
func farInCircle(a, b, c, d farPoint) int {
	pts := [4]farPoint{a, b, c, d}
	deg := [4]int{a.degree(2), b.degree(2), c.degree(2), d.degree(2)}
	each := func(fn func(k [4]int)) {
		for k0 := 0; k0 <= deg[0]; k0++ {
			for k1 := 0; k1 <= deg[1]; k1++ {
				for k2 := 0; k2 <= deg[2]; k2++ {
					for k3 := 0; k3 <= deg[3]; k3++ {
						fn([4]int{k0, k1, k2, k3})
					}
				}
			}
		}
	}

	rows := [4][3][4]float64{}
	for i, p := range pts {
		rows[i] = p.circleRows()
	}
	var coef, perm [9]float64
	each(func(k [4]int) {
		m := [4][4]float64{rows[0][k[0]], rows[1][k[1]], rows[2][k[2]], rows[3][k[3]]}
		d, p := det4(m)
		n := k[0] + k[1] + k[2] + k[3]
		coef[n] += d
		perm[n] += p
	})
	if s, ok := leadingSign(coef[:], perm[:]); ok {
		return s
	}

	exactRows := [4][3][4]*big.Rat{}
	for i, p := range pts {
		exactRows[i] = p.circleRowsRat()
	}
	var exact [9]*big.Rat
	each(func(k [4]int) {
		m := [4][4]*big.Rat{exactRows[0][k[0]], exactRows[1][k[1]], exactRows[2][k[2]], exactRows[3][k[3]]}
		n := k[0] + k[1] + k[2] + k[3]
		exact[n] = ratAdd(exact[n], det4Rat(m))
	})
	return leadingSignRat(exact[:])
}

// leadingSign walks the coefficients from the highest order down. A
// coefficient with a zero permanent is an exact zero. It reports false when
// the first one that is not falls within the rounding bound.
func leadingSign(coef, perm []float64) (int, bool) {
	for i := len(coef) - 1; i >= 0; i-- {
		if perm[i] == 0 {
			continue
		}
		if math.Abs(coef[i]) > farBound*perm[i] {
			return sign(coef[i]), true
		}
		return 0, false
	}
	return 0, true
}

func leadingSignRat(coef []*big.Rat) int {
	for i := len(coef) - 1; i >= 0; i-- {
		if coef[i] != nil && coef[i].Sign() != 0 {
			return coef[i].Sign()
		}
	}
	return 0
}

func ratAdd(sum, v *big.Rat) *big.Rat {
	if sum == nil {
		return v
	}
	return sum.Add(sum, v)
}

// det3 returns the determinant and the permanent of the absolute values.
func det3(m [3][3]float64) (det, perm float64) {
	det = m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])

	var a [3][3]float64
	for i := range m {
		for j := range m[i] {
			a[i][j] = math.Abs(m[i][j])
		}
	}
	perm = a[0][0]*(a[1][1]*a[2][2]+a[1][2]*a[2][1]) +
		a[0][1]*(a[1][0]*a[2][2]+a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]+a[1][1]*a[2][0])
	return det, perm
}

// det4 expands along the first row. Rows with zero entries give exact zero
// terms, which the leading coefficient search relies on.
func det4(m [4][4]float64) (det, perm float64) {
	s := 1.0
	for j := 0; j < 4; j++ {
		if m[0][j] != 0 {
			d, p := det3(minor(m, j))
			det += s * m[0][j] * d
			perm += math.Abs(m[0][j]) * p
		}
		s = -s
	}
	return det, perm
}

func minor[T any](m [4][4]T, j int) [3][3]T {
	var out [3][3]T
	for r := 1; r < 4; r++ {
		c := 0
		for k := 0; k < 4; k++ {
			if k == j {
				continue
			}
			out[r-1][c] = m[r][k]
			c++
		}
	}
	return out
}

func det3Rat(m [3][3]*big.Rat) *big.Rat {
	term := func(x, a, b, c, d *big.Rat) *big.Rat {
		t := new(big.Rat).Mul(a, b)
		t.Sub(t, new(big.Rat).Mul(c, d))
		return t.Mul(t, x)
	}
	det := term(m[0][0], m[1][1], m[2][2], m[1][2], m[2][1])
	det.Sub(det, term(m[0][1], m[1][0], m[2][2], m[1][2], m[2][0]))
	return det.Add(det, term(m[0][2], m[1][0], m[2][1], m[1][1], m[2][0]))
}

func det4Rat(m [4][4]*big.Rat) *big.Rat {
	det := new(big.Rat)
	for j := 0; j < 4; j++ {
		if m[0][j].Sign() == 0 {
			continue
		}
		t := new(big.Rat).Mul(m[0][j], det3Rat(minor(m, j)))
		if j%2 == 0 {
			det.Add(det, t)
		} else {
			det.Sub(det, t)
		}
	}
	return det
}
