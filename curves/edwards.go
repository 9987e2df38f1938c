package curves

import (
	"io"
	"math/big"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// edwardsCurve implements Curve for ax² + y² = 1 + dx²y² over GF(p). The
// supported curves use a non-square d, so the affine addition law below is
// complete and needs no special cases.
type edwardsCurve struct {
	name          string
	p             *big.Int
	a             *big.Int
	d             *big.Int
	n             *big.Int // prime subgroup order
	g             Point
	cofactor      int64
	encodedLen    int
	canonicalHash string
	clamp         func(scalarBytes []byte) // in-place, little-endian layout
}

func (curve *edwardsCurve) Name() string          { return curve.name }
func (curve *edwardsCurve) Family() Family        { return FamilyTwistedEdwards }
func (curve *edwardsCurve) BasePoint() Point      { return curve.g }
func (curve *edwardsCurve) Order() *big.Int       { return curve.n }
func (curve *edwardsCurve) FieldByteSize() int    { return curve.encodedLen }
func (curve *edwardsCurve) CanonicalHash() string { return curve.canonicalHash }

// identity returns the group identity (0, 1).
func (curve *edwardsCurve) identity() Point {
	return Point{X: new(big.Int), Y: big.NewInt(1)}
}

// RandomScalar draws encodedLen bytes, clamps them per the curve convention
// and reduces modulo the subgroup order. The reduction does not change the
// public point or any signature: only the scalar's residue class matters
// once cofactor clearing is applied.
func (curve *edwardsCurve) RandomScalar(rand io.Reader) (*big.Int, error) {
	buf := make([]byte, curve.encodedLen)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, err
		}
		curve.clamp(buf)
		scalar := fromLittleEndian(buf)
		scalar.Mod(scalar, curve.n)
		if scalar.Sign() > 0 {
			return scalar, nil
		}
	}
}

func (curve *edwardsCurve) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return false
	}
	if p.X.Sign() < 0 || p.X.Cmp(curve.p) >= 0 ||
		p.Y.Sign() < 0 || p.Y.Cmp(curve.p) >= 0 {
		return false
	}

	// ax² + y² = 1 + dx²y²
	xSquared := new(big.Int).Mul(p.X, p.X)
	xSquared.Mod(xSquared, curve.p)
	ySquared := new(big.Int).Mul(p.Y, p.Y)
	ySquared.Mod(ySquared, curve.p)

	left := new(big.Int).Mul(curve.a, xSquared)
	left.Add(left, ySquared)
	left.Mod(left, curve.p)

	right := new(big.Int).Mul(xSquared, ySquared)
	right.Mul(right, curve.d)
	right.Add(right, bigOne)
	right.Mod(right, curve.p)

	return left.Cmp(right) == 0
}

func (curve *edwardsCurve) AddPoints(p, q Point) Point {
	x1y2 := new(big.Int).Mul(p.X, q.Y)
	x2y1 := new(big.Int).Mul(q.X, p.Y)
	y1y2 := new(big.Int).Mul(p.Y, q.Y)
	x1x2 := new(big.Int).Mul(p.X, q.X)

	// t = d * x1 * x2 * y1 * y2
	t := new(big.Int).Mul(x1x2, y1y2)
	t.Mul(t, curve.d)
	t.Mod(t, curve.p)

	// x3 = (x1y2 + x2y1) / (1 + t)
	xDenominator := new(big.Int).Add(bigOne, t)
	xDenominator.Mod(xDenominator, curve.p)
	xDenominator.ModInverse(xDenominator, curve.p)
	x := x1y2.Add(x1y2, x2y1)
	x.Mul(x, xDenominator)
	x.Mod(x, curve.p)

	// y3 = (y1y2 - a*x1x2) / (1 - t)
	yDenominator := new(big.Int).Sub(bigOne, t)
	yDenominator.Mod(yDenominator, curve.p)
	yDenominator.ModInverse(yDenominator, curve.p)
	ax1x2 := x1x2.Mul(x1x2, curve.a)
	y := y1y2.Sub(y1y2, ax1x2)
	y.Mul(y, yDenominator)
	y.Mod(y, curve.p)

	return Point{X: x, Y: y}
}

func (curve *edwardsCurve) MultiplyPoint(p Point, scalar *big.Int) Point {
	k := new(big.Int).Mod(scalar, curve.n)
	result := curve.identity()
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = curve.AddPoints(result, addend)
		}
		addend = curve.AddPoints(addend, addend)
	}
	return result
}

func (curve *edwardsCurve) ClearCofactor(p Point) Point {
	cleared := p
	for h := curve.cofactor; h > 1; h >>= 1 {
		cleared = curve.AddPoints(cleared, cleared)
	}
	return cleared
}

// EncodePoint serializes per RFC 8032: the y coordinate little-endian over
// encodedLen bytes, with the top bit of the final byte carrying the parity
// of x.
func (curve *edwardsCurve) EncodePoint(p Point) []byte {
	encoded := toLittleEndian(p.Y, curve.encodedLen)
	if p.X.Bit(0) == 1 {
		encoded[curve.encodedLen-1] |= 0x80
	}
	return encoded
}

func (curve *edwardsCurve) DecodePoint(data []byte) (Point, error) {
	if len(data) != curve.encodedLen {
		return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"point on %s must be %d bytes, got %d", curve.name, curve.encodedLen, len(data))
	}

	yBytes := make([]byte, curve.encodedLen)
	copy(yBytes, data)
	xIsOdd := yBytes[curve.encodedLen-1]&0x80 != 0
	yBytes[curve.encodedLen-1] &= 0x7f

	y := fromLittleEndian(yBytes)
	if y.Cmp(curve.p) >= 0 {
		return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"point y coordinate exceeds the field prime")
	}

	// x² = (y² - 1) / (dy² - a)
	ySquared := new(big.Int).Mul(y, y)
	ySquared.Mod(ySquared, curve.p)
	numerator := new(big.Int).Sub(ySquared, bigOne)
	numerator.Mod(numerator, curve.p)
	denominator := new(big.Int).Mul(curve.d, ySquared)
	denominator.Sub(denominator, curve.a)
	denominator.Mod(denominator, curve.p)
	denominator.ModInverse(denominator, curve.p)
	xSquared := numerator.Mul(numerator, denominator)
	xSquared.Mod(xSquared, curve.p)

	x := new(big.Int).ModSqrt(xSquared, curve.p)
	if x == nil {
		return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"encoded y coordinate is not on curve %s", curve.name)
	}
	if x.Sign() == 0 && xIsOdd {
		return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"negative zero x coordinate in point encoding")
	}
	if (x.Bit(0) == 1) != xIsOdd {
		x.Sub(curve.p, x)
	}

	p := Point{X: x, Y: y}
	if !curve.IsOnCurve(p) {
		return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"point is not on curve %s", curve.name)
	}
	return p, nil
}

func toLittleEndian(value *big.Int, length int) []byte {
	bigEndian := value.FillBytes(make([]byte, length))
	littleEndian := make([]byte, length)
	for i, b := range bigEndian {
		littleEndian[length-1-i] = b
	}
	return littleEndian
}

func fromLittleEndian(data []byte) *big.Int {
	bigEndian := make([]byte, len(data))
	for i, b := range data {
		bigEndian[len(data)-1-i] = b
	}
	return new(big.Int).SetBytes(bigEndian)
}
