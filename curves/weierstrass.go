package curves

import (
	"io"
	"math/big"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// weierstrassCurve implements Curve for y² = x³ + ax + b over GF(p).
// All arithmetic is affine; inversions go through big.Int.ModInverse.
type weierstrassCurve struct {
	name string
	p    *big.Int // field prime
	a    *big.Int
	b    *big.Int
	n    *big.Int // subgroup order
	g    Point    // base point
}

func (curve *weierstrassCurve) Name() string          { return curve.name }
func (curve *weierstrassCurve) Family() Family        { return FamilyShortWeierstrass }
func (curve *weierstrassCurve) BasePoint() Point      { return curve.g }
func (curve *weierstrassCurve) Order() *big.Int       { return curve.n }
func (curve *weierstrassCurve) CanonicalHash() string { return "" }

func (curve *weierstrassCurve) FieldByteSize() int {
	return (curve.p.BitLen() + 7) / 8
}

// RandomScalar rejection-samples a uniformly distributed scalar in
// [1, order-1].
func (curve *weierstrassCurve) RandomScalar(rand io.Reader) (*big.Int, error) {
	buf := make([]byte, (curve.n.BitLen()+7)/8)
	excessBits := uint(len(buf)*8 - curve.n.BitLen())
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, err
		}
		buf[0] >>= excessBits
		scalar := new(big.Int).SetBytes(buf)
		if scalar.Sign() > 0 && scalar.Cmp(curve.n) < 0 {
			return scalar, nil
		}
	}
}

func (curve *weierstrassCurve) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return false
	}
	if p.X.Sign() < 0 || p.X.Cmp(curve.p) >= 0 ||
		p.Y.Sign() < 0 || p.Y.Cmp(curve.p) >= 0 {
		return false
	}

	// y² = x³ + ax + b
	left := new(big.Int).Mul(p.Y, p.Y)
	left.Mod(left, curve.p)

	right := new(big.Int).Mul(p.X, p.X)
	right.Mul(right, p.X)
	ax := new(big.Int).Mul(curve.a, p.X)
	right.Add(right, ax)
	right.Add(right, curve.b)
	right.Mod(right, curve.p)

	return left.Cmp(right) == 0
}

func (curve *weierstrassCurve) AddPoints(p, q Point) Point {
	if p.IsInfinity() {
		return q
	}
	if q.IsInfinity() {
		return p
	}
	if p.X.Cmp(q.X) == 0 {
		if p.Y.Cmp(q.Y) != 0 || p.Y.Sign() == 0 {
			// p == -q
			return Point{}
		}
		return curve.double(p)
	}

	// lambda = (y2 - y1) / (x2 - x1)
	numerator := new(big.Int).Sub(q.Y, p.Y)
	denominator := new(big.Int).Sub(q.X, p.X)
	denominator.Mod(denominator, curve.p)
	denominator.ModInverse(denominator, curve.p)
	lambda := numerator.Mul(numerator, denominator)
	lambda.Mod(lambda, curve.p)

	return curve.chord(p, q, lambda)
}

func (curve *weierstrassCurve) double(p Point) Point {
	// lambda = (3x² + a) / 2y
	numerator := new(big.Int).Mul(p.X, p.X)
	numerator.Mul(numerator, big.NewInt(3))
	numerator.Add(numerator, curve.a)
	denominator := new(big.Int).Lsh(p.Y, 1)
	denominator.Mod(denominator, curve.p)
	denominator.ModInverse(denominator, curve.p)
	lambda := numerator.Mul(numerator, denominator)
	lambda.Mod(lambda, curve.p)

	return curve.chord(p, p, lambda)
}

// chord completes an addition or doubling given the line slope lambda.
func (curve *weierstrassCurve) chord(p, q Point, lambda *big.Int) Point {
	x := new(big.Int).Mul(lambda, lambda)
	x.Sub(x, p.X)
	x.Sub(x, q.X)
	x.Mod(x, curve.p)

	y := new(big.Int).Sub(p.X, x)
	y.Mul(y, lambda)
	y.Sub(y, p.Y)
	y.Mod(y, curve.p)

	return Point{X: x, Y: y}
}

func (curve *weierstrassCurve) MultiplyPoint(p Point, scalar *big.Int) Point {
	k := new(big.Int).Mod(scalar, curve.n)
	result := Point{}
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = curve.AddPoints(result, addend)
		}
		addend = curve.AddPoints(addend, addend)
	}
	return result
}

// ClearCofactor is the identity: all supported short Weierstrass curves
// have cofactor 1.
func (curve *weierstrassCurve) ClearCofactor(p Point) Point {
	return p
}

// SEC1 point encoding prefixes.
const (
	pointCompressedEven = 0x02
	pointCompressedOdd  = 0x03
	pointUncompressed   = 0x04
)

func (curve *weierstrassCurve) EncodePoint(p Point) []byte {
	size := curve.FieldByteSize()
	encoded := make([]byte, 1+2*size)
	encoded[0] = pointUncompressed
	p.X.FillBytes(encoded[1 : 1+size])
	p.Y.FillBytes(encoded[1+size:])
	return encoded
}

// EncodePointCompressed returns the 33/49/67-byte SEC1 compressed form.
// The accelerated secp256k1 backend consumes this encoding.
func (curve *weierstrassCurve) EncodePointCompressed(p Point) []byte {
	size := curve.FieldByteSize()
	encoded := make([]byte, 1+size)
	encoded[0] = pointCompressedEven
	if p.Y.Bit(0) == 1 {
		encoded[0] = pointCompressedOdd
	}
	p.X.FillBytes(encoded[1:])
	return encoded
}

func (curve *weierstrassCurve) DecodePoint(data []byte) (Point, error) {
	size := curve.FieldByteSize()
	if len(data) == 0 {
		return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"empty point encoding for curve %s", curve.name)
	}

	switch data[0] {
	case pointUncompressed:
		if len(data) != 1+2*size {
			return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"uncompressed point on %s must be %d bytes, got %d",
				curve.name, 1+2*size, len(data))
		}
		p := Point{
			X: new(big.Int).SetBytes(data[1 : 1+size]),
			Y: new(big.Int).SetBytes(data[1+size:]),
		}
		if !curve.IsOnCurve(p) {
			return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"point is not on curve %s", curve.name)
		}
		return p, nil

	case pointCompressedEven, pointCompressedOdd:
		if len(data) != 1+size {
			return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"compressed point on %s must be %d bytes, got %d",
				curve.name, 1+size, len(data))
		}
		x := new(big.Int).SetBytes(data[1:])
		if x.Cmp(curve.p) >= 0 {
			return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"point x coordinate exceeds the field prime")
		}

		// y² = x³ + ax + b
		ySquared := new(big.Int).Mul(x, x)
		ySquared.Mul(ySquared, x)
		ax := new(big.Int).Mul(curve.a, x)
		ySquared.Add(ySquared, ax)
		ySquared.Add(ySquared, curve.b)
		ySquared.Mod(ySquared, curve.p)
		y := new(big.Int).ModSqrt(ySquared, curve.p)
		if y == nil {
			return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"compressed x coordinate has no square root on %s", curve.name)
		}
		wantOdd := data[0] == pointCompressedOdd
		if (y.Bit(0) == 1) != wantOdd {
			y.Sub(curve.p, y)
		}
		return Point{X: x, Y: y}, nil

	default:
		return Point{}, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"unknown point encoding prefix 0x%02x", data[0])
	}
}
