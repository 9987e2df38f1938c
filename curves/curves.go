package curves

import (
	"io"
	"math/big"
)

// Family is the closed set of curve families this package implements.
type Family int

const (
	// FamilyShortWeierstrass covers curves of the form y² = x³ + ax + b,
	// used by ECDSA.
	FamilyShortWeierstrass Family = iota

	// FamilyTwistedEdwards covers curves of the form ax² + y² = 1 + dx²y²,
	// used by EdDSA.
	FamilyTwistedEdwards
)

func (f Family) String() string {
	switch f {
	case FamilyShortWeierstrass:
		return "ShortWeierstrass"
	case FamilyTwistedEdwards:
		return "TwistedEdwards"
	default:
		return "Unknown"
	}
}

// Point is an affine curve point. The point at infinity of a short
// Weierstrass curve is represented by nil coordinates.
type Point struct {
	X *big.Int
	Y *big.Int
}

// IsInfinity returns true for the short Weierstrass point at infinity.
func (p Point) IsInfinity() bool {
	return p.X == nil || p.Y == nil
}

// IsEqual returns true if both points have the same coordinates.
func (p Point) IsEqual(other Point) bool {
	if p.IsInfinity() || other.IsInfinity() {
		return p.IsInfinity() && other.IsInfinity()
	}
	return p.X.Cmp(other.X) == 0 && p.Y.Cmp(other.Y) == 0
}

// Curve is the arithmetic capability interface shared by both curve
// families. Implementations are immutable and safe for concurrent use; a
// named curve is constructed once at init time and shared process-wide.
type Curve interface {
	// Name returns the canonical curve name, e.g. "secp256k1" or "Ed25519".
	Name() string

	// Family returns the curve family tag.
	Family() Family

	// BasePoint returns the fixed generator of the curve's cyclic subgroup.
	BasePoint() Point

	// Order returns the order of the cyclic subgroup generated by the base
	// point. Scalars and signature components are taken modulo this value.
	Order() *big.Int

	// FieldByteSize returns the byte width of an encoded field element.
	// This sizes the fixed-width raw signature encoding.
	FieldByteSize() int

	// CanonicalHash returns the hash algorithm that is fixed for this
	// curve, or an empty string if the hash is caller-selectable.
	CanonicalHash() string

	// RandomScalar draws a private scalar from the given entropy source,
	// distributed per the curve family convention: rejection sampling over
	// [1, order-1] for short Weierstrass curves, bit clamping for twisted
	// Edwards curves.
	RandomScalar(rand io.Reader) (*big.Int, error)

	// MultiplyPoint returns scalar * p.
	MultiplyPoint(p Point, scalar *big.Int) Point

	// AddPoints returns p + q.
	AddPoints(p, q Point) Point

	// IsOnCurve reports whether p satisfies the curve equation.
	IsOnCurve(p Point) bool

	// ClearCofactor multiplies p by the curve cofactor. It is the identity
	// on prime-order short Weierstrass curves.
	ClearCofactor(p Point) Point

	// EncodePoint serializes a point to its canonical wire form: SEC1 for
	// short Weierstrass curves, RFC 8032 little-endian for twisted Edwards
	// curves.
	EncodePoint(p Point) []byte

	// DecodePoint parses an encoded point and validates that it lies on
	// the curve.
	DecodePoint(data []byte) (Point, error)
}

func hexToBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curves: malformed hex constant " + s)
	}
	return n
}

func decToBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("curves: malformed decimal constant " + s)
	}
	return n
}

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)
