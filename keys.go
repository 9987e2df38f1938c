package ecsig

import (
	"math/big"

	"github.com/kaspanet/go-ecsig/curves"
	"github.com/kaspanet/go-ecsig/ecerrors"
	"github.com/kaspanet/go-ecsig/sigserialization"
)

// maxContextLength is the longest domain-separation context RFC 8032
// permits.
const maxContextLength = 255

// Key is implemented by the three values Load can produce: *PrivateKey,
// *PublicKey and *Parameters.
type Key interface {
	// CurveName returns the canonical name of the key's curve.
	CurveName() string
}

// PublicKey is an immutable public point bound to a curve, a hash
// algorithm and a signature wire format. Configuration methods return a
// new value; the receiver is never mutated.
type PublicKey struct {
	curve     curves.Curve
	point     curves.Point
	hashName  string
	sigFormat sigserialization.Format
	context   []byte
}

// Curve returns the shared curve instance.
func (key *PublicKey) Curve() curves.Curve { return key.curve }

// CurveName returns the canonical curve name.
func (key *PublicKey) CurveName() string { return key.curve.Name() }

// Point returns the public point.
func (key *PublicKey) Point() curves.Point { return key.point }

// HashName returns the bound hash algorithm name.
func (key *PublicKey) HashName() string { return key.hashName }

// SignatureFormat returns the active signature wire format.
func (key *PublicKey) SignatureFormat() sigserialization.Format { return key.sigFormat }

// Context returns a copy of the bound domain-separation context, or nil.
func (key *PublicKey) Context() []byte { return copyBytes(key.context) }

// SerializePoint returns the canonical encoding of the public point.
func (key *PublicKey) SerializePoint() []byte {
	return key.curve.EncodePoint(key.point)
}

// WithHash returns a copy of the key bound to the named hash algorithm.
// Twisted Edwards curves fix their hash, so any attempt to rebind them to
// a different algorithm fails with ErrUnsupportedAlgorithm.
func (key *PublicKey) WithHash(hashName string) (*PublicKey, error) {
	if err := checkHashBinding(key.curve, hashName); err != nil {
		return nil, err
	}
	clone := *key
	clone.hashName = hashName
	return &clone, nil
}

// WithSignatureFormat returns a copy of the key using the given signature
// wire format.
func (key *PublicKey) WithSignatureFormat(format sigserialization.Format) *PublicKey {
	clone := *key
	clone.sigFormat = format
	return &clone
}

// WithContext returns a copy of the key bound to a domain-separation
// context. Contexts are a twisted Edwards feature: short Weierstrass keys
// fail with ErrUnsupportedCurve, and contexts over 255 bytes fail with
// ErrInvalidContext.
func (key *PublicKey) WithContext(context []byte) (*PublicKey, error) {
	if err := checkContextBinding(key.curve, context); err != nil {
		return nil, err
	}
	clone := *key
	clone.context = copyBytes(context)
	return &clone, nil
}

// PrivateKey is an immutable private scalar together with its public
// counterpart. The scalar always lies in [1, order-1] and the public point
// always equals scalar * basePoint.
type PrivateKey struct {
	pub    PublicKey
	scalar *big.Int

	// seed is the RFC 8032 seed for locally generated Ed25519 keys. It
	// lets the platform Ed25519 signer take over; keys loaded as bare
	// scalars leave it nil and sign through the generic backend.
	seed []byte
}

// Curve returns the shared curve instance.
func (key *PrivateKey) Curve() curves.Curve { return key.pub.curve }

// CurveName returns the canonical curve name.
func (key *PrivateKey) CurveName() string { return key.pub.curve.Name() }

// HashName returns the bound hash algorithm name.
func (key *PrivateKey) HashName() string { return key.pub.hashName }

// SignatureFormat returns the active signature wire format.
func (key *PrivateKey) SignatureFormat() sigserialization.Format { return key.pub.sigFormat }

// Context returns a copy of the bound domain-separation context, or nil.
func (key *PrivateKey) Context() []byte { return copyBytes(key.pub.context) }

// Scalar returns the private scalar.
func (key *PrivateKey) Scalar() *big.Int { return new(big.Int).Set(key.scalar) }

// PublicKey returns the public counterpart, sharing curve and
// configuration.
func (key *PrivateKey) PublicKey() *PublicKey {
	clone := key.pub
	return &clone
}

// SerializeScalar returns the private scalar as fixed-width big-endian
// bytes sized to the curve order.
func (key *PrivateKey) SerializeScalar() []byte {
	return key.scalar.FillBytes(make([]byte, orderByteSize(key.pub.curve)))
}

// WithHash returns a copy of the key bound to the named hash algorithm,
// under the same family rules as PublicKey.WithHash.
func (key *PrivateKey) WithHash(hashName string) (*PrivateKey, error) {
	if err := checkHashBinding(key.pub.curve, hashName); err != nil {
		return nil, err
	}
	clone := *key
	clone.pub.hashName = hashName
	return &clone, nil
}

// WithSignatureFormat returns a copy of the key using the given signature
// wire format.
func (key *PrivateKey) WithSignatureFormat(format sigserialization.Format) *PrivateKey {
	clone := *key
	clone.pub.sigFormat = format
	return &clone
}

// WithContext returns a copy of the key bound to a domain-separation
// context, under the same family rules as PublicKey.WithContext.
func (key *PrivateKey) WithContext(context []byte) (*PrivateKey, error) {
	if err := checkContextBinding(key.pub.curve, context); err != nil {
		return nil, err
	}
	clone := *key
	clone.pub.context = copyBytes(context)
	return &clone, nil
}

// Parameters carries a curve definition without any key material. Peers
// that only need domain parameters exchange this value.
type Parameters struct {
	curve curves.Curve
}

// Curve returns the shared curve instance.
func (params *Parameters) Curve() curves.Curve { return params.curve }

// CurveName returns the canonical curve name.
func (params *Parameters) CurveName() string { return params.curve.Name() }

// ParametersByCurveName returns the bare parameters of the named curve.
// The lookup is case-insensitive and accepts curve aliases.
func ParametersByCurveName(curveName string) (*Parameters, error) {
	curve, err := curves.CurveByName(curveName)
	if err != nil {
		return nil, err
	}
	return &Parameters{curve: curve}, nil
}

// Parameters returns the key's bare curve parameters.
func (key *PublicKey) Parameters() *Parameters { return &Parameters{curve: key.curve} }

// Parameters returns the key's bare curve parameters.
func (key *PrivateKey) Parameters() *Parameters { return &Parameters{curve: key.pub.curve} }

func checkHashBinding(curve curves.Curve, hashName string) error {
	if _, err := hashByName(hashName); err != nil {
		return err
	}
	if canonical := curve.CanonicalHash(); canonical != "" && hashName != canonical {
		return ecerrors.Errorf(ecerrors.ErrUnsupportedAlgorithm,
			"curve %s is bound to %s and cannot use %s",
			curve.Name(), canonical, hashName)
	}
	return nil
}

func checkContextBinding(curve curves.Curve, context []byte) error {
	if curve.Family() != curves.FamilyTwistedEdwards {
		return ecerrors.Errorf(ecerrors.ErrUnsupportedCurve,
			"domain-separation contexts are not supported on %s curves",
			curve.Family())
	}
	if len(context) > maxContextLength {
		return ecerrors.Errorf(ecerrors.ErrInvalidContext,
			"context is %d bytes, the maximum is %d", len(context), maxContextLength)
	}
	return nil
}

func defaultPublicKey(curve curves.Curve, point curves.Point) PublicKey {
	hashName := curve.CanonicalHash()
	sigFormat := sigserialization.FormatRaw
	if curve.Family() == curves.FamilyShortWeierstrass {
		hashName = "sha256"
		sigFormat = sigserialization.FormatDER
	}
	return PublicKey{
		curve:     curve,
		point:     point,
		hashName:  hashName,
		sigFormat: sigFormat,
	}
}

func orderByteSize(curve curves.Curve) int {
	return (curve.Order().BitLen() + 7) / 8
}

func copyBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	clone := make([]byte, len(data))
	copy(clone, data)
	return clone
}
