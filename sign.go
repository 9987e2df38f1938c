package ecsig

import (
	"math/big"

	"github.com/kaspanet/go-ecsig/curves"
	"github.com/kaspanet/go-ecsig/engine"
	"github.com/kaspanet/go-ecsig/sigserialization"
)

// Signer produces signatures. It is stateless apart from the reference to
// the probed engine capabilities, so a single Signer may be shared by any
// number of goroutines.
type Signer struct {
	selector *engine.Selector
}

// NewSigner returns a Signer backed by the process-wide engine
// capabilities.
func NewSigner() *Signer {
	return &Signer{selector: engine.NewSelector()}
}

// NewSignerWithSelector returns a Signer pinned to the given backend
// selector.
func NewSignerWithSelector(selector *engine.Selector) *Signer {
	return &Signer{selector: selector}
}

// Sign signs message with the key's bound hash, context and signature
// format, and returns the encoded signature bytes.
func (signer *Signer) Sign(key *PrivateKey, message []byte) ([]byte, error) {
	curve := key.pub.curve
	algorithm, err := hashByName(key.pub.hashName)
	if err != nil {
		return nil, err
	}

	backend := signer.selector.SigningBackend(
		curve.Name(), key.pub.hashName, len(key.pub.context), key.seed != nil)

	var signature *sigserialization.Signature
	switch backend {
	case engine.BackendNativeEd25519:
		signature, err = engine.SignNativeEd25519(key.seed, message)
	case engine.BackendAcceleratedSecp256k1:
		signature, err = engine.SignAcceleratedSecp256k1(
			key.SerializeScalar(), algorithm.digest(message))
	default:
		switch curve.Family() {
		case curves.FamilyTwistedEdwards:
			signature, err = signEdDSA(curve, key, algorithm, message)
		default:
			signature, err = signECDSA(curve, key.scalar, algorithm, message)
		}
	}
	if err != nil {
		return nil, err
	}

	return sigserialization.Serialize(signature, key.pub.sigFormat, curve.FieldByteSize())
}

// SignWithContext binds context to the key for this call only, then signs.
// The context rules match PrivateKey.WithContext.
func (signer *Signer) SignWithContext(key *PrivateKey, message, context []byte) ([]byte, error) {
	keyWithContext, err := key.WithContext(context)
	if err != nil {
		return nil, err
	}
	return signer.Sign(keyWithContext, message)
}

// Sign signs message using the default engine selection. See Signer.Sign.
func (key *PrivateKey) Sign(message []byte) ([]byte, error) {
	return NewSigner().Sign(key, message)
}

// SignWithContext signs message under a domain-separation context. See
// Signer.SignWithContext.
func (key *PrivateKey) SignWithContext(message, context []byte) ([]byte, error) {
	return NewSigner().SignWithContext(key, message, context)
}

func signECDSA(curve curves.Curve, scalar *big.Int, algorithm *hashAlgorithm,
	message []byte) (*sigserialization.Signature, error) {

	order := curve.Order()
	digest := algorithm.digest(message)
	e := digestToScalar(digest, order)
	nonces := newNonceRFC6979(scalar, digest, order, algorithm)

	for {
		k := nonces.next()
		kPoint := curve.MultiplyPoint(curve.BasePoint(), k)
		r := new(big.Int).Mod(kPoint.X, order)
		if r.Sign() == 0 {
			continue
		}

		// s = k⁻¹(e + r·scalar) mod order
		s := new(big.Int).Mul(r, scalar)
		s.Add(s, e)
		kInverse := new(big.Int).ModInverse(k, order)
		s.Mul(s, kInverse)
		s.Mod(s, order)
		if s.Sign() == 0 {
			continue
		}

		// Normalize to the low-s form so every backend emits the same
		// canonical signature.
		halfOrder := new(big.Int).Rsh(order, 1)
		if s.Cmp(halfOrder) > 0 {
			s.Sub(order, s)
		}
		return &sigserialization.Signature{R: r, S: s}, nil
	}
}

func signEdDSA(curve curves.Curve, key *PrivateKey, algorithm *hashAlgorithm,
	message []byte) (*sigserialization.Signature, error) {

	order := curve.Order()
	dom := domainPrefix(curve, key.pub.context)
	prefix, err := edwardsNoncePrefix(curve, key, algorithm)
	if err != nil {
		return nil, err
	}

	// r = H(dom || prefix || M), as a little-endian integer mod order.
	r := littleEndianToBigInt(algorithm.digest(dom, prefix, message))
	r.Mod(r, order)

	noncePoint := curve.MultiplyPoint(curve.BasePoint(), r)
	encodedNoncePoint := curve.EncodePoint(noncePoint)
	encodedPublicPoint := curve.EncodePoint(key.pub.point)

	// k = H(dom || R || A || M), then S = (r + k·scalar) mod order.
	k := littleEndianToBigInt(algorithm.digest(dom, encodedNoncePoint, encodedPublicPoint, message))
	k.Mod(k, order)
	s := k.Mul(k, key.scalar)
	s.Add(s, r)
	s.Mod(s, order)

	return &sigserialization.Signature{
		R: new(big.Int).SetBytes(encodedNoncePoint),
		S: s,
	}, nil
}

// domainPrefix builds the RFC 8032 dom2/dom4 prefix. Ed25519 signs with no
// prefix unless a context is bound (Ed25519ctx); Ed448 always carries its
// prefix.
func domainPrefix(curve curves.Curve, context []byte) []byte {
	switch curve.Name() {
	case "Ed25519":
		if len(context) == 0 {
			return nil
		}
		prefix := []byte("SigEd25519 no Ed25519 collisions")
		prefix = append(prefix, 0x00, byte(len(context)))
		return append(prefix, context...)
	case "Ed448":
		prefix := []byte("SigEd448")
		prefix = append(prefix, 0x00, byte(len(context)))
		return append(prefix, context...)
	default:
		return nil
	}
}

// edwardsNoncePrefix returns the secret half of the nonce transcript.
// Seeded Ed25519 keys use the upper half of the expanded seed exactly as
// RFC 8032 prescribes; keys loaded as bare scalars derive a stable prefix
// by hashing the scalar itself. Either way the derivation is fixed per
// curve and never caller-overridable.
func edwardsNoncePrefix(curve curves.Curve, key *PrivateKey, algorithm *hashAlgorithm) ([]byte, error) {
	width := curve.FieldByteSize()
	if key.seed != nil {
		expanded := algorithm.digest(key.seed)
		return expanded[len(expanded)-width:], nil
	}
	expanded := algorithm.digest(key.SerializeScalar())
	return expanded[:width], nil
}

// digestToScalar converts a digest to an integer per FIPS 186-4: take the
// leftmost order-bits of the digest.
func digestToScalar(digest []byte, order *big.Int) *big.Int {
	e := new(big.Int).SetBytes(digest)
	if excess := len(digest)*8 - order.BitLen(); excess > 0 {
		e.Rsh(e, uint(excess))
	}
	return e.Mod(e, order)
}
