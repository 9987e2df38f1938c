package ecsig

import (
	"crypto/subtle"
	"math/big"

	"github.com/kaspanet/go-ecsig/curves"
	"github.com/kaspanet/go-ecsig/engine"
	"github.com/kaspanet/go-ecsig/sigserialization"
)

// Verifier checks signatures. Like Signer it is safe for concurrent use.
type Verifier struct {
	selector *engine.Selector
}

// NewVerifier returns a Verifier backed by the process-wide engine
// capabilities.
func NewVerifier() *Verifier {
	return &Verifier{selector: engine.NewSelector()}
}

// NewVerifierWithSelector returns a Verifier pinned to the given backend
// selector.
func NewVerifierWithSelector(selector *engine.Selector) *Verifier {
	return &Verifier{selector: selector}
}

// Verify checks encodedSignature over message against the key. A
// structurally broken or out-of-range encoding fails with
// ErrInvalidSignatureFormat; a well-formed signature that simply does not
// match returns (false, nil).
func (verifier *Verifier) Verify(key *PublicKey, message, encodedSignature []byte) (bool, error) {
	curve := key.curve
	algorithm, err := hashByName(key.hashName)
	if err != nil {
		return false, err
	}

	bounds := sigserialization.OrderBounds(curve.Order())
	if curve.Family() == curves.FamilyTwistedEdwards {
		bounds = sigserialization.PointAndOrderBounds(curve.Order(), curve.FieldByteSize())
	}
	signature, err := sigserialization.Deserialize(
		encodedSignature, key.sigFormat, curve.FieldByteSize(), bounds)
	if err != nil {
		return false, err
	}

	backend := verifier.selector.VerificationBackend(
		curve.Name(), key.hashName, len(key.context))

	switch backend {
	case engine.BackendNativeEd25519:
		return engine.VerifyNativeEd25519(key.SerializePoint(), message, signature), nil
	case engine.BackendAcceleratedSecp256k1:
		return engine.VerifyAcceleratedSecp256k1(
			encodeCompressedPoint(curve, key.point), algorithm.digest(message),
			normalizeLowS(curve.Order(), signature)), nil
	}

	if curve.Family() == curves.FamilyTwistedEdwards {
		return verifyEdDSA(curve, key, algorithm, message, signature)
	}
	return verifyECDSA(curve, key.point, algorithm, message, signature), nil
}

// VerifyWithContext binds context to the key for this call only, then
// verifies. The context rules match PublicKey.WithContext.
func (verifier *Verifier) VerifyWithContext(key *PublicKey, message, encodedSignature,
	context []byte) (bool, error) {

	keyWithContext, err := key.WithContext(context)
	if err != nil {
		return false, err
	}
	return verifier.Verify(keyWithContext, message, encodedSignature)
}

// Verify checks a signature using the default engine selection. See
// Verifier.Verify.
func (key *PublicKey) Verify(message, encodedSignature []byte) (bool, error) {
	return NewVerifier().Verify(key, message, encodedSignature)
}

// VerifyWithContext checks a signature under a domain-separation context.
// See Verifier.VerifyWithContext.
func (key *PublicKey) VerifyWithContext(message, encodedSignature, context []byte) (bool, error) {
	return NewVerifier().VerifyWithContext(key, message, encodedSignature, context)
}

func verifyECDSA(curve curves.Curve, publicPoint curves.Point, algorithm *hashAlgorithm,
	message []byte, signature *sigserialization.Signature) bool {

	order := curve.Order()
	e := digestToScalar(algorithm.digest(message), order)

	sInverse := new(big.Int).ModInverse(signature.S, order)
	if sInverse == nil {
		return false
	}
	u1 := new(big.Int).Mul(e, sInverse)
	u1.Mod(u1, order)
	u2 := new(big.Int).Mul(signature.R, sInverse)
	u2.Mod(u2, order)

	sum := curve.AddPoints(
		curve.MultiplyPoint(curve.BasePoint(), u1),
		curve.MultiplyPoint(publicPoint, u2))
	if sum.IsInfinity() {
		return false
	}
	v := new(big.Int).Mod(sum.X, order)

	width := orderByteSize(curve)
	return subtle.ConstantTimeCompare(
		v.FillBytes(make([]byte, width)),
		signature.R.FillBytes(make([]byte, width))) == 1
}

func verifyEdDSA(curve curves.Curve, key *PublicKey, algorithm *hashAlgorithm,
	message []byte, signature *sigserialization.Signature) (bool, error) {

	order := curve.Order()
	width := curve.FieldByteSize()

	encodedNoncePoint := signature.R.FillBytes(make([]byte, width))
	noncePoint, err := curve.DecodePoint(encodedNoncePoint)
	if err != nil {
		// The encoding passed range checks but is not a curve point; that
		// is a mismatch, not a malformed signature.
		return false, nil
	}

	dom := domainPrefix(curve, key.context)
	encodedPublicPoint := curve.EncodePoint(key.point)
	k := littleEndianToBigInt(algorithm.digest(dom, encodedNoncePoint, encodedPublicPoint, message))
	k.Mod(k, order)

	// Cofactorless check: S·B == R + k·A. RFC 8032 also permits the
	// cofactored variant, but the platform Ed25519 verifier is
	// cofactorless, and a signature carrying a small-order component must
	// not get different verdicts depending on which backend handled it.
	left := curve.MultiplyPoint(curve.BasePoint(), signature.S)
	right := curve.AddPoints(noncePoint, curve.MultiplyPoint(key.point, k))

	return subtle.ConstantTimeCompare(curve.EncodePoint(left), curve.EncodePoint(right)) == 1, nil
}

// normalizeLowS maps s into the lower half of the order. (r, s) and
// (r, order-s) satisfy the same ECDSA verification equation, but the
// accelerated secp256k1 implementation only accepts the low-s form, so
// high-s signatures are mapped before dispatch to keep its verdicts
// identical to the generic backend's.
func normalizeLowS(order *big.Int, signature *sigserialization.Signature) *sigserialization.Signature {
	halfOrder := new(big.Int).Rsh(order, 1)
	if signature.S.Cmp(halfOrder) <= 0 {
		return signature
	}
	return &sigserialization.Signature{
		R: signature.R,
		S: new(big.Int).Sub(order, signature.S),
	}
}

// encodeCompressedPoint produces the 33-byte SEC1 compressed encoding the
// accelerated secp256k1 backend consumes.
func encodeCompressedPoint(curve curves.Curve, point curves.Point) []byte {
	compressed := make([]byte, 1+curve.FieldByteSize())
	compressed[0] = 0x02
	if point.Y.Bit(0) == 1 {
		compressed[0] = 0x03
	}
	point.X.FillBytes(compressed[1:])
	return compressed
}
