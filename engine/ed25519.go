package engine

import (
	"crypto/ed25519"
	"math/big"

	"github.com/kaspanet/go-ecsig/ecerrors"
	"github.com/kaspanet/go-ecsig/sigserialization"
)

const ed25519ComponentSize = 32

// SignNativeEd25519 signs through the platform Ed25519 implementation and
// converts the RFC 8032 wire signature into signature components: the
// encoded point R as a big-endian integer and the scalar S.
func SignNativeEd25519(seed, message []byte) (*sigserialization.Signature, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"Ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	rfcSignature := ed25519.Sign(privateKey, message)

	return &sigserialization.Signature{
		R: new(big.Int).SetBytes(rfcSignature[:ed25519ComponentSize]),
		S: reverseToBigInt(rfcSignature[ed25519ComponentSize:]),
	}, nil
}

// VerifyNativeEd25519 verifies signature components against the encoded
// public point through the platform Ed25519 implementation.
func VerifyNativeEd25519(encodedPublicPoint, message []byte, sig *sigserialization.Signature) bool {
	if len(encodedPublicPoint) != ed25519.PublicKeySize {
		return false
	}
	if sig.R.BitLen() > 8*ed25519ComponentSize || sig.S.BitLen() > 8*ed25519ComponentSize {
		return false
	}

	rfcSignature := make([]byte, ed25519.SignatureSize)
	sig.R.FillBytes(rfcSignature[:ed25519ComponentSize])
	sBigEndian := sig.S.FillBytes(make([]byte, ed25519ComponentSize))
	for i, b := range sBigEndian {
		rfcSignature[ed25519.SignatureSize-1-i] = b
	}

	return ed25519.Verify(ed25519.PublicKey(encodedPublicPoint), message, rfcSignature)
}

// SeedToPublicKey derives the RFC 8032 encoded public point for a seed.
func SeedToPublicKey(seed []byte) ([]byte, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"Ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	return privateKey.Public().(ed25519.PublicKey), nil
}

func reverseToBigInt(littleEndian []byte) *big.Int {
	bigEndian := make([]byte, len(littleEndian))
	for i, b := range littleEndian {
		bigEndian[len(littleEndian)-1-i] = b
	}
	return new(big.Int).SetBytes(bigEndian)
}

func probeNativeEd25519() bool {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 1
	privateKey := ed25519.NewKeyFromSeed(seed)
	message := []byte("capability probe")
	signature := ed25519.Sign(privateKey, message)
	return ed25519.Verify(privateKey.Public().(ed25519.PublicKey), message, signature)
}
