package engine

import (
	"math/big"

	"github.com/kaspanet/go-secp256k1"

	"github.com/kaspanet/go-ecsig/ecerrors"
	"github.com/kaspanet/go-ecsig/sigserialization"
)

const secp256k1ComponentSize = 32

// SignAcceleratedSecp256k1 signs a 32-byte digest with the specialized
// secp256k1 implementation. The nonce is derived per RFC 6979 with
// HMAC-SHA256 and the resulting s is low-s normalized, matching the generic
// backend bit for bit.
func SignAcceleratedSecp256k1(serializedScalar, digest []byte) (*sigserialization.Signature, error) {
	privateKey, err := secp256k1.DeserializeECDSAPrivateKeyFromSlice(serializedScalar)
	if err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"deserializing secp256k1 private key")
	}

	hash, err := digestToHash(digest)
	if err != nil {
		return nil, err
	}
	signature, err := privateKey.ECDSASign(hash)
	if err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"secp256k1 signing failed")
	}

	serialized := signature.Serialize()
	return &sigserialization.Signature{
		R: new(big.Int).SetBytes(serialized[:secp256k1ComponentSize]),
		S: new(big.Int).SetBytes(serialized[secp256k1ComponentSize:]),
	}, nil
}

// VerifyAcceleratedSecp256k1 verifies signature components against a
// SEC1-compressed public key through the specialized implementation.
func VerifyAcceleratedSecp256k1(compressedPublicKey, digest []byte, sig *sigserialization.Signature) bool {
	publicKey, err := secp256k1.DeserializeECDSAPubKey(compressedPublicKey)
	if err != nil {
		return false
	}
	hash, err := digestToHash(digest)
	if err != nil {
		return false
	}

	var serialized secp256k1.SerializedECDSASignature
	sig.R.FillBytes(serialized[:secp256k1ComponentSize])
	sig.S.FillBytes(serialized[secp256k1ComponentSize:])
	signature, err := secp256k1.DeserializeECDSASignature(&serialized)
	if err != nil {
		return false
	}

	return publicKey.ECDSAVerify(hash, signature)
}

func digestToHash(digest []byte) (*secp256k1.Hash, error) {
	if len(digest) != secp256k1.HashSize {
		return nil, ecerrors.Errorf(ecerrors.ErrUnsupportedAlgorithm,
			"secp256k1 backend needs a %d-byte digest, got %d",
			secp256k1.HashSize, len(digest))
	}
	var hashBytes [secp256k1.HashSize]byte
	copy(hashBytes[:], digest)
	hash := secp256k1.Hash(hashBytes)
	return &hash, nil
}

// probeSecp256k1 exercises a full sign/verify cycle on a fixed key. A
// failure here (for example a broken vendored build of the underlying
// library) silently demotes all secp256k1 traffic to the generic backend.
func probeSecp256k1() bool {
	scalar := make([]byte, 32)
	scalar[31] = 1
	privateKey, err := secp256k1.DeserializeECDSAPrivateKeyFromSlice(scalar)
	if err != nil {
		return false
	}
	publicKey, err := privateKey.ECDSAPublicKey()
	if err != nil {
		return false
	}

	var digest [secp256k1.HashSize]byte
	digest[0] = 0x5a
	hash := secp256k1.Hash(digest)
	signature, err := privateKey.ECDSASign(&hash)
	if err != nil {
		return false
	}
	return publicKey.ECDSAVerify(&hash, signature)
}
