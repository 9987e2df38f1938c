package ecsig

import (
	"crypto/ed25519"
	"crypto/rand"
	"math/big"

	"github.com/tyler-smith/go-bip39"

	"github.com/kaspanet/go-ecsig/curves"
	"github.com/kaspanet/go-ecsig/ecerrors"
)

// GeneratePrivateKey creates a private key on the named curve. The curve
// name is looked up case-insensitively in the static registry; an unknown
// name fails with ErrUnsupportedCurve.
//
// Twisted Edwards keys come back bound to their curve's canonical hash and
// the raw signature format; short Weierstrass keys default to SHA-256 and
// DER. Ed25519 keys additionally retain their RFC 8032 seed so the
// platform signer can serve them.
func GeneratePrivateKey(curveName string) (*PrivateKey, error) {
	curve, err := curves.CurveByName(curveName)
	if err != nil {
		return nil, err
	}

	if curve.Name() == "Ed25519" {
		seed := make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, err
		}
		return privateKeyFromEd25519Seed(curve, seed)
	}

	scalar, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		return nil, err
	}
	return privateKeyFromScalar(curve, scalar, nil)
}

// CreateMnemonic generates a fresh BIP-39 mnemonic with 256 bits of
// entropy, suitable for PrivateKeyFromMnemonic.
func CreateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// PrivateKeyFromMnemonic deterministically derives a private key on the
// named curve from a BIP-39 mnemonic and passphrase. The same mnemonic
// always yields the same key, so a key file can be reconstructed from its
// backup phrase.
func PrivateKeyFromMnemonic(curveName, mnemonic, passphrase string) (*PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"mnemonic failed its checksum")
	}
	curve, err := curves.CurveByName(curveName)
	if err != nil {
		return nil, err
	}
	seed := bip39.NewSeed(mnemonic, passphrase)

	if curve.Name() == "Ed25519" {
		return privateKeyFromEd25519Seed(curve, seed[:ed25519.SeedSize])
	}

	var scalar *big.Int
	if curve.Family() == curves.FamilyTwistedEdwards {
		// Feed the seed through the curve's clamping convention.
		scalar, err = curve.RandomScalar(newByteSource(seed))
		if err != nil {
			return nil, err
		}
	} else {
		// Reduce into [1, order-1]. The 512-bit seed is wide enough that
		// the bias from the reduction is negligible for every supported
		// order.
		orderMinusOne := new(big.Int).Sub(curve.Order(), big.NewInt(1))
		scalar = new(big.Int).SetBytes(seed)
		scalar.Mod(scalar, orderMinusOne)
		scalar.Add(scalar, big.NewInt(1))
	}
	return privateKeyFromScalar(curve, scalar, nil)
}

// privateKeyFromEd25519Seed derives the scalar and public point exactly as
// RFC 8032 does, so the generic backend and the platform signer agree on
// every byte.
func privateKeyFromEd25519Seed(curve curves.Curve, seed []byte) (*PrivateKey, error) {
	if curve.Name() != "Ed25519" || len(seed) != ed25519.SeedSize {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"an RFC 8032 seed must be %d bytes on Ed25519; got %d bytes on %s",
			ed25519.SeedSize, len(seed), curve.Name())
	}
	sha512Alg, err := hashByName("sha512")
	if err != nil {
		return nil, err
	}
	expanded := sha512Alg.digest(seed)
	scalarBytes := make([]byte, 32)
	copy(scalarBytes, expanded[:32])
	scalarBytes[0] &= 248
	scalarBytes[31] &= 127
	scalarBytes[31] |= 64

	scalar := littleEndianToBigInt(scalarBytes)
	scalar.Mod(scalar, curve.Order())
	return privateKeyFromScalar(curve, scalar, copyBytes(seed))
}

func privateKeyFromScalar(curve curves.Curve, scalar *big.Int, seed []byte) (*PrivateKey, error) {
	if scalar.Sign() <= 0 || scalar.Cmp(curve.Order()) >= 0 {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"private scalar is outside [1, order-1]")
	}
	point := curve.MultiplyPoint(curve.BasePoint(), scalar)
	return &PrivateKey{
		pub:    defaultPublicKey(curve, point),
		scalar: scalar,
		seed:   seed,
	}, nil
}

// byteSource replays a fixed buffer as an entropy source for deterministic
// scalar derivation.
type byteSource struct {
	data []byte
}

func newByteSource(data []byte) *byteSource {
	return &byteSource{data: data}
}

func (s *byteSource) Read(p []byte) (int, error) {
	if len(s.data) == 0 {
		return 0, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"seed material exhausted during scalar derivation")
	}
	n := copy(p, s.data)
	s.data = s.data[n:]
	return n, nil
}

func littleEndianToBigInt(littleEndian []byte) *big.Int {
	bigEndian := make([]byte, len(littleEndian))
	for i, b := range littleEndian {
		bigEndian[len(littleEndian)-1-i] = b
	}
	return new(big.Int).SetBytes(bigEndian)
}
