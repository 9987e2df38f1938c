package ecsig

import (
	"math/big"

	"github.com/kaspanet/go-ecsig/curves"
	"github.com/kaspanet/go-ecsig/ecerrors"
	"github.com/kaspanet/go-ecsig/keyserialization"
)

// Load decodes serialized key material, auto-detecting the on-disk format.
// It returns a *PrivateKey, *PublicKey or *Parameters depending on what the
// data holds. password is used only when the data is an encrypted key
// file; a wrong password fails with ErrDecryption.
//
// Loaded private keys are fully validated: the scalar must lie in
// [1, order-1] and any embedded public point must match scalar times the
// base point. Violations fail with ErrInvalidKeyMaterial.
func Load(data, password []byte) (Key, error) {
	return LoadAs(data, keyserialization.DetectFormat(data), password)
}

// LoadAs is like Load but decodes the data in a known format instead of
// auto-detecting it.
func LoadAs(data []byte, format keyserialization.Format, password []byte) (Key, error) {
	container, err := keyserialization.DeserializeAs(data, format, password)
	if err != nil {
		return nil, err
	}
	curve, err := curves.CurveByName(container.CurveName)
	if err != nil {
		return nil, err
	}

	if container.IsPrivate() {
		return loadPrivateKey(curve, container)
	}
	if len(container.PublicPoint) > 0 {
		point, err := curve.DecodePoint(container.PublicPoint)
		if err != nil {
			return nil, err
		}
		publicKey := defaultPublicKey(curve, point)
		return &publicKey, nil
	}
	return &Parameters{curve: curve}, nil
}

func loadPrivateKey(curve curves.Curve, container *keyserialization.Container) (*PrivateKey, error) {
	scalar := new(big.Int).SetBytes(container.PrivateScalar)
	key, err := privateKeyFromScalar(curve, scalar, nil)
	if err != nil {
		return nil, err
	}

	if len(container.Seed) > 0 {
		seeded, err := privateKeyFromEd25519Seed(curve, container.Seed)
		if err != nil {
			return nil, err
		}
		if seeded.scalar.Cmp(key.scalar) != 0 {
			return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"the stored seed does not derive the stored scalar")
		}
		key = seeded
	}

	if len(container.PublicPoint) > 0 {
		point, err := curve.DecodePoint(container.PublicPoint)
		if err != nil {
			return nil, err
		}
		if !key.pub.point.IsEqual(point) {
			return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"the stored public point does not match the private scalar")
		}
	}
	return key, nil
}

// Serialize encodes the private key in the given format. A non-empty
// password encrypts the secret material; only the JSON format supports
// encryption.
func (key *PrivateKey) Serialize(format keyserialization.Format, password []byte) ([]byte, error) {
	return keyserialization.Serialize(&keyserialization.Container{
		CurveName:     key.pub.curve.Name(),
		PrivateScalar: key.SerializeScalar(),
		PublicPoint:   key.pub.SerializePoint(),
		Seed:          copyBytes(key.seed),
	}, format, password)
}

// Serialize encodes the public key in the given format.
func (key *PublicKey) Serialize(format keyserialization.Format) ([]byte, error) {
	return keyserialization.Serialize(&keyserialization.Container{
		CurveName:   key.curve.Name(),
		PublicPoint: key.SerializePoint(),
	}, format, nil)
}

// Serialize encodes the bare curve parameters in the given format.
func (params *Parameters) Serialize(format keyserialization.Format) ([]byte, error) {
	return keyserialization.Serialize(&keyserialization.Container{
		CurveName: params.curve.Name(),
	}, format, nil)
}
