package keyserialization

import (
	"github.com/btcsuite/btcutil/base58"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// base58check version bytes distinguishing the three container shapes.
const (
	base58VersionPrivateKey = 0x60
	base58VersionPublicKey  = 0x61
	base58VersionParameters = 0x62
)

// Stable one-byte curve identifiers for the compact format. These are part
// of the wire format; never renumber them.
var base58CurveIDs = map[string]byte{
	"secp256k1": 1,
	"P-256":     2,
	"P-384":     3,
	"P-521":     4,
	"Ed25519":   5,
	"Ed448":     6,
}

func base58CurveID(curveName string) (byte, error) {
	id, ok := base58CurveIDs[curveName]
	if !ok {
		return 0, ecerrors.Errorf(ecerrors.ErrUnsupportedCurve,
			"curve %s has no compact-format identifier", curveName)
	}
	return id, nil
}

func base58CurveNameByID(id byte) (string, error) {
	for name, candidate := range base58CurveIDs {
		if candidate == id {
			return name, nil
		}
	}
	return "", ecerrors.Errorf(ecerrors.ErrUnsupportedCurve,
		"unrecognized compact-format curve identifier %d", id)
}

// serializeBase58 encodes the container as a base58check string. The
// payload is the curve identifier followed by the scalar (private keys) or
// the encoded point (public keys); parameters carry the identifier alone.
func serializeBase58(container *Container) ([]byte, error) {
	curveID, err := base58CurveID(container.CurveName)
	if err != nil {
		return nil, err
	}

	version := byte(base58VersionParameters)
	payload := []byte{curveID}
	switch {
	case container.IsPrivate():
		version = base58VersionPrivateKey
		payload = append(payload, container.PrivateScalar...)
	case len(container.PublicPoint) > 0:
		version = base58VersionPublicKey
		payload = append(payload, container.PublicPoint...)
	}

	return []byte(base58.CheckEncode(payload, version)), nil
}

func deserializeBase58(data []byte) (*Container, error) {
	payload, version, err := base58.CheckDecode(string(data))
	if err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"decoding base58check key material")
	}
	if len(payload) == 0 {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"base58check payload is empty")
	}

	curveName, err := base58CurveNameByID(payload[0])
	if err != nil {
		return nil, err
	}
	body := payload[1:]

	container := &Container{CurveName: curveName}
	switch version {
	case base58VersionPrivateKey:
		if len(body) == 0 {
			return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"base58check private key carries no scalar")
		}
		container.PrivateScalar = body
	case base58VersionPublicKey:
		if len(body) == 0 {
			return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"base58check public key carries no point")
		}
		container.PublicPoint = body
	case base58VersionParameters:
		if len(body) != 0 {
			return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"base58check parameters carry %d unexpected payload bytes", len(body))
		}
	default:
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"unrecognized base58check version byte %#02x", version)
	}
	return container, nil
}
