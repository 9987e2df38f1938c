package keyserialization

import (
	"encoding/asn1"
	"encoding/pem"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

const (
	pemTypePrivateKey = "EC PRIVATE KEY"
	pemTypePublicKey  = "PUBLIC KEY"
	pemTypeParameters = "EC PARAMETERS"
)

var (
	oidPublicKeyEC = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

	curveOIDs = map[string]asn1.ObjectIdentifier{
		"secp256k1": {1, 3, 132, 0, 10},
		"P-256":     {1, 2, 840, 10045, 3, 1, 7},
		"P-384":     {1, 3, 132, 0, 34},
		"P-521":     {1, 3, 132, 0, 35},
		"Ed25519":   {1, 3, 101, 112},
		"Ed448":     {1, 3, 101, 113},
	}
)

// ecPrivateKeyASN1 is the RFC 5915 ECPrivateKey structure. Edwards keys
// reuse it with their curve's own OID so every curve round-trips through
// the same shape.
type ecPrivateKeyASN1 struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

type algorithmIdentifierASN1 struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.ObjectIdentifier `asn1:"optional"`
}

// publicKeyASN1 is an X.509 SubjectPublicKeyInfo.
type publicKeyASN1 struct {
	Algorithm algorithmIdentifierASN1
	PublicKey asn1.BitString
}

func curveOID(curveName string) (asn1.ObjectIdentifier, error) {
	oid, ok := curveOIDs[curveName]
	if !ok {
		return nil, ecerrors.Errorf(ecerrors.ErrUnsupportedCurve,
			"curve %s has no object identifier assignment", curveName)
	}
	return oid, nil
}

func curveNameByOID(oid asn1.ObjectIdentifier) (string, error) {
	for name, candidate := range curveOIDs {
		if candidate.Equal(oid) {
			return name, nil
		}
	}
	return "", ecerrors.Errorf(ecerrors.ErrUnsupportedCurve,
		"unrecognized curve object identifier %s", oid)
}

func isEdwardsOID(oid asn1.ObjectIdentifier) bool {
	return oid.Equal(curveOIDs["Ed25519"]) || oid.Equal(curveOIDs["Ed448"])
}

func serializePEM(container *Container) ([]byte, error) {
	oid, err := curveOID(container.CurveName)
	if err != nil {
		return nil, err
	}

	var blockType string
	var derBytes []byte
	switch {
	case container.IsPrivate():
		blockType = pemTypePrivateKey
		derBytes, err = asn1.Marshal(ecPrivateKeyASN1{
			Version:       1,
			PrivateKey:    container.PrivateScalar,
			NamedCurveOID: oid,
			PublicKey:     asn1.BitString{Bytes: container.PublicPoint, BitLength: 8 * len(container.PublicPoint)},
		})
	case len(container.PublicPoint) > 0:
		blockType = pemTypePublicKey
		algorithm := algorithmIdentifierASN1{Algorithm: oidPublicKeyEC, Parameters: oid}
		if isEdwardsOID(oid) {
			algorithm = algorithmIdentifierASN1{Algorithm: oid}
		}
		derBytes, err = asn1.Marshal(publicKeyASN1{
			Algorithm: algorithm,
			PublicKey: asn1.BitString{Bytes: container.PublicPoint, BitLength: 8 * len(container.PublicPoint)},
		})
	default:
		blockType = pemTypeParameters
		derBytes, err = asn1.Marshal(oid)
	}
	if err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"marshaling %s", blockType)
	}

	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: derBytes}), nil
}

func deserializePEM(data []byte) (*Container, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"no PEM block found")
	}

	switch block.Type {
	case pemTypePrivateKey:
		return deserializePEMPrivateKey(block.Bytes)
	case pemTypePublicKey:
		return deserializePEMPublicKey(block.Bytes)
	case pemTypeParameters:
		return deserializePEMParameters(block.Bytes)
	}
	return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
		"unrecognized PEM block type %q", block.Type)
}

func deserializePEMPrivateKey(derBytes []byte) (*Container, error) {
	parsed := ecPrivateKeyASN1{}
	rest, err := asn1.Unmarshal(derBytes, &parsed)
	if err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"parsing the private key structure")
	}
	if len(rest) > 0 {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"%d trailing bytes after the private key structure", len(rest))
	}
	if parsed.Version != 1 {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"unsupported private key structure version %d", parsed.Version)
	}
	if len(parsed.PrivateKey) == 0 {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"private key structure carries no scalar")
	}

	curveName, err := curveNameByOID(parsed.NamedCurveOID)
	if err != nil {
		return nil, err
	}
	return &Container{
		CurveName:     curveName,
		PrivateScalar: parsed.PrivateKey,
		PublicPoint:   parsed.PublicKey.Bytes,
	}, nil
}

func deserializePEMPublicKey(derBytes []byte) (*Container, error) {
	parsed := publicKeyASN1{}
	rest, err := asn1.Unmarshal(derBytes, &parsed)
	if err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"parsing the public key structure")
	}
	if len(rest) > 0 {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"%d trailing bytes after the public key structure", len(rest))
	}

	oid := parsed.Algorithm.Parameters
	if isEdwardsOID(parsed.Algorithm.Algorithm) {
		oid = parsed.Algorithm.Algorithm
	} else if !parsed.Algorithm.Algorithm.Equal(oidPublicKeyEC) {
		return nil, ecerrors.Errorf(ecerrors.ErrUnsupportedAlgorithm,
			"unrecognized public key algorithm %s", parsed.Algorithm.Algorithm)
	}

	curveName, err := curveNameByOID(oid)
	if err != nil {
		return nil, err
	}
	return &Container{
		CurveName:   curveName,
		PublicPoint: parsed.PublicKey.Bytes,
	}, nil
}

func deserializePEMParameters(derBytes []byte) (*Container, error) {
	oid := asn1.ObjectIdentifier{}
	rest, err := asn1.Unmarshal(derBytes, &oid)
	if err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"parsing the curve parameters")
	}
	if len(rest) > 0 {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"%d trailing bytes after the curve parameters", len(rest))
	}

	curveName, err := curveNameByOID(oid)
	if err != nil {
		return nil, err
	}
	return &Container{CurveName: curveName}, nil
}
