// Package keyserialization converts key material between its in-memory
// representation and the supported on-disk formats: a JSON key file with
// optional password encryption, PEM-armored ASN.1, and compact
// base58check strings.
//
// The package works on raw byte containers and never interprets curve
// arithmetic; validation of scalars and points happens in the importing
// package.
package keyserialization

import (
	"bytes"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// Container is the format-independent content of a serialized key. Exactly
// one of the three shapes is populated:
//   - private key: CurveName, PrivateScalar, and usually PublicPoint
//   - public key: CurveName and PublicPoint
//   - bare parameters: CurveName only
type Container struct {
	// CurveName is the canonical curve name.
	CurveName string

	// PrivateScalar is the private scalar as fixed-width big-endian bytes,
	// or nil for public keys and parameters.
	PrivateScalar []byte

	// PublicPoint is the curve's canonical point encoding, or nil when the
	// source format did not carry it.
	PublicPoint []byte

	// Seed is the RFC 8032 seed for Ed25519 keys that still have one. It
	// round-trips through the JSON format only; the other formats carry
	// the scalar alone.
	Seed []byte
}

// IsPrivate reports whether the container holds private key material.
func (c *Container) IsPrivate() bool { return len(c.PrivateScalar) > 0 }

// Format identifies an on-disk key format.
type Format byte

// The supported key formats.
const (
	FormatJSON Format = iota
	FormatPEM
	FormatBase58
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatPEM:
		return "PEM"
	case FormatBase58:
		return "base58"
	}
	return "unknown"
}

// FormatByName resolves a user-supplied format name.
func FormatByName(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "pem":
		return FormatPEM, nil
	case "base58":
		return FormatBase58, nil
	}
	return 0, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
		"unknown key format %q (supported: json, pem, base58)", name)
}

var pemPreamble = []byte("-----BEGIN")

// DetectFormat infers the key format from the serialized bytes. PEM data
// starts with an armor line, JSON with an opening brace; everything else
// is treated as base58.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case bytes.HasPrefix(trimmed, pemPreamble):
		return FormatPEM
	case len(trimmed) > 0 && trimmed[0] == '{':
		return FormatJSON
	default:
		return FormatBase58
	}
}

// Serialize encodes the container in the requested format. The password is
// honored by the JSON format only; passing one for PEM or base58 is an
// error so that callers cannot silently write an unprotected secret they
// believed was encrypted.
func Serialize(container *Container, format Format, password []byte) ([]byte, error) {
	if len(password) > 0 && format != FormatJSON {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"the %s format does not support password encryption", format)
	}
	switch format {
	case FormatJSON:
		return serializeJSON(container, password)
	case FormatPEM:
		return serializePEM(container)
	case FormatBase58:
		return serializeBase58(container)
	}
	return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
		"unknown key format %d", format)
}

// Deserialize decodes serialized key material, auto-detecting the format.
// password is consulted only when the data turns out to be an encrypted
// JSON key file.
func Deserialize(data, password []byte) (*Container, error) {
	return DeserializeAs(data, DetectFormat(data), password)
}

// DeserializeAs decodes serialized key material in a known format,
// bypassing auto-detection.
func DeserializeAs(data []byte, format Format, password []byte) (*Container, error) {
	switch format {
	case FormatPEM:
		return deserializePEM(data)
	case FormatJSON:
		return deserializeJSON(data, password)
	case FormatBase58:
		return deserializeBase58(data)
	}
	return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
		"unknown key format %d", format)
}
