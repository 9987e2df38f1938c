package sigserialization

import (
	"math/big"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// Signature holds the two components of an elliptic-curve signature,
// conventionally named (r, s) for ECDSA and (R, S) for EdDSA. The values
// are opaque outside the active wire format.
type Signature struct {
	R *big.Int
	S *big.Int
}

// IsEqual compares this Signature instance to the one passed, returning
// true if both have the same component values.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.R.Cmp(otherSig.R) == 0 && sig.S.Cmp(otherSig.S) == 0
}

// Format selects the wire encoding for signature components.
type Format int

const (
	// FormatDER is a two-element ASN.1 DER sequence of variable-length
	// big-endian integers, the canonical ECDSA wire form.
	FormatDER Format = iota

	// FormatSSH2 prefixes each component with its 4-byte big-endian byte
	// length.
	FormatSSH2

	// FormatRaw is a fixed-width zero-padded big-endian concatenation
	// sized to the curve's field width, used by EdDSA.
	FormatRaw
)

func (f Format) String() string {
	switch f {
	case FormatDER:
		return "DER"
	case FormatSSH2:
		return "SSH2"
	case FormatRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// FormatByName resolves a case-sensitive format name. An unknown name
// fails with ErrInvalidSignatureFormat.
func FormatByName(name string) (Format, error) {
	switch name {
	case "DER", "der":
		return FormatDER, nil
	case "SSH2", "ssh2":
		return FormatSSH2, nil
	case "Raw", "raw":
		return FormatRaw, nil
	}
	return 0, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
		"unknown signature format %q", name)
}

// ComponentBounds carries the exclusive upper bound for each decoded
// component. For ECDSA both bounds are the curve order. For EdDSA the first
// component is an encoded point rather than a scalar, so its bound is the
// full encoding range while the second stays at the curve order.
type ComponentBounds struct {
	R *big.Int
	S *big.Int
}

// OrderBounds returns the ECDSA bounds: both components in (0, order).
func OrderBounds(order *big.Int) ComponentBounds {
	return ComponentBounds{R: order, S: order}
}

// PointAndOrderBounds returns the EdDSA bounds for a curve whose encoded
// points are width bytes wide.
func PointAndOrderBounds(order *big.Int, width int) ComponentBounds {
	pointBound := new(big.Int).Lsh(big.NewInt(1), uint(8*width))
	return ComponentBounds{R: pointBound, S: order}
}

// Serialize encodes the signature components in the given format. width is
// the curve's field byte size and is only used by FormatRaw.
func Serialize(sig *Signature, format Format, width int) ([]byte, error) {
	switch format {
	case FormatDER:
		return serializeDER(sig)
	case FormatSSH2:
		return serializeSSH2(sig)
	case FormatRaw:
		return serializeRaw(sig, width)
	}
	return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
		"unknown signature format %d", format)
}

// Deserialize decodes a signature blob, validating structure and that each
// component lies in (0, bound). Malformed or out-of-range input fails with
// ErrInvalidSignatureFormat.
func Deserialize(data []byte, format Format, width int, bounds ComponentBounds) (*Signature, error) {
	var sig *Signature
	var err error
	switch format {
	case FormatDER:
		sig, err = deserializeDER(data)
	case FormatSSH2:
		sig, err = deserializeSSH2(data)
	case FormatRaw:
		sig, err = deserializeRaw(data, width)
	default:
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"unknown signature format %d", format)
	}
	if err != nil {
		return nil, err
	}

	if err := checkComponent("first", sig.R, bounds.R); err != nil {
		return nil, err
	}
	if err := checkComponent("second", sig.S, bounds.S); err != nil {
		return nil, err
	}
	return sig, nil
}

func checkComponent(position string, component, bound *big.Int) error {
	if component.Sign() <= 0 {
		return ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"%s signature component is zero or negative", position)
	}
	if component.Cmp(bound) >= 0 {
		return ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"%s signature component exceeds its valid range", position)
	}
	return nil
}

// bigIntToFixedBytes pads a big int with leading zeros up to length bytes.
func bigIntToFixedBytes(val *big.Int, length int) ([]byte, error) {
	if val.BitLen() > 8*length {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"signature component does not fit in %d bytes", length)
	}
	return val.FillBytes(make([]byte, length)), nil
}
