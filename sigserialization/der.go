package sigserialization

import (
	"math/big"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// ASN.1 identifiers used by the DER signature form.
const (
	asn1Sequence = 0x30
	asn1Integer  = 0x02
)

// serializeDER encodes the signature as SEQUENCE { INTEGER r, INTEGER s }
// with minimally encoded big-endian integers: no leading zero bytes except
// a single one to keep the high bit from flagging the value negative.
func serializeDER(sig *Signature) ([]byte, error) {
	rBytes := canonicalizeInt(sig.R)
	sBytes := canonicalizeInt(sig.S)

	bodyLen := 2 + len(rBytes) + 2 + len(sBytes)
	encoded := make([]byte, 0, 2+lengthFieldSize(bodyLen)+bodyLen)
	encoded = append(encoded, asn1Sequence)
	encoded = appendLength(encoded, bodyLen)
	encoded = append(encoded, asn1Integer, byte(len(rBytes)))
	encoded = append(encoded, rBytes...)
	encoded = append(encoded, asn1Integer, byte(len(sBytes)))
	encoded = append(encoded, sBytes...)
	return encoded, nil
}

// canonicalizeInt returns the bytes of the passed big integer adjusted as
// necessary to ensure that a big-endian encoded integer can't possibly be
// misinterpreted as a negative number. This can happen when the most
// significant bit is set, so it is padded by a leading zero byte in this
// case.
func canonicalizeInt(val *big.Int) []byte {
	b := val.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		paddedBytes := make([]byte, len(b)+1)
		copy(paddedBytes[1:], b)
		b = paddedBytes
	}
	return b
}

func lengthFieldSize(length int) int {
	if length < 0x80 {
		return 1
	}
	return 2
}

func appendLength(dst []byte, length int) []byte {
	if length < 0x80 {
		return append(dst, byte(length))
	}
	// Component sizes are bounded by the curve order, so a single length
	// byte after the long-form marker always suffices.
	return append(dst, 0x81, byte(length))
}

func deserializeDER(data []byte) (*Signature, error) {
	// Originally this code used encoding/asn1 in order to parse the
	// signature, but a number of problems were found with this approach.
	// Despite the fact that signatures are stored as DER, the difference
	// between Go's idea of a bignum and the signature components means
	// parsing is done by hand here to keep strict control over the
	// accepted shape.
	index := 0
	next := func() (byte, error) {
		if index >= len(data) {
			return 0, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
				"truncated DER signature")
		}
		b := data[index]
		index++
		return b, nil
	}

	readLength := func() (int, error) {
		first, err := next()
		if err != nil {
			return 0, err
		}
		if first < 0x80 {
			return int(first), nil
		}
		if first != 0x81 {
			return 0, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
				"unsupported DER length form 0x%02x", first)
		}
		second, err := next()
		if err != nil {
			return 0, err
		}
		if second < 0x80 {
			return 0, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
				"non-minimal DER length encoding")
		}
		return int(second), nil
	}

	tag, err := next()
	if err != nil {
		return nil, err
	}
	if tag != asn1Sequence {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"DER signature does not start with a sequence (tag 0x%02x)", tag)
	}
	seqLen, err := readLength()
	if err != nil {
		return nil, err
	}
	if seqLen != len(data)-index {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"DER sequence length %d does not match remaining %d bytes",
			seqLen, len(data)-index)
	}

	readInteger := func() (*big.Int, error) {
		tag, err := next()
		if err != nil {
			return nil, err
		}
		if tag != asn1Integer {
			return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
				"expected DER integer, got tag 0x%02x", tag)
		}
		length, err := readLength()
		if err != nil {
			return nil, err
		}
		if length == 0 {
			return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
				"empty DER integer")
		}
		if index+length > len(data) {
			return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
				"truncated DER integer")
		}
		valueBytes := data[index : index+length]
		index += length

		if err := checkCanonicalPadding(valueBytes); err != nil {
			return nil, err
		}
		return new(big.Int).SetBytes(valueBytes), nil
	}

	r, err := readInteger()
	if err != nil {
		return nil, err
	}
	s, err := readInteger()
	if err != nil {
		return nil, err
	}
	if index != len(data) {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"%d trailing bytes after DER signature", len(data)-index)
	}

	return &Signature{R: r, S: s}, nil
}

// checkCanonicalPadding rejects integers that would be interpreted as
// negative values and integers with excessive leading zero padding.
func checkCanonicalPadding(valueBytes []byte) error {
	if valueBytes[0]&0x80 != 0 {
		return ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"integer value may be interpreted as negative")
	}
	if len(valueBytes) > 1 && valueBytes[0] == 0x00 && valueBytes[1]&0x80 == 0 {
		return ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"integer value is excessively padded")
	}
	return nil
}
