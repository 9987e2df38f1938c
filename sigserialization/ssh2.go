package sigserialization

import (
	"encoding/binary"
	"math/big"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// serializeSSH2 encodes each component as its big-endian bytes prefixed by
// a 4-byte big-endian length.
func serializeSSH2(sig *Signature) ([]byte, error) {
	rBytes := sig.R.Bytes()
	sBytes := sig.S.Bytes()

	encoded := make([]byte, 0, 8+len(rBytes)+len(sBytes))
	encoded = appendLengthPrefixed(encoded, rBytes)
	encoded = appendLengthPrefixed(encoded, sBytes)
	return encoded, nil
}

func appendLengthPrefixed(dst, value []byte) []byte {
	var lengthPrefix [4]byte
	binary.BigEndian.PutUint32(lengthPrefix[:], uint32(len(value)))
	dst = append(dst, lengthPrefix[:]...)
	return append(dst, value...)
}

func deserializeSSH2(data []byte) (*Signature, error) {
	r, rest, err := readLengthPrefixed(data)
	if err != nil {
		return nil, err
	}
	s, rest, err := readLengthPrefixed(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"%d trailing bytes after SSH2 signature blob", len(rest))
	}
	return &Signature{R: r, S: s}, nil
}

func readLengthPrefixed(data []byte) (*big.Int, []byte, error) {
	if len(data) < 4 {
		return nil, nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"truncated SSH2 length prefix")
	}
	length := binary.BigEndian.Uint32(data)
	rest := data[4:]
	if uint32(len(rest)) < length {
		return nil, nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"SSH2 component length %d exceeds remaining %d bytes", length, len(rest))
	}
	return new(big.Int).SetBytes(rest[:length]), rest[length:], nil
}
