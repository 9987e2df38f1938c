package sigserialization

import (
	"math/big"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// serializeRaw concatenates both components as fixed-width zero-padded
// big-endian values. The width is the curve's field byte size, giving the
// familiar 64-byte Ed25519 and 114-byte Ed448 signatures.
func serializeRaw(sig *Signature, width int) ([]byte, error) {
	rBytes, err := bigIntToFixedBytes(sig.R, width)
	if err != nil {
		return nil, err
	}
	sBytes, err := bigIntToFixedBytes(sig.S, width)
	if err != nil {
		return nil, err
	}
	return append(rBytes, sBytes...), nil
}

func deserializeRaw(data []byte, width int) (*Signature, error) {
	if len(data) != 2*width {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidSignatureFormat,
			"raw signature must be %d bytes, got %d", 2*width, len(data))
	}
	return &Signature{
		R: new(big.Int).SetBytes(data[:width]),
		S: new(big.Int).SetBytes(data[width:]),
	}, nil
}
