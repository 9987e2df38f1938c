package ecsig

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/sha3"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// hashAlgorithm is an entry in the static registry of message-hash
// algorithms. Short Weierstrass keys may bind any of these; twisted Edwards
// keys are fixed to their curve's canonical entry.
type hashAlgorithm struct {
	name    string
	size    int
	newHash func() hash.Hash
}

var hashAlgorithms = map[string]*hashAlgorithm{
	"sha256": {name: "sha256", size: sha256.Size, newHash: sha256.New},
	"sha384": {name: "sha384", size: sha512.Size384, newHash: sha512.New384},
	"sha512": {name: "sha512", size: sha512.Size, newHash: sha512.New},
	// The 114-byte SHAKE-256 output prescribed by RFC 8032 for Ed448.
	"shake256-114": {name: "shake256-114", size: 114, newHash: func() hash.Hash {
		return &shakeHash{state: sha3.NewShake256(), outputLength: 114}
	}},
}

func hashByName(name string) (*hashAlgorithm, error) {
	algorithm, ok := hashAlgorithms[name]
	if !ok {
		return nil, ecerrors.Errorf(ecerrors.ErrUnsupportedAlgorithm,
			"unknown hash algorithm %q", name)
	}
	return algorithm, nil
}

// digest hashes the concatenation of all chunks.
func (alg *hashAlgorithm) digest(chunks ...[]byte) []byte {
	h := alg.newHash()
	for _, chunk := range chunks {
		h.Write(chunk)
	}
	return h.Sum(nil)
}

// shakeHash adapts the variable-output SHAKE-256 XOF to the fixed-size
// hash.Hash interface.
type shakeHash struct {
	state        sha3.ShakeHash
	outputLength int
}

func (s *shakeHash) Write(p []byte) (int, error) {
	return s.state.Write(p)
}

func (s *shakeHash) Sum(b []byte) []byte {
	output := make([]byte, s.outputLength)
	state := s.state.Clone()
	if _, err := state.Read(output); err != nil {
		panic("ecsig: reading from SHAKE state cannot fail: " + err.Error())
	}
	return append(b, output...)
}

func (s *shakeHash) Reset()         { s.state.Reset() }
func (s *shakeHash) Size() int      { return s.outputLength }
func (s *shakeHash) BlockSize() int { return 136 }
