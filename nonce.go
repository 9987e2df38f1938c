package ecsig

import (
	"crypto/hmac"
	"math/big"
)

// nonceRFC6979 derives deterministic ECDSA nonces from the private scalar
// and the message digest per RFC 6979. Deterministic derivation removes
// the nonce-reuse failure mode entirely and makes signatures reproducible
// for identical inputs. The HMAC uses the key's bound hash algorithm.
type nonceRFC6979 struct {
	order    *big.Int
	qlen     int
	rolen    int
	alg      *hashAlgorithm
	v        []byte
	k        []byte
	primed   bool
}

func newNonceRFC6979(scalar *big.Int, digest []byte, order *big.Int, alg *hashAlgorithm) *nonceRFC6979 {
	generator := &nonceRFC6979{
		order: order,
		qlen:  order.BitLen(),
		rolen: (order.BitLen() + 7) / 8,
		alg:   alg,
	}

	// Step b/c: V = 0x01..01, K = 0x00..00 over the hash output length.
	generator.v = make([]byte, alg.size)
	generator.k = make([]byte, alg.size)
	for i := range generator.v {
		generator.v[i] = 0x01
	}

	seed := append(generator.int2octets(scalar), generator.bits2octets(digest)...)

	// Steps d through g.
	generator.update(append([]byte{0x00}, seed...))
	generator.update(append([]byte{0x01}, seed...))
	return generator
}

// next returns the next candidate nonce in [1, order-1].
func (g *nonceRFC6979) next() *big.Int {
	for {
		if g.primed {
			// A prior candidate was rejected (or consumed); ratchet the
			// internal state before producing another.
			g.update([]byte{0x00})
		}
		g.primed = true

		generated := make([]byte, 0, g.rolen)
		for len(generated) < g.rolen {
			g.v = g.mac(g.k, g.v)
			generated = append(generated, g.v...)
		}
		nonce := g.bits2int(generated[:g.rolen])
		if nonce.Sign() > 0 && nonce.Cmp(g.order) < 0 {
			return nonce
		}
	}
}

func (g *nonceRFC6979) update(suffix []byte) {
	g.k = g.mac(g.k, append(append([]byte{}, g.v...), suffix...))
	g.v = g.mac(g.k, g.v)
}

func (g *nonceRFC6979) mac(key, message []byte) []byte {
	h := hmac.New(g.alg.newHash, key)
	h.Write(message)
	return h.Sum(nil)
}

// bits2int interprets data as a big-endian integer and truncates it to the
// bit length of the curve order.
func (g *nonceRFC6979) bits2int(data []byte) *big.Int {
	value := new(big.Int).SetBytes(data)
	if excess := len(data)*8 - g.qlen; excess > 0 {
		value.Rsh(value, uint(excess))
	}
	return value
}

// int2octets encodes value as rolen big-endian bytes.
func (g *nonceRFC6979) int2octets(value *big.Int) []byte {
	return value.FillBytes(make([]byte, g.rolen))
}

// bits2octets reduces the digest modulo the order and re-encodes it.
func (g *nonceRFC6979) bits2octets(digest []byte) []byte {
	reduced := g.bits2int(digest)
	reduced.Mod(reduced, g.order)
	return g.int2octets(reduced)
}
