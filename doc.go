/*
Package ecsig implements elliptic-curve digital signatures over two curve
families: short Weierstrass curves (secp256k1, P-256, P-384, P-521) signed
with deterministic ECDSA, and twisted Edwards curves (Ed25519, Ed448)
signed with EdDSA.

Keys are immutable. Configuration methods such as WithHash, WithContext
and WithSignatureFormat return a fresh key value, so a key can be shared
freely between goroutines.

Signing and verification transparently pick the fastest available backend
for the key's curve: the platform Ed25519 implementation, the specialized
secp256k1 implementation, or the generic arithmetic that serves every
supported curve. All backends produce interchangeable signatures.

Basic usage:

	privateKey, err := ecsig.GeneratePrivateKey("secp256k1")
	if err != nil {
		// ...
	}
	signature, err := privateKey.Sign(message)
	if err != nil {
		// ...
	}
	valid, err := privateKey.PublicKey().Verify(message, signature)

Key material round-trips through JSON key files (optionally password
encrypted), PEM, and compact base58check strings; Load auto-detects the
format.
*/
package ecsig
