package engine

import "sync"

// Capabilities describes which accelerated backends are usable in this
// process. It is probed lazily, exactly once, and immutable afterwards.
type Capabilities struct {
	// NativeEd25519 reports that the platform Ed25519 signer is healthy.
	NativeEd25519 bool

	// AcceleratedSecp256k1 reports that the specialized secp256k1
	// implementation is healthy.
	AcceleratedSecp256k1 bool
}

var (
	probeOnce    sync.Once
	capabilities *Capabilities
)

// Probe returns the process-wide capability set. The first call runs the
// probe; concurrent first-use callers block on the same probe and all
// observe the identical cached result.
func Probe() *Capabilities {
	probeOnce.Do(func() {
		capabilities = &Capabilities{
			NativeEd25519:        probeNativeEd25519(),
			AcceleratedSecp256k1: probeSecp256k1(),
		}
	})
	return capabilities
}
