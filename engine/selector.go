package engine

// Backend identifies the computation backend selected for a single signing
// or verification call.
type Backend int

const (
	// BackendGeneric is the arbitrary-precision fallback. It supports
	// every curve, hash and context combination and is always available.
	BackendGeneric Backend = iota

	// BackendNativeEd25519 is the platform-provided Ed25519 signer.
	BackendNativeEd25519

	// BackendAcceleratedSecp256k1 is the curve-specialized secp256k1
	// implementation.
	BackendAcceleratedSecp256k1
)

func (b Backend) String() string {
	switch b {
	case BackendGeneric:
		return "generic"
	case BackendNativeEd25519:
		return "native-ed25519"
	case BackendAcceleratedSecp256k1:
		return "accelerated-secp256k1"
	default:
		return "unknown"
	}
}

// Selector picks the fastest capable backend per operation. It carries an
// explicit reference to the probed capability set instead of consulting
// global state, so tests can pin the capabilities they need.
type Selector struct {
	caps *Capabilities
}

// NewSelector returns a Selector backed by the process-wide probed
// capabilities.
func NewSelector() *Selector {
	return &Selector{caps: Probe()}
}

// NewSelectorWithCapabilities returns a Selector pinned to the given
// capability set.
func NewSelectorWithCapabilities(caps *Capabilities) *Selector {
	return &Selector{caps: caps}
}

// SigningBackend selects the backend for one signing call.
//
// Priority: the platform signer when it advertises the exact hash in use,
// then the curve-specialized implementation for standard parameters with no
// custom domain-separation context, then the generic fallback. Ed25519 keys
// can only use the platform signer when they carry their RFC 8032 seed;
// keys loaded as bare scalars take the generic path.
func (s *Selector) SigningBackend(curveName, hashName string, contextLen int, hasSeed bool) Backend {
	if s.caps.NativeEd25519 && hasSeed &&
		curveName == "Ed25519" && hashName == "sha512" && contextLen == 0 {
		return BackendNativeEd25519
	}
	if s.caps.AcceleratedSecp256k1 &&
		curveName == "secp256k1" && hashName == "sha256" && contextLen == 0 {
		return BackendAcceleratedSecp256k1
	}
	return BackendGeneric
}

// VerificationBackend selects the backend for one verification call. The
// rules mirror SigningBackend except that verification never needs the
// private seed.
func (s *Selector) VerificationBackend(curveName, hashName string, contextLen int) Backend {
	if s.caps.NativeEd25519 &&
		curveName == "Ed25519" && hashName == "sha512" && contextLen == 0 {
		return BackendNativeEd25519
	}
	if s.caps.AcceleratedSecp256k1 &&
		curveName == "secp256k1" && hashName == "sha256" && contextLen == 0 {
		return BackendAcceleratedSecp256k1
	}
	return BackendGeneric
}
