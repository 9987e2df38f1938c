package engine

import (
	"sync"
	"testing"
)

func TestProbeIsSingleFlight(t *testing.T) {
	const goroutines = 16
	results := make([]*Capabilities, goroutines)

	wg := sync.WaitGroup{}
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(index int) {
			defer wg.Done()
			results[index] = Probe()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent Probe calls returned different capability instances")
		}
	}
}

func TestProbeFindsExpectedBackends(t *testing.T) {
	caps := Probe()
	// Both specialized implementations are compiled in, so a healthy test
	// environment must report them.
	if !caps.NativeEd25519 {
		t.Error("probe did not detect the platform Ed25519 implementation")
	}
	if !caps.AcceleratedSecp256k1 {
		t.Error("probe did not detect the specialized secp256k1 implementation")
	}
}

func TestSigningBackendSelection(t *testing.T) {
	selector := NewSelectorWithCapabilities(&Capabilities{
		NativeEd25519:        true,
		AcceleratedSecp256k1: true,
	})

	tests := []struct {
		name       string
		curveName  string
		hashName   string
		contextLen int
		hasSeed    bool
		expected   Backend
	}{
		{"seeded Ed25519", "Ed25519", "sha512", 0, true, BackendNativeEd25519},
		{"scalar-only Ed25519", "Ed25519", "sha512", 0, false, BackendGeneric},
		{"Ed25519 with context", "Ed25519", "sha512", 5, true, BackendGeneric},
		{"secp256k1 sha256", "secp256k1", "sha256", 0, false, BackendAcceleratedSecp256k1},
		{"secp256k1 sha512", "secp256k1", "sha512", 0, false, BackendGeneric},
		{"P-256", "P-256", "sha256", 0, false, BackendGeneric},
		{"Ed448", "Ed448", "shake256-114", 0, false, BackendGeneric},
	}
	for _, test := range tests {
		backend := selector.SigningBackend(test.curveName, test.hashName, test.contextLen, test.hasSeed)
		if backend != test.expected {
			t.Errorf("%s: selected %s, want %s", test.name, backend, test.expected)
		}
	}
}

func TestVerificationBackendSelection(t *testing.T) {
	selector := NewSelectorWithCapabilities(&Capabilities{
		NativeEd25519:        true,
		AcceleratedSecp256k1: true,
	})

	// Verification does not need the seed, so scalar-only Ed25519 keys
	// still verify natively.
	if backend := selector.VerificationBackend("Ed25519", "sha512", 0); backend != BackendNativeEd25519 {
		t.Errorf("Ed25519 verification selected %s, want %s", backend, BackendNativeEd25519)
	}
	if backend := selector.VerificationBackend("Ed25519", "sha512", 3); backend != BackendGeneric {
		t.Errorf("Ed25519 verification with context selected %s, want %s", backend, BackendGeneric)
	}
	if backend := selector.VerificationBackend("secp256k1", "sha256", 0); backend != BackendAcceleratedSecp256k1 {
		t.Errorf("secp256k1 verification selected %s, want %s", backend, BackendAcceleratedSecp256k1)
	}
}

func TestDisabledCapabilitiesFallBack(t *testing.T) {
	selector := NewSelectorWithCapabilities(&Capabilities{})

	if backend := selector.SigningBackend("Ed25519", "sha512", 0, true); backend != BackendGeneric {
		t.Errorf("selected %s with all capabilities disabled, want %s", backend, BackendGeneric)
	}
	if backend := selector.VerificationBackend("secp256k1", "sha256", 0); backend != BackendGeneric {
		t.Errorf("selected %s with all capabilities disabled, want %s", backend, BackendGeneric)
	}
}

func TestNativeEd25519RoundTrip(t *testing.T) {
	seed := make([]byte, 32)
	seed[0] = 0x42
	publicKey, err := SeedToPublicKey(seed)
	if err != nil {
		t.Fatalf("SeedToPublicKey unexpectedly failed: %+v", err)
	}

	message := []byte("native backend round trip")
	sig, err := SignNativeEd25519(seed, message)
	if err != nil {
		t.Fatalf("SignNativeEd25519 unexpectedly failed: %+v", err)
	}
	if !VerifyNativeEd25519(publicKey, message, sig) {
		t.Fatal("native Ed25519 rejected its own signature")
	}
	if VerifyNativeEd25519(publicKey, []byte("a different message"), sig) {
		t.Fatal("native Ed25519 accepted a signature for the wrong message")
	}
}

func TestAcceleratedSecp256k1RoundTrip(t *testing.T) {
	scalar := make([]byte, 32)
	scalar[31] = 0x07

	digest := make([]byte, 32)
	digest[0] = 0xab

	sig, err := SignAcceleratedSecp256k1(scalar, digest)
	if err != nil {
		t.Fatalf("SignAcceleratedSecp256k1 unexpectedly failed: %+v", err)
	}
	if sig.R.Sign() <= 0 || sig.S.Sign() <= 0 {
		t.Fatal("accelerated secp256k1 produced a non-positive component")
	}
}
