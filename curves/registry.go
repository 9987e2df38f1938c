package curves

import (
	"sort"
	"strings"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

// registry maps lowercased curve names and their aliases to the shared
// curve instances. It is populated once at init time and read-only after
// that, so lookups are safe for concurrent use.
var registry = map[string]Curve{}

func register(curve Curve, aliases ...string) {
	registry[strings.ToLower(curve.Name())] = curve
	for _, alias := range aliases {
		registry[strings.ToLower(alias)] = curve
	}
}

func init() {
	register(secp256k1)
	register(nistP256, "nistp256", "prime256v1", "secp256r1")
	register(nistP384, "nistp384", "secp384r1")
	register(nistP521, "nistp521", "secp521r1")
	register(ed25519)
	register(ed448)
}

// CurveByName performs a case-insensitive lookup in the registry of named
// curves.
func CurveByName(name string) (Curve, error) {
	curve, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, ecerrors.Errorf(ecerrors.ErrUnsupportedCurve,
			"unknown curve %q", name)
	}
	return curve, nil
}

// Names returns the canonical names of all registered curves, sorted.
func Names() []string {
	seen := map[string]bool{}
	names := make([]string, 0, len(registry))
	for _, curve := range registry {
		if !seen[curve.Name()] {
			seen[curve.Name()] = true
			names = append(names, curve.Name())
		}
	}
	sort.Strings(names)
	return names
}
