package ecsig

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"

	"github.com/kaspanet/go-ecsig/ecerrors"
	"github.com/kaspanet/go-ecsig/keyserialization"
)

func TestPrivateKeyRoundTripAllFormatsAndCurves(t *testing.T) {
	for _, curveName := range allCurveNames {
		privateKey, err := GeneratePrivateKey(curveName)
		if err != nil {
			t.Fatalf("%s: GeneratePrivateKey unexpectedly failed: %+v", curveName, err)
		}

		for _, format := range []keyserialization.Format{
			keyserialization.FormatJSON,
			keyserialization.FormatPEM,
			keyserialization.FormatBase58,
		} {
			serialized, err := privateKey.Serialize(format, nil)
			if err != nil {
				t.Fatalf("%s/%s: Serialize unexpectedly failed: %+v", curveName, format, err)
			}

			loaded, err := Load(serialized, nil)
			if err != nil {
				t.Fatalf("%s/%s: Load unexpectedly failed: %+v", curveName, format, err)
			}
			loadedPrivate, ok := loaded.(*PrivateKey)
			if !ok {
				t.Fatalf("%s/%s: Load returned %T, want *PrivateKey", curveName, format, loaded)
			}
			if loadedPrivate.Scalar().Cmp(privateKey.Scalar()) != 0 {
				t.Errorf("%s/%s: the scalar did not survive a round trip", curveName, format)
			}
			if loadedPrivate.CurveName() != curveName &&
				loadedPrivate.CurveName() != privateKey.CurveName() {
				t.Errorf("%s/%s: curve name came back as %s", curveName, format,
					loadedPrivate.CurveName())
			}

			// A loaded key must produce verifiable signatures.
			message := []byte("round tripped key")
			signature, err := loadedPrivate.Sign(message)
			if err != nil {
				t.Fatalf("%s/%s: signing with the loaded key failed: %+v", curveName, format, err)
			}
			valid, err := privateKey.PublicKey().Verify(message, signature)
			if err != nil || !valid {
				t.Errorf("%s/%s: the original public key rejected the loaded key's signature (valid=%t, err=%+v)",
					curveName, format, valid, err)
			}
		}
	}
}

func TestSeededKeySurvivesJSONRoundTrip(t *testing.T) {
	privateKey, err := GeneratePrivateKey("Ed25519")
	if err != nil {
		t.Fatalf("GeneratePrivateKey unexpectedly failed: %+v", err)
	}
	if privateKey.seed == nil {
		t.Fatal("generated Ed25519 keys should retain their seed")
	}

	serialized, err := privateKey.Serialize(keyserialization.FormatJSON, nil)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}
	loaded, err := Load(serialized, nil)
	if err != nil {
		t.Fatalf("Load unexpectedly failed: %+v", err)
	}
	loadedPrivate := loaded.(*PrivateKey)
	if !bytes.Equal(loadedPrivate.seed, privateKey.seed) {
		t.Fatal("the seed did not survive a JSON round trip")
	}

	// PEM drops the seed; the key still works through the generic
	// backend.
	serialized, err = privateKey.Serialize(keyserialization.FormatPEM, nil)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}
	loaded, err = Load(serialized, nil)
	if err != nil {
		t.Fatalf("Load unexpectedly failed: %+v", err)
	}
	if loaded.(*PrivateKey).seed != nil {
		t.Fatal("PEM should not round-trip the seed")
	}
}

func TestPublicKeyAndParametersRoundTrip(t *testing.T) {
	privateKey, err := GeneratePrivateKey("P-256")
	if err != nil {
		t.Fatalf("GeneratePrivateKey unexpectedly failed: %+v", err)
	}

	serializedPublic, err := privateKey.PublicKey().Serialize(keyserialization.FormatPEM)
	if err != nil {
		t.Fatalf("serializing the public key failed: %+v", err)
	}
	loaded, err := Load(serializedPublic, nil)
	if err != nil {
		t.Fatalf("loading the public key failed: %+v", err)
	}
	loadedPublic, ok := loaded.(*PublicKey)
	if !ok {
		t.Fatalf("Load returned %T, want *PublicKey", loaded)
	}
	if !loadedPublic.Point().IsEqual(privateKey.PublicKey().Point()) {
		t.Error("the public point did not survive a round trip")
	}

	serializedParams, err := privateKey.Parameters().Serialize(keyserialization.FormatPEM)
	if err != nil {
		t.Fatalf("serializing the parameters failed: %+v", err)
	}
	loaded, err = Load(serializedParams, nil)
	if err != nil {
		t.Fatalf("loading the parameters failed: %+v", err)
	}
	loadedParams, ok := loaded.(*Parameters)
	if !ok {
		t.Fatalf("Load returned %T, want *Parameters", loaded)
	}
	if loadedParams.CurveName() != "P-256" {
		t.Errorf("parameters came back on curve %s, want P-256", loadedParams.CurveName())
	}
}

func TestLoadEncryptedKeyFile(t *testing.T) {
	privateKey, err := GeneratePrivateKey("secp256k1")
	if err != nil {
		t.Fatalf("GeneratePrivateKey unexpectedly failed: %+v", err)
	}
	password := []byte("hunter2, but longer")

	serialized, err := privateKey.Serialize(keyserialization.FormatJSON, password)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}

	loaded, err := Load(serialized, password)
	if err != nil {
		t.Fatalf("Load with the right password failed: %+v", err)
	}
	if loaded.(*PrivateKey).Scalar().Cmp(privateKey.Scalar()) != 0 {
		t.Fatal("the scalar did not survive an encrypted round trip")
	}

	_, err = Load(serialized, []byte("*******"))
	if !errors.Is(err, ecerrors.ErrDecryption) {
		t.Fatalf("Load with the wrong password returned %+v, want ErrDecryption", err)
	}
}

func TestLoadRejectsOutOfRangeScalar(t *testing.T) {
	curve, err := ParametersByCurveName("secp256k1")
	if err != nil {
		t.Fatalf("ParametersByCurveName unexpectedly failed: %+v", err)
	}

	order := curve.Curve().Order()
	for _, scalar := range []*big.Int{big.NewInt(0), order, new(big.Int).Add(order, big.NewInt(7))} {
		payload := append([]byte{1}, scalar.FillBytes(make([]byte, 32))...)
		encoded := base58.CheckEncode(payload, 0x60)

		_, err := Load([]byte(encoded), nil)
		if !errors.Is(err, ecerrors.ErrInvalidKeyMaterial) {
			t.Errorf("scalar %s: Load returned %+v, want ErrInvalidKeyMaterial", scalar, err)
		}
	}
}

func TestLoadRejectsMismatchedPublicPoint(t *testing.T) {
	privateKey, err := GeneratePrivateKey("P-256")
	if err != nil {
		t.Fatalf("GeneratePrivateKey unexpectedly failed: %+v", err)
	}
	otherKey, err := GeneratePrivateKey("P-256")
	if err != nil {
		t.Fatalf("GeneratePrivateKey unexpectedly failed: %+v", err)
	}

	serialized, err := keyserialization.Serialize(&keyserialization.Container{
		CurveName:     "P-256",
		PrivateScalar: privateKey.SerializeScalar(),
		PublicPoint:   otherKey.PublicKey().SerializePoint(),
	}, keyserialization.FormatPEM, nil)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}

	_, err = Load(serialized, nil)
	if !errors.Is(err, ecerrors.ErrInvalidKeyMaterial) {
		t.Fatalf("a mismatched public point returned %+v, want ErrInvalidKeyMaterial", err)
	}
}

func TestLoadRejectsUnknownCurve(t *testing.T) {
	serialized, err := keyserialization.Serialize(&keyserialization.Container{
		CurveName: "secp256k1",
	}, keyserialization.FormatJSON, nil)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}
	tampered := bytes.Replace(serialized, []byte("secp256k1"), []byte("secp111r1"), 1)

	_, err = Load(tampered, nil)
	if !errors.Is(err, ecerrors.ErrUnsupportedCurve) {
		t.Fatalf("an unknown curve returned %+v, want ErrUnsupportedCurve", err)
	}
}

func TestLoadAsWithExplicitFormat(t *testing.T) {
	privateKey, err := GeneratePrivateKey("secp256k1")
	if err != nil {
		t.Fatalf("GeneratePrivateKey unexpectedly failed: %+v", err)
	}
	serialized, err := privateKey.Serialize(keyserialization.FormatBase58, nil)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}

	loaded, err := LoadAs(serialized, keyserialization.FormatBase58, nil)
	if err != nil {
		t.Fatalf("LoadAs unexpectedly failed: %+v", err)
	}
	loadedPrivate, ok := loaded.(*PrivateKey)
	if !ok {
		t.Fatalf("LoadAs returned %T, want *PrivateKey", loaded)
	}
	if loadedPrivate.Scalar().Cmp(privateKey.Scalar()) != 0 {
		t.Errorf("the scalar did not survive a round trip")
	}

	// Forcing the wrong format must not silently fall back to detection.
	_, err = LoadAs(serialized, keyserialization.FormatJSON, nil)
	if err == nil {
		t.Errorf("LoadAs decoded base58 data as JSON")
	}
}

func TestLoadRejectsMalformedSeed(t *testing.T) {
	edwardsKey, err := GeneratePrivateKey("Ed25519")
	if err != nil {
		t.Fatalf("GeneratePrivateKey unexpectedly failed: %+v", err)
	}
	weierstrassKey, err := GeneratePrivateKey("secp256k1")
	if err != nil {
		t.Fatalf("GeneratePrivateKey unexpectedly failed: %+v", err)
	}

	containers := map[string]*keyserialization.Container{
		"truncated seed": {
			CurveName:     "Ed25519",
			PrivateScalar: edwardsKey.SerializeScalar(),
			Seed:          make([]byte, 16),
		},
		"seed on a curve without seeds": {
			CurveName:     "secp256k1",
			PrivateScalar: weierstrassKey.SerializeScalar(),
			Seed:          make([]byte, 32),
		},
	}
	for name, container := range containers {
		serialized, err := keyserialization.Serialize(container, keyserialization.FormatJSON, nil)
		if err != nil {
			t.Fatalf("%s: Serialize unexpectedly failed: %+v", name, err)
		}
		_, err = Load(serialized, nil)
		if !errors.Is(err, ecerrors.ErrInvalidKeyMaterial) {
			t.Errorf("%s: Load returned %+v, want ErrInvalidKeyMaterial", name, err)
		}
	}
}
