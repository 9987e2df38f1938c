package sigserialization

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/pkg/errors"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

var testOrder = hexToBigTest("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

func hexToBigTest(s string) *big.Int {
	value, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex constant in test: " + s)
	}
	return value
}

func testSignature() *Signature {
	return &Signature{
		R: hexToBigTest("4e45e16932b8af514961a1d3a1a25fdf3f4f7732e9d624c6c61548ab5fb8cd41"),
		S: hexToBigTest("181522ec8eca07de4860a4acdd12909d831cc56cbbac4622082221a8768d1d09"),
	}
}

func TestRoundTripAllFormats(t *testing.T) {
	const width = 32
	bounds := OrderBounds(testOrder)
	for _, format := range []Format{FormatDER, FormatSSH2, FormatRaw} {
		sig := testSignature()
		serialized, err := Serialize(sig, format, width)
		if err != nil {
			t.Fatalf("Serialize(%s) unexpectedly failed: %+v", format, err)
		}
		deserialized, err := Deserialize(serialized, format, width, bounds)
		if err != nil {
			t.Fatalf("Deserialize(%s) unexpectedly failed: %+v", format, err)
		}
		if !deserialized.IsEqual(sig) {
			t.Errorf("%s: signature did not survive a round trip", format)
		}
	}
}

func TestDERKnownEncoding(t *testing.T) {
	sig := &Signature{R: big.NewInt(1), S: big.NewInt(1)}
	serialized, err := Serialize(sig, FormatDER, 32)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}
	expected, _ := hex.DecodeString("3006020101020101")
	if !bytes.Equal(serialized, expected) {
		t.Fatalf("DER encoding of (1, 1) is %x, want %x", serialized, expected)
	}
}

func TestDERHighBitPadding(t *testing.T) {
	// An r whose top bit is set must gain a leading zero byte to stay a
	// positive DER integer.
	sig := &Signature{
		R: hexToBigTest("8000000000000000000000000000000000000000000000000000000000000001"),
		S: big.NewInt(1),
	}
	serialized, err := Serialize(sig, FormatDER, 32)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}
	// SEQUENCE header, then INTEGER of 33 bytes starting with 0x00 0x80.
	if serialized[2] != 0x02 || serialized[3] != 0x21 || serialized[4] != 0x00 || serialized[5] != 0x80 {
		t.Fatalf("high-bit r was not canonically padded: %x", serialized)
	}

	deserialized, err := Deserialize(serialized, FormatDER, 32, OrderBounds(testOrder))
	if err != nil {
		t.Fatalf("Deserialize unexpectedly failed: %+v", err)
	}
	if !deserialized.IsEqual(sig) {
		t.Fatal("padded signature did not survive a round trip")
	}
}

func TestDERRejectsMalformed(t *testing.T) {
	valid, err := Serialize(testSignature(), FormatDER, 32)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", valid[:len(valid)-1]},
		{"trailing byte", append(append([]byte{}, valid...), 0x00)},
		{"wrong outer tag", append([]byte{0x31}, valid[1:]...)},
		{"negative integer", []byte{0x30, 0x06, 0x02, 0x01, 0x81, 0x02, 0x01, 0x01}},
		{"over-padded integer", []byte{0x30, 0x07, 0x02, 0x02, 0x00, 0x01, 0x02, 0x01, 0x01}},
	}
	for _, test := range tests {
		_, err := Deserialize(test.data, FormatDER, 32, OrderBounds(testOrder))
		if !errors.Is(err, ecerrors.ErrInvalidSignatureFormat) {
			t.Errorf("%s: got %+v, want ErrInvalidSignatureFormat", test.name, err)
		}
	}
}

func TestSSH2RejectsMalformed(t *testing.T) {
	valid, err := Serialize(testSignature(), FormatSSH2, 32)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated header", valid[:3]},
		{"truncated body", valid[:len(valid)-1]},
		{"trailing byte", append(append([]byte{}, valid...), 0x00)},
	}
	for _, test := range tests {
		_, err := Deserialize(test.data, FormatSSH2, 32, OrderBounds(testOrder))
		if !errors.Is(err, ecerrors.ErrInvalidSignatureFormat) {
			t.Errorf("%s: got %+v, want ErrInvalidSignatureFormat", test.name, err)
		}
	}
}

func TestRawRejectsWrongLength(t *testing.T) {
	valid, err := Serialize(testSignature(), FormatRaw, 32)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}
	if len(valid) != 64 {
		t.Fatalf("raw encoding is %d bytes, want 64", len(valid))
	}

	for _, data := range [][]byte{valid[:63], append(append([]byte{}, valid...), 0x00)} {
		_, err := Deserialize(data, FormatRaw, 32, OrderBounds(testOrder))
		if !errors.Is(err, ecerrors.ErrInvalidSignatureFormat) {
			t.Errorf("raw length %d: got %+v, want ErrInvalidSignatureFormat", len(data), err)
		}
	}
}

func TestComponentBounds(t *testing.T) {
	zero := &Signature{R: big.NewInt(0), S: big.NewInt(1)}
	atOrder := &Signature{R: big.NewInt(1), S: new(big.Int).Set(testOrder)}

	for _, sig := range []*Signature{zero, atOrder} {
		serialized, err := Serialize(sig, FormatSSH2, 32)
		if err != nil {
			t.Fatalf("Serialize unexpectedly failed: %+v", err)
		}
		_, err = Deserialize(serialized, FormatSSH2, 32, OrderBounds(testOrder))
		if !errors.Is(err, ecerrors.ErrInvalidSignatureFormat) {
			t.Errorf("out-of-range component (r=%s, s=%s): got %+v, want ErrInvalidSignatureFormat",
				sig.R, sig.S, err)
		}
	}
}

func TestPointAndOrderBounds(t *testing.T) {
	// An encoded-point r may exceed the order but not the encoding width.
	bounds := PointAndOrderBounds(testOrder, 32)
	rAboveOrder := &Signature{
		R: new(big.Int).Add(testOrder, big.NewInt(1)),
		S: big.NewInt(1),
	}
	serialized, err := Serialize(rAboveOrder, FormatRaw, 32)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}
	if _, err := Deserialize(serialized, FormatRaw, 32, bounds); err != nil {
		t.Errorf("r above the order should pass point bounds, got %+v", err)
	}

	sAboveOrder := &Signature{R: big.NewInt(1), S: new(big.Int).Add(testOrder, big.NewInt(1))}
	serialized, err = Serialize(sAboveOrder, FormatRaw, 32)
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %+v", err)
	}
	if _, err := Deserialize(serialized, FormatRaw, 32, bounds); !errors.Is(err, ecerrors.ErrInvalidSignatureFormat) {
		t.Errorf("s above the order: got %+v, want ErrInvalidSignatureFormat", err)
	}
}

func TestFormatByName(t *testing.T) {
	for name, expected := range map[string]Format{
		"der":  FormatDER,
		"ssh2": FormatSSH2,
		"raw":  FormatRaw,
	} {
		format, err := FormatByName(name)
		if err != nil {
			t.Errorf("FormatByName(%s) unexpectedly failed: %+v", name, err)
			continue
		}
		if format != expected {
			t.Errorf("FormatByName(%s) = %s, want %s", name, format, expected)
		}
	}

	if _, err := FormatByName("asn1"); !errors.Is(err, ecerrors.ErrInvalidSignatureFormat) {
		t.Errorf("FormatByName for an unknown name returned %+v, want ErrInvalidSignatureFormat", err)
	}
}

func TestSerializeRejectsOversizedRaw(t *testing.T) {
	oversized := &Signature{
		R: new(big.Int).Lsh(big.NewInt(1), 520),
		S: big.NewInt(1),
	}
	if _, err := Serialize(oversized, FormatRaw, 32); err == nil {
		t.Fatal("Serialize accepted a component wider than the raw field width")
	}
}
