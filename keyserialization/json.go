package keyserialization

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"runtime"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/kaspanet/go-ecsig/ecerrors"
)

const saltSize = 16

type encryptedSecretJSON struct {
	Cipher string `json:"cipher"`
	Salt   string `json:"salt"`
}

type keyFileJSON struct {
	CurveName       string               `json:"curveName"`
	PublicPoint     string               `json:"publicPoint,omitempty"`
	PrivateScalar   string               `json:"privateScalar,omitempty"`
	Seed            string               `json:"seed,omitempty"`
	EncryptedSecret *encryptedSecretJSON `json:"encryptedSecret,omitempty"`
}

func serializeJSON(container *Container, password []byte) ([]byte, error) {
	fileJSON := &keyFileJSON{
		CurveName:   container.CurveName,
		PublicPoint: hex.EncodeToString(container.PublicPoint),
	}

	if container.IsPrivate() {
		if len(password) > 0 {
			encrypted, err := encryptSecret(secretBlob(container), password)
			if err != nil {
				return nil, err
			}
			fileJSON.EncryptedSecret = encrypted
		} else {
			fileJSON.PrivateScalar = hex.EncodeToString(container.PrivateScalar)
			fileJSON.Seed = hex.EncodeToString(container.Seed)
		}
	}

	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	if err := encoder.Encode(fileJSON); err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"encoding key file")
	}
	return buffer.Bytes(), nil
}

func deserializeJSON(data, password []byte) (*Container, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	fileJSON := &keyFileJSON{}
	if err := decoder.Decode(fileJSON); err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"decoding key file")
	}
	if fileJSON.CurveName == "" {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"key file is missing its curve name")
	}

	container := &Container{CurveName: fileJSON.CurveName}
	var err error
	container.PublicPoint, err = decodeHexField("publicPoint", fileJSON.PublicPoint)
	if err != nil {
		return nil, err
	}

	if fileJSON.EncryptedSecret != nil {
		if fileJSON.PrivateScalar != "" {
			return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
				"key file carries both an encrypted and a plaintext secret")
		}
		blob, err := decryptSecret(fileJSON.EncryptedSecret, password)
		if err != nil {
			return nil, err
		}
		container.PrivateScalar, container.Seed = splitSecretBlob(blob)
		return container, nil
	}

	container.PrivateScalar, err = decodeHexField("privateScalar", fileJSON.PrivateScalar)
	if err != nil {
		return nil, err
	}
	container.Seed, err = decodeHexField("seed", fileJSON.Seed)
	if err != nil {
		return nil, err
	}
	return container, nil
}

func decodeHexField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	decoded, err := hex.DecodeString(value)
	if err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrInvalidKeyMaterial, err,
			"decoding the %s field", name)
	}
	return decoded, nil
}

// secretBlob packs the scalar and the optional seed into one plaintext so
// a single AEAD invocation protects both. The blob is length-prefixed so
// splitting it back never depends on curve knowledge.
func secretBlob(container *Container) []byte {
	blob := make([]byte, 0, 1+len(container.PrivateScalar)+len(container.Seed))
	blob = append(blob, byte(len(container.PrivateScalar)))
	blob = append(blob, container.PrivateScalar...)
	return append(blob, container.Seed...)
}

func splitSecretBlob(blob []byte) (privateScalar, seed []byte) {
	if len(blob) == 0 {
		return nil, nil
	}
	scalarLength := int(blob[0])
	if scalarLength > len(blob)-1 {
		return nil, nil
	}
	privateScalar = blob[1 : 1+scalarLength]
	if len(blob) > 1+scalarLength {
		seed = blob[1+scalarLength:]
	}
	return privateScalar, seed
}

func keyAEAD(password, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(password, salt, 1, 64*1024, uint8(runtime.NumCPU()), 32)
	return chacha20poly1305.NewX(key)
}

func encryptSecret(plaintext, password []byte) (*encryptedSecretJSON, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	aead, err := keyAEAD(password, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ciphertext := aead.Seal(nonce, nonce, plaintext, nil)

	return &encryptedSecretJSON{
		Cipher: hex.EncodeToString(ciphertext),
		Salt:   hex.EncodeToString(salt),
	}, nil
}

func decryptSecret(encrypted *encryptedSecretJSON, password []byte) ([]byte, error) {
	ciphertext, err := decodeHexField("cipher", encrypted.Cipher)
	if err != nil {
		return nil, err
	}
	salt, err := decodeHexField("salt", encrypted.Salt)
	if err != nil {
		return nil, err
	}

	aead, err := keyAEAD(password, salt)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, ecerrors.Errorf(ecerrors.ErrInvalidKeyMaterial,
			"encrypted secret is shorter than the cipher nonce")
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ecerrors.Wrapf(ecerrors.ErrDecryption, err,
			"opening the encrypted secret")
	}
	return plaintext, nil
}
