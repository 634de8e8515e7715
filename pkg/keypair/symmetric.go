package keypair

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

const ivSize = 12
const tagSize = aes.BlockSize
const versionMagic = byte('G')

// SymmetricCipher encrypts credential private keys at rest with the service
// data key. The AAD binds each ciphertext to its user id.
type SymmetricCipher interface {
	Decrypt(aad, packedText []byte) ([]byte, error)
	Encrypt(aad, plainText []byte) ([]byte, error)
}

type Symmetric struct {
	aesgcm cipher.AEAD
}

// NewSymmetric creates an AES-GCM cipher from a 256-bit data key.
func NewSymmetric(key []byte) (SymmetricCipher, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(c)
	if err != nil {
		return nil, err
	}

	return &Symmetric{aesgcm: aesgcm}, nil
}

func (s Symmetric) Decrypt(aad, packedText []byte) ([]byte, error) {
	if len(packedText) < aes.BlockSize {
		return nil, errors.New("ciphertext block size is too short")
	}

	cipherText, iv := unpackCipherData(packedText)

	return s.aesgcm.Open(nil, iv, cipherText, aad)
}

func (s Symmetric) Encrypt(aad, plainText []byte) ([]byte, error) {
	// Never use more than 2^32 random nonces with a given key because of
	// the risk of a repeat.
	nonce, err := RandomBytes(ivSize)
	if err != nil {
		return nil, err
	}

	cipherTextWithTag := s.aesgcm.Seal(nil, nonce, plainText, aad)
	return packCipherData(cipherTextWithTag, nonce), nil
}

// RandomBytes returns size cryptographically random bytes.
func RandomBytes(size int) ([]byte, error) {
	value := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, value); err != nil {
		return nil, err
	}

	return value, nil
}

// Packed layout: version byte, GCM tag, IV, ciphertext.
func packCipherData(cipherTextWithTag []byte, iv []byte) []byte {
	iv = iv[:ivSize]

	tagStartIndex := len(cipherTextWithTag) - tagSize
	tag := cipherTextWithTag[tagStartIndex:]
	cipherText := cipherTextWithTag[:tagStartIndex]

	data := make([]byte, 1+tagSize+ivSize+len(cipherText))

	data[0] = versionMagic
	index := 1

	copy(data[index:], tag)
	index += tagSize

	copy(data[index:], iv)
	index += ivSize

	copy(data[index:], cipherText)

	return data
}

func unpackCipherData(packedText []byte) ([]byte, []byte) {
	index := 1 // skip version byte

	nextIndex := index + tagSize
	tag := packedText[index:nextIndex]
	index = nextIndex

	nextIndex = index + ivSize
	iv := packedText[index:nextIndex]
	index = nextIndex

	cipherText := append(packedText[index:], tag...)

	return cipherText, iv
}
