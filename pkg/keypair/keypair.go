package keypair

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"

	"crypto/rand"
)

// Pair is a per-user RSA key pair used for token signing.
type Pair struct {
	privateKey  *rsa.PrivateKey
	fingerprint string // lazily computed from the public half
}

// Generate creates a new 2048-bit RSA key pair for token signing.
func Generate() (*Pair, error) {
	pkey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	return &Pair{privateKey: pkey}, nil
}

// FromPrivateDER restores a pair from a DER-encoded PKCS1 private key.
func FromPrivateDER(der []byte) (*Pair, error) {
	pkey, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, err
	}

	return &Pair{privateKey: pkey}, nil
}

// PrivateDER returns the DER-encoded private key.
func (p Pair) PrivateDER() []byte {
	return x509.MarshalPKCS1PrivateKey(p.privateKey)
}

// PrivatePEM returns the PEM-encoded private key.
func (p Pair) PrivatePEM() []byte {
	return pem.EncodeToMemory(
		&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(p.privateKey),
		},
	)
}

// PublicPEM returns the PKIX PEM-encoded public key.
func (p Pair) PublicPEM() []byte {
	bytes, err := x509.MarshalPKIXPublicKey(&p.privateKey.PublicKey)
	if err != nil {
		panic(err)
	}
	return pem.EncodeToMemory(
		&pem.Block{
			Type:  "PUBLIC KEY",
			Bytes: bytes,
		},
	)
}

// Private returns the private key for signing.
func (p Pair) Private() *rsa.PrivateKey {
	return p.privateKey
}

// Public returns the public key for verification.
func (p Pair) Public() *rsa.PublicKey {
	return &p.privateKey.PublicKey
}

// Fingerprint returns the hex SHA-256 of the PKIX public key DER.
func (p Pair) Fingerprint() string {
	if len(p.fingerprint) > 0 {
		return p.fingerprint
	}

	der, err := x509.MarshalPKIXPublicKey(&p.privateKey.PublicKey)
	if err != nil {
		return ""
	}

	hash := sha256.Sum256(der)
	p.fingerprint = hex.EncodeToString(hash[:])
	return p.fingerprint
}

// ParsePublicPEM parses a PKIX PEM-encoded RSA public key.
func ParsePublicPEM(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return rsaPub, nil
}

// ParsePrivatePEM parses a PKCS1 PEM-encoded RSA private key.
func ParsePrivatePEM(pemBytes []byte) (*Pair, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	return FromPrivateDER(block.Bytes)
}
