// Package keystore resolves per-user signing keys from credential storage.
package keystore

import (
	"crypto/rsa"
	"errors"
	"sync"

	"github.com/gatehouse-io/gatehouse/pkg/keypair"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// ErrNoCredential indicates the user has no stored credential row.
var ErrNoCredential = errors.New("no credential for user")

// KeyStore caches decrypted key pairs by user id. Key pairs never rotate,
// so cached entries stay valid for the life of the user.
type KeyStore struct {
	creds  store.CredentialsStore
	cipher keypair.SymmetricCipher

	mu    sync.RWMutex
	pairs map[string]*keypair.Pair
}

// New creates a KeyStore over a credentials store and the service data-key
// cipher.
func New(creds store.CredentialsStore, cipher keypair.SymmetricCipher) *KeyStore {
	return &KeyStore{
		creds:  creds,
		cipher: cipher,
		pairs:  map[string]*keypair.Pair{},
	}
}

// PairFor returns the user's key pair, decrypting the stored private half
// with the data key (AAD is the user id).
func (k *KeyStore) PairFor(userID string) (*keypair.Pair, error) {
	k.mu.RLock()
	pair, ok := k.pairs[userID]
	k.mu.RUnlock()
	if ok {
		return pair, nil
	}

	credential, err := k.creds.FetchCredential(userID)
	if err != nil {
		return nil, err
	}
	if credential == nil {
		return nil, ErrNoCredential
	}

	privatePEM, err := k.cipher.Decrypt([]byte(userID), credential.PrivateKey)
	if err != nil {
		return nil, err
	}

	pair, err = keypair.ParsePrivatePEM(privatePEM)
	if err != nil {
		return nil, err
	}

	k.mu.Lock()
	k.pairs[userID] = pair
	k.mu.Unlock()

	return pair, nil
}

// PublicKeyFor returns the user's public key for token verification.
func (k *KeyStore) PublicKeyFor(userID string) (*rsa.PublicKey, error) {
	pair, err := k.PairFor(userID)
	if err != nil {
		return nil, err
	}
	return pair.Public(), nil
}

// Forget drops a cached pair. Called when the owning user is deleted.
func (k *KeyStore) Forget(userID string) {
	k.mu.Lock()
	delete(k.pairs, userID)
	k.mu.Unlock()
}
