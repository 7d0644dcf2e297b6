package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// APIKeyPrefix marks service keys so they can be told apart from JWTs in headers and config.
const APIKeyPrefix = "coop_sk_"

// bcrypt only looks at the first 72 bytes of its input.
const maxAPIKeyLen = 72

// ServiceAPIKey is a freshly minted key together with the hash to add to SERVICE_API_KEY_HASHES.
type ServiceAPIKey struct {
	Key  string
	Hash string
}

// NewServiceAPIKey draws entropyBytes random bytes, hex encodes them behind APIKeyPrefix
// and hashes the result. The plaintext key is only ever available here.
func NewServiceAPIKey(entropyBytes int) (ServiceAPIKey, error) {
	if entropyBytes <= 0 || len(APIKeyPrefix)+2*entropyBytes > maxAPIKeyLen {
		return ServiceAPIKey{}, fmt.Errorf("%d bytes of entropy do not fit a %d byte service key", entropyBytes, maxAPIKeyLen)
	}
	b := make([]byte, entropyBytes)
	if _, err := rand.Read(b); err != nil {
		return ServiceAPIKey{}, fmt.Errorf("failed to read random bytes: %w", err)
	}
	key := APIKeyPrefix + hex.EncodeToString(b)
	hash, err := HashAPIKey(key)
	if err != nil {
		return ServiceAPIKey{}, fmt.Errorf("hashing key: %w", err)
	}
	return ServiceAPIKey{Key: key, Hash: hash}, nil
}
