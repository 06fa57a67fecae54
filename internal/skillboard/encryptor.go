package skillboard

// Encryptor seals stored documents at rest.
// Sealing needs only the public half of the key, so writes never prompt.
// Opening needs the private key, which is itself protected by a passphrase and
// unlocked once per process with Unlock.
type Encryptor interface {
	// Setup generates and stores a fresh key pair, protecting the private key
	// with passphrase. Called from `skillboard config init --encrypt`.
	Setup(passphrase string) error

	// Seal encrypts plaintext with the public key.
	Seal(plaintext []byte) ([]byte, error)

	// Unlock decrypts the private key and returns an Opener for the session.
	// A wrong passphrase is an error.
	Unlock(passphrase string) (Opener, error)

	// IsConfigured reports whether the key files exist.
	IsConfigured() bool
}

// Opener decrypts documents produced by Encryptor.Seal.
// The unlocked private key only ever lives in memory.
type Opener interface {
	Open(ciphertext []byte) ([]byte, error)
}
