package storage

import (
	"errors"
	"fmt"

	"skillboard/internal/skillboard"
)

// ErrLocked is returned when an encrypted document is read before the
// private key has been unlocked.
var ErrLocked = errors.New("storage is locked: passphrase required")

// EncryptedStorage seals every document before handing it to the inner
// backend and opens it again on the way back. Writes need only the public
// key; reads need an unlocked Opener.
type EncryptedStorage struct {
	inner  skillboard.Storage
	sealer skillboard.Encryptor
	opener skillboard.Opener
}

var _ skillboard.Storage = (*EncryptedStorage)(nil)

// NewEncryptedStorage wraps inner. opener may be nil, in which case the
// storage is write-only until Unlock succeeds.
func NewEncryptedStorage(inner skillboard.Storage, sealer skillboard.Encryptor, opener skillboard.Opener) *EncryptedStorage {
	return &EncryptedStorage{inner: inner, sealer: sealer, opener: opener}
}

// Unlock decrypts the private key and enables reads.
func (e *EncryptedStorage) Unlock(passphrase string) error {
	opener, err := e.sealer.Unlock(passphrase)
	if err != nil {
		return err
	}
	e.opener = opener
	return nil
}

func (e *EncryptedStorage) Read(key string) ([]byte, bool, error) {
	sealed, ok, err := e.inner.Read(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	if e.opener == nil {
		return nil, false, ErrLocked
	}

	plaintext, err := e.opener.Open(sealed)
	if err != nil {
		return nil, false, fmt.Errorf("decrypting %s: %w", key, err)
	}
	return plaintext, true, nil
}

func (e *EncryptedStorage) Write(key string, data []byte) error {
	sealed, err := e.sealer.Seal(data)
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", key, err)
	}
	return e.inner.Write(key, sealed)
}

// ValidateSetup checks the inner backend and that keys exist.
func (e *EncryptedStorage) ValidateSetup() error {
	if !e.sealer.IsConfigured() {
		return errors.New("encryption keys not found (run `skillboard config init --encrypt`)")
	}
	return e.inner.ValidateSetup()
}

func (e *EncryptedStorage) Close() error {
	return e.inner.Close()
}
