package encryption

import (
	"bytes"
	"errors"

	"skillboard/internal/skillboard"
)

// testHeader marks documents sealed by TestEncryptor.
var testHeader = []byte("SBENC\x00\x00\x00")

// TestEncryptor is a deterministic, reversible encryptor for tests. It
// prepends a fixed 8-byte header on Seal and strips it on Open, so sealed
// output differs from plaintext without any real cryptography.
type TestEncryptor struct {
	setupCalled bool
}

var _ skillboard.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.setupCalled = true
	return nil
}

func (e *TestEncryptor) Seal(plaintext []byte) ([]byte, error) {
	out := make([]byte, 0, len(testHeader)+len(plaintext))
	out = append(out, testHeader...)
	return append(out, plaintext...), nil
}

func (e *TestEncryptor) Unlock(passphrase string) (skillboard.Opener, error) {
	return TestOpener{}, nil
}

func (e *TestEncryptor) IsConfigured() bool {
	return true
}

// TestOpener strips the header added by TestEncryptor.
type TestOpener struct{}

func (TestOpener) Open(ciphertext []byte) ([]byte, error) {
	if !bytes.HasPrefix(ciphertext, testHeader) {
		return nil, errors.New("invalid test encryption header")
	}
	return append([]byte{}, ciphertext[len(testHeader):]...), nil
}
