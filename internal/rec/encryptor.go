package rec

import "io"

// Encryptor encrypts recordings on their way into the archive.
// Encryption uses the public key only, so no passphrase is required at
// record time. Key generation happens once, during `cr config keygen`.
type Encryptor interface {
	// Setup performs one-time key generation: stores the public key in
	// plaintext and encrypts the private key with the provided passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// IsConfigured returns true if both key files exist at configured paths.
	IsConfigured() bool
}
