package crypto

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the sealed blob format stored on disk.
	envelopeVersion = 1
	saltBytes       = 16
)

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// ciphertext has been modified / corrupted.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted data")

// Params are the scrypt cost parameters recorded in every envelope.
type Params struct {
	N, R, P int
}

// DefaultParams are the interactive-login scrypt costs.
var DefaultParams = Params{N: 1 << 15, R: 8, P: 1}

// envelope is the on-disk JSON structure holding the ciphertext and KDF parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// Seal derives a key from passphrase and encrypts plaintext into a JSON envelope.
func Seal(passphrase string, plaintext []byte, p Params) ([]byte, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, p.N, p.R, p.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, plaintext, salt)

	return json.Marshal(envelope{
		V:      envelopeVersion,
		Salt:   salt,
		N:      p.N,
		R:      p.R,
		P:      p.P,
		Nonce:  nonce,
		Cipher: ct,
	})
}

// Open decrypts an envelope produced by Seal.
func Open(passphrase string, blob []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.V > envelopeVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", env.V)
	}

	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
