// Package sealer encrypts vote payloads and signs them.
//
// Payloads are CBOR encoded and sealed with XChaCha20-Poly1305 in the format
//
//	[version: 1 byte] [nonce: 24 bytes] [ciphertext+tag]
//
// The version byte and the vote id are authenticated as additional data, so
// a sealed payload cannot be moved to another vote. Signatures are keyed
// blake3 over the same canonical encoding.
package sealer

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"

	"quorum/internal/ballot/models"
	id "quorum/pkg/domain"
	"quorum/pkg/platform/codec"
	"quorum/pkg/platform/digest"
)

// KeySize is the length of both the encryption and the signing key.
const KeySize = 32

const version byte = 0x01

const overhead = 1 + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

var ErrMalformed = errors.New("sealed payload is malformed")

type Sealer struct {
	aead    cipher.AEAD
	signKey []byte
}

func New(encryptionKey, signingKey []byte) (*Sealer, error) {
	if len(encryptionKey) != KeySize || len(signingKey) != KeySize {
		return nil, fmt.Errorf("sealer keys must be %d bytes", KeySize)
	}
	aead, err := chacha20poly1305.NewX(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	return &Sealer{aead: aead, signKey: append([]byte(nil), signingKey...)}, nil
}

func (s *Sealer) Seal(voteID id.VoteID, p models.Payload) ([]byte, error) {
	plaintext, err := codec.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	out := make([]byte, 1+chacha20poly1305.NonceSizeX, overhead+len(plaintext))
	out[0] = version
	if _, err := rand.Read(out[1:]); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	nonce := out[1 : 1+chacha20poly1305.NonceSizeX]
	return s.aead.Seal(out, nonce, plaintext, aad(version, voteID)), nil
}

// Open authenticates and decrypts a payload sealed for voteID.
func (s *Sealer) Open(voteID id.VoteID, sealed []byte) (models.Payload, error) {
	var p models.Payload
	if len(sealed) < overhead || sealed[0] != version {
		return p, ErrMalformed
	}
	nonce := sealed[1 : 1+chacha20poly1305.NonceSizeX]
	plaintext, err := s.aead.Open(nil, nonce, sealed[1+chacha20poly1305.NonceSizeX:], aad(sealed[0], voteID))
	if err != nil {
		return p, fmt.Errorf("open payload: %w", err)
	}
	if err := codec.Unmarshal(plaintext, &p); err != nil {
		return p, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}

// Sign returns the keyed blake3 digest of the canonical payload encoding.
func (s *Sealer) Sign(p models.Payload) ([]byte, error) {
	data, err := codec.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return digest.Keyed(s.signKey, data)
}

// VerifySignature recomputes the signature over p in constant time.
func (s *Sealer) VerifySignature(p models.Payload, signature []byte) bool {
	expected, err := s.Sign(p)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(expected, signature) == 1
}

func aad(v byte, voteID id.VoteID) []byte {
	u := uuid.UUID(voteID)
	return append([]byte{v}, u[:]...)
}
