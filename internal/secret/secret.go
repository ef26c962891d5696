// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package secret seals API keys before they are written to the app state
// backend, using NaCl secretbox with a key derived from APP_SECRET.
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

// sealedPrefix marks a value produced by Seal.
const sealedPrefix = "sealed:"

const nonceSize = 24

// ErrCorrupt is returned by Open when a sealed value cannot be decrypted.
var ErrCorrupt = errors.New("sealed value is corrupt or was sealed with another secret")

// Sealer encrypts and decrypts short strings.
type Sealer struct {
	key [32]byte
}

// NewSealer derives the box key from the application secret.
func NewSealer(appSecret string) (*Sealer, error) {
	if appSecret == "" {
		return nil, errors.New("secret: empty application secret")
	}
	s := &Sealer{}
	r := hkdf.New(sha256.New, []byte(appSecret), nil, []byte("marketdash api keys"))
	if _, err := io.ReadFull(r, s.key[:]); err != nil {
		return nil, fmt.Errorf("secret: derive key: %w", err)
	}
	return s, nil
}

// Seal encrypts plaintext. The empty string is returned unchanged so that
// "no key" stays recognisable.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("secret: nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return sealedPrefix + base64.RawStdEncoding.EncodeToString(box), nil
}

// Open reverses Seal. Values without the sealed prefix were stored before
// sealing was enabled and are returned as-is.
func (s *Sealer) Open(value string) (string, error) {
	if !IsSealed(value) {
		return value, nil
	}
	box, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", ErrCorrupt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrCorrupt
	}
	return string(plain), nil
}

// IsSealed reports whether value was produced by Seal.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, sealedPrefix)
}
