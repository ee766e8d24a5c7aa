// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// AdminScope is the HMAC message for the operator key
const AdminScope = "dotvote-admin"

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidAddress  = errors.New("invalid voter address")
)

// GenerateAdminKey creates an HMAC-based admin key for a scope
// This is deterministic and verifiable
func GenerateAdminKey(scope, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the scope
func ValidateAdminKey(scope, adminKey, salt string) error {
	expected := GenerateAdminKey(scope, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// NormalizeAddress validates a 0x-prefixed 20-byte hex address and
// returns it lowercased
func NormalizeAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if len(addr) != 42 || !strings.HasPrefix(strings.ToLower(addr), "0x") {
		return "", ErrInvalidAddress
	}
	if _, err := hex.DecodeString(addr[2:]); err != nil {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(addr), nil
}

// ShortenAddress renders a valid address as "0xabcd…ef12". Labels that are
// not addresses are returned unchanged with ok false.
func ShortenAddress(label string) (short string, ok bool) {
	addr, err := NormalizeAddress(label)
	if err != nil {
		return label, false
	}
	return addr[:6] + "…" + addr[len(addr)-4:], true
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
