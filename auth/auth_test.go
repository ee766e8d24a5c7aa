// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateAdminKey(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		salt  string
	}{
		{"standard", AdminScope, "secret-salt"},
		{"empty scope", "", "salt"},
		{"empty salt", AdminScope, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateAdminKey(tt.scope, tt.salt)

			if key == "" {
				t.Error("GenerateAdminKey() returned empty string")
			}

			key2 := GenerateAdminKey(tt.scope, tt.salt)
			if key != key2 {
				t.Error("GenerateAdminKey() is not deterministic")
			}

			if tt.scope != "" && tt.salt != "" {
				differentKey := GenerateAdminKey(tt.scope+"x", tt.salt)
				if key == differentKey {
					t.Error("GenerateAdminKey() produced same key for different scopes")
				}
			}

			// Should be URL-safe (no padding)
			if strings.Contains(key, "=") {
				t.Error("GenerateAdminKey() contains padding characters")
			}
		})
	}
}

func TestValidateAdminKey(t *testing.T) {
	salt := "test-salt"
	validKey := GenerateAdminKey(AdminScope, salt)

	tests := []struct {
		name     string
		scope    string
		adminKey string
		salt     string
		wantErr  bool
	}{
		{"valid key", AdminScope, validKey, salt, false},
		{"wrong key", AdminScope, "wrong-key", salt, true},
		{"wrong scope", "different-scope", validKey, salt, true},
		{"wrong salt", AdminScope, validKey, "different-salt", true},
		{"empty key", AdminScope, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.scope, tt.adminKey, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		want    string
		wantErr bool
	}{
		{"lowercase", "0x" + strings.Repeat("ab", 20), "0x" + strings.Repeat("ab", 20), false},
		{"mixed case", "0xAbCdEf" + strings.Repeat("0", 34), "0xabcdef" + strings.Repeat("0", 34), false},
		{"uppercase prefix", "0X" + strings.Repeat("1", 40), "0x" + strings.Repeat("1", 40), false},
		{"surrounding space", " 0x" + strings.Repeat("f", 40) + " ", "0x" + strings.Repeat("f", 40), false},
		{"too short", "0x1234", "", true},
		{"no prefix", strings.Repeat("a", 42), "", true},
		{"not hex", "0x" + strings.Repeat("z", 40), "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeAddress() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAddress {
				t.Errorf("NormalizeAddress() error = %v, want %v", err, ErrInvalidAddress)
			}
			if got != tt.want {
				t.Errorf("NormalizeAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortenAddress(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		want   string
		wantOK bool
	}{
		{"address", "0x1234567890ABCDEF1234567890abcdef12345678", "0x1234…5678", true},
		{"plain label", "Project A", "Project A", false},
		{"short hex", "0x1234", "0x1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ShortenAddress(tt.label)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ShortenAddress(%q) = %q, %v; want %q, %v", tt.label, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"IPv4", "192.168.1.1", "ip-salt"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334", "ip-salt"},
		{"localhost", "127.0.0.1", "ip-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			// Should be 16 hex characters (8 bytes * 2)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIP() contains invalid hex char: %c", c)
				}
			}

			hash2 := HashIP(tt.ip, tt.salt)
			if hash != hash2 {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	if HashIP("192.168.1.1", "salt") == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if HashIP("192.168.1.1", "salt1") == HashIP("192.168.1.1", "salt2") {
		t.Error("HashIP() produced same hash for different salts")
	}
}

func BenchmarkGenerateAdminKey(b *testing.B) {
	salt := "test-salt"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GenerateAdminKey(AdminScope, salt)
	}
}
