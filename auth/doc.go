// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides operator keys and voter identity helpers.

# Admin Keys

The operator key is an HMAC-SHA256 of AdminScope under the configured salt:

	adminKey := auth.GenerateAdminKey(auth.AdminScope, salt)
	err := auth.ValidateAdminKey(auth.AdminScope, adminKey, salt)

The key is URL-safe base64 encoded without padding. It is never stored;
"dotvote admin-key" prints it for the configured salt.

# Voter Addresses

Ballots are keyed by the voter's account address:

	addr, err := auth.NormalizeAddress("0xAbC...")

Addresses must be 0x followed by 40 hex characters and are lowercased.

# IP Hashing

For privacy-preserving fraud detection:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
