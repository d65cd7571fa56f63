// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package credstore persists one operator credential pair on disk so repeated
// launches can skip the login form.
//
// Two files are involved:
//
//   - the key file holds raw key material (KeySize bytes, mode 0600). It is
//     created on first use and never rotated or deleted automatically.
//   - the credentials file is INI text with a single [Operator] section whose
//     username and password entries are sealed with XChaCha20-Poly1305 and
//     base64url encoded. Plaintext never reaches disk.
//
// Loading is soft-fail: a missing, truncated, tampered or foreign file reads as
// "no cached credentials". Key problems are the opposite: an existing key file
// that cannot be read is a hard error, because replacing it would orphan every
// credential sealed under the old key.
package credstore
