// Package address validates Stellar account identifiers.
package address

import "github.com/stellar/go/keypair"

const (
	accountIDLength = 56
	accountIDPrefix = 'G'
)

// IsValid reports whether s is a structurally valid Stellar account ID:
// exactly 56 characters, leading 'G', and a passing strkey checksum decode.
// It says nothing about existence on-chain. Never panics.
func IsValid(s string) bool {
	if len(s) != accountIDLength || s[0] != accountIDPrefix {
		return false
	}
	_, err := keypair.ParseAddress(s)
	return err == nil
}
