// Package chain mirrors the on-chain tokenization program: deterministic
// address derivation for minted assets and a read-only view of the
// example token ledger. The API only derives and records addresses; it
// never submits transactions.
package chain

import (
	"crypto/sha256"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// Seed prefixes match the program's PDA seed layout.
const (
	seedAsset        = "asset"
	seedTokenAccount = "token-account"
)

// AddressDeriver derives mint and token-account addresses the same way
// the on-chain program derives its PDAs: hashing a seed prefix with the
// owner wallet and asset id. Derivation is pure, so the backend and any
// client derive identical addresses without an RPC round trip.
type AddressDeriver struct {
	programID string
}

// NewAddressDeriver creates a deriver bound to a program id. The id
// participates in every derivation, so assets minted under different
// program deployments never collide.
func NewAddressDeriver(programID string) *AddressDeriver {
	return &AddressDeriver{programID: programID}
}

// Derive returns the mint address and associated token account for an
// asset. Both are base58-encoded 32-byte digests.
func (d *AddressDeriver) Derive(ownerWallet string, assetID uuid.UUID) (mintAddress, tokenAccount string) {
	mint := d.derive(seedAsset, ownerWallet, assetID[:])
	account := d.derive(seedTokenAccount, ownerWallet, mint[:])
	return base58.Encode(mint[:]), base58.Encode(account[:])
}

func (d *AddressDeriver) derive(seed, owner string, extra []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte(seed))
	h.Write([]byte(d.programID))
	h.Write([]byte(owner))
	h.Write(extra)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
