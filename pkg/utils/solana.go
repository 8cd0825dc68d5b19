package utils

import (
	"github.com/mr-tron/base58"
)

// LamportsPerSOL is the native token's smallest-unit scale.
const LamportsPerSOL = 1_000_000_000

// NativeMint is the wrapped-SOL mint address used by the swap aggregator
// to denote the native token.
const NativeMint = "So11111111111111111111111111111111111111112"

// ValidateAddress checks that addr is a base58-encoded 32-byte public key.
func ValidateAddress(addr string) error {
	decoded, err := base58.Decode(addr)
	if err != nil || len(decoded) != 32 {
		return ErrInvalidAddress
	}
	return nil
}

func IsValidAddress(addr string) bool {
	return ValidateAddress(addr) == nil
}

func LamportsToSOL(lamports int64) float64 {
	return float64(lamports) / LamportsPerSOL
}

func SOLToLamports(sol float64) int64 {
	return int64(sol*LamportsPerSOL + 0.5)
}
