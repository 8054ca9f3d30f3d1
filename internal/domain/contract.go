package domain

import (
	"fmt"
	"strings"
)

// ContractKind identifies one of the contracts in the topology
type ContractKind string

const (
	ContractNFT      ContractKind = "nft"
	ContractToken    ContractKind = "token"
	ContractTimelock ContractKind = "timelock"
	ContractVault    ContractKind = "vault"
)

// StepInitialize names the post-deployment wiring call on the NFT
const StepInitialize = "initialize"

// ContractKinds returns every contract kind in declaration order
func ContractKinds() []ContractKind {
	return []ContractKind{ContractNFT, ContractToken, ContractTimelock, ContractVault}
}

// DefaultArtifactName returns the compiled contract name used when the
// project does not override it.
func (k ContractKind) DefaultArtifactName() string {
	switch k {
	case ContractNFT:
		return "NFT"
	case ContractToken:
		return "Solos"
	case ContractTimelock:
		return "Timelock"
	case ContractVault:
		return "Vault"
	default:
		return string(k)
	}
}

func (k ContractKind) String() string {
	return string(k)
}

// ParseContractKind parses a contract kind, case-insensitively
func ParseContractKind(s string) (ContractKind, error) {
	kind := ContractKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ContractKinds() {
		if kind == known {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown contract kind %q", s)
}
