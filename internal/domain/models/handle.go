package models

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/solos-nft/solos-deploy/internal/domain"
)

// ContractHandle references a deployed contract instance. The address is
// assigned by the chain and never changes.
type ContractHandle struct {
	Kind        domain.ContractKind
	Name        string // artifact name
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	ABI         abi.ABI
}

// FindMethod returns the method with the given name and number of inputs
func (h *ContractHandle) FindMethod(name string, arity int) (*abi.Method, bool) {
	return findMethod(h.ABI, name, arity)
}
