package models

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Artifact is a compiled contract: its interface and creation bytecode
type Artifact struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	ABI      abi.ABI `json:"-"`
	Bytecode []byte  `json:"-"`
}

// FindMethod returns the method with the given name and arity. Overloads are
// told apart by their number of inputs.
func (a *Artifact) FindMethod(name string, arity int) (*abi.Method, bool) {
	return findMethod(a.ABI, name, arity)
}

func findMethod(contractABI abi.ABI, name string, arity int) (*abi.Method, bool) {
	for _, m := range contractABI.Methods {
		if m.RawName == name && len(m.Inputs) == arity {
			method := m
			return &method, true
		}
	}
	return nil, false
}
