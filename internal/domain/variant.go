package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// InitVariant selects the argument shape of the NFT initialize call
type InitVariant string

const (
	// InitVariantBasic: (baseURI, maxTokenCount, vault, uriSigner, token, timelock)
	InitVariantBasic InitVariant = "basic"
	// InitVariantExtended adds a paymentSteps schedule between token and timelock
	InitVariantExtended InitVariant = "extended"
)

// ParseInitVariant parses a variant name. The empty string selects basic.
func ParseInitVariant(s string) (InitVariant, error) {
	switch InitVariant(strings.ToLower(strings.TrimSpace(s))) {
	case "", InitVariantBasic:
		return InitVariantBasic, nil
	case InitVariantExtended:
		return InitVariantExtended, nil
	default:
		return "", fmt.Errorf("unknown initialize variant %q (expected basic or extended)", s)
	}
}

// InitAddresses holds the resolved addresses the NFT gets wired to
type InitAddresses struct {
	Token    common.Address
	Timelock common.Address
	Vault    common.Address
}

// InitParams holds the static part of the initialize arguments
type InitParams struct {
	BaseURI       string
	MaxTokenCount *big.Int
	URISigner     common.Address
	PaymentSteps  []*big.Int
}

// InitShape builds the ordered initialize argument list for one variant
type InitShape interface {
	Variant() InitVariant
	// Signature is the canonical solidity signature of the initialize overload
	Signature() string
	Arguments(addrs InitAddresses, params InitParams) []any
}

// ShapeFor returns the argument shape for the given variant
func ShapeFor(v InitVariant) (InitShape, error) {
	switch v {
	case InitVariantBasic, "":
		return basicShape{}, nil
	case InitVariantExtended:
		return extendedShape{}, nil
	default:
		return nil, fmt.Errorf("unknown initialize variant %q", v)
	}
}

type basicShape struct{}

func (basicShape) Variant() InitVariant { return InitVariantBasic }

func (basicShape) Signature() string {
	return "initialize(string,uint256,address,address,address,address)"
}

func (basicShape) Arguments(addrs InitAddresses, p InitParams) []any {
	return []any{p.BaseURI, p.MaxTokenCount, addrs.Vault, p.URISigner, addrs.Token, addrs.Timelock}
}

type extendedShape struct{}

func (extendedShape) Variant() InitVariant { return InitVariantExtended }

func (extendedShape) Signature() string {
	return "initialize(string,uint256,address,address,address,uint256[],address)"
}

func (extendedShape) Arguments(addrs InitAddresses, p InitParams) []any {
	steps := make([]*big.Int, len(p.PaymentSteps))
	for i, s := range p.PaymentSteps {
		steps[i] = new(big.Int).Set(s)
	}
	return []any{p.BaseURI, p.MaxTokenCount, addrs.Vault, p.URISigner, addrs.Token, steps, addrs.Timelock}
}
