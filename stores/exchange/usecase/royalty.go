package usecase

import (
	"math/big"

	"github.com/shopspring/decimal"

	bCtx "github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/marketplace"
	"github.com/x-xyz/marketplace/service/chain/contract"
)

// royaltyEngine resolves royalties through a Manifold-style registry
// contract. An empty registry address disables royalties entirely.
type royaltyEngine struct {
	contract contract.RoyaltyEngineContract
	registry domain.Address
}

func NewRoyaltyEngine(re contract.RoyaltyEngineContract, registry domain.Address) marketplace.RoyaltyEngine {
	return &royaltyEngine{
		contract: re,
		registry: registry,
	}
}

func (r *royaltyEngine) RoyaltiesFor(c bCtx.Ctx, assetContract domain.Address, tokenId domain.TokenId, price decimal.Decimal) ([]marketplace.Split, error) {
	if r.registry.IsEmpty() {
		return nil, nil
	}

	id, ok := new(big.Int).SetString(tokenId.String(), 10)
	if !ok {
		return nil, domain.ErrBadParamInput
	}

	recipients, amounts, err := r.contract.GetRoyalty(c, string(r.registry), string(assetContract), id, price.BigInt())
	if err != nil {
		c.WithFields(log.Fields{
			"err":           err,
			"assetContract": assetContract,
			"tokenId":       tokenId,
		}).Error("failed to resolve royalties")
		return nil, err
	}

	splits := make([]marketplace.Split, 0, len(recipients))
	for i, recipient := range recipients {
		if amounts[i].Sign() <= 0 {
			continue
		}
		splits = append(splits, marketplace.Split{
			Recipient: domain.Address(recipient).ToLower(),
			Amount:    decimal.NewFromBigInt(amounts[i], 0),
		})
	}
	return splits, nil
}
