package marketplace

import (
	"github.com/shopspring/decimal"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

// TokenCustody moves single-unit and multi-unit tokens between parties and
// inspects current ownership and transfer approval. Implementations must be
// atomic: a transfer either fully happens or fully fails.
type TokenCustody interface {
	Transfer(c ctx.Ctx, assetContract domain.Address, tokenId domain.TokenId, tokenType domain.TokenType, from, to domain.Address, quantity int64) error
	VerifyOwnershipAndApproval(c ctx.Ctx, owner, assetContract domain.Address, tokenId domain.TokenId, tokenType domain.TokenType, quantity int64) (bool, error)
}

// FundTransferer moves a fungible balance between two parties, covering the
// protocol-native balance and token balances.
type FundTransferer interface {
	Transfer(c ctx.Ctx, currency domain.Address, from, to domain.Address, amount decimal.Decimal) error
	CheckBalanceAndAllowance(c ctx.Ctx, owner, currency domain.Address, amount decimal.Decimal) (bool, error)
}

// Split is one fee payout leg of a sale.
type Split struct {
	Recipient domain.Address
	Amount    decimal.Decimal
}

// FeeCalculator resolves the platform fee and third-party royalties for a sale
// price. The returned splits must sum to at most the sale price; the remainder
// goes to the seller.
type FeeCalculator interface {
	Splits(c ctx.Ctx, assetContract domain.Address, tokenId domain.TokenId, currency domain.Address, price decimal.Decimal) ([]Split, error)
}

// RoyaltyEngine resolves third-party royalties keyed by asset contract and
// token id.
type RoyaltyEngine interface {
	RoyaltiesFor(c ctx.Ctx, assetContract domain.Address, tokenId domain.TokenId, price decimal.Decimal) ([]Split, error)
}

// IdCounterRepo owns one sequential counter per entity table. Next returns
// ids starting from 0 and increments exactly once per call.
type IdCounterRepo interface {
	Next(c ctx.Ctx, table domain.Table) (int64, error)
}
