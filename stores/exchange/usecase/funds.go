package usecase

import (
	"github.com/shopspring/decimal"

	bCtx "github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/service/chain"
	"github.com/x-xyz/marketplace/service/chain/contract"
)

const nativeCurrency = domain.Address("0x0000000000000000000000000000000000000000")

// FundTransfererCfg wires the erc20 binding behind the fund interface.
// The zero-address native currency is mapped to its wrapped token, which
// carries the allowance semantics escrow pulls depend on.
type FundTransfererCfg struct {
	Erc20              contract.Erc20Contract
	Operator           domain.Address
	WrappedNativeToken domain.Address
}

type chainFundTransferer struct {
	erc20              contract.Erc20Contract
	operator           domain.Address
	wrappedNativeToken domain.Address
}

func NewChainFundTransferer(cfg *FundTransfererCfg) *chainFundTransferer {
	return &chainFundTransferer{
		erc20:              cfg.Erc20,
		operator:           cfg.Operator,
		wrappedNativeToken: cfg.WrappedNativeToken,
	}
}

func NewChainFundTransfererFromClient(client chain.Client, wrappedNativeToken domain.Address) *chainFundTransferer {
	return NewChainFundTransferer(&FundTransfererCfg{
		Erc20:              contract.NewErc20(client),
		Operator:           domain.Address(client.Operator().String()),
		WrappedNativeToken: wrappedNativeToken,
	})
}

func (ex *chainFundTransferer) resolveCurrency(currency domain.Address) domain.Address {
	if currency.IsEmpty() || currency.Equals(nativeCurrency) {
		return ex.wrappedNativeToken
	}
	return currency
}

func (ex *chainFundTransferer) Transfer(c bCtx.Ctx, currency domain.Address, from, to domain.Address, amount decimal.Decimal) error {
	token := ex.resolveCurrency(currency)

	var err error
	if from.Equals(ex.operator) {
		_, err = ex.erc20.Transfer(c, string(token), string(to), amount.BigInt())
	} else {
		_, err = ex.erc20.TransferFrom(c, string(token), string(from), string(to), amount.BigInt())
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"currency": token,
			"from":     from,
			"to":       to,
			"amount":   amount,
		}).Error("fund transfer failed")
		return err
	}
	return nil
}

func (ex *chainFundTransferer) CheckBalanceAndAllowance(c bCtx.Ctx, owner, currency domain.Address, amount decimal.Decimal) (bool, error) {
	token := ex.resolveCurrency(currency)

	balance, err := ex.erc20.BalanceOf(c, string(token), string(owner))
	if err != nil {
		return false, err
	}
	if decimal.NewFromBigInt(balance, 0).LessThan(amount) {
		return false, nil
	}

	// escrow spends its own balance, allowance is meaningless there
	if owner.Equals(ex.operator) {
		return true, nil
	}

	allowance, err := ex.erc20.Allowance(c, string(token), string(owner), string(ex.operator))
	if err != nil {
		return false, err
	}
	return !decimal.NewFromBigInt(allowance, 0).LessThan(amount), nil
}
