package usecase

import (
	"math/big"

	bCtx "github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/service/chain"
	"github.com/x-xyz/marketplace/service/chain/contract"
)

// TokenCustodyCfg wires the on-chain token bindings behind the custody
// interface. Users grant the operator wallet approval; transfers out of
// escrow are sent from that wallet directly.
type TokenCustodyCfg struct {
	Erc721   contract.Erc721Contract
	Erc1155  contract.Erc1155Contract
	Operator domain.Address
}

type chainTokenCustody struct {
	erc721   contract.Erc721Contract
	erc1155  contract.Erc1155Contract
	operator domain.Address
}

func NewChainTokenCustody(cfg *TokenCustodyCfg) *chainTokenCustody {
	return &chainTokenCustody{
		erc721:   cfg.Erc721,
		erc1155:  cfg.Erc1155,
		operator: cfg.Operator,
	}
}

func NewChainTokenCustodyFromClient(client chain.Client) *chainTokenCustody {
	return NewChainTokenCustody(&TokenCustodyCfg{
		Erc721:   contract.NewErc721(client),
		Erc1155:  contract.NewErc1155(client),
		Operator: domain.Address(client.Operator().String()),
	})
}

func (ex *chainTokenCustody) Transfer(c bCtx.Ctx, assetContract domain.Address, tokenId domain.TokenId, tokenType domain.TokenType, from, to domain.Address, quantity int64) error {
	id, ok := new(big.Int).SetString(tokenId.String(), 10)
	if !ok {
		return domain.ErrBadParamInput
	}

	var err error
	switch tokenType {
	case domain.TokenType721:
		_, err = ex.erc721.TransferFrom(c, string(assetContract), string(from), string(to), id)
	case domain.TokenType1155:
		_, err = ex.erc1155.SafeTransferFrom(c, string(assetContract), string(from), string(to), id, big.NewInt(quantity))
	default:
		return domain.ErrBadParamInput
	}
	if err != nil {
		c.WithFields(log.Fields{
			"err":           err,
			"assetContract": assetContract,
			"tokenId":       tokenId,
			"from":          from,
			"to":            to,
		}).Error("token transfer failed")
		return err
	}
	return nil
}

func (ex *chainTokenCustody) VerifyOwnershipAndApproval(c bCtx.Ctx, owner, assetContract domain.Address, tokenId domain.TokenId, tokenType domain.TokenType, quantity int64) (bool, error) {
	id, ok := new(big.Int).SetString(tokenId.String(), 10)
	if !ok {
		return false, domain.ErrBadParamInput
	}

	held, err := ex.holds(c, owner, assetContract, id, tokenType, quantity)
	if err != nil || !held {
		return false, err
	}

	// the escrow wallet holds escrowed assets outright, no approval needed
	if owner.Equals(ex.operator) {
		return true, nil
	}

	switch tokenType {
	case domain.TokenType721:
		return ex.erc721.IsApprovedForAll(c, string(assetContract), string(owner), string(ex.operator))
	default:
		return ex.erc1155.IsApprovedForAll(c, string(assetContract), string(owner), string(ex.operator))
	}
}

func (ex *chainTokenCustody) holds(c bCtx.Ctx, owner, assetContract domain.Address, tokenId *big.Int, tokenType domain.TokenType, quantity int64) (bool, error) {
	switch tokenType {
	case domain.TokenType721:
		chainOwner, err := ex.erc721.OwnerOf(c, string(assetContract), tokenId)
		if err != nil {
			return false, err
		}
		return owner.Equals(domain.Address(chainOwner)), nil
	case domain.TokenType1155:
		balance, err := ex.erc1155.BalanceOf(c, string(assetContract), string(owner), tokenId)
		if err != nil {
			return false, err
		}
		return balance.Cmp(big.NewInt(quantity)) >= 0, nil
	default:
		return false, domain.ErrBadParamInput
	}
}
