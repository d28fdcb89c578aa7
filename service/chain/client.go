package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
)

var ErrNoOperator = errors.New("no operator key configured")

type ClientCfg struct {
	RpcUrl  string
	ChainId int64
	// OperatorKey is the hex-encoded private key of the engine's escrow
	// wallet. Optional: without it the client is read-only and Send fails.
	OperatorKey string
}

type Client interface {
	Call(c bCtx.Ctx, addr common.Address, blk *big.Int, abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	Send(c bCtx.Ctx, addr common.Address, value *big.Int, abi abi.ABI, method string, params ...interface{}) (common.Hash, error)
	BalanceAt(c bCtx.Ctx, addr common.Address) (*big.Int, error)
	Operator() common.Address
}

type clientImpl struct {
	client   *ethclient.Client
	chainId  *big.Int
	key      *ecdsa.PrivateKey
	operator common.Address
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RpcUrl)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"url": cfg.RpcUrl,
		}).Error("failed to dial rpc")
		return nil, err
	}

	im := &clientImpl{
		client:  client,
		chainId: big.NewInt(cfg.ChainId),
	}
	if cfg.OperatorKey != "" {
		key, err := crypto.HexToECDSA(cfg.OperatorKey)
		if err != nil {
			ctx.WithField("err", err).Error("failed to parse operator key")
			return nil, err
		}
		im.key = key
		im.operator = crypto.PubkeyToAddress(key.PublicKey)
	}
	return im, nil
}

func (c *clientImpl) Operator() common.Address {
	return c.operator
}

func (c *clientImpl) BalanceAt(ctx bCtx.Ctx, addr common.Address) (*big.Int, error) {
	return c.client.BalanceAt(ctx, addr, nil)
}

func (c *clientImpl) Call(ctx bCtx.Ctx, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := c.client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Send(ctx bCtx.Ctx, addr common.Address, value *big.Int, _abi abi.ABI, method string, params ...interface{}) (common.Hash, error) {
	if c.key == nil {
		return common.Hash{}, ErrNoOperator
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return common.Hash{}, err
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.operator)
	if err != nil {
		return common.Hash{}, err
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	gas, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  c.operator,
		To:    &addr,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return common.Hash{}, err
	}

	tx := types.NewTransaction(nonce, addr, value, gas, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainId), c.key)
	if err != nil {
		return common.Hash{}, err
	}
	if err := c.client.SendTransaction(ctx, signed); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"to":     addr.String(),
			"method": method,
		}).Error("failed to send transaction")
		return common.Hash{}, err
	}
	return signed.Hash(), nil
}
