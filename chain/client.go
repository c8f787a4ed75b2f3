package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/remitchain/remitd/app"
	log "github.com/sirupsen/logrus"
)

type EthereumClient interface {
	ValidateNetwork()
	GetBlockNumber() (uint64, error)
	GetChainID() (*big.Int, error)
	GetClient() *ethclient.Client
	GetTransactionReceipt(txHash string) (*types.Receipt, error)
}

type ethereumClient struct {
	client *ethclient.Client
}

var Client EthereumClient = &ethereumClient{}

func rpcTimeoutContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(app.Config.Ethereum.RPCTimeoutMillis)*time.Millisecond)
}

func (c *ethereumClient) GetClient() *ethclient.Client {
	return c.client
}

func (c *ethereumClient) GetBlockNumber() (uint64, error) {
	ctx, cancel := rpcTimeoutContext()
	defer cancel()

	blockNumber, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, err
	}

	return blockNumber, nil
}

func (c *ethereumClient) GetChainID() (*big.Int, error) {
	ctx, cancel := rpcTimeoutContext()
	defer cancel()

	chainID, err := c.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	return chainID, nil
}

func (c *ethereumClient) GetTransactionReceipt(txHash string) (*types.Receipt, error) {
	ctx, cancel := rpcTimeoutContext()
	defer cancel()

	return c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
}

func (c *ethereumClient) ValidateNetwork() {
	log.Debugln("[ETH]", "Validating network")
	log.Debugln("[ETH]", "URL", app.Config.Ethereum.RPCURL)
	client, err := ethclient.Dial(app.Config.Ethereum.RPCURL)
	if err != nil {
		log.Fatal("[ETH] Error dialing rpc: ", err)
	}
	c.client = client

	blockNumber, err := c.GetBlockNumber()
	if err != nil {
		log.Fatal("[ETH] Error fetching block number: ", err)
	}
	log.Debugln("[ETH]", "Validating network", "blockNumber", blockNumber)

	chainID, err := c.GetChainID()
	if err != nil {
		log.Fatal("[ETH] Error fetching chain id: ", err)
	}

	if chainID.String() != app.Config.Ethereum.ChainID {
		log.Fatalf("[ETH] Chain ID mismatch: expected %s, got %s", app.Config.Ethereum.ChainID, chainID.String())
	}
	log.Debugln("[ETH]", "Validated network")
}
