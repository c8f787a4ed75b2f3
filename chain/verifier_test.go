package chain

import (
	"context"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetOutput(io.Discard)
}

const (
	verifierTxHash = "0x10044bc6e2ee9ddd6516f75a416cf84ecc4ef62339b5d1a28eb22c011c79f5a8"
	hubAddressHex  = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	senderHex      = "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb1"
	receiverHex    = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	tokenHex       = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

// hubReceipt fabricates a successful transaction receipt carrying one
// RemittanceCreated event for amountBaseUnits USDC base units.
func hubReceipt(t *testing.T, blockNumber int64, amountBaseUnits int64) *types.Receipt {
	event := hubABI.Events[RemittanceCreatedEventName]

	data, err := event.Inputs.NonIndexed().Pack(
		common.HexToAddress(receiverHex),
		common.HexToAddress(tokenHex),
		big.NewInt(amountBaseUnits),
		big.NewInt(250000),
		models.CorridorUSDCINR,
		big.NewInt(time.Now().Unix()),
	)
	assert.NoError(t, err)

	eventLog := &types.Log{
		Address: common.HexToAddress(hubAddressHex),
		Topics: []common.Hash{
			event.ID,
			common.HexToHash("0x01"),
			common.BytesToHash(common.HexToAddress(senderHex).Bytes()),
		},
		Data: data,
	}

	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(blockNumber),
		Logs:        []*types.Log{eventLog},
	}
}

func newTestHubVerifier(client EthereumClient) *hubVerifier {
	return &hubVerifier{
		client:        client,
		hubAddress:    common.HexToAddress(hubAddressHex),
		confirmations: 3,
	}
}

func TestHubVerifierVerifyPayment(t *testing.T) {
	minAmount := decimal.RequireFromString("100.000000")

	t.Run("Valid Payment", func(t *testing.T) {
		mockClient := NewMockEthereumClient(t)
		v := newTestHubVerifier(mockClient)

		mockClient.EXPECT().GetTransactionReceipt(verifierTxHash).Return(hubReceipt(t, 90, 100000000), nil)
		mockClient.EXPECT().GetBlockNumber().Return(uint64(100), nil)

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)

		assert.NoError(t, err)
		assert.Equal(t, senderHex, event.Sender)
		assert.Equal(t, receiverHex, event.Receiver)
		assert.True(t, event.AmountUSDC.Equal(minAmount))
		assert.Equal(t, int64(90), event.BlockNumber)
		assert.Equal(t, int64(11), event.Confirmations)
		assert.False(t, event.Sandbox)
	})

	t.Run("Transaction Not Found", func(t *testing.T) {
		mockClient := NewMockEthereumClient(t)
		v := newTestHubVerifier(mockClient)

		mockClient.EXPECT().GetTransactionReceipt(verifierTxHash).Return(nil, assert.AnError)

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)

		assert.Nil(t, event)
		assert.True(t, models.IsKind(err, models.ErrorKindVerification))
	})

	t.Run("Reverted Transaction", func(t *testing.T) {
		mockClient := NewMockEthereumClient(t)
		v := newTestHubVerifier(mockClient)

		receipt := hubReceipt(t, 90, 100000000)
		receipt.Status = types.ReceiptStatusFailed
		mockClient.EXPECT().GetTransactionReceipt(verifierTxHash).Return(receipt, nil)

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)

		assert.Nil(t, event)
		assert.True(t, models.IsKind(err, models.ErrorKindVerification))
	})

	t.Run("Not Enough Confirmations", func(t *testing.T) {
		mockClient := NewMockEthereumClient(t)
		v := newTestHubVerifier(mockClient)

		mockClient.EXPECT().GetTransactionReceipt(verifierTxHash).Return(hubReceipt(t, 99, 100000000), nil)
		mockClient.EXPECT().GetBlockNumber().Return(uint64(100), nil)

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)

		assert.Nil(t, event)
		assert.True(t, models.IsKind(err, models.ErrorKindVerification))
	})

	t.Run("No Remittance Event", func(t *testing.T) {
		mockClient := NewMockEthereumClient(t)
		v := newTestHubVerifier(mockClient)

		receipt := hubReceipt(t, 90, 100000000)
		receipt.Logs = nil
		mockClient.EXPECT().GetTransactionReceipt(verifierTxHash).Return(receipt, nil)
		mockClient.EXPECT().GetBlockNumber().Return(uint64(100), nil)

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)

		assert.Nil(t, event)
		assert.True(t, models.IsKind(err, models.ErrorKindVerification))
	})

	t.Run("Event From Wrong Contract", func(t *testing.T) {
		mockClient := NewMockEthereumClient(t)
		v := newTestHubVerifier(mockClient)

		receipt := hubReceipt(t, 90, 100000000)
		receipt.Logs[0].Address = common.HexToAddress(tokenHex)
		mockClient.EXPECT().GetTransactionReceipt(verifierTxHash).Return(receipt, nil)
		mockClient.EXPECT().GetBlockNumber().Return(uint64(100), nil)

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)

		assert.Nil(t, event)
		assert.True(t, models.IsKind(err, models.ErrorKindVerification))
	})

	t.Run("Sender Mismatch", func(t *testing.T) {
		mockClient := NewMockEthereumClient(t)
		v := newTestHubVerifier(mockClient)

		mockClient.EXPECT().GetTransactionReceipt(verifierTxHash).Return(hubReceipt(t, 90, 100000000), nil)
		mockClient.EXPECT().GetBlockNumber().Return(uint64(100), nil)

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, receiverHex, minAmount)

		assert.Nil(t, event)
		assert.True(t, models.IsKind(err, models.ErrorKindVerification))
	})

	t.Run("Amount Below Intent", func(t *testing.T) {
		mockClient := NewMockEthereumClient(t)
		v := newTestHubVerifier(mockClient)

		mockClient.EXPECT().GetTransactionReceipt(verifierTxHash).Return(hubReceipt(t, 90, 50000000), nil)
		mockClient.EXPECT().GetBlockNumber().Return(uint64(100), nil)

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)

		assert.Nil(t, event)
		assert.True(t, models.IsKind(err, models.ErrorKindVerification))
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		mockClient := NewMockEthereumClient(t)
		v := newTestHubVerifier(mockClient)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		event, err := v.VerifyPayment(ctx, verifierTxHash, senderHex, minAmount)

		assert.Nil(t, event)
		assert.True(t, models.IsKind(err, models.ErrorKindVerification))
	})
}

func TestSandboxVerifier(t *testing.T) {
	minAmount := decimal.RequireFromString("100.000000")

	t.Run("Simulates Payment", func(t *testing.T) {
		v := &sandboxVerifier{confirmations: 3}

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)

		assert.NoError(t, err)
		assert.Equal(t, senderHex, event.Sender)
		assert.True(t, event.AmountUSDC.Equal(minAmount))
		assert.True(t, event.Sandbox)
		assert.NotEmpty(t, event.RemitId)
	})

	t.Run("Defaults Sender", func(t *testing.T) {
		v := &sandboxVerifier{confirmations: 3}

		event, err := v.VerifyPayment(context.Background(), verifierTxHash, "", minAmount)

		assert.NoError(t, err)
		assert.Equal(t, DefaultSandboxSender, event.Sender)
	})

	t.Run("Deterministic Remit Id", func(t *testing.T) {
		v := &sandboxVerifier{confirmations: 3}

		first, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)
		assert.NoError(t, err)
		second, err := v.VerifyPayment(context.Background(), verifierTxHash, senderHex, minAmount)
		assert.NoError(t, err)

		assert.Equal(t, first.RemitId, second.RemitId)
	})
}

func TestNewVerifier(t *testing.T) {
	t.Run("Sandbox Mode", func(t *testing.T) {
		app.Config.Ethereum.Sandbox = true
		v := NewVerifier(NewMockEthereumClient(t))
		assert.True(t, v.Sandbox())
	})

	t.Run("Production Mode", func(t *testing.T) {
		app.Config.Ethereum.Sandbox = false
		app.Config.Ethereum.RemitHubAddress = hubAddressHex
		app.Config.Ethereum.Confirmations = 3
		v := NewVerifier(NewMockEthereumClient(t))
		assert.False(t, v.Sandbox())
	})
}
