package chain

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
)

// DefaultSandboxSender is attributed to simulated payments when the caller
// does not claim a sender address.
const DefaultSandboxSender = "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb1"

// PaymentEvent is the settlement-relevant view of an on-chain (or
// simulated) remittance payment.
type PaymentEvent struct {
	RemitId       string
	Sender        string
	Receiver      string
	Token         string
	AmountUSDC    decimal.Decimal
	FeeUSDC       decimal.Decimal
	Corridor      string
	Timestamp     time.Time
	TxHash        string
	BlockNumber   int64
	Confirmations int64
	Sandbox       bool
}

// PaymentVerifier checks that a claimed transaction hash corresponds to a
// finalized payment of at least minAmount from senderAddress into the hub.
// Implementations are swappable between production and sandbox.
type PaymentVerifier interface {
	VerifyPayment(ctx context.Context, txHash string, senderAddress string, minAmount decimal.Decimal) (*PaymentEvent, error)
	Sandbox() bool
}

type hubVerifier struct {
	client        EthereumClient
	hubAddress    common.Address
	confirmations int64
}

func NewHubVerifier(client EthereumClient) PaymentVerifier {
	return &hubVerifier{
		client:        client,
		hubAddress:    common.HexToAddress(app.Config.Ethereum.RemitHubAddress),
		confirmations: app.Config.Ethereum.Confirmations,
	}
}

func (v *hubVerifier) Sandbox() bool {
	return false
}

func (v *hubVerifier) VerifyPayment(ctx context.Context, txHash string, senderAddress string, minAmount decimal.Decimal) (*PaymentEvent, error) {
	logger := log.WithField("tx_hash", txHash)

	if err := ctx.Err(); err != nil {
		return nil, models.WrapError(models.ErrorKindVerification, err, "verification cancelled")
	}

	receipt, err := v.client.GetTransactionReceipt(txHash)
	if err != nil {
		logger.WithError(err).Debug("[VERIFIER] Error fetching transaction receipt")
		return nil, models.WrapError(models.ErrorKindVerification, err, "transaction not found")
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, models.NewError(models.ErrorKindVerification, "transaction failed on-chain")
	}

	currentBlock, err := v.client.GetBlockNumber()
	if err != nil {
		logger.WithError(err).Debug("[VERIFIER] Error fetching block number")
		return nil, models.WrapError(models.ErrorKindVerification, err, "unable to determine confirmations")
	}
	confirmations := int64(currentBlock) - receipt.BlockNumber.Int64() + 1
	if confirmations < v.confirmations {
		return nil, models.NewError(models.ErrorKindVerification,
			"transaction not finalized: %d of %d confirmations", confirmations, v.confirmations)
	}

	event := parseRemittanceCreated(receipt, v.hubAddress)
	if event == nil {
		return nil, models.NewError(models.ErrorKindVerification, "remittance event not found in transaction")
	}

	if senderAddress != "" && !strings.EqualFold(event.Sender.Hex(), senderAddress) {
		return nil, models.NewError(models.ErrorKindVerification,
			"payment sender %s does not match claimed sender", event.Sender.Hex())
	}

	// hub amounts are USDC base units, six decimals
	amount := decimal.NewFromBigInt(event.Amount, -models.USDCDecimals)
	if amount.LessThan(minAmount) {
		return nil, models.NewError(models.ErrorKindVerification,
			"payment amount %s below intent amount %s", amount.String(), minAmount.String())
	}

	return &PaymentEvent{
		RemitId:       event.RemitId.Hex(),
		Sender:        event.Sender.Hex(),
		Receiver:      event.Receiver.Hex(),
		Token:         event.Token.Hex(),
		AmountUSDC:    amount,
		FeeUSDC:       decimal.NewFromBigInt(event.FeeTaken, -models.USDCDecimals),
		Corridor:      event.Corridor,
		Timestamp:     time.Unix(event.Timestamp.Int64(), 0),
		TxHash:        txHash,
		BlockNumber:   receipt.BlockNumber.Int64(),
		Confirmations: confirmations,
		Sandbox:       false,
	}, nil
}

type sandboxVerifier struct {
	confirmations int64
}

// NewSandboxVerifier returns a verifier that fabricates a deterministic
// payment event instead of reading the chain. Receipts settled through it
// are marked sandbox so downstream consumers can tell them apart.
func NewSandboxVerifier() PaymentVerifier {
	return &sandboxVerifier{
		confirmations: app.Config.Ethereum.Confirmations,
	}
}

func (v *sandboxVerifier) Sandbox() bool {
	return true
}

func (v *sandboxVerifier) VerifyPayment(_ context.Context, txHash string, senderAddress string, minAmount decimal.Decimal) (*PaymentEvent, error) {
	sender := senderAddress
	if sender == "" {
		sender = DefaultSandboxSender
	}

	token := app.Config.Ethereum.USDCAddress
	if token == "" {
		token = "0x0000000000000000000000000000000000000001"
	}

	// remitId derived from the hash keeps simulated events deterministic
	remitId := crypto.Keccak256Hash([]byte(txHash))

	return &PaymentEvent{
		RemitId:       remitId.Hex(),
		Sender:        sender,
		Token:         token,
		AmountUSDC:    minAmount,
		FeeUSDC:       decimal.Zero,
		Timestamp:     time.Now(),
		TxHash:        txHash,
		BlockNumber:   new(big.Int).SetBytes(remitId.Bytes()[:4]).Int64(),
		Confirmations: v.confirmations,
		Sandbox:       true,
	}, nil
}

// NewVerifier picks the implementation for the configured operating mode.
// Sandbox must be requested explicitly; the default is on-chain
// verification.
func NewVerifier(client EthereumClient) PaymentVerifier {
	if app.Config.Ethereum.Sandbox {
		log.Warn("[VERIFIER] Sandbox mode enabled, on-chain verification is OFF")
		return NewSandboxVerifier()
	}
	return NewHubVerifier(client)
}
