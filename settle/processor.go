package settle

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/chain"
	"github.com/remitchain/remitd/models"
	"github.com/remitchain/remitd/rates"
	log "github.com/sirupsen/logrus"
)

const shareTokenTTL = 30 * 24 * time.Hour

var txHashRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// confirmableStatusFilter matches the statuses a settled intent may still be
// stuck in: PENDING when an earlier attempt crashed before the flip, EXPIRED
// when the sweeper raced the settlement and won.
var confirmableStatusFilter = bson.M{"$in": []string{models.IntentStatusPending, models.IntentStatusExpired}}

type ConfirmRequest struct {
	IntentId      string `json:"intentId"`
	TxHash        string `json:"txHash"`
	SenderAddress string `json:"senderAddress"`
}

// Processor drives the PENDING -> CONFIRMED transition. The receipt insert
// against the unique intent_id and tx_hash indexes is the serialization
// point; everything before it is validation and everything after it is
// idempotent repair.
type Processor struct {
	verifier      chain.PaymentVerifier
	rates         rates.Source
	scorer        *Scorer
	verifyTimeout time.Duration
}

func NewProcessor(verifier chain.PaymentVerifier, source rates.Source) *Processor {
	return &Processor{
		verifier:      verifier,
		rates:         source,
		scorer:        NewScorer(),
		verifyTimeout: time.Duration(app.Config.Ethereum.RPCTimeoutMillis) * time.Millisecond,
	}
}

func (p *Processor) Confirm(ctx context.Context, req ConfirmRequest, principal models.Principal) (*models.Receipt, error) {
	if principal.IsZero() {
		return nil, models.NewError(models.ErrorKindAuthentication, "authentication required")
	}
	if req.IntentId == "" {
		return nil, models.NewError(models.ErrorKindValidation, "intentId is required")
	}
	if !txHashRegex.MatchString(req.TxHash) {
		return nil, models.NewError(models.ErrorKindValidation, "invalid transaction hash %q", req.TxHash)
	}
	if req.SenderAddress != "" && !common.IsHexAddress(req.SenderAddress) {
		return nil, models.NewError(models.ErrorKindValidation, "invalid sender address %q", req.SenderAddress)
	}
	txHash := strings.ToLower(req.TxHash)

	intent, err := p.findIntent(req.IntentId)
	if err != nil {
		return nil, err
	}
	if intent.CreatedBy != principal.Id && !principal.IsAdmin() {
		return nil, models.NewError(models.ErrorKindAuthorization, "intent belongs to another sender")
	}

	logger := log.WithField("intent_id", intent.Id).WithField("tx_hash", txHash)

	// a receipt bearing this hash is authoritative over whatever the intent
	// record says: an earlier attempt may have crashed before the status
	// flip, or the sweeper may have expired the intent after settlement.
	// Replaying the accepted hash is never an error.
	if existing, err := p.findReceiptBy(bson.M{"tx_hash": txHash}); err == nil {
		if existing.IntentId != intent.Id {
			return nil, models.NewError(models.ErrorKindConflict, "transaction hash already used by another settlement")
		}
		p.repairConfirmed(intent, txHash)
		return existing, nil
	}

	if intent.Terminal() {
		return p.resolveTerminal(intent, txHash)
	}

	if intent.Expired(time.Now()) {
		p.transitionIntent(intent.Id, models.IntentStatusPending, bson.M{"status": models.IntentStatusExpired})
		return nil, models.NewError(models.ErrorKindTerminalState, "intent has expired")
	}

	amount, err := models.ParseUSDC(intent.AmountUSDC)
	if err != nil {
		return nil, models.WrapError(models.ErrorKindInternal, err, "intent carries unparseable amount")
	}

	verifyCtx, cancel := context.WithTimeout(ctx, p.verifyTimeout)
	defer cancel()

	event, err := p.verifier.VerifyPayment(verifyCtx, txHash, req.SenderAddress, amount)
	if err != nil {
		logger.WithError(err).Info("[SETTLE] Payment verification failed")
		var perr *models.PipelineError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, models.WrapError(models.ErrorKindVerification, err, "payment verification failed")
	}

	flags := p.scorer.Evaluate(intent, event, req.SenderAddress, principal)
	score := totalScore(flags)
	if score >= p.scorer.BlockScore() {
		logger.WithField("score", score).Warn("[SETTLE] Confirmation blocked by fraud score")
		p.transitionIntent(intent.Id, models.IntentStatusPending, bson.M{"status": models.IntentStatusFailed})
		p.writeAudit(principal.Id, models.AuditActionRemitFraudBlock, map[string]interface{}{
			"intentId": intent.Id,
			"txHash":   txHash,
			"score":    score,
			"flags":    flags,
		})
		return nil, models.NewError(models.ErrorKindFraudBlock, "confirmation blocked: fraud score %d", score)
	}

	receipt, err := p.settle(intent, event, txHash, flags)
	if err != nil {
		return nil, err
	}

	p.writeAudit(principal.Id, models.AuditActionRemitConfirmed, map[string]interface{}{
		"intentId":  intent.Id,
		"receiptId": receipt.Id,
		"txHash":    txHash,
		"sandbox":   receipt.Sandbox,
	})

	logger.WithField("receipt_id", receipt.Id).Info("[SETTLE] Intent settled")
	return receipt, nil
}

// settle writes the receipt and flips the intent. A duplicate key error on
// the insert means a concurrent attempt won the race or the hash is taken;
// re-reading the receipt disambiguates the two.
func (p *Processor) settle(intent *models.Intent, event *chain.PaymentEvent, txHash string, flags []models.FraudFlag) (*models.Receipt, error) {
	snapshot := p.rates.Latest()
	fx, err := decimal.NewFromString(snapshot.UsdcInr)
	if err != nil || !fx.IsPositive() {
		return nil, models.NewError(models.ErrorKindInternal, "no usable rate snapshot for settlement")
	}

	amount, err := models.ParseUSDC(intent.AmountUSDC)
	if err != nil {
		return nil, models.WrapError(models.ErrorKindInternal, err, "intent carries unparseable amount")
	}

	receiver := event.Receiver
	if receiver == "" {
		receiver = intent.Receiver()
	}

	now := time.Now()
	receipt := &models.Receipt{
		Id:              uuid.New().String(),
		IntentId:        intent.Id,
		Owner:           intent.CreatedBy,
		SenderAddress:   event.Sender,
		ReceiverAddress: receiver,
		TxHash:          txHash,
		BlockNumber:     event.BlockNumber,
		AmountUSDC:      intent.AmountUSDC,
		FeeUSDC:         intent.FeeUSDC,
		Corridor:        intent.Corridor,
		FXAtSettlement:  snapshot.UsdcInr,
		NetINR:          models.FormatINR(models.RoundINR(amount.Mul(fx))),
		FraudFlags:      flags,
		Sandbox:         event.Sandbox,
		ShareToken:      newShareToken(),
		ShareExpiresAt:  now.Add(shareTokenTTL),
		Timestamp:       event.Timestamp,
		CreatedAt:       now,
	}

	if err := app.DB.InsertOne(models.CollectionReceipts, receipt); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return nil, models.WrapError(models.ErrorKindInternal, err, "failed to persist receipt")
		}
		existing, findErr := p.findReceiptBy(bson.M{"intent_id": intent.Id})
		if findErr != nil {
			return nil, models.NewError(models.ErrorKindConflict, "transaction hash already used by another settlement")
		}
		if existing.TxHash == txHash {
			return existing, nil
		}
		return nil, models.NewError(models.ErrorKindConflict,
			"intent already settled with transaction %s", existing.TxHash)
	}

	p.transitionIntent(intent.Id, confirmableStatusFilter, bson.M{
		"status":  models.IntentStatusConfirmed,
		"tx_hash": txHash,
	})

	return receipt, nil
}

// resolveTerminal replays or rejects a confirmation against an intent that
// already reached a terminal state. An EXPIRED intent that carries a receipt
// was settled before the sweeper got to it; the receipt wins.
func (p *Processor) resolveTerminal(intent *models.Intent, txHash string) (*models.Receipt, error) {
	switch intent.Status {
	case models.IntentStatusConfirmed:
		receipt, err := p.findReceiptBy(bson.M{"intent_id": intent.Id})
		if err != nil {
			return nil, models.WrapError(models.ErrorKindInternal, err, "confirmed intent has no receipt")
		}
		if receipt.TxHash == txHash {
			return receipt, nil
		}
		return nil, models.NewError(models.ErrorKindConflict,
			"intent already settled with transaction %s", receipt.TxHash)
	case models.IntentStatusFailed:
		return nil, models.NewError(models.ErrorKindTerminalState, "intent has failed")
	default:
		receipt, err := p.findReceiptBy(bson.M{"intent_id": intent.Id})
		if err != nil {
			return nil, models.NewError(models.ErrorKindTerminalState, "intent has expired")
		}
		if receipt.TxHash == txHash {
			p.repairConfirmed(intent, txHash)
			return receipt, nil
		}
		return nil, models.NewError(models.ErrorKindConflict,
			"intent already settled with transaction %s", receipt.TxHash)
	}
}

// repairConfirmed finishes the CONFIRMED flip for an intent whose receipt
// already exists.
func (p *Processor) repairConfirmed(intent *models.Intent, txHash string) {
	if intent.Status == models.IntentStatusConfirmed {
		return
	}
	p.transitionIntent(intent.Id, confirmableStatusFilter, bson.M{
		"status":  models.IntentStatusConfirmed,
		"tx_hash": txHash,
	})
}

func (p *Processor) findIntent(intentId string) (*models.Intent, error) {
	var intent models.Intent
	err := app.DB.FindOne(models.CollectionIntents, bson.M{"_id": intentId}, &intent)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewError(models.ErrorKindNotFound, "intent not found")
	}
	if err != nil {
		return nil, models.WrapError(models.ErrorKindInternal, err, "failed to load intent")
	}
	return &intent, nil
}

func (p *Processor) findReceiptBy(filter bson.M) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := app.DB.FindOne(models.CollectionReceipts, filter, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// transitionIntent applies a status change only while the intent status
// still matches fromStatus, which is either a literal status or an $in
// filter. Losing the race is not an error; the winner's state stands.
func (p *Processor) transitionIntent(intentId string, fromStatus interface{}, set bson.M) {
	set["updated_at"] = time.Now()
	var updated models.Intent
	err := app.DB.FindOneAndUpdate(
		models.CollectionIntents,
		bson.M{"_id": intentId, "status": fromStatus},
		bson.M{"$set": set},
		&updated,
	)
	if err != nil && err != mongo.ErrNoDocuments {
		log.Error("[SETTLE] Error transitioning intent ", intentId, ": ", err)
	}
}

func (p *Processor) writeAudit(actorId string, action string, payload map[string]interface{}) {
	entry := &models.AuditLog{
		Id:        uuid.New().String(),
		ActorId:   actorId,
		Action:    action,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := app.DB.InsertOne(models.CollectionAuditLogs, entry); err != nil {
		log.Error("[SETTLE] Error writing audit log: ", err)
	}
}

func totalScore(flags []models.FraudFlag) int64 {
	var score int64
	for _, flag := range flags {
		score += flag.Score
	}
	return score
}

func newShareToken() string {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(token)
}
