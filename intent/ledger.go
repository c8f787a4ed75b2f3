package intent

import (
	"regexp"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type CreateRequest struct {
	ReceiverType    string `json:"receiverType"`
	ReceiverAddress string `json:"receiverAddress"`
	ReceiverPhone   string `json:"receiverPhone"`
	ENSName         string `json:"ensName"`
	Corridor        string `json:"corridor"`
	AmountUSDC      string `json:"amountUSDC"`
	FeeUSDC         string `json:"feeUSDC"`
}

// Ledger creates durable pending intents. It deliberately does not check
// the declared fee against the fee schedule; intents are decoupled from
// quotes and the fee is treated as client-declared input.
type Ledger struct {
	ttl time.Duration
}

func NewLedger() *Ledger {
	return &Ledger{
		ttl: time.Duration(app.Config.Intent.TTLSecs) * time.Second,
	}
}

func (l *Ledger) CreateIntent(req CreateRequest, principal models.Principal) (*models.Intent, error) {
	if principal.IsZero() {
		return nil, models.NewError(models.ErrorKindAuthentication, "authentication required")
	}

	if err := validateReceiver(req); err != nil {
		return nil, err
	}

	corridor := req.Corridor
	if corridor == "" {
		corridor = models.CorridorUSDCINR
	}
	if !models.SupportedCorridors[corridor] {
		return nil, models.NewError(models.ErrorKindValidation, "unsupported corridor %q", corridor)
	}

	amount, err := models.ParseUSDC(req.AmountUSDC)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, models.NewError(models.ErrorKindValidation, "amount must be positive")
	}

	// ParseUSDC rejects signed input, so a parsed fee is never negative
	fee, err := models.ParseUSDC(req.FeeUSDC)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &models.Intent{
		Id:              uuid.New().String(),
		CreatedBy:       principal.Id,
		ReceiverType:    req.ReceiverType,
		ReceiverAddress: req.ReceiverAddress,
		ReceiverPhone:   req.ReceiverPhone,
		ENSName:         req.ENSName,
		Corridor:        corridor,
		AmountUSDC:      models.FormatUSDC(amount),
		FeeUSDC:         models.FormatUSDC(fee),
		Status:          models.IntentStatusPending,
		ExpiresAt:       now.Add(l.ttl),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := app.DB.InsertOne(models.CollectionIntents, doc); err != nil {
		log.Error("[INTENT] Error persisting intent: ", err)
		return nil, models.WrapError(models.ErrorKindInternal, err, "failed to create intent")
	}

	log.WithField("intent_id", doc.Id).
		WithField("created_by", doc.CreatedBy).
		Info("[INTENT] Intent created")

	return doc, nil
}

func validateReceiver(req CreateRequest) error {
	switch req.ReceiverType {
	case models.ReceiverTypeAddress:
		if req.ReceiverAddress == "" {
			return models.NewError(models.ErrorKindValidation, "receiverAddress is required for ADDRESS type")
		}
		if !common.IsHexAddress(req.ReceiverAddress) {
			return models.NewError(models.ErrorKindValidation, "invalid receiver address %q", req.ReceiverAddress)
		}
	case models.ReceiverTypePhone:
		if req.ReceiverPhone == "" {
			return models.NewError(models.ErrorKindValidation, "receiverPhone is required for PHONE type")
		}
		if !phoneRegex.MatchString(req.ReceiverPhone) {
			return models.NewError(models.ErrorKindValidation, "invalid receiver phone %q", req.ReceiverPhone)
		}
	case models.ReceiverTypeENS:
		if req.ENSName == "" && req.ReceiverAddress == "" {
			return models.NewError(models.ErrorKindValidation, "ensName or receiverAddress is required for ENS type")
		}
		if req.ReceiverAddress != "" && !common.IsHexAddress(req.ReceiverAddress) {
			return models.NewError(models.ErrorKindValidation, "invalid receiver address %q", req.ReceiverAddress)
		}
	default:
		return models.NewError(models.ErrorKindValidation, "unsupported receiver type %q", req.ReceiverType)
	}
	return nil
}
