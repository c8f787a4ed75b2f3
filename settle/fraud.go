package settle

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/chain"
	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
)

// fraud rules
const (
	RuleNewSender       = "NEW_SENDER"
	RuleNewReceiver     = "NEW_RECEIVER"
	RuleAmountAboveP95  = "AMOUNT_ABOVE_P95"
	RuleHighFrequency   = "HIGH_FREQUENCY"
	RuleUnusualCorridor = "UNUSUAL_CORRIDOR"
	RuleSenderMismatch  = "SENDER_MISMATCH"
	RuleTooSoon         = "TOO_SOON"
)

// ScoringInput is everything a heuristic may look at. Inputs are loaded
// once per confirmation so every heuristic sees the same state and stays
// deterministic.
type ScoringInput struct {
	Intent            *models.Intent
	Event             *chain.PaymentEvent
	ClaimedSender     string
	Principal         models.Principal
	Now               time.Time
	History           []models.Receipt
	RecentIntentCount int64
}

// Heuristic is one independent fraud signal. Returns nil when the signal
// does not trigger. New heuristics register in NewScorer without touching
// the settlement transition.
type Heuristic interface {
	Name() string
	Evaluate(input *ScoringInput) *models.FraudFlag
}

// Scorer runs the registered heuristics and sums their scores.
type Scorer struct {
	heuristics []Heuristic
	config     models.FraudConfig
}

func NewScorer() *Scorer {
	config := app.Config.Fraud
	return &Scorer{
		config: config,
		heuristics: []Heuristic{
			&newSender{},
			&newReceiver{},
			&amountAboveP95{},
			&highFrequency{maxCount: config.VelocityMaxCount},
			&unusualCorridor{},
			&senderMismatch{},
			&tooSoon{minAge: time.Duration(config.MinIntentAgeSecs) * time.Second},
		},
	}
}

// BlockScore is the threshold at or above which a confirmation is refused.
func (s *Scorer) BlockScore() int64 {
	return s.config.BlockScore
}

// Evaluate loads the sender's settlement history and runs every heuristic.
// Loading failures degrade to an empty history rather than blocking
// settlement; the flags are advisory unless they cross the block threshold.
func (s *Scorer) Evaluate(intent *models.Intent, event *chain.PaymentEvent, claimedSender string, principal models.Principal) []models.FraudFlag {
	input := &ScoringInput{
		Intent:        intent,
		Event:         event,
		ClaimedSender: claimedSender,
		Principal:     principal,
		Now:           time.Now(),
	}

	var history []models.Receipt
	err := app.DB.FindMany(models.CollectionReceipts, bson.M{"owner": intent.CreatedBy}, &history)
	if err != nil {
		log.Error("[FRAUD] Error loading sender history: ", err)
	}
	input.History = history

	windowStart := input.Now.Add(-time.Duration(s.config.VelocityWindowSecs) * time.Second)
	count, err := app.DB.CountDocuments(models.CollectionIntents, bson.M{
		"created_by": intent.CreatedBy,
		"created_at": bson.M{"$gte": windowStart},
	})
	if err != nil {
		log.Error("[FRAUD] Error counting recent intents: ", err)
	}
	input.RecentIntentCount = count

	flags := []models.FraudFlag{}
	for _, heuristic := range s.heuristics {
		if flag := heuristic.Evaluate(input); flag != nil {
			log.WithField("intent_id", intent.Id).
				WithField("rule", flag.Rule).
				Info("[FRAUD] Flag triggered: ", flag.Note)
			flags = append(flags, *flag)
		}
	}
	return flags
}

type newSender struct{}

func (h *newSender) Name() string { return RuleNewSender }

func (h *newSender) Evaluate(input *ScoringInput) *models.FraudFlag {
	if len(input.History) > 0 {
		return nil
	}
	return &models.FraudFlag{
		Rule:     RuleNewSender,
		Severity: models.FraudSeverityMedium,
		Score:    50,
		Note:     "First transaction from this sender",
	}
}

type newReceiver struct{}

func (h *newReceiver) Name() string { return RuleNewReceiver }

func (h *newReceiver) Evaluate(input *ScoringInput) *models.FraudFlag {
	if len(input.History) == 0 {
		return nil
	}
	receiver := input.Intent.Receiver()
	for _, receipt := range input.History {
		if strings.EqualFold(receipt.ReceiverAddress, receiver) {
			return nil
		}
	}
	return &models.FraudFlag{
		Rule:     RuleNewReceiver,
		Severity: models.FraudSeverityMedium,
		Score:    40,
		Note:     "First transaction to this receiver",
	}
}

type amountAboveP95 struct{}

func (h *amountAboveP95) Name() string { return RuleAmountAboveP95 }

func (h *amountAboveP95) Evaluate(input *ScoringInput) *models.FraudFlag {
	if len(input.History) < 5 {
		return nil
	}

	amount, err := decimal.NewFromString(input.Intent.AmountUSDC)
	if err != nil {
		return nil
	}

	amounts := make([]decimal.Decimal, 0, len(input.History))
	for _, receipt := range input.History {
		if value, err := decimal.NewFromString(receipt.AmountUSDC); err == nil {
			amounts = append(amounts, value)
		}
	}
	if len(amounts) < 5 {
		return nil
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })

	p95 := amounts[len(amounts)*95/100]
	if !amount.GreaterThan(p95) {
		return nil
	}
	return &models.FraudFlag{
		Rule:     RuleAmountAboveP95,
		Severity: models.FraudSeverityHigh,
		Score:    80,
		Note:     "Amount " + amount.String() + " USDC exceeds P95 (" + p95.String() + " USDC) of sender history",
	}
}

type highFrequency struct {
	maxCount int64
}

func (h *highFrequency) Name() string { return RuleHighFrequency }

func (h *highFrequency) Evaluate(input *ScoringInput) *models.FraudFlag {
	if input.RecentIntentCount < h.maxCount {
		return nil
	}
	return &models.FraudFlag{
		Rule:     RuleHighFrequency,
		Severity: models.FraudSeverityHigh,
		Score:    90,
		Note:     "Too many transactions in the trailing velocity window",
	}
}

type unusualCorridor struct{}

func (h *unusualCorridor) Name() string { return RuleUnusualCorridor }

func (h *unusualCorridor) Evaluate(input *ScoringInput) *models.FraudFlag {
	if len(input.History) < 3 {
		return nil
	}
	for _, receipt := range input.History {
		if receipt.Corridor == input.Intent.Corridor {
			return nil
		}
	}
	return &models.FraudFlag{
		Rule:     RuleUnusualCorridor,
		Severity: models.FraudSeverityMedium,
		Score:    60,
		Note:     "Corridor " + input.Intent.Corridor + " is unusual for this sender",
	}
}

type senderMismatch struct{}

func (h *senderMismatch) Name() string { return RuleSenderMismatch }

func (h *senderMismatch) Evaluate(input *ScoringInput) *models.FraudFlag {
	if input.Event == nil || input.ClaimedSender == "" {
		return nil
	}
	if strings.EqualFold(input.Event.Sender, input.ClaimedSender) {
		return nil
	}
	return &models.FraudFlag{
		Rule:     RuleSenderMismatch,
		Severity: models.FraudSeverityHigh,
		Score:    70,
		Note:     "On-chain sender does not match claimed sender address",
	}
}

type tooSoon struct {
	minAge time.Duration
}

func (h *tooSoon) Name() string { return RuleTooSoon }

func (h *tooSoon) Evaluate(input *ScoringInput) *models.FraudFlag {
	if input.Now.Sub(input.Intent.CreatedAt) >= h.minAge {
		return nil
	}
	return &models.FraudFlag{
		Rule:     RuleTooSoon,
		Severity: models.FraudSeverityLow,
		Score:    30,
		Note:     "Confirmation submitted implausibly soon after intent creation",
	}
}
