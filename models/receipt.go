package models

import (
	"time"
)

const (
	CollectionReceipts = "receipts"
)

// fraud flag severities
const (
	FraudSeverityLow    = "LOW"
	FraudSeverityMedium = "MEDIUM"
	FraudSeverityHigh   = "HIGH"
)

type FraudFlag struct {
	Rule     string `bson:"rule" json:"rule"`
	Severity string `bson:"severity" json:"severity"`
	Score    int64  `bson:"score" json:"score"`
	Note     string `bson:"note" json:"note"`
}

// Receipt is the immutable record of a settled remittance. Exactly one
// exists per confirmed intent and none are ever deleted; the unique indexes
// on intent_id and tx_hash are what make the settlement transition safe
// under concurrent confirmation attempts.
type Receipt struct {
	Id              string      `bson:"_id" json:"id"`
	IntentId        string      `bson:"intent_id" json:"intentId"`
	Owner           string      `bson:"owner" json:"owner"`
	SenderAddress   string      `bson:"sender_address" json:"senderAddress"`
	ReceiverAddress string      `bson:"receiver_address" json:"receiverAddress"`
	TxHash          string      `bson:"tx_hash" json:"txHash"`
	BlockNumber     int64       `bson:"block_number" json:"blockNumber"`
	AmountUSDC      string      `bson:"amount_usdc" json:"amountUSDC"`
	FeeUSDC         string      `bson:"fee_usdc" json:"feeUSDC"`
	Corridor        string      `bson:"corridor" json:"corridor"`
	FXAtSettlement  string      `bson:"fx_at_settlement" json:"fxAtSettlement"`
	NetINR          string      `bson:"net_inr" json:"netINR"`
	FraudFlags      []FraudFlag `bson:"fraud_flags" json:"fraudFlags"`
	Sandbox         bool        `bson:"sandbox" json:"sandbox"`
	ShareToken      string      `bson:"share_token" json:"-"`
	ShareExpiresAt  time.Time   `bson:"share_expires_at" json:"-"`
	Timestamp       time.Time   `bson:"timestamp" json:"timestamp"`
	CreatedAt       time.Time   `bson:"created_at" json:"createdAt"`
}

func (r *Receipt) FraudScore() int64 {
	var score int64
	for _, flag := range r.FraudFlags {
		score += flag.Score
	}
	return score
}

func (r *Receipt) ShareTokenValid(token string, now time.Time) bool {
	return token != "" && r.ShareToken == token && now.Before(r.ShareExpiresAt)
}
