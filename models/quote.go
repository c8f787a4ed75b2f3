package models

import (
	"time"
)

const (
	CollectionQuotes = "quotes"
)

// Quote is a short-lived, rate-locked price estimate. Quotes are advisory:
// an intent may declare its own fee without referencing one, so a quote
// carries no settlement authority and is persisted for audit only.
type Quote struct {
	QuoteId    string    `bson:"quote_id" json:"quoteId"`
	AmountUSDC string    `bson:"amount_usdc" json:"amountUSDC"`
	FeeUSDC    string    `bson:"fee_usdc" json:"feeUSDC"`
	TotalUSDC  string    `bson:"total_usdc" json:"totalUSDC"`
	FX         string    `bson:"fx" json:"fx"`
	NetINR     string    `bson:"net_inr" json:"netINR"`
	Corridor   string    `bson:"corridor" json:"corridor"`
	RateSource string    `bson:"rate_source" json:"rateSource"`
	ExpiresAt  time.Time `bson:"expires_at" json:"expiresAt"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

func (q *Quote) Expired(now time.Time) bool {
	return now.After(q.ExpiresAt)
}
