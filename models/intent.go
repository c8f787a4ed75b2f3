package models

import (
	"time"
)

const (
	CollectionIntents = "intents"
)

// types of intent status
const (
	IntentStatusPending   = "PENDING"
	IntentStatusConfirmed = "CONFIRMED"
	IntentStatusFailed    = "FAILED"
	IntentStatusExpired   = "EXPIRED"
)

// types of receiver
const (
	ReceiverTypeAddress = "ADDRESS"
	ReceiverTypePhone   = "PHONE"
	ReceiverTypeENS     = "ENS"
)

// Intent is a durable record of a principal's declared transfer, created in
// PENDING and moved exactly once to CONFIRMED, FAILED or EXPIRED. Only the
// confirmation processor mutates it.
type Intent struct {
	Id              string    `bson:"_id" json:"intentId"`
	CreatedBy       string    `bson:"created_by" json:"createdBy"`
	ReceiverType    string    `bson:"receiver_type" json:"receiverType"`
	ReceiverAddress string    `bson:"receiver_address,omitempty" json:"receiverAddress,omitempty"`
	ReceiverPhone   string    `bson:"receiver_phone,omitempty" json:"receiverPhone,omitempty"`
	ENSName         string    `bson:"ens_name,omitempty" json:"ensName,omitempty"`
	Corridor        string    `bson:"corridor" json:"corridor"`
	AmountUSDC      string    `bson:"amount_usdc" json:"amountUSDC"`
	FeeUSDC         string    `bson:"fee_usdc" json:"feeUSDC"`
	Status          string    `bson:"status" json:"status"`
	TxHash          string    `bson:"tx_hash,omitempty" json:"txHash,omitempty"`
	ExpiresAt       time.Time `bson:"expires_at" json:"expiresAt"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// Receiver returns the destination the intent was declared for, whichever
// form it was given in.
func (i *Intent) Receiver() string {
	if i.ReceiverAddress != "" {
		return i.ReceiverAddress
	}
	if i.ReceiverPhone != "" {
		return i.ReceiverPhone
	}
	return i.ENSName
}

func (i *Intent) Terminal() bool {
	return i.Status != IntentStatusPending
}

func (i *Intent) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
