package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionRates       = "rates"
	CollectionAdminConfig = "adminconfig"
)

const (
	RateSourceConfig = "config"
	RateSourceLive   = "live"
)

// RateSnapshot is the latest known USDC to INR conversion rate. Snapshots
// are immutable; a refresh writes a new one.
type RateSnapshot struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Base      string              `bson:"base" json:"base"`
	Spread    string              `bson:"spread" json:"spread"`
	UsdcInr   string              `bson:"usdc_inr" json:"usdcInr"`
	Source    string              `bson:"source" json:"source"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updatedAt"`
}

// AdminConfig is the single operator-owned pricing document. The rate
// refresher reads it and the admin endpoint writes it; nothing in the
// settlement pipeline touches it.
type AdminConfig struct {
	Id        string    `bson:"_id" json:"id"`
	FXBase    string    `bson:"fx_base" json:"fx_base"`
	FXSpread  string    `bson:"fx_spread" json:"fx_spread"`
	FeeBps    int64     `bson:"fee_bps" json:"fee_bps"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

const AdminConfigId = "config"
