package rates

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
)

// ConfigUpdate is a partial operator update; empty fields keep their
// current value.
type ConfigUpdate struct {
	FXBase   string `json:"fxBase"`
	FXSpread string `json:"fxSpread"`
	FeeBps   *int64 `json:"feeBps"`
}

// UpdateConfig applies an operator change to the pricing config and
// refreshes the served snapshot so the next quote already uses it.
func (s *Service) UpdateConfig(req ConfigUpdate, principal models.Principal) (*models.AdminConfig, error) {
	if principal.IsZero() {
		return nil, models.NewError(models.ErrorKindAuthentication, "authentication required")
	}
	if !principal.IsAdmin() {
		return nil, models.NewError(models.ErrorKindAuthorization, "operator role required")
	}

	config, err := s.readAdminConfig()
	if err == mongo.ErrNoDocuments {
		config = &models.AdminConfig{
			Id:       models.AdminConfigId,
			FXBase:   app.Config.Rates.DefaultFXBase,
			FXSpread: app.Config.Rates.DefaultFXSpread,
			FeeBps:   app.Config.Rates.DefaultFeeBps,
		}
	} else if err != nil {
		return nil, models.WrapError(models.ErrorKindInternal, err, "failed to load admin config")
	}

	if req.FXBase != "" {
		base, err := decimal.NewFromString(req.FXBase)
		if err != nil || !base.IsPositive() {
			return nil, models.NewError(models.ErrorKindValidation, "invalid fx base %q", req.FXBase)
		}
		config.FXBase = req.FXBase
	}
	if req.FXSpread != "" {
		spread, err := decimal.NewFromString(req.FXSpread)
		if err != nil || spread.IsNegative() || !spread.LessThan(decimal.NewFromInt(1)) {
			return nil, models.NewError(models.ErrorKindValidation, "invalid fx spread %q", req.FXSpread)
		}
		config.FXSpread = req.FXSpread
	}
	if req.FeeBps != nil {
		if *req.FeeBps < 0 || *req.FeeBps > 10000 {
			return nil, models.NewError(models.ErrorKindValidation, "fee bps must be between 0 and 10000")
		}
		config.FeeBps = *req.FeeBps
	}
	config.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"fx_base":    config.FXBase,
		"fx_spread":  config.FXSpread,
		"fee_bps":    config.FeeBps,
		"updated_at": config.UpdatedAt,
	}}
	if err := app.DB.UpsertOne(models.CollectionAdminConfig, bson.M{"_id": models.AdminConfigId}, update); err != nil {
		return nil, models.WrapError(models.ErrorKindInternal, err, "failed to persist admin config")
	}

	log.WithField("actor_id", principal.Id).
		WithField("fee_bps", config.FeeBps).
		Info("[RATES] Admin config updated")

	s.Run()

	return config, nil
}
