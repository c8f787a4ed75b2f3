package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
	"github.com/remitchain/remitd/rates"
	log "github.com/sirupsen/logrus"
)

// Engine prices prospective transfers against the latest rate snapshot.
// Quotes are pure reads plus identity generation; they carry no settlement
// authority and never touch intent or receipt state.
type Engine struct {
	rates rates.Source
	ttl   time.Duration
}

func NewEngine(source rates.Source) *Engine {
	return &Engine{
		rates: source,
		ttl:   time.Duration(app.Config.Quote.TTLSecs) * time.Second,
	}
}

func (e *Engine) GetQuote(amountUSDC string, corridor string) (*models.Quote, error) {
	if corridor == "" {
		corridor = models.CorridorUSDCINR
	}
	if !models.SupportedCorridors[corridor] {
		return nil, models.NewError(models.ErrorKindValidation, "unsupported corridor %q", corridor)
	}

	amount, err := models.ParseUSDC(amountUSDC)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, models.NewError(models.ErrorKindValidation, "amount must be positive")
	}

	snapshot := e.rates.Latest()
	fx, err := decimal.NewFromString(snapshot.UsdcInr)
	if err != nil || !fx.IsPositive() {
		return nil, models.NewError(models.ErrorKindInternal, "no usable rate snapshot")
	}

	// fee schedule: proportional basis-point component per corridor
	feeBps := decimal.NewFromInt(e.rates.FeeBps())
	fee := amount.Mul(feeBps).Div(decimal.NewFromInt(10000)).Round(models.USDCDecimals)
	total := amount.Add(fee)
	netINR := models.RoundINR(amount.Mul(fx))

	now := time.Now()
	quote := &models.Quote{
		QuoteId:    uuid.New().String(),
		AmountUSDC: models.FormatUSDC(amount),
		FeeUSDC:    models.FormatUSDC(fee),
		TotalUSDC:  models.FormatUSDC(total),
		FX:         snapshot.UsdcInr,
		NetINR:     models.FormatINR(netINR),
		Corridor:   corridor,
		RateSource: snapshot.Source,
		ExpiresAt:  now.Add(e.ttl),
		CreatedAt:  now,
	}

	// audit only; a failed write does not invalidate the quote
	if err := app.DB.InsertOne(models.CollectionQuotes, quote); err != nil {
		log.Error("[QUOTE] Error persisting quote: ", err)
	}

	log.WithField("quote_id", quote.QuoteId).
		WithField("net_inr", quote.NetINR).
		Debug("[QUOTE] Quote generated")

	return quote, nil
}
