package rates

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
)

const (
	RateRefresherName = "rate refresher"

	defaultProviderURL = "https://api.exchangerate-api.com/v4/latest/USD"
)

// Source is the read-only view of pricing the settlement pipeline uses.
// The pipeline never mutates rates; refresh is owned by the rate service
// alone.
type Source interface {
	Latest() models.RateSnapshot
	FeeBps() int64
}

type Service struct {
	mu       sync.RWMutex
	snapshot models.RateSnapshot
	feeBps   int64

	httpClient  *http.Client
	providerURL string
	liveEnabled bool
}

func NewService() *Service {
	providerURL := app.Config.Rates.ProviderURL
	if providerURL == "" {
		providerURL = defaultProviderURL
	}

	s := &Service{
		httpClient: &http.Client{
			Timeout: time.Duration(app.Config.Rates.ProviderTimeoutMillis) * time.Millisecond,
		},
		providerURL: providerURL,
		liveEnabled: app.Config.Rates.LiveEnabled,
		feeBps:      app.Config.Rates.DefaultFeeBps,
	}

	s.seedAdminConfig()
	s.Run()

	return s
}

func (s *Service) Latest() models.RateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}

func (s *Service) FeeBps() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.feeBps
}

// Run refreshes the cached snapshot from the operator config, optionally
// overlaying a live provider rate. Implements app.Runner.
func (s *Service) Run() {
	config, err := s.readAdminConfig()
	if err != nil {
		log.Error("[RATES] Error reading admin config: ", err)
		return
	}

	base, err := decimal.NewFromString(config.FXBase)
	if err != nil {
		log.Error("[RATES] Invalid fx base in admin config: ", err)
		return
	}
	spread, err := decimal.NewFromString(config.FXSpread)
	if err != nil {
		log.Error("[RATES] Invalid fx spread in admin config: ", err)
		return
	}

	source := models.RateSourceConfig
	if s.liveEnabled {
		if liveRate, liveErr := s.fetchLiveRate(); liveErr != nil {
			log.Warn("[RATES] Live rate fetch failed, falling back to config: ", liveErr)
		} else {
			base = liveRate
			source = models.RateSourceLive
		}
	}

	usdcInr := applySpread(base, spread)

	snapshot := models.RateSnapshot{
		Base:      base.StringFixed(models.INRDecimals),
		Spread:    spread.String(),
		UsdcInr:   usdcInr.StringFixed(models.INRDecimals),
		Source:    source,
		UpdatedAt: time.Now(),
	}

	if err := app.DB.InsertOne(models.CollectionRates, snapshot); err != nil {
		log.Error("[RATES] Error persisting rate snapshot: ", err)
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.feeBps = config.FeeBps
	s.mu.Unlock()

	log.Debug("[RATES] Refreshed rate snapshot: ", snapshot.UsdcInr, " (", source, ")")
}

// applySpread marks up the base rate by the fractional spread.
func applySpread(base decimal.Decimal, spread decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Add(spread))
}

func (s *Service) readAdminConfig() (*models.AdminConfig, error) {
	var config models.AdminConfig
	err := app.DB.FindOne(models.CollectionAdminConfig, bson.M{"_id": models.AdminConfigId}, &config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (s *Service) seedAdminConfig() {
	var config models.AdminConfig
	err := app.DB.FindOne(models.CollectionAdminConfig, bson.M{"_id": models.AdminConfigId}, &config)
	if err == nil {
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Error("[RATES] Error reading admin config: ", err)
		return
	}

	log.Info("[RATES] Seeding default admin config")
	seed := models.AdminConfig{
		Id:        models.AdminConfigId,
		FXBase:    app.Config.Rates.DefaultFXBase,
		FXSpread:  app.Config.Rates.DefaultFXSpread,
		FeeBps:    app.Config.Rates.DefaultFeeBps,
		UpdatedAt: time.Now(),
	}
	if err := app.DB.InsertOne(models.CollectionAdminConfig, seed); err != nil && !mongo.IsDuplicateKeyError(err) {
		log.Error("[RATES] Error seeding admin config: ", err)
	}
}

type providerResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (s *Service) fetchLiveRate() (decimal.Decimal, error) {
	resp, err := s.httpClient.Get(s.providerURL)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, models.NewError(models.ErrorKindInternal, "rate provider returned status %d", resp.StatusCode)
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, err
	}

	rate, ok := body.Rates["INR"]
	if !ok || rate <= 0 {
		return decimal.Zero, models.NewError(models.ErrorKindInternal, "rate provider returned invalid INR rate")
	}

	return decimal.NewFromFloat(rate), nil
}

// StaticSource serves a fixed snapshot; used in tests.
type StaticSource struct {
	Snapshot models.RateSnapshot
	Bps      int64
}

func (s *StaticSource) Latest() models.RateSnapshot {
	return s.Snapshot
}

func (s *StaticSource) FeeBps() int64 {
	return s.Bps
}
