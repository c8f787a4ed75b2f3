package intent

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
)

const (
	IntentSweeperName = "intent sweeper"

	sweepLockResource = "intent-expiry-sweep"
)

// Sweeper moves overdue PENDING intents to EXPIRED. Expiry is also
// enforced at confirmation time; the sweep only keeps the ledger tidy for
// reporting. An exclusive lock keeps a fleet of replicas from sweeping
// concurrently.
type Sweeper struct{}

func NewSweeper() *Sweeper {
	return &Sweeper{}
}

// Run implements app.Runner.
func (s *Sweeper) Run() {
	lockId, err := app.DB.XLock(sweepLockResource)
	if err != nil {
		log.Debug("[INTENT SWEEPER] Could not acquire sweep lock, skipping: ", err)
		return
	}
	defer func() {
		if err := app.DB.Unlock(lockId); err != nil {
			log.Error("[INTENT SWEEPER] Error releasing sweep lock: ", err)
		}
	}()

	now := time.Now()
	filter := bson.M{
		"status":     models.IntentStatusPending,
		"expires_at": bson.M{"$lt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     models.IntentStatusExpired,
			"updated_at": now,
		},
	}

	expired, err := app.DB.UpdateMany(models.CollectionIntents, filter, update)
	if err != nil {
		log.Error("[INTENT SWEEPER] Error expiring intents: ", err)
		return
	}
	if expired > 0 {
		log.Info("[INTENT SWEEPER] Expired ", expired, " intents")
	}
}
