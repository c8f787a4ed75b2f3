package app

import (
	"os"
	"sync"
	"time"

	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const HealthServiceName = "health"

// HealthService periodically posts the health of every running service to
// the database, keyed by hostname, so operators can watch a fleet of
// replicas from one collection.
type HealthService struct {
	wg       *sync.WaitGroup
	stop     chan bool
	hostname string
	interval time.Duration
	services []models.Service
}

func (b *HealthService) Stop() {
	log.Debug("[HEALTH] Stopping health")
	b.stop <- true
}

func (b *HealthService) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:         HealthServiceName,
		LastSyncTime: time.Now(),
		NextSyncTime: time.Now().Add(b.interval),
		Healthy:      true,
	}
}

func (b *HealthService) PostHealth() bool {
	log.Debug("[HEALTH] Posting health")

	serviceHealths := make([]models.ServiceHealth, 0, len(b.services))
	for _, service := range b.services {
		serviceHealths = append(serviceHealths, service.Health())
	}

	filter := bson.M{"hostname": b.hostname}
	update := bson.M{
		"$set": bson.M{
			"hostname":        b.hostname,
			"service_healths": serviceHealths,
			"updated_at":      time.Now(),
		},
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}

	err := DB.UpsertOne(models.CollectionHealthChecks, filter, update)
	if err != nil {
		log.Error("[HEALTH] Error posting health: ", err)
		return false
	}
	return true
}

func (b *HealthService) Start() {
	log.Debug("[HEALTH] Starting health")
	stop := false
	for !stop {
		b.PostHealth()

		select {
		case <-b.stop:
			stop = true
			log.Debug("[HEALTH] Stopped health")
		case <-time.After(b.interval):
		}
	}
	b.wg.Done()
}

func NewHealthCheck(wg *sync.WaitGroup, services []models.Service) models.Service {
	log.Debug("[HEALTH] Initializing health")

	hostname, err := os.Hostname()
	if err != nil {
		log.Warn("[HEALTH] Error reading hostname: ", err)
		hostname = "unknown"
	}

	b := &HealthService{
		wg:       wg,
		stop:     make(chan bool, 1),
		interval: time.Duration(Config.HealthCheck.IntervalMillis) * time.Millisecond,
		hostname: hostname,
		services: services,
	}

	log.Debug("[HEALTH] Initialized health")

	return b
}
