package models

import (
	"time"
)

const (
	CollectionAuditLogs = "auditlogs"
)

// audit actions
const (
	AuditActionRemitConfirmed  = "REMIT_CONFIRMED"
	AuditActionRemitFraudBlock = "REMIT_FRAUD_BLOCKED"
)

type AuditLog struct {
	Id        string                 `bson:"_id" json:"id"`
	ActorId   string                 `bson:"actor_id" json:"actorId"`
	Action    string                 `bson:"action" json:"action"`
	Payload   map[string]interface{} `bson:"payload" json:"payload"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
}
