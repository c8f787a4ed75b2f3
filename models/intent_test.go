package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntentReceiver(t *testing.T) {
	t.Run("Address Wins", func(t *testing.T) {
		i := &Intent{ReceiverAddress: "0xabc", ReceiverPhone: "+911234567890", ENSName: "friend.eth"}
		assert.Equal(t, "0xabc", i.Receiver())
	})

	t.Run("Phone", func(t *testing.T) {
		i := &Intent{ReceiverPhone: "+911234567890"}
		assert.Equal(t, "+911234567890", i.Receiver())
	})

	t.Run("ENS", func(t *testing.T) {
		i := &Intent{ENSName: "friend.eth"}
		assert.Equal(t, "friend.eth", i.Receiver())
	})
}

func TestIntentTerminal(t *testing.T) {
	assert.False(t, (&Intent{Status: IntentStatusPending}).Terminal())
	assert.True(t, (&Intent{Status: IntentStatusConfirmed}).Terminal())
	assert.True(t, (&Intent{Status: IntentStatusFailed}).Terminal())
	assert.True(t, (&Intent{Status: IntentStatusExpired}).Terminal())
}

func TestIntentExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Intent{ExpiresAt: now.Add(time.Minute)}).Expired(now))
	assert.True(t, (&Intent{ExpiresAt: now.Add(-time.Minute)}).Expired(now))
}

func TestReceiptFraudScore(t *testing.T) {
	r := &Receipt{FraudFlags: []FraudFlag{{Score: 50}, {Score: 40}}}
	assert.Equal(t, int64(90), r.FraudScore())
	assert.Equal(t, int64(0), (&Receipt{}).FraudScore())
}

func TestReceiptShareTokenValid(t *testing.T) {
	now := time.Now()
	r := &Receipt{ShareToken: "token", ShareExpiresAt: now.Add(time.Hour)}

	assert.True(t, r.ShareTokenValid("token", now))
	assert.False(t, r.ShareTokenValid("other", now))
	assert.False(t, r.ShareTokenValid("", now))
	assert.False(t, r.ShareTokenValid("token", now.Add(2*time.Hour)))
}
