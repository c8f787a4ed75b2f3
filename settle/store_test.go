package settle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
)

func newTestStore(t *testing.T, exposeExistence bool) (*Store, *app.MockDatabase) {
	app.Config.API.ExposeExistence = exposeExistence
	mockDB := app.NewMockDatabase(t)
	app.DB = mockDB
	return NewStore(), mockDB
}

func storedReceipt() *models.Receipt {
	return &models.Receipt{
		Id:             "receipt-1",
		IntentId:       testIntentId,
		Owner:          testOwner,
		TxHash:         testTxHash,
		AmountUSDC:     "100.000000",
		ShareToken:     "token-abc",
		ShareExpiresAt: time.Now().Add(time.Hour),
		CreatedAt:      time.Now(),
	}
}

func expectReceiptLookup(mockDB *app.MockDatabase, receipt *models.Receipt) {
	mockDB.EXPECT().FindOne(models.CollectionReceipts, bson.M{"_id": receipt.Id}, mock.Anything).
		Run(func(_ string, _ interface{}, result interface{}) {
			*result.(*models.Receipt) = *receipt
		}).Return(nil)
}

func TestGetReceipt(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)

		mockDB.EXPECT().FindOne(models.CollectionReceipts, bson.M{"_id": "missing"}, mock.Anything).
			Return(mongo.ErrNoDocuments)

		receipt, err := store.GetReceipt("missing", models.Principal{Id: testOwner}, "")

		assert.Nil(t, receipt)
		assert.True(t, models.IsKind(err, models.ErrorKindNotFound))
	})

	t.Run("Owner Can Read", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)
		expectReceiptLookup(mockDB, storedReceipt())

		receipt, err := store.GetReceipt("receipt-1", models.Principal{Id: testOwner, Role: models.RoleUser}, "")

		assert.NoError(t, err)
		assert.Equal(t, "receipt-1", receipt.Id)
	})

	t.Run("Admin Can Read", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)
		expectReceiptLookup(mockDB, storedReceipt())

		receipt, err := store.GetReceipt("receipt-1", models.Principal{Id: "ops-1", Role: models.RoleAdmin}, "")

		assert.NoError(t, err)
		assert.Equal(t, "receipt-1", receipt.Id)
	})

	t.Run("Valid Share Token Allows Anonymous Read", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)
		expectReceiptLookup(mockDB, storedReceipt())

		receipt, err := store.GetReceipt("receipt-1", models.Principal{}, "token-abc")

		assert.NoError(t, err)
		assert.Equal(t, "receipt-1", receipt.Id)
	})

	t.Run("Expired Share Token Is Refused", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)
		expired := storedReceipt()
		expired.ShareExpiresAt = time.Now().Add(-time.Hour)
		expectReceiptLookup(mockDB, expired)

		receipt, err := store.GetReceipt("receipt-1", models.Principal{}, "token-abc")

		assert.Nil(t, receipt)
		assert.True(t, models.IsKind(err, models.ErrorKindNotFound))
	})

	t.Run("Non Owner Gets Not Found By Default", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)
		expectReceiptLookup(mockDB, storedReceipt())

		receipt, err := store.GetReceipt("receipt-1", models.Principal{Id: "user-2", Role: models.RoleUser}, "")

		assert.Nil(t, receipt)
		assert.True(t, models.IsKind(err, models.ErrorKindNotFound))
	})

	t.Run("Non Owner Gets Forbidden When Existence Is Exposed", func(t *testing.T) {
		store, mockDB := newTestStore(t, true)
		expectReceiptLookup(mockDB, storedReceipt())

		receipt, err := store.GetReceipt("receipt-1", models.Principal{Id: "user-2", Role: models.RoleUser}, "")

		assert.Nil(t, receipt)
		assert.True(t, models.IsKind(err, models.ErrorKindAuthorization))
	})

	t.Run("Anonymous Without Token Gets Not Found", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)
		expectReceiptLookup(mockDB, storedReceipt())

		receipt, err := store.GetReceipt("receipt-1", models.Principal{}, "")

		assert.Nil(t, receipt)
		assert.True(t, models.IsKind(err, models.ErrorKindNotFound))
	})
}

func TestListReceipts(t *testing.T) {
	t.Run("Requires Authentication", func(t *testing.T) {
		store, _ := newTestStore(t, false)

		receipts, err := store.ListReceipts(models.Principal{})

		assert.Nil(t, receipts)
		assert.True(t, models.IsKind(err, models.ErrorKindAuthentication))
	})

	t.Run("Returns Owner History", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)

		mockDB.EXPECT().FindMany(models.CollectionReceipts, bson.M{"owner": testOwner}, mock.Anything).
			Run(func(_ string, _ interface{}, result interface{}) {
				*result.(*[]models.Receipt) = []models.Receipt{*storedReceipt()}
			}).Return(nil)

		receipts, err := store.ListReceipts(models.Principal{Id: testOwner, Role: models.RoleUser})

		assert.NoError(t, err)
		assert.Len(t, receipts, 1)
	})

	t.Run("Newest Receipts Come First", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)

		now := time.Now()
		older := *storedReceipt()
		older.Id = "receipt-old"
		older.CreatedAt = now.Add(-time.Hour)
		newer := *storedReceipt()
		newer.Id = "receipt-new"
		newer.CreatedAt = now

		mockDB.EXPECT().FindMany(models.CollectionReceipts, bson.M{"owner": testOwner}, mock.Anything).
			Run(func(_ string, _ interface{}, result interface{}) {
				*result.(*[]models.Receipt) = []models.Receipt{older, newer}
			}).Return(nil)

		receipts, err := store.ListReceipts(models.Principal{Id: testOwner, Role: models.RoleUser})

		assert.NoError(t, err)
		assert.Len(t, receipts, 2)
		assert.Equal(t, "receipt-new", receipts[0].Id)
		assert.Equal(t, "receipt-old", receipts[1].Id)
	})

	t.Run("Empty History Is An Empty Slice", func(t *testing.T) {
		store, mockDB := newTestStore(t, false)

		mockDB.EXPECT().FindMany(models.CollectionReceipts, bson.M{"owner": testOwner}, mock.Anything).
			Return(nil)

		receipts, err := store.ListReceipts(models.Principal{Id: testOwner, Role: models.RoleUser})

		assert.NoError(t, err)
		assert.NotNil(t, receipts)
		assert.Len(t, receipts, 0)
	})
}
