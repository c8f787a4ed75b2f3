package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestUpdateConfig(t *testing.T) {
	operator := models.Principal{Id: "ops-1", Role: models.RoleAdmin}

	t.Run("Requires Authentication", func(t *testing.T) {
		s := &Service{}

		config, err := s.UpdateConfig(ConfigUpdate{FXBase: "84.00"}, models.Principal{})

		assert.Nil(t, config)
		assert.True(t, models.IsKind(err, models.ErrorKindAuthentication))
	})

	t.Run("Requires Operator Role", func(t *testing.T) {
		s := &Service{}

		config, err := s.UpdateConfig(ConfigUpdate{FXBase: "84.00"}, models.Principal{Id: "user-1", Role: models.RoleUser})

		assert.Nil(t, config)
		assert.True(t, models.IsKind(err, models.ErrorKindAuthorization))
	})

	t.Run("Updates And Refreshes Snapshot", func(t *testing.T) {
		mockDB := app.NewMockDatabase(t)
		app.DB = mockDB

		stored := *adminConfig()
		mockDB.EXPECT().FindOne(models.CollectionAdminConfig, bson.M{"_id": models.AdminConfigId}, mock.Anything).
			Run(func(_ string, _ interface{}, result interface{}) {
				*result.(*models.AdminConfig) = stored
			}).Return(nil)
		mockDB.EXPECT().UpsertOne(models.CollectionAdminConfig, bson.M{"_id": models.AdminConfigId}, mock.Anything).
			Run(func(_ string, _ interface{}, update interface{}) {
				set := update.(bson.M)["$set"].(bson.M)
				stored.FXBase = set["fx_base"].(string)
				stored.FXSpread = set["fx_spread"].(string)
				stored.FeeBps = set["fee_bps"].(int64)
			}).Return(nil)
		mockDB.EXPECT().InsertOne(models.CollectionRates, mock.Anything).Return(nil)

		s := &Service{}
		config, err := s.UpdateConfig(ConfigUpdate{FXBase: "84.00", FeeBps: int64Ptr(30)}, operator)

		assert.NoError(t, err)
		assert.Equal(t, "84.00", config.FXBase)
		assert.Equal(t, "0.005", config.FXSpread)
		assert.Equal(t, int64(30), config.FeeBps)

		snapshot := s.Latest()
		assert.Equal(t, "84.42", snapshot.UsdcInr)
		assert.Equal(t, int64(30), s.FeeBps())
	})

	t.Run("Rejects Bad Base", func(t *testing.T) {
		mockDB := app.NewMockDatabase(t)
		app.DB = mockDB
		expectAdminConfig(mockDB, adminConfig())

		s := &Service{}
		config, err := s.UpdateConfig(ConfigUpdate{FXBase: "-84"}, operator)

		assert.Nil(t, config)
		assert.True(t, models.IsKind(err, models.ErrorKindValidation))
	})

	t.Run("Rejects Out Of Range Spread", func(t *testing.T) {
		mockDB := app.NewMockDatabase(t)
		app.DB = mockDB
		expectAdminConfig(mockDB, adminConfig())

		s := &Service{}
		config, err := s.UpdateConfig(ConfigUpdate{FXSpread: "1.5"}, operator)

		assert.Nil(t, config)
		assert.True(t, models.IsKind(err, models.ErrorKindValidation))
	})

	t.Run("Rejects Out Of Range Fee", func(t *testing.T) {
		mockDB := app.NewMockDatabase(t)
		app.DB = mockDB
		expectAdminConfig(mockDB, adminConfig())

		s := &Service{}
		config, err := s.UpdateConfig(ConfigUpdate{FeeBps: int64Ptr(20000)}, operator)

		assert.Nil(t, config)
		assert.True(t, models.IsKind(err, models.ErrorKindValidation))
	})

	t.Run("Starts From Defaults When Config Is Missing", func(t *testing.T) {
		app.Config.Rates.DefaultFXBase = "83.00"
		app.Config.Rates.DefaultFXSpread = "0.005"
		app.Config.Rates.DefaultFeeBps = 25

		mockDB := app.NewMockDatabase(t)
		app.DB = mockDB

		mockDB.EXPECT().FindOne(models.CollectionAdminConfig, bson.M{"_id": models.AdminConfigId}, mock.Anything).
			Return(mongo.ErrNoDocuments)
		mockDB.EXPECT().UpsertOne(models.CollectionAdminConfig, bson.M{"_id": models.AdminConfigId}, mock.Anything).
			Return(nil)

		s := &Service{}
		config, err := s.UpdateConfig(ConfigUpdate{FeeBps: int64Ptr(40)}, operator)

		assert.NoError(t, err)
		assert.Equal(t, "83.00", config.FXBase)
		assert.Equal(t, int64(40), config.FeeBps)
	})
}
