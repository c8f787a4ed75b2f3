package settle

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
)

// Store serves receipt reads. Receipts are immutable once written; only
// access control lives here.
type Store struct {
	exposeExistence bool
}

func NewStore() *Store {
	return &Store{
		exposeExistence: app.Config.API.ExposeExistence,
	}
}

// GetReceipt returns a receipt to its owner, an admin, or the bearer of a
// valid share token. By default non-owners get the same not-found answer as
// for a receipt that does not exist, so probing ids reveals nothing.
func (s *Store) GetReceipt(receiptId string, principal models.Principal, shareToken string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := app.DB.FindOne(models.CollectionReceipts, bson.M{"_id": receiptId}, &receipt)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewError(models.ErrorKindNotFound, "receipt not found")
	}
	if err != nil {
		return nil, models.WrapError(models.ErrorKindInternal, err, "failed to load receipt")
	}

	if receipt.Owner == principal.Id && !principal.IsZero() {
		return &receipt, nil
	}
	if principal.IsAdmin() {
		return &receipt, nil
	}
	if receipt.ShareTokenValid(shareToken, time.Now()) {
		return &receipt, nil
	}

	if s.exposeExistence {
		return nil, models.NewError(models.ErrorKindAuthorization, "not allowed to view this receipt")
	}
	return nil, models.NewError(models.ErrorKindNotFound, "receipt not found")
}

// ListReceipts returns the caller's settlement history, newest first.
func (s *Store) ListReceipts(principal models.Principal) ([]models.Receipt, error) {
	if principal.IsZero() {
		return nil, models.NewError(models.ErrorKindAuthentication, "authentication required")
	}

	var receipts []models.Receipt
	err := app.DB.FindMany(models.CollectionReceipts, bson.M{"owner": principal.Id}, &receipts)
	if err != nil {
		return nil, models.WrapError(models.ErrorKindInternal, err, "failed to list receipts")
	}
	if receipts == nil {
		receipts = []models.Receipt{}
	}
	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].CreatedAt.After(receipts[j].CreatedAt)
	})
	return receipts, nil
}
