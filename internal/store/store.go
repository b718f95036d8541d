// Package store exposes the document-store operations the rest of the
// application is built on: insert, filtered find, field/array updates and
// deletes, each atomic at the single-document level only. There are no
// multi-document transactions; callers must not assume any.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names. These match the collections the platform has always
// used, so existing data remains readable.
const (
	ColUsers         = "user"
	ColProducts      = "product"
	ColDeliveryFees  = "deliveryfee"
	ColOrders        = "order"
	ColPrescriptions = "prescription"
	ColDoctors       = "doctor"
	ColAppointments  = "appointment"
	ColNotifications = "notification"
)

// ErrNotFound is returned when no document matches the given filter.
var ErrNotFound = errors.New("document not found")

// UpdateResult reports how many documents an update touched.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Store is the capability set every component persists through.
type Store interface {
	// InsertOne stores a document and returns its generated identifier.
	InsertOne(ctx context.Context, collection string, doc any) (string, error)
	// FindOne decodes the first matching document into out, or ErrNotFound.
	FindOne(ctx context.Context, collection string, filter bson.M, out any) error
	// Find decodes all matching documents into out, a pointer to a slice.
	Find(ctx context.Context, collection string, filter bson.M, out any, opts ...FindOption) error
	// UpdateOne applies a $set/$push/$pull update to the first match.
	UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M) (UpdateResult, error)
	// DeleteOne removes the first matching document.
	DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error)
	// CollectionNames lists the collections currently present.
	CollectionNames(ctx context.Context) ([]string, error)
}

type findOptions struct {
	limit    int64
	sortKey  string
	sortDesc bool
}

// FindOption tweaks a Find call.
type FindOption func(*findOptions)

// Limit caps the number of returned documents. Non-positive values are
// ignored.
func Limit(n int64) FindOption {
	return func(o *findOptions) {
		if n > 0 {
			o.limit = n
		}
	}
}

// SortDesc orders results by the given field, newest/highest first.
func SortDesc(field string) FindOption {
	return func(o *findOptions) {
		o.sortKey = field
		o.sortDesc = true
	}
}

// ByID builds a filter matching the document with the given identifier.
// The identifier must be a valid ObjectID hex string.
func ByID(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid identifier %q", id)
	}
	return bson.M{"_id": oid}, nil
}
