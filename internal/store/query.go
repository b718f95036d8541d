package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultProductLimit caps catalogue listings when no limit is requested.
// There is no pagination cursor; this is a stated limitation of the API.
const DefaultProductLimit = 50

// ContainsInsensitive matches strings containing value, ignoring case.
// The value is treated as a literal substring, not a pattern.
func ContainsInsensitive(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}

// ExactInsensitive matches strings equal to value, ignoring case.
func ExactInsensitive(value string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(value) + "$", "$options": "i"}
}

// ProductQuery collects the optional catalogue search parameters. A zero
// field excludes that dimension from the filter entirely.
type ProductQuery struct {
	Q          string
	Category   string
	Brand      string
	Color      string
	FrameShape string
	Type       string
	PriceMin   *float64
	PriceMax   *float64
	Limit      int64
}

// Filter builds the store filter expression: exact-match dimensions and the
// inclusive price range combine with AND, and the free-text query matches
// title, description or brand as a case-insensitive substring.
func (q ProductQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}
	if q.Color != "" {
		filter["color"] = q.Color
	}
	if q.FrameShape != "" {
		filter["frame_shape"] = q.FrameShape
	}
	if q.Type != "" {
		filter["type"] = q.Type
	}

	if q.PriceMin != nil || q.PriceMax != nil {
		price := bson.M{}
		if q.PriceMin != nil {
			price["$gte"] = *q.PriceMin
		}
		if q.PriceMax != nil {
			price["$lte"] = *q.PriceMax
		}
		filter["price"] = price
	}

	if q.Q != "" {
		filter["$or"] = []bson.M{
			{"title": ContainsInsensitive(q.Q)},
			{"description": ContainsInsensitive(q.Q)},
			{"brand": ContainsInsensitive(q.Q)},
		}
	}

	return filter
}

// ResultLimit returns the requested limit, or the default cap.
func (q ProductQuery) ResultLimit() int64 {
	if q.Limit <= 0 {
		return DefaultProductLimit
	}
	return q.Limit
}

// DoctorQuery collects the optional doctor search parameters.
type DoctorQuery struct {
	Q string
}

// Filter matches doctors whose name, address or any specialty contains the
// query, ignoring case.
func (q DoctorQuery) Filter() bson.M {
	if q.Q == "" {
		return bson.M{}
	}
	return bson.M{"$or": []bson.M{
		{"name": ContainsInsensitive(q.Q)},
		{"address": ContainsInsensitive(q.Q)},
		{"specialties": bson.M{"$elemMatch": ContainsInsensitive(q.Q)}},
	}}
}
