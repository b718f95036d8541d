package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type feeDoc struct {
	Wilaya string  `bson:"wilaya"`
	Fee    float64 `bson:"fee"`
}

type orderDoc struct {
	UserID    string    `bson:"user_id"`
	Total     float64   `bson:"total"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"created_at"`
}

type userDoc struct {
	Email     string       `bson:"email"`
	Addresses []addressDoc `bson:"addresses"`
}

type addressDoc struct {
	Label  string `bson:"label"`
	Street string `bson:"street"`
}

func TestMemoryInsertAndFindByID(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	id, err := mem.InsertOne(ctx, "deliveryfee", feeDoc{Wilaya: "Alger", Fee: 400})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	filter, err := ByID(id)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}

	var got feeDoc
	if err := mem.FindOne(ctx, "deliveryfee", filter, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Wilaya != "Alger" || got.Fee != 400 {
		t.Fatalf("got %+v", got)
	}
}

func TestMemoryFindOneNotFound(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	var got feeDoc
	err := mem.FindOne(ctx, "deliveryfee", bson.M{"wilaya": "Oran"}, &got)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCaseInsensitiveExactMatch(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if _, err := mem.InsertOne(ctx, "deliveryfee", feeDoc{Wilaya: "Tizi Ouzou", Fee: 550}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var got feeDoc
	if err := mem.FindOne(ctx, "deliveryfee", bson.M{"wilaya": ExactInsensitive("tizi ouzou")}, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Fee != 550 {
		t.Fatalf("fee = %v", got.Fee)
	}

	// Exact means exact: a prefix must not match.
	err := mem.FindOne(ctx, "deliveryfee", bson.M{"wilaya": ExactInsensitive("tizi")}, &got)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for prefix, got %v", err)
	}
}

func TestMemoryPriceRangeInclusive(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	for _, price := range []float64{999.99, 1000, 3000, 5000, 5000.01} {
		if _, err := mem.InsertOne(ctx, "product", bson.M{"price": price}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	var got []bson.M
	filter := bson.M{"price": bson.M{"$gte": 1000.0, "$lte": 5000.0}}
	if err := mem.Find(ctx, "product", filter, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 products in [1000, 5000], got %d", len(got))
	}
}

func TestMemoryOrFreeText(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	docs := []bson.M{
		{"title": "Lentilles journalières", "description": "", "brand": "FreshLook"},
		{"title": "Solution d'entretien", "description": "Pour LENTILLES souples", "brand": "B&L"},
		{"title": "Lunettes Aviator", "description": "UV400", "brand": "RayBest"},
	}
	for _, d := range docs {
		if _, err := mem.InsertOne(ctx, "product", d); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	filter := bson.M{"$or": []bson.M{
		{"title": ContainsInsensitive("lentille")},
		{"description": ContainsInsensitive("lentille")},
		{"brand": ContainsInsensitive("lentille")},
	}}

	var got []bson.M
	if err := mem.Find(ctx, "product", filter, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}

func TestMemoryElemMatch(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if _, err := mem.InsertOne(ctx, "doctor", bson.M{
		"name":        "Dr. Sara K.",
		"specialties": []string{"Ophtalmologie", "Pédiatrie"},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var got []bson.M
	filter := bson.M{"specialties": bson.M{"$elemMatch": ContainsInsensitive("ophtalmo")}}
	if err := mem.Find(ctx, "doctor", filter, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
}

func TestMemorySortDescAndLimit(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		doc := orderDoc{UserID: "u1", Total: float64(i), CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if _, err := mem.InsertOne(ctx, "order", doc); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	var got []orderDoc
	if err := mem.Find(ctx, "order", bson.M{"user_id": "u1"}, &got, SortDesc("created_at"), Limit(3)); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	if got[0].Total != 4 || got[1].Total != 3 || got[2].Total != 2 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestMemoryUpdateSet(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	id, err := mem.InsertOne(ctx, "order", orderDoc{UserID: "u1", Status: "en_preparation"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	filter, _ := ByID(id)

	res, err := mem.UpdateOne(ctx, "order", filter, bson.M{"$set": bson.M{"status": "livree"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Matched != 1 || res.Modified != 1 {
		t.Fatalf("result = %+v", res)
	}

	var got orderDoc
	if err := mem.FindOne(ctx, "order", filter, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Status != "livree" {
		t.Fatalf("status = %s", got.Status)
	}

	// Setting the same value again matches but modifies nothing.
	res, err = mem.UpdateOne(ctx, "order", filter, bson.M{"$set": bson.M{"status": "livree"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Matched != 1 || res.Modified != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestMemoryUpdateNoMatch(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	res, err := mem.UpdateOne(ctx, "order", bson.M{"user_id": "missing"}, bson.M{"$set": bson.M{"status": "livree"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Matched != 0 || res.Modified != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestMemoryPushAndPull(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	id, err := mem.InsertOne(ctx, "user", userDoc{Email: "a@b.dz", Addresses: []addressDoc{}})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	filter, _ := ByID(id)

	for _, label := range []string{"maison", "bureau"} {
		res, err := mem.UpdateOne(ctx, "user", filter,
			bson.M{"$push": bson.M{"addresses": addressDoc{Label: label, Street: "rue " + label}}})
		if err != nil {
			t.Fatalf("push: %v", err)
		}
		if res.Modified != 1 {
			t.Fatalf("push result = %+v", res)
		}
	}

	var got userDoc
	if err := mem.FindOne(ctx, "user", filter, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Addresses) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(got.Addresses))
	}

	res, err := mem.UpdateOne(ctx, "user", filter,
		bson.M{"$pull": bson.M{"addresses": bson.M{"label": "maison"}}})
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if res.Modified != 1 {
		t.Fatalf("pull result = %+v", res)
	}

	if err := mem.FindOne(ctx, "user", filter, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Addresses) != 1 || got.Addresses[0].Label != "bureau" {
		t.Fatalf("addresses = %+v", got.Addresses)
	}

	// Pulling a label that no longer exists matches the user but modifies nothing.
	res, err = mem.UpdateOne(ctx, "user", filter,
		bson.M{"$pull": bson.M{"addresses": bson.M{"label": "maison"}}})
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if res.Matched != 1 || res.Modified != 0 {
		t.Fatalf("pull result = %+v", res)
	}
}

func TestMemoryDeleteOne(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	id, err := mem.InsertOne(ctx, "product", bson.M{"title": "X"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	filter, _ := ByID(id)

	deleted, err := mem.DeleteOne(ctx, "product", filter)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d", deleted)
	}

	deleted, err = mem.DeleteOne(ctx, "product", filter)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("second delete = %d", deleted)
	}
}

func TestMemoryCollectionNames(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if _, err := mem.InsertOne(ctx, "user", bson.M{"email": "a@b.dz"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := mem.InsertOne(ctx, "product", bson.M{"title": "X"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	names, err := mem.CollectionNames(ctx)
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if len(names) != 2 || names[0] != "product" || names[1] != "user" {
		t.Fatalf("names = %v", names)
	}
}

func TestByIDRejectsMalformedInput(t *testing.T) {
	if _, err := ByID("not-a-hex-id"); err == nil {
		t.Fatal("expected error for malformed identifier")
	}
}
