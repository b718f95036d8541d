package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/store"
)

func TestGetFee(t *testing.T) {
	app, mem := newTestApp(t)
	for _, fee := range []models.DeliveryFee{
		{Wilaya: "Alger", Fee: 400},
		{Wilaya: "Oran", Fee: 500},
	} {
		if _, err := mem.InsertOne(context.Background(), store.ColDeliveryFees, fee); err != nil {
			t.Fatalf("insert fee: %v", err)
		}
	}

	// Case-insensitive exact match.
	resp := doRequest(t, app, http.MethodGet, "/delivery/fee?wilaya=alger", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Wilaya string  `json:"wilaya"`
		Fee    float64 `json:"fee"`
	}
	decodeBody(t, resp, &body)
	if body.Wilaya != "Alger" || body.Fee != 400 {
		t.Fatalf("body = %+v", body)
	}

	// Prefixes do not match.
	resp = doRequest(t, app, http.MethodGet, "/delivery/fee?wilaya=Alg", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("prefix lookup status = %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/delivery/fee?wilaya=Tamanrasset", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown wilaya status = %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/delivery/fee", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing wilaya status = %d", resp.StatusCode)
	}
}

func TestListFees(t *testing.T) {
	app, mem := newTestApp(t)
	if _, err := mem.InsertOne(context.Background(), store.ColDeliveryFees,
		models.DeliveryFee{Wilaya: "Alger", Fee: 400}); err != nil {
		t.Fatalf("insert fee: %v", err)
	}

	resp := doRequest(t, app, http.MethodGet, "/delivery/fees", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var fees []models.DeliveryFee
	decodeBody(t, resp, &fees)
	if len(fees) != 1 || fees[0].Wilaya != "Alger" {
		t.Fatalf("fees = %+v", fees)
	}
}
