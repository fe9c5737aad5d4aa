package bookingRepo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildListQuery_Empty(t *testing.T) {
	query := buildListQuery(ListFilter{})
	if len(query) != 0 {
		t.Errorf("empty filter built non-empty query: %v", query)
	}
}

func TestBuildListQuery_StatusAndPayment(t *testing.T) {
	query := buildListQuery(ListFilter{Status: "confirmed", PaymentStatus: "paid"})
	if query["status"] != "confirmed" {
		t.Errorf("status clause = %v", query["status"])
	}
	if query["payment.status"] != "paid" {
		t.Errorf("payment.status clause = %v", query["payment.status"])
	}
}

func TestBuildListQuery_Search(t *testing.T) {
	query := buildListQuery(ListFilter{Search: "delhi"})
	clauses, ok := query["$or"].([]bson.M)
	if !ok {
		t.Fatalf("search did not build an $or clause: %v", query)
	}
	if len(clauses) != 4 {
		t.Fatalf("search spans %d fields, want 4", len(clauses))
	}
	fields := map[string]bool{}
	for _, clause := range clauses {
		for field, cond := range clause {
			fields[field] = true
			regex, ok := cond.(bson.M)
			if !ok || regex["$regex"] != "delhi" || regex["$options"] != "i" {
				t.Errorf("field %s condition = %v, want case-insensitive regex", field, cond)
			}
		}
	}
	for _, want := range []string{"bookingId", "customer.name", "customer.phone", "trip.route"} {
		if !fields[want] {
			t.Errorf("search does not cover %s", want)
		}
	}
}
