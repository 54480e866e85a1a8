package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/adapter/http/dto"
	"github.com/okhan/bookledger/internal/domain"
	"github.com/okhan/bookledger/tests/testutil"
)

func TestPartyLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	router, _ := newTestRouter(t, testDB)

	t.Run("create get update delete", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		body, _ := json.Marshal(dto.CreatePartyRequest{
			Role:  "customer",
			Name:  "Hamid Khan",
			Phone: "0300-1234567",
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/parties", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created dto.PartyResponse
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if !created.Balance.IsZero() {
			t.Errorf("expected zero opening balance, got %s", created.Balance)
		}

		path := "/api/v1/parties/" + strconv.FormatInt(created.ID, 10)

		// Get
		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var fetched dto.PartyResponse
		if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if fetched.Name != "Hamid Khan" || fetched.Phone != "0300-1234567" {
			t.Errorf("unexpected party: %+v", fetched)
		}

		// Update contact details
		updateBody, _ := json.Marshal(dto.UpdatePartyRequest{
			Name:    "Hamid Khan",
			Phone:   "0300-7654321",
			Address: "Shop 12, Urdu Bazaar",
		})

		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodPut, path, bytes.NewReader(updateBody))
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var updated dto.PartyResponse
		if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if updated.Phone != "0300-7654321" || updated.Address != "Shop 12, Urdu Bazaar" {
			t.Errorf("update not applied: %+v", updated)
		}

		// Delete
		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodDelete, path, nil)
		router.ServeHTTP(w, r)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}

		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, r)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", w.Code)
		}
	})

	t.Run("list filters by role and search", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		testDB.CreateTestParty(ctx, domain.RoleCustomer, "Hamid Khan")
		testDB.CreateTestParty(ctx, domain.RoleCustomer, "Bilal Ahmed")
		testDB.CreateTestParty(ctx, domain.RoleSupplier, "Paramount Books")

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/parties?role=customer", nil)
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var list dto.ListPartiesResponse
		if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(list.Parties) != 2 {
			t.Fatalf("expected 2 customers, got %d", len(list.Parties))
		}

		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, "/api/v1/parties?role=customer&search_by=name&search=hamid", nil)
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(list.Parties) != 1 || list.Parties[0].Name != "Hamid Khan" {
			t.Fatalf("expected the searched customer, got %+v", list.Parties)
		}
	})

	t.Run("log survives party deletion", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		customer := testDB.CreateTestPartyWithBalance(ctx, domain.RoleCustomer, "Hamid Khan", decimal.NewFromInt(200))

		body, _ := json.Marshal(dto.SettleUpRequest{
			PartyID:   customer.ID,
			Role:      "customer",
			Direction: "customer_paid_shop",
			Amount:    decimal.NewFromInt(50),
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/settle-up", bytes.NewReader(body))
		router.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("settle-up failed: %d", w.Code)
		}

		path := "/api/v1/parties/" + strconv.FormatInt(customer.ID, 10)

		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodDelete, path, nil)
		router.ServeHTTP(w, r)
		if w.Code != http.StatusNoContent {
			t.Fatalf("delete failed: %d", w.Code)
		}

		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, path+"/transactions", nil)
		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var txns dto.ListTransactionsResponse
		if err := json.Unmarshal(w.Body.Bytes(), &txns); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(txns.Transactions) != 1 {
			t.Fatalf("expected the entry to survive deletion, got %d entries", len(txns.Transactions))
		}
	})
}
