package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBillFlow_FilterAndTotals(t *testing.T) {
	app := setupApp(t)
	access := app.sessionFor(t, "payer", false)

	create := func(title string, amount int, paid bool) {
		body := fmt.Sprintf(`{"title":%q,"amount":%d,"due_date":%q,"is_paid":%t}`, title, amount, today(), paid)
		rec := app.request("POST", "/bills/", body, access)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s failed: %d %s", title, rec.Code, rec.Body.String())
		}
	}
	create("Electricity", 200, true)
	create("Water", 150, true)
	create("Internet", 40, false)

	// is_paid filter narrows the listing
	rec := app.request("GET", "/bills/?is_paid=false", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list failed: %d %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 unpaid bill, got %d", len(data))
	}
	if data[0].(map[string]interface{})["title"] != "Internet" {
		t.Errorf("wrong unpaid bill: %v", data[0])
	}

	// Pending mirrors the unpaid filter
	rec = app.request("GET", "/bills/pending_bills/", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("pending failed: %d %s", rec.Code, rec.Body.String())
	}
	if pending := parseJSON(t, rec)["data"].([]interface{}); len(pending) != 1 {
		t.Errorf("expected 1 pending bill, got %d", len(pending))
	}

	// Totals split by payment state
	checks := []struct {
		path string
		key  string
		want float64
	}{
		{"/bills/total_paid_bills/", "total_paid_bills", 350},
		{"/bills/total_unpaid_bills/", "total_unpaid_bills", 40},
		{"/bills/total_bills/", "total_bills", 390},
	}
	for _, check := range checks {
		rec = app.request("GET", check.path, "", access)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s failed: %d %s", check.path, rec.Code, rec.Body.String())
		}
		if got := parseJSON(t, rec)[check.key].(float64); got != check.want {
			t.Errorf("expected %s %v, got %v", check.key, check.want, got)
		}
	}
}

func TestBillFlow_AcceptsNonPositiveAmounts(t *testing.T) {
	app := setupApp(t)
	access := app.sessionFor(t, "refunder", false)

	// A credit against a bill is a valid entry; positivity is only
	// enforced for transactions and sales.
	body := fmt.Sprintf(`{"title":"Overpayment credit","amount":-500,"due_date":%q}`, today())
	rec := app.request("POST", "/bills/", body, access)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for negative amount, got %d: %s", rec.Code, rec.Body.String())
	}
	if created := parseJSON(t, rec); created["amount"].(float64) != -500 {
		t.Errorf("expected amount -500, got %v", created["amount"])
	}

	body = fmt.Sprintf(`{"title":"Waived fee","amount":0,"due_date":%q}`, today())
	rec = app.request("POST", "/bills/", body, access)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for zero amount, got %d: %s", rec.Code, rec.Body.String())
	}

	// Totals include the negative entry
	rec = app.request("GET", "/bills/total_unpaid_bills/", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("total failed: %d %s", rec.Code, rec.Body.String())
	}
	if got := parseJSON(t, rec)["total_unpaid_bills"].(float64); got != -500 {
		t.Errorf("expected total_unpaid_bills -500, got %v", got)
	}
}

func TestBillFlow_MarkPaid(t *testing.T) {
	app := setupApp(t)
	access := app.sessionFor(t, "settler", false)

	body := fmt.Sprintf(`{"title":"Rent","amount":900,"due_date":%q}`, today())
	rec := app.request("POST", "/bills/", body, access)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)
	if created["is_paid"] != false {
		t.Errorf("expected new bill to default to unpaid, got %v", created["is_paid"])
	}
	id := created["id"].(float64)

	rec = app.request("PATCH", fmt.Sprintf("/bills/%d/", int(id)), `{"is_paid":true}`, access)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark paid failed: %d %s", rec.Code, rec.Body.String())
	}
	if updated := parseJSON(t, rec); updated["is_paid"] != true {
		t.Errorf("expected bill to be paid, got %v", updated["is_paid"])
	}

	rec = app.request("GET", "/bills/pending_bills/", "", access)
	if pending := parseJSON(t, rec)["data"].([]interface{}); len(pending) != 0 {
		t.Errorf("expected no pending bills after payment, got %d", len(pending))
	}
}
