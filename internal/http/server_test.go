package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budgetbuddy/internal/services"
	"budgetbuddy/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st := memory.New()
	ledger := services.NewLedgerService(st, nil)
	srv := NewServer(":0", Deps{
		Ledger:    ledger,
		Rules:     services.NewRuleService(st),
		Goals:     services.NewGoalService(st),
		Processor: services.NewRecurrenceProcessor(st, ledger),
		Reporter:  services.NewReporter(st),
	})
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path, owner, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if owner != "" {
		req.Header.Set("X-Owner", owner)
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doRequest(t, srv, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestMissingOwnerHeader(t *testing.T) {
	srv := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/entries"},
		{http.MethodPost, "/api/entries"},
		{http.MethodGet, "/api/rules"},
		{http.MethodGet, "/api/goals"},
	}

	for _, tt := range paths {
		rec := doRequest(t, srv, tt.method, tt.path, "", "{}")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s %s without owner status = %d, want %d",
				tt.method, tt.path, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestEntryLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/entries", "alice",
		`{"kind":"expense","category":"Groceries","amount":"45.90","date":"2024-06-01","note":"weekly shop"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create entry status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var created entryResponse
	decodeResponse(t, rec, &created)
	if created.ID == 0 {
		t.Error("expected assigned entry id")
	}
	if created.Amount != "45.90" {
		t.Errorf("amount = %q, want 45.90", created.Amount)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/entries", "alice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list entries status = %d", rec.Code)
	}
	var listed []entryResponse
	decodeResponse(t, rec, &listed)
	if len(listed) != 1 {
		t.Fatalf("listed %d entries, want 1", len(listed))
	}

	// Another owner sees nothing.
	rec = doRequest(t, srv, http.MethodGet, "/api/entries", "bob", "")
	var other []entryResponse
	decodeResponse(t, rec, &other)
	if len(other) != 0 {
		t.Errorf("bob sees %d entries, want 0", len(other))
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/entries/1", "alice", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete entry status = %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/entries/1", "alice", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete missing entry status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreateEntry_Invalid(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"negative amount", `{"kind":"expense","category":"Food","amount":"-5.00"}`, http.StatusUnprocessableEntity},
		{"zero amount", `{"kind":"expense","category":"Food","amount":"0"}`, http.StatusUnprocessableEntity},
		{"bad kind", `{"kind":"transfer","category":"Food","amount":"5.00"}`, http.StatusUnprocessableEntity},
		{"empty category", `{"kind":"expense","category":"","amount":"5.00"}`, http.StatusUnprocessableEntity},
		{"bad date", `{"kind":"expense","category":"Food","amount":"5.00","date":"June 1st"}`, http.StatusUnprocessableEntity},
		{"not json", `kind=expense`, http.StatusBadRequest},
		{"unknown field", `{"kind":"expense","category":"Food","amount":"5.00","foo":1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/entries", "alice", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestRuleDuplicateConflict(t *testing.T) {
	srv := newTestServer(t)

	body := `{"kind":"income","category":"Salary","amount":"5000.00","frequency":"monthly","start_date":"2024-01-01"}`
	rec := doRequest(t, srv, http.MethodPost, "/api/rules", "alice", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create rule status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/rules", "alice", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate rule status = %d, want %d", rec.Code, http.StatusConflict)
	}

	// Same rule for a different owner is fine.
	rec = doRequest(t, srv, http.MethodPost, "/api/rules", "bob", body)
	if rec.Code != http.StatusCreated {
		t.Errorf("other owner rule status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestDeleteRule_NotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodDelete, "/api/rules/99", "alice", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestPreviewRule(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/rules/preview?amount=1400&frequency=weekly", "alice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	decodeResponse(t, rec, &resp)
	if resp["monthly_equivalent"] != "6062.00" {
		t.Errorf("monthly_equivalent = %q, want 6062.00", resp["monthly_equivalent"])
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/rules/preview?amount=100&frequency=fortnightly", "alice", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad frequency status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestDashboard_MaterializesAndSummarizes(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/rules", "alice",
		`{"kind":"income","category":"Salary","amount":"5000.00","frequency":"monthly","start_date":"2024-01-01","description":"Monthly salary"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create rule status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/dashboard", "alice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var dash dashboardResponse
	decodeResponse(t, rec, &dash)
	if dash.Materialized != 1 {
		t.Errorf("materialized = %d, want 1", dash.Materialized)
	}
	if dash.Summary.TotalIncome != "5000.00" {
		t.Errorf("total income = %q, want 5000.00", dash.Summary.TotalIncome)
	}
	if dash.Summary.MonthlyRecurringIncome != "5000.00" {
		t.Errorf("monthly recurring income = %q, want 5000.00", dash.Summary.MonthlyRecurringIncome)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/entries", "alice", "")
	var entries []entryResponse
	decodeResponse(t, rec, &entries)
	if len(entries) != 1 {
		t.Fatalf("entries after dashboard = %d, want 1", len(entries))
	}
	if entries[0].SourceRuleID == 0 {
		t.Error("materialized entry should carry its source rule id")
	}
	if !strings.HasPrefix(entries[0].Note, "[Recurring] ") {
		t.Errorf("note = %q, want [Recurring] prefix", entries[0].Note)
	}
}

func TestGoalLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/goals", "alice",
		`{"name":"Vacation","target":"1000.00","description":"Summer trip"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create goal status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var goal goalResponse
	decodeResponse(t, rec, &goal)

	rec = doRequest(t, srv, http.MethodPost, "/api/goals/1/deposit", "alice", `{"amount":"400.00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("deposit status = %d, body = %s", rec.Code, rec.Body.String())
	}
	decodeResponse(t, rec, &goal)
	if goal.Saved != "400.00" {
		t.Errorf("saved after deposit = %q, want 400.00", goal.Saved)
	}
	if goal.Remaining != "600.00" {
		t.Errorf("remaining = %q, want 600.00", goal.Remaining)
	}

	// Withdrawing more than saved must fail.
	rec = doRequest(t, srv, http.MethodPost, "/api/goals/1/withdraw", "alice", `{"amount":"500.00"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("over-withdraw status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/goals/1/withdraw", "alice", `{"amount":"150.00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("withdraw status = %d", rec.Code)
	}
	decodeResponse(t, rec, &goal)
	if goal.Saved != "250.00" {
		t.Errorf("saved after withdraw = %q, want 250.00", goal.Saved)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/goals/1", "alice", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete goal status = %d", rec.Code)
	}
}

func TestGoalsAffectNetBalance(t *testing.T) {
	srv := newTestServer(t)

	doRequest(t, srv, http.MethodPost, "/api/entries", "alice",
		`{"kind":"income","category":"Salary","amount":"3000.00","date":"2024-06-01"}`)
	doRequest(t, srv, http.MethodPost, "/api/goals", "alice",
		`{"name":"Emergency fund","target":"5000.00"}`)
	doRequest(t, srv, http.MethodPost, "/api/goals/1/deposit", "alice", `{"amount":"500.00"}`)

	rec := doRequest(t, srv, http.MethodGet, "/api/dashboard", "alice", "")
	var dash dashboardResponse
	decodeResponse(t, rec, &dash)
	if dash.Summary.NetBalance != "2500.00" {
		t.Errorf("net balance = %q, want 2500.00", dash.Summary.NetBalance)
	}

	// Deleting the goal releases the committed funds.
	doRequest(t, srv, http.MethodDelete, "/api/goals/1", "alice", "")
	rec = doRequest(t, srv, http.MethodGet, "/api/dashboard", "alice", "")
	decodeResponse(t, rec, &dash)
	if dash.Summary.NetBalance != "3000.00" {
		t.Errorf("net balance after goal deletion = %q, want 3000.00", dash.Summary.NetBalance)
	}
}

func TestPathIDValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodDelete, "/api/entries/abc", "alice", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
