package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"posbill/internal/domain"
)

func TestListPassesSearchTerm(t *testing.T) {
	var gotSearch string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"INV-1","customerName":"Asha","total":"189"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	invoices, err := client.List(context.Background(), "asha")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotSearch != "asha" {
		t.Fatalf("search term = %q", gotSearch)
	}
	if len(invoices) != 1 || invoices[0].ID != "INV-1" {
		t.Fatalf("unexpected invoices %+v", invoices)
	}
	if !invoices[0].Total.Equal(decimal.RequireFromString("189")) {
		t.Fatalf("total = %s", invoices[0].Total)
	}
}

func TestListServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())
	if _, err := client.List(context.Background(), ""); !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestListTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL, nil)
	if _, err := client.List(context.Background(), ""); !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestCreateStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusConflict, domain.ErrDuplicateID},
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusMethodNotAllowed, domain.ErrNotAllowed},
		{http.StatusInternalServerError, domain.ErrRemoteUnavailable},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		client := NewClient(srv.URL, srv.Client())
		err := client.Create(context.Background(), domain.Invoice{ID: "INV-1"})
		srv.Close()
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestCreateSendsInvoiceJSON(t *testing.T) {
	var gotBody string
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotMethod = r.Method
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	inv := domain.Invoice{
		ID:           "INV-1",
		CustomerName: "Asha",
		Total:        decimal.RequireFromString("189"),
		IssuedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	client := NewClient(srv.URL, srv.Client())
	if err := client.Create(context.Background(), inv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %s", gotMethod)
	}
	for _, want := range []string{`"id":"INV-1"`, `"customerName":"Asha"`} {
		if !strings.Contains(gotBody, want) {
			t.Fatalf("body %s missing %s", gotBody, want)
		}
	}
}
