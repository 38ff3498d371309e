package portman

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ngmaloney/portman-terminal/internal/models"
)

func TestNewVoyagesClient(t *testing.T) {
	client := NewVoyagesClient("")

	if client == nil {
		t.Fatal("NewVoyagesClient() returned nil")
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want %s", client.baseURL, DefaultBaseURL)
	}

	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", client.httpClient.Timeout)
	}

	if client.pageSize != 1000 {
		t.Errorf("pageSize = %d, want 1000", client.pageSize)
	}
}

func TestNewVoyagesClient_Options(t *testing.T) {
	client := NewVoyagesClient("https://portman.example.net/",
		WithFunctionKey("fkey"),
		WithAuthToken("tok"),
		WithPageSize(50),
		WithTimeout(5*time.Second),
	)

	if client.baseURL != "https://portman.example.net" {
		t.Errorf("baseURL = %s, trailing slash should be trimmed", client.baseURL)
	}
	if client.functionKey != "fkey" || client.authToken != "tok" {
		t.Error("auth options not applied")
	}
	if client.pageSize != 50 {
		t.Errorf("pageSize = %d, want 50", client.pageSize)
	}
	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", client.httpClient.Timeout)
	}
}

func TestVoyagesClient_FetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/voyages" {
			t.Errorf("path = %s, want /api/voyages", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header not set")
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Error("Accept header should be application/json")
		}

		query := r.URL.Query()
		if query.Get("$first") != "1000" {
			t.Errorf("$first = %s, want 1000", query.Get("$first"))
		}
		if query.Get("$after") != "" {
			t.Errorf("$after = %s, want empty on first page", query.Get("$after"))
		}
		wantFilter := "eta ge 2025-03-03T00:00:00.000Z and eta le 2025-03-10T23:59:59.999Z"
		if query.Get("$filter") != wantFilter {
			t.Errorf("$filter = %q, want %q", query.Get("$filter"), wantFilter)
		}

		w.Header().Set("Content-Type", "application/json")
		data, _ := os.ReadFile("../../testdata/portman_voyages_page.json")
		w.Write(data)
	}))
	defer server.Close()

	client := NewVoyagesClient(server.URL)
	filter := models.FilterState{
		Start: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	page, err := client.FetchPage(context.Background(), filter, "")
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if len(page.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(page.Records))
	}

	if page.NextToken != "W3siRW50aXR5TmFtZSI6InZveWFnZXMifV0=" {
		t.Errorf("NextToken = %q", page.NextToken)
	}
	if page.Malformed {
		t.Error("Malformed should be false")
	}

	pc := page.Records[0]
	if pc.PortCallID != 3145511 {
		t.Errorf("PortCallID = %d, want 3145511", pc.PortCallID)
	}
	if pc.VesselName != "FINNMAID" || pc.IMO != 9468906 {
		t.Errorf("vessel = %s/%d", pc.VesselName, pc.IMO)
	}
	if want := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC); !pc.ETA.Equal(want) {
		t.Errorf("ETA = %v, want %v (zone-less values are UTC)", pc.ETA, want)
	}
	if want := time.Date(2025, 3, 10, 6, 12, 0, 0, time.UTC); !pc.ATA.Equal(want) {
		t.Errorf("ATA = %v, want %v", pc.ATA, want)
	}
	if !pc.ATD.IsZero() {
		t.Errorf("ATD = %v, want zero for null", pc.ATD)
	}
	if len(pc.Documents()) != 2 {
		t.Errorf("len(Documents()) = %d, want 2", len(pc.Documents()))
	}

	if page.Records[1].AgentName != "" {
		t.Errorf("null agent name should decode as empty, got %q", page.Records[1].AgentName)
	}
}

func TestVoyagesClient_FetchPage_PassesTokenAndAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("$after") != "opaque+token/==" {
			t.Errorf("$after = %q, want token passed back verbatim", query.Get("$after"))
		}
		if query.Get("code") != "function-key" {
			t.Errorf("code = %q, want function-key", query.Get("code"))
		}
		if query.Get("$filter") != "" {
			t.Errorf("$filter = %q, want none for unbounded filter", query.Get("$filter"))
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		w.Write([]byte(`{"value":[],"nextLink":null}`))
	}))
	defer server.Close()

	client := NewVoyagesClient(server.URL, WithFunctionKey("function-key"), WithAuthToken("secret"))
	page, err := client.FetchPage(context.Background(), models.FilterState{}, "opaque+token/==")
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if len(page.Records) != 0 || page.NextToken != "" || page.HasMore() {
		t.Errorf("page = %+v, want empty final page", page)
	}
}

func TestVoyagesClient_FetchPage_MalformedNextLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":[{"portcallid":1}],"nextLink":"http://localhost:5000/api/voyages?$first=1000"}`))
	}))
	defer server.Close()

	client := NewVoyagesClient(server.URL)
	page, err := client.FetchPage(context.Background(), models.FilterState{}, "")
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if !page.Malformed {
		t.Error("Malformed should be set when $after is missing")
	}
	if len(page.Records) != 1 {
		t.Errorf("records should be kept on a malformed link, got %d", len(page.Records))
	}
	if page.HasMore() {
		t.Error("HasMore() should be false for a malformed link")
	}
}

func TestVoyagesClient_ErrorHandling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Function host is not running."))
	}))
	defer server.Close()

	client := NewVoyagesClient(server.URL)
	_, err := client.FetchPage(context.Background(), models.FilterState{}, "")
	if err == nil {
		t.Fatal("Expected error for 503, got nil")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %T, want *StatusError", err)
	}
	if se.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", se.StatusCode)
	}
}

func TestVoyagesClient_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>login</html>`))
	}))
	defer server.Close()

	client := NewVoyagesClient(server.URL)
	if _, err := client.FetchPage(context.Background(), models.FilterState{}, ""); err == nil {
		t.Error("Expected decode error, got nil")
	}
}

func TestVoyagesClient_GetPortCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/port-calls/42":
			w.Write([]byte(`{"portcallid":42,"vesselname":"VIKING GRACE","eta":"2025-03-10T08:00:00Z"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewVoyagesClient(server.URL)

	pc, err := client.GetPortCall(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetPortCall() error = %v", err)
	}
	if pc.PortCallID != 42 || pc.VesselName != "VIKING GRACE" {
		t.Errorf("GetPortCall() = %+v", pc)
	}

	_, err = client.GetPortCall(context.Background(), 7)
	if !IsNotFound(err) {
		t.Errorf("GetPortCall(7) error = %v, want not found", err)
	}
}
