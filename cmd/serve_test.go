package cmd

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauricejumelet/advisor-cli/internal/config"
	"github.com/mauricejumelet/advisor-cli/internal/datastore"
	"github.com/mauricejumelet/advisor-cli/internal/ollama"
)

const sampleCSV = `Date,Score
2024-06-01,82
2024-06-02,75
2024-06-03,78
2024-06-04,85
2024-06-05,90
`

// newTestServer wires a webServer around loaded sample data and an
// unreachable model endpoint, so anything the rules or fuzzy parser can't
// resolve falls back to the canned chat reply.
func newTestServer(t *testing.T) *webServer {
	t.Helper()

	cfg := &config.Config{
		OllamaURL:   "http://127.0.0.1:1/api/chat",
		OllamaModel: "test",
		CacheDir:    t.TempDir(),
	}

	store := datastore.New(cfg.CacheDir)
	if err := store.LoadCSV([]byte(sampleCSV)); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	return &webServer{app: &App{
		Config: cfg,
		Store:  store,
		Ollama: ollama.NewClient(cfg),
	}}
}

func postChat(t *testing.T, srv *webServer, message string) (*httptest.ResponseRecorder, chatReply) {
	t.Helper()

	body, _ := json.Marshal(chatPayload{Message: message})
	req := httptest.NewRequest("POST", "/api/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handleChat(rec, req)

	var reply chatReply
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
			t.Fatalf("response not JSON: %v", err)
		}
	}
	return rec, reply
}

func TestChatEndpointResolvesRange(t *testing.T) {
	srv := newTestServer(t)

	// Anchor comes from the data (2024-06-05), not the wall clock.
	rec, reply := postChat(t, srv, "show me the last 3 days")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if reply.Start != "2024-06-03" || reply.End != "2024-06-05" {
		t.Errorf("range = %s..%s, want 2024-06-03..2024-06-05", reply.Start, reply.End)
	}
	if !strings.Contains(reply.Chart, "Highcharts.chart(") {
		t.Errorf("reply has no chart: %q", reply.Chart)
	}
}

func TestChatEndpointNoDataInRange(t *testing.T) {
	srv := newTestServer(t)

	rec, reply := postChat(t, srv, "2020-01-01 to 2020-01-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if reply.Chart != "" {
		t.Errorf("chart = %q, want none for an empty range", reply.Chart)
	}
	if reply.Start != "2020-01-01" || reply.End != "2020-01-31" {
		t.Errorf("range = %s..%s, want the requested range echoed", reply.Start, reply.End)
	}
}

func TestChatEndpointConversationalFallback(t *testing.T) {
	srv := newTestServer(t)

	rec, reply := postChat(t, srv, "hello, who are you?")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if reply.Start != "" || reply.Chart != "" {
		t.Errorf("reply = %+v, want a plain conversational answer", reply)
	}
	if reply.Reply == "" {
		t.Error("reply text empty, want the chat fallback")
	}
}

func TestChatEndpointBadRequest(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{"", "{}", "not json"} {
		req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.handleChat(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestUploadEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "scores.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("Date,Score\n2024-07-01,60\n2024-07-02,65\n"))
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.handleUpload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if srv.app.Store.Rows() != 2 {
		t.Errorf("store has %d rows after upload, want 2", srv.app.Store.Rows())
	}
}

func TestUploadEndpointRejectsBadCSV(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "scores.csv")
	_, _ = fw.Write([]byte("Day,Value\n1,2\n"))
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.handleUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.handleIndex(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "/api/chat") {
		t.Error("index page does not reference the chat endpoint")
	}
}
