package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// SentEmail is what the API posted to the provider.
type SentEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// ResendMock stands in for the Resend API: it accepts POST /emails, records
// the message and answers with an id, or with the status set by Fail.
type ResendMock struct {
	server *httptest.Server

	mu       sync.Mutex
	received []SentEmail
	failWith int
}

// NewResendMock starts the mock server.
func NewResendMock() *ResendMock {
	m := &ResendMock{}
	m.server = httptest.NewServer(http.HandlerFunc(m.serve))
	return m
}

func (m *ResendMock) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/emails" {
		http.NotFound(w, r)
		return
	}

	var email SentEmail
	if err := json.NewDecoder(r.Body).Decode(&email); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	status := m.failWith
	if status == 0 {
		m.received = append(m.received, email)
	}
	id := fmt.Sprintf("re_mock_%d", len(m.received))
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"statusCode": status,
			"message":    fmt.Sprintf("%d %s", status, http.StatusText(status)),
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// URL is the base URL to configure as the Resend endpoint.
func (m *ResendMock) URL() string {
	return m.server.URL
}

// Fail answers every later request with status. Zero restores success.
func (m *ResendMock) Fail(status int) {
	m.mu.Lock()
	m.failWith = status
	m.mu.Unlock()
}

// Received returns the accepted e-mails in arrival order.
func (m *ResendMock) Received() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentEmail(nil), m.received...)
}

// Reset forgets received e-mails and restores success.
func (m *ResendMock) Reset() {
	m.mu.Lock()
	m.received = nil
	m.failWith = 0
	m.mu.Unlock()
}
