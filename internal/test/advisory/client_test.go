package advisory_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"navix-backend/internal/advisory"
)

func TestClient_GenerateAdvisory(t *testing.T) {
	var gotPath string
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"NCM 0901.21.00. Risco baixo."}]}}]}`))
	}))
	defer server.Close()

	client := advisory.NewClient(server.URL, "test-key")
	text := client.GenerateAdvisory("Coffee")

	assert.Equal(t, "NCM 0901.21.00. Risco baixo.", text)
	assert.Equal(t, "/models/gemini-3-pro-preview:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

// Service failures degrade to the fixed fallback instead of erroring.
func TestClient_GenerateAdvisory_FallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := advisory.NewClient(server.URL, "test-key")
	assert.Equal(t, advisory.FallbackAdvisory, client.GenerateAdvisory("Soybeans"))
}

func TestClient_GenerateAdvisory_FallbackOnMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := advisory.NewClient(server.URL, "test-key")
	assert.Equal(t, advisory.FallbackAdvisory, client.GenerateAdvisory("Soybeans"))
}

func TestClient_GenerateAdvisory_FallbackOnUnreachableService(t *testing.T) {
	client := advisory.NewClient("http://127.0.0.1:1", "test-key")
	assert.Equal(t, advisory.FallbackAdvisory, client.GenerateAdvisory("Soybeans"))
}

func TestClient_SummarizeDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-3-flash-preview:generateContent", r.URL.Path)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Falta o Bill of Lading."}]}}]}`))
	}))
	defer server.Close()

	client := advisory.NewClient(server.URL, "test-key")
	text := client.SummarizeDocuments([]string{"Commercial Invoice", "Packing List"})
	assert.Equal(t, "Falta o Bill of Lading.", text)
}

func TestClient_SummarizeDocuments_Fallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := advisory.NewClient(server.URL, "test-key")
	assert.Equal(t, advisory.FallbackSummary, client.SummarizeDocuments([]string{"Packing List"}))
}
