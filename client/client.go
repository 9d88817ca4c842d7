package client

import (
	"net/http"
	"time"
)

// APIClient talks to the generate/upload API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		// Uploads carry whole clips, so the timeout is generous.
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// NewAPIClientWithHTTP uses a caller supplied http.Client.
func NewAPIClientWithHTTP(baseURL string, httpClient *http.Client) *APIClient {
	return &APIClient{baseURL: baseURL, httpClient: httpClient}
}
