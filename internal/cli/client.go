package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultServerURL = "http://127.0.0.1:37711"
	httpTimeout      = 5 * time.Second
	// Delegation and screenshots ride through a model call.
	slowTimeout = 150 * time.Second
)

// client talks to a running salient daemon.
type client struct {
	http      *http.Client
	serverURL string
}

// newClient respects SALIENT_URL, falls back to http://127.0.0.1:37711.
func newClient() *client {
	url := os.Getenv("SALIENT_URL")
	if url == "" {
		url = defaultServerURL
	}
	return &client{
		http:      &http.Client{Timeout: httpTimeout},
		serverURL: url,
	}
}

func newSlowClient() *client {
	c := newClient()
	c.http = &http.Client{Timeout: slowTimeout}
	return c
}

func (c *client) post(path string, body []byte) ([]byte, error) {
	resp, err := c.http.Post(c.serverURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return data, fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, data)
	}
	return data, nil
}

func (c *client) get(path string) ([]byte, error) {
	resp, err := c.http.Get(c.serverURL + path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return data, fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, data)
	}
	return data, nil
}

func (c *client) del(path string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodDelete, c.serverURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DELETE %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return data, fmt.Errorf("DELETE %s: status %d: %s", path, resp.StatusCode, data)
	}
	return data, nil
}
