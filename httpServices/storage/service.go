package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client talks to the external object-storage service. All event attachments
// live in a single fixed bucket.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
}

func NewClient(baseURL, bucket string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
	}
}

func (c *Client) authorize(req *http.Request) {
	if key := os.Getenv("STORAGE_API_KEY"); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
}

// Upload stores an object under path in the attachment bucket.
func (c *Client) Upload(ctx context.Context, path string, content []byte, mimeType string) error {
	endpoint := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, path)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(content))
	if err != nil {
		return err
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	httpReq.Header.Set("Content-Type", mimeType)
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage upload returned %s: %s", resp.Status, string(body))
	}

	var apiResp UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		// Some storage backends answer with an empty body on success.
		return nil
	}
	if apiResp.Status != "" && strings.ToLower(apiResp.Status) != "success" {
		return errors.New("storage upload failed: " + apiResp.Message)
	}
	return nil
}

// PublicURL returns the public address of an object. The storage service
// serves public objects at a well-known path, so no round trip is needed.
func (c *Client) PublicURL(path string) string {
	escaped := url.PathEscape(path)
	// PathEscape encodes the separators too; keep the object hierarchy.
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, escaped)
}

// Download fetches an object's content.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, path)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("storage download returned non-OK status: " + resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Remove deletes the listed objects. Callers treat failures as best-effort.
func (c *Client) Remove(ctx context.Context, paths []string) error {
	body, err := json.Marshal(RemoveRequest{Prefixes: paths})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/object/%s", c.baseURL, c.bucket)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errors.New("storage remove returned non-OK status: " + resp.Status)
	}

	var apiResp RemoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil
	}
	if apiResp.Status != "" && strings.ToLower(apiResp.Status) != "success" {
		return errors.New("storage remove failed: " + apiResp.Message)
	}
	return nil
}
