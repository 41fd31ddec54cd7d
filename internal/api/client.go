// Package api implements the HTTP client for the DocuChat gateway.
//
// Four operations: identity check, document listing, file upload and
// question asking. Each attaches "Authorization: Bearer <token>" when a
// credential is present and omits the header otherwise. The client performs
// no retries and caches nothing; retry policy belongs to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// MaxUploadFiles is the most files accepted by a single upload call.
// The server enforces the same cap; the client refuses to send more.
const MaxUploadFiles = 20

// DefaultTopK is the retrieval depth used when the caller passes topK <= 0.
const DefaultTopK = 5

// Identity is the server-asserted subject plus any associated claims.
// Fetched fresh per view mount, never cached across reloads.
type Identity struct {
	Sub    string
	Claims map[string]any
}

// Document is one server-side document record. The server defines the
// ordering of listings; the client never re-sorts.
type Document struct {
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadAck is the server's acknowledgment that files were queued for
// indexing.
type UploadAck struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Citation references a document backing an answer. Score is nil when the
// server omits it.
type Citation struct {
	Index    int      `json:"index"`
	Filename string   `json:"filename"`
	Score    *float64 `json:"score,omitempty"`
}

// AnswerResult is one answer with its citations. Each ask replaces the
// previous result wholesale; no history is retained.
type AnswerResult struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

// Client talks to the DocuChat gateway.
type Client struct {
	baseURL    string
	token      func() string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL. token is consulted
// fresh on every request so the stored credential stays the single source
// of truth; it may return "" for unauthenticated requests.
func NewClient(baseURL string, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// authorize attaches the bearer header when a credential is present.
// A missing credential means no header at all, never a malformed one.
func (c *Client) authorize(req *http.Request) {
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	return c.httpClient.Do(req)
}

// Identity fetches the authenticated subject via GET /me.
func (c *Client) Identity(ctx context.Context) (*Identity, error) {
	resp, err := c.get(ctx, "/me")
	if err != nil {
		return nil, fmt.Errorf("api: calling /me: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{Status: resp.StatusCode}
	}

	var claims map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("api: decoding identity: %w", err)
	}
	sub, _ := claims["sub"].(string)
	return &Identity{Sub: sub, Claims: claims}, nil
}

// Documents fetches the caller's documents via GET /documents, in server
// order.
func (c *Client) Documents(ctx context.Context) ([]Document, error) {
	resp, err := c.get(ctx, "/documents")
	if err != nil {
		return nil, fmt.Errorf("api: calling /documents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	var docs []Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("api: decoding documents: %w", err)
	}
	return docs, nil
}

// Upload submits the files at the given paths via POST /upload as a
// multipart form with one part per file under the shared field "files".
// The content type, boundary included, comes from the multipart writer;
// hand-writing it would break the upload.
//
// More than MaxUploadFiles paths fails before any network I/O.
func (c *Client) Upload(ctx context.Context, paths []string) (*UploadAck, error) {
	if len(paths) > MaxUploadFiles {
		return nil, &UploadError{Detail: fmt.Sprintf("max %d files per upload, got %d", MaxUploadFiles, len(paths))}
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("api: opening %s: %w", p, err)
		}
		part, err := form.CreateFormFile("files", filepath.Base(p))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("api: building form: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, fmt.Errorf("api: reading %s: %w", p, err)
		}
		f.Close()
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("api: finishing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: calling /upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(resp.Body)
		return nil, &UploadError{Status: resp.StatusCode, Detail: string(detail)}
	}

	var ack UploadAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("api: decoding upload ack: %w", err)
	}
	return &ack, nil
}

// Ask submits a question via POST /chat/ask and returns the answer with
// citations. topK <= 0 means DefaultTopK. Not idempotent server-side, but
// no local state is mutated on failure.
func (c *Client) Ask(ctx context.Context, question string, topK int) (*AnswerResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	payload, err := json.Marshal(map[string]any{
		"question": question,
		"top_k":    topK,
	})
	if err != nil {
		return nil, fmt.Errorf("api: marshalling question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/ask", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: calling /chat/ask: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AskError{Status: resp.StatusCode}
	}

	var result AnswerResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("api: decoding answer: %w", err)
	}
	return &result, nil
}
