// Package groq wraps the provider's OpenAI-compatible file/batch endpoints:
// upload a JSONL batch file, create a batch job over it, poll its status and
// download the output file.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"judol-guard/config"
	"judol-guard/httpclient"
)

type Client struct {
	base   *httpclient.BaseClient
	apiKey string
}

func NewClient(cfg config.GroqConfig) *Client {
	return &Client{
		base:   httpclient.NewBaseClient(cfg.BaseURL),
		apiKey: cfg.APIKey,
	}
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// FileObject is the provider's uploaded-file handle.
type FileObject struct {
	ID string `json:"id"`
}

// UploadFile uploads the JSONL file at path with the given purpose
// (normally "batch") and returns the provider file handle.
func (c *Client) UploadFile(ctx context.Context, path, purpose string) (*FileObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := form.WriteField("purpose", purpose); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/files", nil, &buf)
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.DecodeError(resp)
	}

	var file FileObject
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, err
	}
	if file.ID == "" {
		return nil, fmt.Errorf("groq: upload response has no file id")
	}
	return &file, nil
}

// BatchDetail is the poll loop's typed view of a batch, next to the verbatim
// status blob kept for audit.
type BatchDetail struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	OutputFileID *string `json:"output_file_id"`

	// Raw is the undecoded response body.
	Raw []byte `json:"-"`
}

// CreateBatch creates a remote batch job over an uploaded input file.
func (c *Client) CreateBatch(ctx context.Context, inputFileID, completionWindow, endpoint string) (*BatchDetail, error) {
	if endpoint == "" {
		endpoint = "/v1/chat/completions"
	}
	body, err := json.Marshal(map[string]string{
		"input_file_id":     inputFileID,
		"endpoint":          endpoint,
		"completion_window": completionWindow,
	})
	if err != nil {
		return nil, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/batches", nil, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	return c.decodeBatch(req)
}

// GetBatchStatus fetches the current remote state of a batch.
func (c *Client) GetBatchStatus(ctx context.Context, batchID string) (*BatchDetail, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/batches/"+batchID, nil, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	return c.decodeBatch(req)
}

func (c *Client) decodeBatch(req *http.Request) (*BatchDetail, error) {
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.DecodeError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var detail BatchDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, err
	}
	if detail.ID == "" {
		return nil, fmt.Errorf("groq: batch response has no id")
	}
	detail.Raw = raw
	return &detail, nil
}

// DownloadFile streams the content of fileID into os.TempDir() under the
// filename carried by the content-disposition header and returns the written
// path. The response must be JSONL.
func (c *Client) DownloadFile(ctx context.Context, fileID string) (string, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/files/"+fileID+"/content", nil, nil)
	if err != nil {
		return "", err
	}
	c.authorize(req)

	resp, err := c.base.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", httpclient.DecodeError(resp)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/jsonl") {
		return "", fmt.Errorf("groq: file content is not JSONL (content-type %q)", ct)
	}
	filename, err := ParseFilename(resp.Header.Get("Content-Disposition"))
	if err != nil {
		return "", err
	}

	dest := filepath.Join(os.TempDir(), filename)
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(dest)
		return "", err
	}
	return dest, nil
}

// ParseFilename extracts the filename parameter from a content-disposition
// header value. A missing header or filename is a hard error, never a
// silent default.
func ParseFilename(contentDisposition string) (string, error) {
	if contentDisposition == "" {
		return "", fmt.Errorf("groq: content-disposition header not set")
	}
	_, params, err := mime.ParseMediaType(contentDisposition)
	if err != nil {
		return "", fmt.Errorf("groq: malformed content-disposition header: %w", err)
	}
	filename := params["filename"]
	if filename == "" {
		return "", fmt.Errorf("groq: content-disposition header has no filename")
	}
	// keep only the base name so a hostile header cannot traverse paths
	return filepath.Base(filename), nil
}
