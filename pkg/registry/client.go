package registry

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/tstore/pkg/buildinfo"
	"github.com/matzehuels/tstore/pkg/errors"
	"github.com/matzehuels/tstore/pkg/observability"
)

// Client talks to the registry's HTTP API. It handles request headers,
// status translation and observability hooks.
//
// The zero value is not usable; create clients with [NewClient].
type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.headers["User-Agent"] = ua
	}
}

// NewClient creates a Client for the registry at baseURL.
//
// The default HTTP client has no timeout: a request completes, fails, or
// runs until ctx is cancelled.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{},
		baseURL: trimBase(baseURL),
		headers: map[string]string{"User-Agent": buildinfo.UserAgent()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the registry base URL the client is bound to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchPackage retrieves metadata for author/name.
//
// Returns:
//   - the decoded [Package] on a 200 response
//   - PACKAGE_NOT_FOUND for any other status; the body is discarded
//   - PARSE_ERROR if the body does not match the package schema
//   - NETWORK_ERROR for transport failures
func (c *Client) FetchPackage(ctx context.Context, author, name string) (*Package, error) {
	resp, err := c.do(ctx, http.MethodGet, PackageURL(c.baseURL, author, name), nil, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s-%s", author, name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.New(errors.ErrCodePackageNotFound, "package %s-%s not found (status %d)", author, name, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read metadata for %s-%s", author, name)
	}

	pkg, err := DecodePackage(data)
	if err != nil {
		return nil, fmt.Errorf("%s-%s: %w", author, name, err)
	}
	return pkg, nil
}

// GetBytes performs a GET on an absolute URL and returns the body.
// Any non-200 status is a NETWORK_ERROR that includes the status code.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)
	}
	return data, nil
}

// Upload publishes the archive at archivePath with the given metadata JSON.
//
// The archive is opened before any request is made; a failure to open it is
// an IO_ERROR. The request body is streamed as multipart/form-data with a
// "metadata" text part followed by a "file" part.
//
// Returns:
//   - the decoded [UploadResult] on a 200 response
//   - an [errors.RejectedError] carrying the response body for any other
//     status (UNAUTHORIZED for 401/403, REGISTRY_REJECTED otherwise)
//   - NETWORK_ERROR for transport failures
func (c *Client) Upload(ctx context.Context, token, archivePath string, metadata []byte) (*UploadResult, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open archive %s", archivePath)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUploadBody(mw, f, filepath.Base(archivePath), metadata))
	}()

	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  mw.FormDataContentType(),
	}
	resp, err := c.do(ctx, http.MethodPost, UploadURL(c.baseURL), pr, headers)
	// Unblock the writer if the transport stopped reading early.
	pr.Close()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "upload %s", archivePath)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read upload response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.RejectedError{Status: resp.StatusCode, Body: string(body)}
	}
	return DecodeUploadResult(body)
}

func writeUploadBody(mw *multipart.Writer, archive io.Reader, filename string, metadata []byte) error {
	if err := mw.WriteField("metadata", string(metadata)); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, archive); err != nil {
		return err
	}
	return mw.Close()
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}
