package dictionary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/japaniel/latindict/pkg/db"
)

// maxBodySize caps remote dictionaries at 10 MB.
const maxBodySize = 10 * 1024 * 1024

// Fetch downloads rawURL and returns the body and its content type.
func Fetch(ctx context.Context, client *http.Client, rawURL string) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", "latindict-cli")
	req.Header.Set("Accept", "application/json,text/html;q=0.9,*/*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}
	if resp.ContentLength > maxBodySize {
		return nil, "", fmt.Errorf("content-length %d exceeds limit of %d bytes", resp.ContentLength, maxBodySize)
	}

	// Read one byte past the limit so truncation is detectable.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, "", fmt.Errorf("response body exceeded maximum size limit of %d bytes", maxBodySize)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// Decode parses data as an HTML list page when name or contentType say so,
// and as a JSON export otherwise.
func Decode(name, contentType string, data []byte) ([]db.WordPair, error) {
	if isHTML(name, contentType) {
		return ParseHTMLList(bytes.NewReader(data), nil)
	}
	return db.DecodePairs(data)
}

func isHTML(name, contentType string) bool {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt == "text/html" {
		return true
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}
