package instaback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Upload sends a multipart/form-data POST with a single file part plus any
// extra form fields. It follows the same timeout and retry rules as Do but
// skips the proxy attempt, which only relays JSON bodies.
func (c *Client) Upload(ctx context.Context, path, fieldName, fileName string, r io.Reader, fields map[string]string) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", k, err)
		}
	}
	part, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}
	body := buf.Bytes()

	header := http.Header{}
	header.Set("Content-Type", mw.FormDataContentType())
	header.Set("Accept", "application/json")

	direct := func(ctx context.Context) (json.RawMessage, error) {
		return c.send(ctx, http.MethodPost, c.baseURL+path, header, body, true)
	}
	return c.run(ctx, "UPLOAD "+path, direct, nil)
}
