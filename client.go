package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrAuthExpired reports a 401 from the backend. The transport only
// signals it; the App supervisor decides what clearing the session and
// re-routing looks like.
var ErrAuthExpired = errors.New("authentication expired")

type HTTPError struct {
	Status  int
	Body    []byte
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("http %d", e.Status)
}

func (e *HTTPError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrAuthExpired
	}
	return nil
}

// Client is the single configured HTTP client. It attaches the bearer
// token of whatever session it currently holds; the session value is
// replaced wholesale by login and logout.
type Client struct {
	baseURL string
	session Session
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetSession(session Session) {
	c.session = session
}

func (c *Client) Session() Session {
	return c.session
}

func (c *Client) send(method string, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		blob, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(blob)
		contentType = "application/json"
	}
	return c.do(method, path, query, reader, contentType)
}

type multipartPayload struct {
	Request   any
	FileField string
	Files     []Upload
	Values    map[string][]string
}

// sendMultipart encodes the JSON payload as a part named "request" plus
// zero or more file parts, matching the backend's RequestPart contract.
func (c *Client) sendMultipart(method string, path string, payload multipartPayload) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	blob, err := json.Marshal(payload.Request)
	if err != nil {
		return nil, err
	}
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="request"`}
	header["Content-Type"] = []string{"application/json"}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(blob); err != nil {
		return nil, err
	}

	for _, file := range payload.Files {
		part, err := writer.CreateFormFile(payload.FileField, file.Name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, err
		}
	}
	for field, values := range payload.Values {
		for _, value := range values {
			if err := writer.WriteField(field, value); err != nil {
				return nil, err
			}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return c.do(method, path, nil, &buf, writer.FormDataContentType())
}

func (c *Client) do(method string, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}
	if c.session.Token != "" {
		req.Header.Set("authorization", "Bearer "+c.session.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Status:  resp.StatusCode,
			Body:    blob,
			Message: messageFromBody(blob),
		}
	}
	return blob, nil
}

func messageFromBody(blob []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(blob, &parsed); err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Message)
}

func decodeJSON(blob []byte, v any) error {
	if len(bytes.TrimSpace(blob)) == 0 {
		return nil
	}
	return json.Unmarshal(blob, v)
}
