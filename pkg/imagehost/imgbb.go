package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const uploadEndpoint = "https://api.imgbb.com/1/upload"

// Client uploads images to the imgbb hosting API and returns the public
// display URL. The browser used to call this host directly; routing the
// upload through the backend keeps the API key off the client.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an image host client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends one image and returns its hosted URL
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("image host api key not configured")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	url := fmt.Sprintf("%s?key=%s", uploadEndpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("parse upload response failed: %w", err)
	}
	if !result.Success {
		if result.Error.Message != "" {
			return "", fmt.Errorf("image host error: %s", result.Error.Message)
		}
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode)
	}
	if result.Data.DisplayURL != "" {
		return result.Data.DisplayURL, nil
	}
	return result.Data.URL, nil
}
