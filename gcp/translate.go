package gcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const translateBaseURL = "https://translation.googleapis.com/language/translate/v2"

// TranslateClient talks to the Translation API v2.
type TranslateClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewTranslateClient(apiKey string, timeout time.Duration) *TranslateClient {
	return &TranslateClient{
		apiKey:  apiKey,
		baseURL: translateBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Detection is the result of a language detection call.
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

type detectResponse struct {
	Data struct {
		Detections [][]struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
		} `json:"detections"`
	} `json:"data"`
}

// Detect returns the detected language of the text.
func (c *TranslateClient) Detect(ctx context.Context, text string) (Detection, error) {
	var resp detectResponse
	if err := c.post(ctx, "/detect", map[string]any{"q": text}, &resp); err != nil {
		return Detection{}, err
	}
	if len(resp.Data.Detections) == 0 || len(resp.Data.Detections[0]) == 0 {
		return Detection{}, fmt.Errorf("translate API returned no detections")
	}
	d := resp.Data.Detections[0][0]
	return Detection{Language: d.Language, Confidence: d.Confidence}, nil
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate translates text between the given languages.
func (c *TranslateClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	reqBody := map[string]any{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	}
	var resp translateResponse
	if err := c.post(ctx, "", reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Data.Translations) == 0 {
		return "", fmt.Errorf("translate API returned no translations")
	}
	return resp.Data.Translations[0].TranslatedText, nil
}

func (c *TranslateClient) post(ctx context.Context, path string, reqBody, out any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	endpoint := fmt.Sprintf("%s%s?key=%s", c.baseURL, path, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("translate API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("translate API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
