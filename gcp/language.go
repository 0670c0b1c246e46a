// Package gcp contains thin REST clients for the Google Cloud text APIs.
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

const languageBaseURL = "https://language.googleapis.com/v1"

// LanguageClient talks to the Natural Language API. It implements both
// safety.SentimentProvider and safety.TopicClassifier.
type LanguageClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewLanguageClient(apiKey string, timeout time.Duration) *LanguageClient {
	return &LanguageClient{
		apiKey:  apiKey,
		baseURL: languageBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type document struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

type sentimentRequest struct {
	Document     document `json:"document"`
	EncodingType string   `json:"encodingType"`
}

type sentimentResponse struct {
	DocumentSentiment struct {
		Score     float64 `json:"score"`
		Magnitude float64 `json:"magnitude"`
	} `json:"documentSentiment"`
}

// AnalyzeSentiment returns the document sentiment score in [-1, 1].
func (c *LanguageClient) AnalyzeSentiment(ctx context.Context, text string) (float64, error) {
	reqBody := sentimentRequest{
		Document:     document{Content: text, Type: "PLAIN_TEXT"},
		EncodingType: "UTF8",
	}

	var resp sentimentResponse
	if err := c.post(ctx, "documents:analyzeSentiment", reqBody, &resp); err != nil {
		return 0, err
	}
	return resp.DocumentSentiment.Score, nil
}

type classifyRequest struct {
	Document document `json:"document"`
}

type classifyResponse struct {
	Categories []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"categories"`
}

// ClassifyText returns the content category names for the document.
func (c *LanguageClient) ClassifyText(ctx context.Context, text string) ([]string, error) {
	reqBody := classifyRequest{Document: document{Content: text, Type: "PLAIN_TEXT"}}

	var resp classifyResponse
	if err := c.post(ctx, "documents:classifyText", reqBody, &resp); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Categories))
	for _, cat := range resp.Categories {
		names = append(names, cat.Name)
	}
	return names, nil
}

func (c *LanguageClient) post(ctx context.Context, method string, reqBody, out any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", c.baseURL, method, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("language API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("language API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
