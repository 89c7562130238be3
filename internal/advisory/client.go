// Package advisory wraps the generative text service used for tariff
// classification hints. Calls never fail: any transport, quota or decoding
// problem degrades to a fixed fallback string so the wizard flow is never
// blocked on the service.
package advisory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	advisoryModel = "gemini-3-pro-preview"
	summaryModel  = "gemini-3-flash-preview"

	// FallbackAdvisory is returned when the classification call fails.
	FallbackAdvisory = "Consulte um despachante para validação técnica da NCM."

	// FallbackSummary is returned when the document summary call fails.
	FallbackSummary = "Erro ao analisar documentos."
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GenerateAdvisory asks for probable NCM codes and customs risk notes for a
// product. The caller gets either the generated text or FallbackAdvisory,
// never an error.
func (c *Client) GenerateAdvisory(product string) string {
	prompt := fmt.Sprintf(
		"Analise o produto %q para exportação/importação. Sugira 3 códigos NCM prováveis e uma breve explicação de riscos alfandegários. Responda em português, texto curto.",
		product,
	)
	text, err := c.generate(advisoryModel, prompt)
	if err != nil || text == "" {
		log.Printf("advisory generation failed: %v", err)
		return FallbackAdvisory
	}
	return text
}

// SummarizeDocuments asks what is missing from a document checklist for a
// standard operation. Degrades to FallbackSummary.
func (c *Client) SummarizeDocuments(docNames []string) string {
	prompt := fmt.Sprintf(
		"Eu tenho os seguintes documentos para um processo de exportação: %s. O que está faltando para um processo padrão? Responda em 1 frase.",
		strings.Join(docNames, ", "),
	)
	text, err := c.generate(summaryModel, prompt)
	if err != nil || text == "" {
		log.Printf("document summary failed: %v", err)
		return FallbackSummary
	}
	return text
}

func (c *Client) generate(model, prompt string) (string, error) {
	requestBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/models/" + model + ":generateContent"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response, body: %s", string(body))
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
