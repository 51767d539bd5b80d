package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"greencycle-server/config"
	"greencycle-server/models"
)

// VerificationService asks an external image model whether a collection
// photo matches the reported waste type and quantity. The lifecycle
// controller only consumes the result; it never computes one itself.
type VerificationService struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

type verifierRequest struct {
	Contents         []verifierContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type verifierContent struct {
	Parts []verifierPart `json:"parts"`
}

type verifierPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type verifierResponse struct {
	Candidates []struct {
		Content verifierContent `json:"content"`
	} `json:"candidates"`
}

func NewVerificationService() *VerificationService {
	cfg := config.AppConfig.Verifier
	if cfg.APIKey == "" {
		log.Printf("⚠️ VERIFIER_API_KEY not set, image verification will be disabled")
	}

	return &VerificationService{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether the external verifier is configured
func (s *VerificationService) Enabled() bool {
	return s.apiKey != ""
}

// VerifyImage sends a base64 collection photo to the external model and
// parses its match verdict. A nil result with nil error means verification
// is disabled; callers treat the result as optional either way.
func (s *VerificationService) VerifyImage(imageBase64, wasteType, amount string) (*models.VerificationResult, error) {
	if !s.Enabled() {
		return nil, nil
	}

	prompt := fmt.Sprintf(
		"You are verifying a waste collection photo. The report claims waste type %q and approximate amount %q. "+
			"Respond with raw JSON only, no markdown: "+
			`{"waste_type_match": bool, "quantity_match": bool, "confidence": float between 0 and 1}`,
		wasteType, amount)

	reqBody := verifierRequest{
		Contents: []verifierContent{{
			Parts: []verifierPart{
				{Text: prompt},
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}},
			},
		}},
		GenerationConfig: generationConfig{
			Temperature:     0.1,
			MaxOutputTokens: 256,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?key=%s", s.endpoint, s.apiKey)
	req, err := http.NewRequest("POST", url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("verifier returned %s", resp.Status)
	}

	var parsed verifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode verifier response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("verifier returned no candidates")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "```json"), "```"))

	var result models.VerificationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to parse verifier verdict: %w", err)
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	log.Printf("🔍 Verification verdict: type_match=%v quantity_match=%v confidence=%.2f",
		result.WasteTypeMatch, result.QuantityMatch, result.Confidence)

	return &result, nil
}
