package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/homework"
)

const promptTemplate = `A child asked for help with this homework problem.
Subject: %s
Grade level: %s
Problem: %s

Guide the child towards the solution without ever giving the final answer.
Respond with a single JSON object with these keys:
  "summary": one sentence restating the problem in words a child understands,
  "steps": 2 to 5 short steps the child can follow to work it out,
  "hints": 1 to 3 gentle hints, each revealing a bit more,
  "encouragement": one warm, cheerful sentence.
Keep every sentence short, positive and age-appropriate. No markdown.`

type (
	geminiAnalyzer struct {
		apiKey      string
		baseURL     string
		model       string
		maxTokens   int
		temperature float64
		client      *http.Client
		logger      core.Logger
	}

	content struct {
		Role  string `json:"role,omitempty"`
		Parts []part `json:"parts"`
	}
	part struct {
		Text string `json:"text"`
	}

	generateRequest struct {
		Contents         []content        `json:"contents"`
		GenerationConfig generationConfig `json:"generationConfig"`
	}
	generationConfig struct {
		MaxOutputTokens  int     `json:"maxOutputTokens"`
		Temperature      float64 `json:"temperature"`
		ResponseMimeType string  `json:"responseMimeType"`
	}

	generateResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error,omitempty"`
	}

	// analysisPayload is the JSON shape the prompt asks the model for.
	analysisPayload struct {
		Summary       string   `json:"summary"`
		Steps         []string `json:"steps"`
		Hints         []string `json:"hints"`
		Encouragement string   `json:"encouragement"`
	}
)

var _ homework.Analyzer = (*geminiAnalyzer)(nil) // interface compliance check

func NewGeminiAnalyzer(logger core.Logger) *geminiAnalyzer {
	conf := core.Conf.Gemini
	return &geminiAnalyzer{
		apiKey:      conf.ApiKey,
		baseURL:     conf.BaseURL,
		model:       conf.Model,
		maxTokens:   conf.MaxOutputTokens,
		temperature: conf.Temperature,
		client:      &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

func (a *geminiAnalyzer) Analyze(ctx context.Context, ah homework.AnalyzeHomework) (homework.Analysis, error) {
	grade := ah.GradeLevel
	if grade == "" {
		grade = "not given"
	}
	request := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: fmt.Sprintf(promptTemplate, ah.Subject, grade, ah.Question)}}},
		},
		GenerationConfig: generationConfig{
			MaxOutputTokens:  a.maxTokens,
			Temperature:      a.temperature,
			ResponseMimeType: "application/json",
		},
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return homework.Analysis{}, errors.Wrap(err, "marshalling request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestData))
	if err != nil {
		return homework.Analysis{}, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return homework.Analysis{}, errors.Wrap(err, "sending request")
	}
	defer resp.Body.Close()

	var response generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return homework.Analysis{}, errors.Wrap(err, "decoding response")
	}
	if response.Error != nil {
		return homework.Analysis{}, errors.Errorf("gemini: %s (%s)", response.Error.Message, response.Error.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return homework.Analysis{}, errors.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return homework.Analysis{}, errors.New("gemini: no candidates returned")
	}

	text := strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text)
	payload := parsePayload(text)

	return homework.Analysis{
		Subject:       ah.Subject,
		Summary:       payload.Summary,
		Steps:         payload.Steps,
		Hints:         payload.Hints,
		Encouragement: payload.Encouragement,
		Model:         a.model,
		AnalyzedAt:    time.Now().UTC(),
	}, nil
}

// parsePayload unpacks the model's JSON reply. The model occasionally wraps
// the object in markdown fences despite the mime type, so those are stripped;
// anything still unparsable is kept whole as the summary.
func parsePayload(text string) analysisPayload {
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload analysisPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil || payload.Summary == "" {
		return analysisPayload{Summary: text}
	}
	return payload
}
