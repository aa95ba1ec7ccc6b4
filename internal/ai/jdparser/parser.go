package jdparser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/job"
)

// Parser extracts a structured job description from free posting text
// using a chat model in JSON mode. Implements job.Parser.
type Parser struct {
	client *openai.Client
	model  string
}

func New(apiKey, model string) *Parser {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Parser{
		client: &client,
		model:  model,
	}
}

// jdPayload mirrors the JSON structure requested in the prompt
type jdPayload struct {
	Title            string   `json:"job_title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	JobType          string   `json:"job_type"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     struct {
		RequiredSkills  []string `json:"required_skills"`
		PreferredSkills []string `json:"preferred_skills"`
		Experience      string   `json:"experience"`
		Education       []string `json:"education"`
	} `json:"requirements"`
	SalaryRange string `json:"salary_range"`
	PostingDate string `json:"posting_date"`
	Department  string `json:"department"`
}

const systemPrompt = `You are a professional job posting parser. Extract structured information from job description text and return ONLY valid JSON.`

const extractionTemplate = `Extract the following information from this job description in JSON format:

{
  "job_title": string,
  "company": string,
  "location": string,
  "job_type": string (Full-time, Part-time, Contract, etc.),
  "description": string (brief summary of the role),
  "responsibilities": string[],
  "requirements": {
    "required_skills": string[],
    "preferred_skills": string[],
    "experience": string (e.g. "5+ years"),
    "education": string[] (degree requirements)
  },
  "salary_range": string,
  "posting_date": string,
  "department": string
}

IMPORTANT:
- If a field is not available, use empty string or empty array
- Keep skill names short and specific
- Return ONLY the JSON, no explanatory text

Job description:

%s`

// ParseJobDescription extracts a Description from raw posting text
func (p *Parser) ParseJobDescription(ctx context.Context, text string) (*job.Description, error) {
	if text == "" {
		return nil, errors.New("job description text cannot be empty")
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf(extractionTemplate, text)),
		},
		Model: p.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat api error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var payload jdPayload
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse job description JSON: %w", err)
	}

	now := time.Now().UTC()
	return &job.Description{
		ID:               kernel.NewJobID(uuid.NewString()),
		Title:            kernel.JobTitle(payload.Title),
		Company:          kernel.Company(payload.Company),
		Location:         payload.Location,
		JobType:          payload.JobType,
		Summary:          payload.Description,
		Responsibilities: payload.Responsibilities,
		Requirements: job.Requirement{
			RequiredSkills:  payload.Requirements.RequiredSkills,
			PreferredSkills: payload.Requirements.PreferredSkills,
			Experience:      payload.Requirements.Experience,
			Education:       payload.Requirements.Education,
		},
		SalaryRange: payload.SalaryRange,
		PostingDate: payload.PostingDate,
		Department:  payload.Department,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
