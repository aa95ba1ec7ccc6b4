package resumeparser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/candidate"
)

// Parser extracts a structured candidate profile from raw resume text
// using a chat model in JSON mode. Implements candidate.Parser.
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

// resumePayload mirrors the JSON structure requested in the prompt
type resumePayload struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Location   string   `json:"location"`
	LinkedIn   string   `json:"linkedin"`
	Summary    string   `json:"summary"`
	Skills     []string `json:"skills"`
	Experience []struct {
		Company     string `json:"company"`
		Title       string `json:"title"`
		Duration    string `json:"duration"`
		Description string `json:"description"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
	} `json:"experience"`
	Education []struct {
		Institution    string `json:"institution"`
		Degree         string `json:"degree"`
		FieldOfStudy   string `json:"field_of_study"`
		GraduationDate string `json:"graduation_date"`
	} `json:"education"`
	Certifications []string `json:"certifications"`
	Languages      []string `json:"languages"`
}

const systemPrompt = `You are a professional resume parser. Extract ALL information from the resume text and return ONLY valid JSON.`

const extractionTemplate = `Extract all information from this resume in the following JSON structure:

{
  "name": string,
  "email": string,
  "phone": string,
  "location": string,
  "linkedin": string (optional),
  "summary": string (professional summary, max 250 words),
  "skills": string[] (technical and soft skills),
  "experience": [{
    "company": string,
    "title": string,
    "duration": string (e.g. "3 years", when stated),
    "description": string,
    "start_date": string,
    "end_date": string (date or "Present")
  }],
  "education": [{
    "institution": string,
    "degree": string,
    "field_of_study": string,
    "graduation_date": string
  }],
  "certifications": string[] (optional),
  "languages": string[] (optional)
}

IMPORTANT:
- Extract ALL information accurately
- If a field is not available, use empty string or empty array
- Maintain chronological order (newest first)
- Return ONLY the JSON, no explanatory text

Resume:

%s`

// ParseResume extracts a Profile from raw resume text
func (p *Parser) ParseResume(ctx context.Context, resumeText string) (*candidate.Profile, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, errors.New("resume text cannot be empty")
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf(extractionTemplate, resumeText)),
		},
		Model: p.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat api error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var payload resumePayload
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}

	return payload.toProfile(), nil
}

func (p resumePayload) toProfile() *candidate.Profile {
	experience := make([]candidate.ExperienceEntry, 0, len(p.Experience))
	for _, exp := range p.Experience {
		experience = append(experience, candidate.ExperienceEntry{
			Company:     exp.Company,
			Title:       exp.Title,
			Duration:    exp.Duration,
			Description: exp.Description,
			StartDate:   exp.StartDate,
			EndDate:     exp.EndDate,
		})
	}

	education := make([]candidate.EducationEntry, 0, len(p.Education))
	for _, edu := range p.Education {
		education = append(education, candidate.EducationEntry{
			Institution:    edu.Institution,
			Degree:         edu.Degree,
			FieldOfStudy:   edu.FieldOfStudy,
			GraduationDate: edu.GraduationDate,
		})
	}

	now := time.Now().UTC()
	return &candidate.Profile{
		ID:             kernel.NewCandidateID(uuid.NewString()),
		Name:           p.Name,
		Email:          kernel.Email(p.Email),
		Phone:          kernel.Phone(p.Phone),
		Location:       p.Location,
		LinkedIn:       p.LinkedIn,
		Summary:        p.Summary,
		Skills:         p.Skills,
		Experience:     experience,
		Education:      education,
		Certifications: p.Certifications,
		Languages:      p.Languages,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
