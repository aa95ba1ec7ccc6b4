package embeddings

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/talentsift/screening/screening/candidate"
)

// Generator creates embedding vectors for semantic candidate search.
// Implements candidate.Embedder.
type Generator struct {
	client *openai.Client
}

func New(apiKey string) *Generator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Generator{
		client: &client,
	}
}

// GenerateEmbedding creates an embedding vector for text
func (g *Generator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: openai.EmbeddingModelTextEmbedding3Small,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	return toFloat32(resp.Data[0].Embedding), nil
}

// GenerateBatchEmbeddings creates embeddings for multiple texts,
// skipping empty entries
func (g *Generator) GenerateBatchEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	valid := make([]string, 0, len(texts))
	for _, text := range texts {
		if text != "" {
			valid = append(valid, text)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no non-empty texts provided")
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: valid,
		},
		Model: openai.EmbeddingModelTextEmbedding3Small,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	out := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		out[i] = toFloat32(data.Embedding)
	}
	return out, nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}

// FormatProfile renders a profile as the text fed to the embedding
// model. Field order is stable so re-embedding an unchanged profile
// yields the same input.
func FormatProfile(p *candidate.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	if p.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Location)
	}
	if p.Summary != "" {
		fmt.Fprintf(&b, "\nSummary: %s\n", p.Summary)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "\nSkills: %s\n", strings.Join(p.Skills, ", "))
	}

	if len(p.Experience) > 0 {
		b.WriteString("\nExperience:\n")
		for _, exp := range p.Experience {
			fmt.Fprintf(&b, "- %s at %s (%s to %s)\n", exp.Title, exp.Company, exp.StartDate, exp.EndDate)
			if exp.Description != "" {
				fmt.Fprintf(&b, "  %s\n", exp.Description)
			}
		}
	}

	if len(p.Education) > 0 {
		b.WriteString("\nEducation:\n")
		for _, edu := range p.Education {
			fmt.Fprintf(&b, "- %s in %s from %s (%s)\n", edu.Degree, edu.FieldOfStudy, edu.Institution, edu.GraduationDate)
		}
	}

	if len(p.Certifications) > 0 {
		fmt.Fprintf(&b, "\nCertifications: %s\n", strings.Join(p.Certifications, ", "))
	}
	if len(p.Languages) > 0 {
		fmt.Fprintf(&b, "\nLanguages: %s\n", strings.Join(p.Languages, ", "))
	}

	return b.String()
}
