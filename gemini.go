package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/bodul/crosswords/puzzle"
)

const extractPrompt = `Analyse this photo of a filled-in crossword grid.

List every word written in the grid as JSON:
{
  "words": [
    {"x": <column, 0-based from the left>, "y": <row, 0-based from the top>, "orientation": "H" or "V", "text": "WORD"},
    ...
  ]
}

Rules:
- "H" words read left to right starting at (x, y); "V" words read top to bottom.
- Use the coordinates of the first letter of each word.
- Only include words of two letters or more, in upper case, without accents.
- Answer ONLY with the JSON, no comment and no markdown.`

var errEmptyResponse = errors.New("empty gemini response")

// ExtractWords sends an image to Gemini and returns the words it reads from
// the grid, in reading order. The words are not validated against each other.
func (g *GeminiClient) ExtractWords(ctx context.Context, imageData []byte, mimeType string) ([]puzzle.Word, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractPrompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageData}},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return parseExtractedWords(resp.Text())
}

func parseExtractedWords(text string) ([]puzzle.Word, error) {
	if text == "" {
		return nil, errEmptyResponse
	}

	var out struct {
		Words []WordJSON `json:"words"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("parse words JSON: %w\nraw response: %s", err, text)
	}
	if len(out.Words) == 0 {
		return nil, fmt.Errorf("no words found in grid: %w", ErrNoWords)
	}

	return toWords(out.Words)
}
