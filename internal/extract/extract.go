// Package extract turns forwarded transaction email bodies into structured
// field maps by way of a text-generation model. The model's reply must carry
// the fields inside a fenced JSON block; anything else violates the prompt
// contract.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pennywise-fin/pennywise/internal/domain"
)

// Generator abstracts the text-generation call so tests can stub the model.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// FormatError reports a model reply that does not contain the expected
// fenced JSON block.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "extract: " + e.Reason
}

// jsonBlockRe matches the ```json fenced block the prompt demands.
var jsonBlockRe = regexp.MustCompile("```json\\s*([\\s\\S]+?)\\s*```")

// Extractor drives the prompt contract against a Generator.
type Extractor struct {
	gen Generator
}

func NewExtractor(gen Generator) *Extractor {
	return &Extractor{gen: gen}
}

// ExtractTransaction asks the model for the structured fields of one email
// body and decodes them. Returns a FormatError when the reply lacks the
// fenced JSON block.
func (e *Extractor) ExtractTransaction(ctx context.Context, body string) (domain.Record, error) {
	prompt := strings.Replace(transactionPrompt, "{msg}", body, 1)

	raw, err := e.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ExtractTransaction: generate: %w", err)
	}

	m := jsonBlockRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, &FormatError{Reason: "no JSON data found in response"}
	}
	cleaned := strings.ReplaceAll(m[1], "\n", "")

	var fields domain.Record
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("ExtractTransaction: decode fields: %w", err)
	}
	return fields, nil
}
