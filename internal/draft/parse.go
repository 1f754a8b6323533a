package draft

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	errEmptyContent  = errors.New("response content is empty")
	errNotMarkup     = errors.New("response content is not markup")
	errTrailingInput = errors.New("unexpected data after object")
)

// response is the only shape accepted from the text generation service.
type response struct {
	Title   *string `json:"title"`
	Excerpt *string `json:"excerpt"`
	Content *string `json:"content"`
}

// extractObject returns the first balanced {...} span of text, or the whole
// text when no complete span exists. Braces inside JSON strings are ignored.
func extractObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return text
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return text
}

// parseResponse strictly decodes the model output. Unknown fields, wrong
// types, trailing data, or a body that is not markup are all rejected.
func parseResponse(text string) (response, error) {
	span := extractObject(strings.TrimSpace(text))

	dec := json.NewDecoder(bytes.NewReader([]byte(span)))
	dec.DisallowUnknownFields()

	var r response
	if err := dec.Decode(&r); err != nil {
		return response{}, fmt.Errorf("decode response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return response{}, errTrailingInput
	}

	if r.Content == nil || strings.TrimSpace(*r.Content) == "" {
		return response{}, errEmptyContent
	}
	if !strings.Contains(*r.Content, "<") {
		return response{}, errNotMarkup
	}
	return r, nil
}

func (r response) title() string {
	return trimmed(r.Title)
}

func (r response) excerpt() string {
	return trimmed(r.Excerpt)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
