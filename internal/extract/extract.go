// Package extract turns free-form generative model output into validated
// multiple-choice questions.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"quizgen-service/internal/domain"
)

// fenceRe matches a markdown fence marker with an optional language label.
var fenceRe = regexp.MustCompile("```[A-Za-z0-9_+.-]*")

// Extract finds the JSON array in rawText (the span from the first '[' to the
// last ']' once code fences are removed) and validates each element as an
// MCQRecord. It stops at the first invalid element. Records are returned in
// source order with their values untouched.
//
// All failures are *ParseError values wrapping ErrParse.
func Extract(rawText string) ([]domain.MCQRecord, error) {
	cleaned := StripFences(rawText)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end < 0 || end < start {
		return nil, failure(ErrNoArrayFound, -1)
	}

	var parsed any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err != nil {
		pe := failure(ErrMalformedJSON, -1)
		pe.Err = err
		return nil, pe
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, failure(ErrNotAnArray, -1)
	}

	records := make([]domain.MCQRecord, 0, len(items))
	for i, item := range items {
		rec, err := validateItem(i, item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// StripFences deletes every code fence marker and leaves the fenced content in place.
func StripFences(text string) string {
	return fenceRe.ReplaceAllString(text, "")
}

func validateItem(index int, item any) (domain.MCQRecord, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		pe := failure(ErrMissingField, index)
		pe.Field = "question"
		return domain.MCQRecord{}, pe
	}

	question, ok := requiredText(obj, "question")
	if !ok {
		return domain.MCQRecord{}, missing(index, "question")
	}
	rawOptions, ok := obj["options"]
	if !ok || rawOptions == nil {
		return domain.MCQRecord{}, missing(index, "options")
	}
	answer, ok := requiredText(obj, "answer")
	if !ok {
		return domain.MCQRecord{}, missing(index, "answer")
	}

	options, ok := stringList(rawOptions)
	if !ok || len(options) < 2 {
		pe := failure(ErrInvalidOptions, index)
		pe.Field = "options"
		return domain.MCQRecord{}, pe
	}

	rec := domain.MCQRecord{
		Question: question,
		Options:  options,
		Answer:   answer,
	}
	if !rec.HasOption(answer) {
		pe := failure(ErrAnswerNotInOptions, index)
		pe.Answer = answer
		pe.Options = options
		return domain.MCQRecord{}, pe
	}

	if explanation, ok := obj["explanation"].(string); ok {
		rec.Explanation = explanation
	}
	return rec, nil
}

// requiredText returns the field as a string if it is present and not blank.
// The returned value is not trimmed.
func requiredText(obj map[string]any, field string) (string, bool) {
	s, ok := obj[field].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func stringList(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, entry := range list {
		s, ok := entry.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func missing(index int, field string) *ParseError {
	pe := failure(ErrMissingField, index)
	pe.Field = field
	return pe
}
