// Package prompt renders the generation prompts sent to the model.
package prompt

import (
	"fmt"
	"strings"
)

// DefaultDifficulty is used when the caller leaves difficulty empty.
const DefaultDifficulty = "medium"

const examHeading = "Generate multiple choice practice questions in the style of a real exam paper:\n\n"

// Topic builds the prompt for a topic quiz with four options per question.
func Topic(topic, difficulty string, n int) string {
	var sb strings.Builder
	sb.WriteString("Generate a multiple choice quiz with the following details:\n\n")
	sb.WriteString(fmt.Sprintf("- Topic: %q\n", topic))
	sb.WriteString(fmt.Sprintf("- Number of questions: %d\n", n))
	sb.WriteString(fmt.Sprintf("- Difficulty: %q\n\n", orDefault(difficulty)))
	writeFormat(&sb, n, 4)
	return sb.String()
}

// Exam builds the prompt for an exam-style quiz with five options per question.
func Exam(exam, difficulty string, n int) string {
	var sb strings.Builder
	sb.WriteString(examHeading)
	sb.WriteString(fmt.Sprintf("- Exam: %q\n", exam))
	sb.WriteString(fmt.Sprintf("- Number of questions: %d\n", n))
	sb.WriteString(fmt.Sprintf("- Difficulty: %q\n\n", orDefault(difficulty)))
	sb.WriteString("Match the syllabus, phrasing and difficulty of past papers of this exam.\n\n")
	writeFormat(&sb, n, 5)
	return sb.String()
}

// IsExam reports whether p was built by Exam.
func IsExam(p string) bool {
	return strings.HasPrefix(p, examHeading)
}

func writeFormat(sb *strings.Builder, n, options int) {
	sb.WriteString("Respond with a JSON array only, no commentary. ")
	sb.WriteString(fmt.Sprintf("The array must contain exactly %d objects shaped like:\n", n))
	sb.WriteString("{\n")
	sb.WriteString("  \"question\": \"the question text\",\n")
	sb.WriteString(fmt.Sprintf("  \"options\": [%s],\n", optionPlaceholders(options)))
	sb.WriteString("  \"answer\": \"the correct option, copied exactly from options\",\n")
	sb.WriteString("  \"explanation\": \"one or two sentences on why the answer is correct\"\n")
	sb.WriteString("}\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString(fmt.Sprintf("- Every question has exactly %d distinct options.\n", options))
	sb.WriteString("- Exactly one option is correct and \"answer\" repeats it character for character.\n")
	sb.WriteString("- Do not reveal the answer in the question text.\n")
}

func optionPlaceholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("\"option %c\"", 'A'+i)
	}
	return strings.Join(parts, ", ")
}

func orDefault(difficulty string) string {
	if strings.TrimSpace(difficulty) == "" {
		return DefaultDifficulty
	}
	return difficulty
}
