package llm

import (
	"context"

	"quizgen-service/internal/prompt"
)

// Static always answers with the same text. Handy offline and in tests.
type Static struct {
	Reply string
	// ExamReply, when set, answers exam prompts instead of Reply.
	ExamReply string
}

// NewStatic answers with reply. An empty reply selects the demo quizzes.
func NewStatic(reply string) *Static {
	if reply == "" {
		return &Static{Reply: DemoReply, ExamReply: DemoExamReply}
	}
	return &Static{Reply: reply}
}

func (s *Static) Generate(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.ExamReply != "" && prompt.IsExam(p) {
		return s.ExamReply, nil
	}
	return s.Reply, nil
}

func (s *Static) Close() error { return nil }

// DemoReply mimics a typical fenced model answer with four options per question.
const DemoReply = "Here is your quiz:\n```json\n" + `[
  {"question": "Which planet is known as the Red Planet?", "options": ["Venus", "Mars", "Jupiter", "Mercury"], "answer": "Mars", "explanation": "Iron oxide on its surface gives Mars its red colour."},
  {"question": "What is the chemical symbol for gold?", "options": ["Ag", "Gd", "Au", "Go"], "answer": "Au", "explanation": "Au comes from the Latin aurum."},
  {"question": "How many sides does a hexagon have?", "options": ["5", "6", "7", "8"], "answer": "6"}
]` + "\n```\nGood luck!"

// DemoExamReply is the exam-style counterpart of DemoReply, five options per question.
const DemoExamReply = "```json\n" + `[
  {"question": "Which organelle produces most of a cell's ATP?", "options": ["Nucleus", "Ribosome", "Mitochondrion", "Golgi apparatus", "Lysosome"], "answer": "Mitochondrion", "explanation": "Oxidative phosphorylation takes place in the mitochondria."},
  {"question": "If 3x + 5 = 20, what is x?", "options": ["3", "4", "5", "6", "15"], "answer": "5"},
  {"question": "Which gas makes up most of Earth's atmosphere?", "options": ["Oxygen", "Nitrogen", "Argon", "Carbon dioxide", "Hydrogen"], "answer": "Nitrogen", "explanation": "Nitrogen is about 78% of dry air."}
]` + "\n```"
