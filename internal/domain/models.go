package domain

import "time"

// MCQRecord is a single multiple-choice question as extracted from a model reply.
type MCQRecord struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// HasOption reports whether answer matches one of the options exactly.
func (r MCQRecord) HasOption(answer string) bool {
	for _, opt := range r.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

// Question is an MCQRecord addressable inside a stored quiz.
type Question struct {
	ID string `json:"id"`
	MCQRecord
}

// QuizKind distinguishes topic quizzes from exam-style quizzes. It doubles as
// the score history category.
type QuizKind string

const (
	KindTopic QuizKind = "topic"
	KindExam  QuizKind = "exam"
)

// Valid reports whether k is a known quiz kind.
func (k QuizKind) Valid() bool {
	return k == KindTopic || k == KindExam
}

// OptionCount is the number of options every question of the given kind must carry.
func OptionCount(kind QuizKind) int {
	if kind == KindExam {
		return 5
	}
	return 4
}

// Quiz is a generated, stored set of questions.
type Quiz struct {
	ID         string     `json:"id"`
	Kind       QuizKind   `json:"kind"`
	Topic      string     `json:"topic,omitempty"`
	Exam       string     `json:"exam,omitempty"`
	Difficulty string     `json:"difficulty,omitempty"`
	Questions  []Question `json:"questions"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Label is the human-facing subject of the quiz: its topic or exam name.
func (q Quiz) Label() string {
	if q.Kind == KindExam {
		return q.Exam
	}
	return q.Topic
}

// ScoreRecord is one entry of a user's score history.
type ScoreRecord struct {
	ID         string    `json:"id"`
	Category   QuizKind  `json:"category"`
	Label      string    `json:"label"`
	Difficulty string    `json:"difficulty,omitempty"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Timestamp  time.Time `json:"timestamp"`
}

// Participant represents a live quiz participant and their accumulated score.
type Participant struct {
	UserID      string
	DisplayName string
	Score       int
	Answered    map[string]bool
	LastUpdated time.Time
}

// LeaderboardEntry is a snapshot-friendly view of a participant.
type LeaderboardEntry struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
	Answered    int    `json:"answered"`
}

// Leaderboard captures the ordered scoreboard for a quiz session.
type Leaderboard struct {
	QuizID    string             `json:"quizId"`
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// AnswerSubmission is a participant's pick for one question, by option text.
type AnswerSubmission struct {
	QuestionID string
	Answer     string
}

// AnswerResult summarizes the outcome of a submission for a single user.
type AnswerResult struct {
	QuestionID    string `json:"questionId"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Awarded       int    `json:"awarded"`
	TotalScore    int    `json:"totalScore"`
	Finished      bool   `json:"finished"`
}
