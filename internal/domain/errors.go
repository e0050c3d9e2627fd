package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrSessionNotFound is returned when a live session has not been initialized.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrParticipantNotFound is returned when a user tries to act before joining.
	ErrParticipantNotFound = errors.New("participant not found in quiz")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted answer is not one of the question's options.
	ErrOptionNotFound = errors.New("option not found")
	// ErrAlreadyAnswered rejects a second submission for the same question.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrInvalidRequest marks a generation request that cannot be served as asked.
	ErrInvalidRequest = errors.New("invalid quiz request")
	// ErrGenerationUnavailable wraps any failure of the upstream text generator.
	// Callers should surface it as a "try again later" condition.
	ErrGenerationUnavailable = errors.New("question generation unavailable")
	// ErrInvalidQuestionSet means the extracted questions do not fit the quiz kind.
	ErrInvalidQuestionSet = errors.New("generated questions do not match quiz format")
	// ErrInvalidScore rejects a score history entry.
	ErrInvalidScore = errors.New("invalid score record")
)
