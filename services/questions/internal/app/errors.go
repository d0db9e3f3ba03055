package app

import "errors"

var (
	// ErrQuestionFieldsRequired is returned when question creation misses a
	// required field. Tags are optional and never cause an error.
	ErrQuestionFieldsRequired = errors.New("title, description, category and author are required")

	// ErrAnswerFieldsRequired is returned when answer creation misses the
	// author or the text.
	ErrAnswerFieldsRequired = errors.New("author and text are required")

	// ErrQuestionNotFound is returned when the referenced question id does
	// not exist.
	ErrQuestionNotFound = errors.New("question not found")
)
