package app

import (
	"time"

	"askboard/pkg/domain"
	"askboard/services/questions/internal/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	SeedDemoData bool
}

// App is the core application service owning the question/answer lifecycle.
type App struct {
	store *store.MemoryStore
}

// New constructs the application with a fresh in-memory store. Content is
// not persisted; callers must treat an empty board after restart as normal.
func New(cfg Config) *App {
	s := store.NewMemoryStore()
	if cfg.SeedDemoData {
		s.Seed(demoQuestions())
	}
	return &App{store: s}
}

// CreateQuestion validates the required fields, normalizes tags from
// whatever shape the wire delivered, and stores the question with zero views.
func (a *App) CreateQuestion(title, description, category string, tags any, author string) (domain.Question, error) {
	if title == "" || description == "" || category == "" || author == "" {
		return domain.Question{}, ErrQuestionFieldsRequired
	}
	question := a.store.CreateQuestion(domain.Question{
		Title:       title,
		Description: description,
		Category:    category,
		Tags:        domain.NormalizeTags(tags),
		Author:      author,
		Views:       0,
		CreatedAt:   time.Now().UTC(),
	})
	return question, nil
}

// ListQuestions returns all questions in insertion order. Category filtering
// is a client concern.
func (a *App) ListQuestions() []domain.Question {
	return a.store.ListQuestions()
}

// GetQuestion returns one question and increments its view counter as an
// observable side effect of the read.
func (a *App) GetQuestion(id int) (domain.Question, error) {
	question, ok := a.store.GetQuestion(id)
	if !ok {
		return domain.Question{}, ErrQuestionNotFound
	}
	return question, nil
}

// CreateAnswer validates and stores an answer for an existing question.
// The author is any string the caller asserts; the users service is never
// consulted.
func (a *App) CreateAnswer(questionID int, author, email, text string) (domain.Answer, error) {
	if author == "" || text == "" {
		return domain.Answer{}, ErrAnswerFieldsRequired
	}
	answer, ok := a.store.CreateAnswer(domain.Answer{
		QuestionID: questionID,
		Author:     author,
		Email:      email,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	})
	if !ok {
		return domain.Answer{}, ErrQuestionNotFound
	}
	return answer, nil
}

// ListAnswers returns the answers for one question, empty when the question
// has none or does not exist.
func (a *App) ListAnswers(questionID int) []domain.Answer {
	return a.store.ListAnswers(questionID)
}

func demoQuestions() []domain.Question {
	now := time.Now().UTC()
	return []domain.Question{
		{
			ID:          1,
			Title:       "How to install Node.js?",
			Description: "I am new to JavaScript. Can someone explain how to install Node.js?",
			Category:    "Technology",
			Tags:        []string{"nodejs", "javascript"},
			Author:      "Alice",
			Views:       3,
			CreatedAt:   now,
		},
		{
			ID:          2,
			Title:       "What is React?",
			Description: "Can someone explain React in simple words?",
			Category:    "Web Development",
			Tags:        []string{"react", "frontend"},
			Author:      "Bob",
			Views:       5,
			CreatedAt:   now,
		},
	}
}
