package store

import (
	"sync"

	"askboard/pkg/domain"
)

// MemoryStore keeps questions and answers in-process. Content is volatile by
// design: a restart starts from an empty board. The mutex is the explicit
// boundary around each id-allocation + insert cycle and around the view
// increment, so the store stays correct under concurrent HTTP handlers.
type MemoryStore struct {
	mu        sync.RWMutex
	questions []domain.Question
	answers   []domain.Answer
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Seed appends prebuilt questions, keeping their ids and view counts.
// Used for optional demo data; later allocations still go through NextID.
func (m *MemoryStore) Seed(questions []domain.Question) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, questions...)
}

// CreateQuestion allocates the next question id and appends the question.
func (m *MemoryStore) CreateQuestion(q domain.Question) domain.Question {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int, 0, len(m.questions))
	for _, existing := range m.questions {
		ids = append(ids, existing.ID)
	}
	q.ID = domain.NextID(ids)
	m.questions = append(m.questions, q)
	return q
}

// ListQuestions returns all questions in insertion order.
func (m *MemoryStore) ListQuestions() []domain.Question {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Question, len(m.questions))
	copy(res, m.questions)
	return res
}

// GetQuestion returns the question with the given id after bumping its view
// counter by one. Every fetch costs a view; there is no per-caller
// deduplication.
func (m *MemoryStore) GetQuestion(id int) (domain.Question, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.questions {
		if m.questions[i].ID == id {
			m.questions[i].Views++
			return m.questions[i], true
		}
	}
	return domain.Question{}, false
}

// CreateAnswer appends an answer for an existing question. When the question
// is missing it reports false without consuming an answer id.
func (m *MemoryStore) CreateAnswer(a domain.Answer) (domain.Answer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for _, q := range m.questions {
		if q.ID == a.QuestionID {
			found = true
			break
		}
	}
	if !found {
		return domain.Answer{}, false
	}
	ids := make([]int, 0, len(m.answers))
	for _, existing := range m.answers {
		ids = append(ids, existing.ID)
	}
	// Answer ids span the whole answer set, not one question.
	a.ID = domain.NextID(ids)
	m.answers = append(m.answers, a)
	return a, true
}

// ListAnswers returns the answers for one question in insertion order. A
// question with no answers and a question that does not exist both yield an
// empty list; this operation does not distinguish them.
func (m *MemoryStore) ListAnswers(questionID int) []domain.Answer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Answer, 0)
	for _, a := range m.answers {
		if a.QuestionID == questionID {
			res = append(res, a)
		}
	}
	return res
}
