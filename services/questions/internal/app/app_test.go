package app

import (
	"errors"
	"reflect"
	"testing"
)

func TestCreateQuestionNormalizesTags(t *testing.T) {
	cases := []struct {
		name string
		tags any
		want []string
	}{
		{"comma string", "go, web ,http", []string{"go", "web", "http"}},
		{"string with empties", "x,,  ,y", []string{"x", "y"}},
		{"list", []any{"go", "http"}, []string{"go", "http"}},
		{"mixed list drops non-strings", []any{"go", 7, "http"}, []string{"go", "http"}},
		{"number", 42, []string{}},
		{"nil", nil, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := New(Config{})
			q, err := a.CreateQuestion("t", "d", "c", tc.tags, "author")
			if err != nil {
				t.Fatalf("create question: %v", err)
			}
			if !reflect.DeepEqual(q.Tags, tc.want) {
				t.Fatalf("tags = %#v, want %#v", q.Tags, tc.want)
			}
		})
	}
}

func TestCreateQuestionRequiresFields(t *testing.T) {
	a := New(Config{})
	cases := [][4]string{
		{"", "d", "c", "author"},
		{"t", "", "c", "author"},
		{"t", "d", "", "author"},
		{"t", "d", "c", ""},
	}
	for _, tc := range cases {
		if _, err := a.CreateQuestion(tc[0], tc[1], tc[2], nil, tc[3]); !errors.Is(err, ErrQuestionFieldsRequired) {
			t.Fatalf("CreateQuestion(%v) = %v, want ErrQuestionFieldsRequired", tc, err)
		}
	}
}

func TestQuestionAnswerLifecycle(t *testing.T) {
	a := New(Config{})

	q, err := a.CreateQuestion("How do goroutines work?", "details", "Technology", "go,concurrency", "Alice")
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if q.ID != 1 || q.Views != 0 {
		t.Fatalf("new question id=%d views=%d, want id=1 views=0", q.ID, q.Views)
	}

	got, err := a.GetQuestion(q.ID)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if got.Views != 1 {
		t.Fatalf("views after first fetch = %d, want 1", got.Views)
	}

	answer, err := a.CreateAnswer(q.ID, "Bob", "bob@x.com", "They are lightweight threads.")
	if err != nil {
		t.Fatalf("create answer: %v", err)
	}
	if answer.ID != 1 || answer.QuestionID != q.ID {
		t.Fatalf("answer id=%d questionId=%d, want 1 and %d", answer.ID, answer.QuestionID, q.ID)
	}

	answers := a.ListAnswers(q.ID)
	if len(answers) != 1 || answers[0].Text != "They are lightweight threads." {
		t.Fatalf("answers = %+v", answers)
	}
	if other := a.ListAnswers(q.ID + 1); len(other) != 0 {
		t.Fatalf("answers for unknown question = %+v, want empty", other)
	}
}

func TestCreateAnswerErrors(t *testing.T) {
	a := New(Config{})
	q, err := a.CreateQuestion("t", "d", "c", nil, "author")
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	if _, err := a.CreateAnswer(q.ID, "", "e@x.com", "text"); !errors.Is(err, ErrAnswerFieldsRequired) {
		t.Fatalf("missing author = %v, want ErrAnswerFieldsRequired", err)
	}
	if _, err := a.CreateAnswer(q.ID, "Bob", "e@x.com", ""); !errors.Is(err, ErrAnswerFieldsRequired) {
		t.Fatalf("missing text = %v, want ErrAnswerFieldsRequired", err)
	}
	if _, err := a.CreateAnswer(999, "Bob", "e@x.com", "text"); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("missing question = %v, want ErrQuestionNotFound", err)
	}

	// Email is optional.
	if _, err := a.CreateAnswer(q.ID, "Bob", "", "text"); err != nil {
		t.Fatalf("answer without email: %v", err)
	}
}

func TestGetQuestionMissing(t *testing.T) {
	a := New(Config{})
	if _, err := a.GetQuestion(7); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("get missing = %v, want ErrQuestionNotFound", err)
	}
}

func TestSeedDemoData(t *testing.T) {
	a := New(Config{SeedDemoData: true})
	questions := a.ListQuestions()
	if len(questions) != 2 {
		t.Fatalf("seeded %d questions, want 2", len(questions))
	}
	if questions[0].ID != 1 || questions[0].Views != 3 {
		t.Fatalf("first demo question: %+v", questions[0])
	}
	if questions[1].ID != 2 || questions[1].Views != 5 {
		t.Fatalf("second demo question: %+v", questions[1])
	}

	q, err := a.CreateQuestion("t", "d", "c", nil, "author")
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if q.ID != 3 {
		t.Fatalf("id after demo seed = %d, want 3", q.ID)
	}
}
