package domain

import (
	"strings"
	"time"
)

// User is a registered identity keyed by email. Email uniqueness is
// case-insensitive and enforced by the users store.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Question is a posted question. Views is the only field that mutates after
// creation; it grows by one on every single-question fetch.
type Question struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Answer belongs to exactly one question. Answer ids are allocated over the
// whole answer set, not per question.
type Answer struct {
	ID         int       `json:"id"`
	QuestionID int       `json:"questionId"`
	Author     string    `json:"author"`
	Email      string    `json:"email"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NextID returns max(existing)+1, or 1 for an empty set. Allocation is a pure
// function over the ids present at call time, not a stored counter, so a
// freed id below the max would be reused if deletion ever existed.
func NextID(existing []int) int {
	next := 1
	for _, id := range existing {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// NormalizeTags coerces the wire shape of a question's tags field.
// A string is split on commas with empty segments dropped, an array keeps its
// string elements in order, and any other shape becomes an empty list.
func NormalizeTags(raw any) []string {
	switch v := raw.(type) {
	case string:
		parts := strings.Split(v, ",")
		tags := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			tags = append(tags, part)
		}
		return tags
	case []string:
		tags := make([]string, 0, len(v))
		return append(tags, v...)
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return []string{}
	}
}
