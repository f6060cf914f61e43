package core

import (
	"fmt"
	"strings"
)

// Difficulty is one of three ordered levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rank orders difficulties: easy < medium < hard. Unknown values rank 0.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 0
}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool { return d.Rank() > 0 }

// ParseDifficulty accepts a level name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
	return d, nil
}

// Test is a skill test offered to employees.
type Test struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	Duration       int        `json:"duration"` // minutes
	QuestionsCount int        `json:"questionsCount"`
	Tags           []string   `json:"tags"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      string     `json:"createdAt"`
}

// Key returns the entity id.
func (t Test) Key() int { return t.ID }

// Clone returns a deep copy.
func (t Test) Clone() Test {
	out := t
	out.Tags = append([]string{}, t.Tags...)
	return out
}

// NewTest is the input of an add.
type NewTest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	Duration       int        `json:"duration"`
	QuestionsCount int        `json:"questionsCount"`
	Tags           []string   `json:"tags"`
	IsActive       bool       `json:"isActive"`
}

// Build assigns id and creation date.
func (n NewTest) Build(id int, createdAt string) Test {
	return Test{
		ID:             id,
		Title:          n.Title,
		Description:    n.Description,
		Category:       n.Category,
		Difficulty:     n.Difficulty,
		Duration:       n.Duration,
		QuestionsCount: n.QuestionsCount,
		Tags:           append([]string{}, n.Tags...),
		IsActive:       n.IsActive,
		CreatedAt:      createdAt,
	}
}

// TestPatch is a partial update. ID and CreatedAt cannot be patched.
type TestPatch struct {
	Title          *string     `json:"title,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Category       *string     `json:"category,omitempty"`
	Difficulty     *Difficulty `json:"difficulty,omitempty"`
	Duration       *int        `json:"duration,omitempty"`
	QuestionsCount *int        `json:"questionsCount,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	IsActive       *bool       `json:"isActive,omitempty"`
}

// Apply shallow-merges the patch into t.
func (p TestPatch) Apply(t Test) Test {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Difficulty != nil {
		t.Difficulty = *p.Difficulty
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.QuestionsCount != nil {
		t.QuestionsCount = *p.QuestionsCount
	}
	if p.Tags != nil {
		t.Tags = append([]string{}, p.Tags...)
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	return t
}
