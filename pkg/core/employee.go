package core

import "strings"

// Rating is a single score left on an employee. Its ID is unique within the
// owning employee only.
type Rating struct {
	ID      int    `json:"id"`
	Rating  int    `json:"rating"` // 1-5, not enforced
	Comment string `json:"comment"`
	Author  string `json:"author"`
	Date    string `json:"date"` // YYYY-MM-DD
}

// Employee is a tracked person. Ratings are append-only.
type Employee struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Department string   `json:"department"`
	Skills     []string `json:"skills"`
	Image      string   `json:"image"`
	Notes      string   `json:"notes,omitempty"`
	Ratings    []Rating `json:"ratings"`
}

// Key returns the entity id.
func (e Employee) Key() int { return e.ID }

// Clone returns a deep copy so callers never share slices with a store cache.
func (e Employee) Clone() Employee {
	out := e
	out.Skills = append([]string(nil), e.Skills...)
	out.Ratings = append([]Rating(nil), e.Ratings...)
	if out.Skills == nil {
		out.Skills = []string{}
	}
	if out.Ratings == nil {
		out.Ratings = []Rating{}
	}
	return out
}

// NextRatingID applies the per-employee id rule: max existing + 1, or 1.
func (e Employee) NextRatingID() int {
	next := 1
	for _, r := range e.Ratings {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	return next
}

// NewEmployee is the input of an add: an Employee without its id.
type NewEmployee struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Department string   `json:"department"`
	Skills     []string `json:"skills"`
	Image      string   `json:"image"`
	Notes      string   `json:"notes,omitempty"`
	Ratings    []Rating `json:"ratings,omitempty"`
}

// Build assigns id and normalizes the collections.
func (n NewEmployee) Build(id int) Employee {
	return Employee{
		ID:         id,
		Name:       n.Name,
		Title:      n.Title,
		Department: n.Department,
		Skills:     NormalizeSkills(n.Skills),
		Image:      n.Image,
		Notes:      n.Notes,
		Ratings:    append([]Rating{}, n.Ratings...),
	}
}

// NewRating is the input of AddRating: a Rating without its id.
type NewRating struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

// Build assigns the per-employee id.
func (n NewRating) Build(id int) Rating {
	return Rating{ID: id, Rating: n.Rating, Comment: n.Comment, Author: n.Author, Date: n.Date}
}

// EmployeePatch is a partial update. Nil fields keep their current value.
// ID and Ratings are deliberately absent.
type EmployeePatch struct {
	Name       *string  `json:"name,omitempty"`
	Title      *string  `json:"title,omitempty"`
	Department *string  `json:"department,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Image      *string  `json:"image,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// Apply shallow-merges the patch into e.
func (p EmployeePatch) Apply(e Employee) Employee {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Skills != nil {
		e.Skills = NormalizeSkills(p.Skills)
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}

// NormalizeSkills trims entries, drops blanks and removes duplicates keeping
// the first occurrence.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
