package model

import (
	"strings"
	"time"
)

// Difficulty is the normalised difficulty level of a tutorial.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

var difficultyVariants = map[string]Difficulty{
	"mudah":  DifficultyEasy,
	"easy":   DifficultyEasy,
	"sedang": DifficultyMedium,
	"medium": DifficultyMedium,
	"sulit":  DifficultyHard,
	"hard":   DifficultyHard,
	"ahli":   DifficultyExpert,
	"expert": DifficultyExpert,
}

// ParseDifficulty collapses the Indonesian and English spellings onto one level.
// Unknown values are treated as easy.
func ParseDifficulty(s string) Difficulty {
	if d, ok := difficultyVariants[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d
	}
	return DifficultyEasy
}

// TutorialContent is the structured body of a tutorial.
type TutorialContent struct {
	Materials []string `json:"materials" yaml:"materials"`
	Steps     []string `json:"steps" yaml:"steps"`
	Tips      []string `json:"tips,omitempty" yaml:"tips"`
}

// Interaction holds the viewer's bookmark, completion and rating state.
type Interaction struct {
	Saved     bool `json:"saved"`
	Completed bool `json:"completed"`
	Rating    int  `json:"rating,omitempty"`
}

// Tutorial is a how-to guide for reusing or recycling waste.
type Tutorial struct {
	ID            string          `json:"id" yaml:"id" db:"id"`
	Title         string          `json:"title" yaml:"title" db:"title"`
	Description   string          `json:"description" yaml:"description" db:"description"`
	Difficulty    Difficulty      `json:"difficulty" yaml:"difficulty" db:"difficulty"`
	Duration      string          `json:"duration" yaml:"duration" db:"duration"`
	Content       TutorialContent `json:"content" yaml:"content"`
	MediaURL      string          `json:"mediaUrl,omitempty" yaml:"mediaUrl" db:"media_url"`
	AverageRating float64         `json:"averageRating"`
	RatingCount   int             `json:"ratingCount"`
	Interaction   *Interaction    `json:"interaction,omitempty"`
	Comments      []Comment       `json:"comments"`
	CreatedBy     string          `json:"createdBy,omitempty" yaml:"createdBy" db:"created_by"`
	CreatedAt     time.Time       `json:"createdAt" yaml:"createdAt" db:"created_at"`
}

// Comment is a viewer's note on a tutorial, optionally carrying a rating.
type Comment struct {
	ID         string    `json:"id" db:"id"`
	TutorialID string    `json:"tutorialId" db:"tutorial_id"`
	UserID     string    `json:"userId" db:"user_id"`
	UserName   string    `json:"userName,omitempty"`
	Text       string    `json:"text" db:"text"`
	Rating     *int      `json:"rating,omitempty" db:"rating"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// TutorialRequest is the payload for submitting a new tutorial.
type TutorialRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Duration    string   `json:"duration"`
	Materials   []string `json:"materials"`
	Steps       []string `json:"steps"`
	Tips        []string `json:"tips,omitempty"`
	MediaURL    string   `json:"mediaUrl,omitempty"`
}

// CommentRequest is the payload for commenting on a tutorial.
type CommentRequest struct {
	Text   string `json:"text"`
	Rating *int   `json:"rating,omitempty"`
}

// RatingRequest is the payload for rating a tutorial.
type RatingRequest struct {
	Rating int `json:"rating"`
}
