package model

import "time"

// ForumPostRequest is the payload for opening a forum topic.
type ForumPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ForumTopic is an acknowledged forum post.
type ForumTopic struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}
