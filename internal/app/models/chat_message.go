package models

import "time"

// ChatMessage is a message posted to a department chat room
type ChatMessage struct {
	ID           int64     `json:"id"`
	DepartmentID int64     `json:"departmentId"`
	UserID       int64     `json:"userId"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	AuthorName   string    `json:"authorName,omitempty"`
}
