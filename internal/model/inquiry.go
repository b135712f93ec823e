package model

import "time"

// ContactMessage is a visitor submission from the contact page.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// QuoteRequest is a visitor submission from the quote-request page.
type QuoteRequest struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ProjectType string    `json:"project_type"`
	Timeline    string    `json:"timeline"`
	Budget      string    `json:"budget"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}
