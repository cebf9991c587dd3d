package domain

import "fmt"

// Book is a catalog entry as returned by the book-listing provider.
// Books are immutable once fetched.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
}

// DisplayAuthor returns the author or a placeholder for anonymous works
func (b Book) DisplayAuthor() string {
	if b.Author == "" {
		return "—"
	}
	return b.Author
}

// CategoryName returns the category name, empty when uncategorized
func (b Book) CategoryName() string {
	if b.Category == nil {
		return ""
	}
	return b.Category.Name
}

// Key returns a stable string identifier for the book
func (b Book) Key() string {
	return fmt.Sprintf("book:%d", b.ID)
}

// Category groups books in the catalog
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the account returned by a successful login or registration
type User struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Handle returns the name shown in the signed-in indicator
func (u User) Handle() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Credentials are submitted by the login form
type Credentials struct {
	Email    string
	Password string
}

// Registration is submitted by the register form
type Registration struct {
	Name     string
	Email    string
	Password string
}
