package cloudlibrary

import "github.com/cloudlibrary/cloudlib/internal/domain"

// BookDTO is a book as serialized by GET /api/books.
// Posts and ratings are ignored; the catalog screen never shows them.
type BookDTO struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Description string       `json:"description"`
	Category    *CategoryDTO `json:"category"`
}

// CategoryDTO is the nested category of a book
type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserDTO is the body of POST /api/users/register (request and response)
type UserDTO struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// MapBooks converts backend books to domain books, keeping server order
func MapBooks(dtos []BookDTO) []domain.Book {
	books := make([]domain.Book, 0, len(dtos))
	for _, d := range dtos {
		b := domain.Book{
			ID:          d.ID,
			Title:       d.Title,
			Author:      d.Author,
			Description: d.Description,
		}
		if d.Category != nil {
			b.Category = &domain.Category{ID: d.Category.ID, Name: d.Category.Name}
		}
		books = append(books, b)
	}
	return books
}

// MapUser converts a backend user to a domain user, dropping the password
func MapUser(d UserDTO) domain.User {
	return domain.User{ID: d.ID, Name: d.Name, Email: d.Email}
}
