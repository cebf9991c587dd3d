package tui

import (
	"context"
	"errors"

	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/cloudlibrary/cloudlib/internal/tui/components"
)

// Labels holds every user-visible string of the catalog screen
type Labels struct {
	Headline          string
	Search            string
	SearchPlaceholder string
	Login             string
	Register          string
	Retry             string
	SignOut           string
	SignedInAs        string
	WelcomeFmt        string
	Loading           string
	LoadFailed        string
	Empty             string
	NoMatchesFmt      string
	DidYouMean        string
	CountFmt          string
	RatingFmt         string
	RatingLoading     string
	Unrated           string
	Help              string
	Form              components.FormLabels

	ServerOffline string
	AuthFailed    string
	UserExists    string
	TimedOut      string
}

var spanishLabels = Labels{
	Headline:          "Bienvenido a CloudLibrary",
	Search:            "Buscar libro",
	SearchPlaceholder: "Título del libro...",
	Login:             "Iniciar sesión",
	Register:          "Registrarse",
	Retry:             "Reintentar",
	SignOut:           "Cerrar sesión",
	SignedInAs:        "Sesión iniciada como",
	WelcomeFmt:        "Bienvenido, %s",
	Loading:           "Cargando libros...",
	LoadFailed:        "No se pudieron cargar los libros",
	Empty:             "No hay libros disponibles",
	NoMatchesFmt:      "Ningún libro coincide con %q",
	DidYouMean:        "¿Quisiste decir?",
	CountFmt:          "%d de %d libros",
	RatingFmt:         "★ %.1f",
	RatingLoading:     "★ …",
	Unrated:           "sin valoraciones",
	Help:              "ayuda",
	Form: components.FormLabels{
		Name:     "Nombre",
		Email:    "Correo electrónico",
		Password: "Contraseña",
		Submit:   "enter enviar",
		Cancel:   "esc cancelar",
		Busy:     "Autenticando...",
	},
	ServerOffline: "El servidor no está disponible",
	AuthFailed:    "Correo o contraseña incorrectos",
	UserExists:    "Ya existe una cuenta con ese correo",
	TimedOut:      "El servidor tardó demasiado en responder",
}

var englishLabels = Labels{
	Headline:          "Welcome to CloudLibrary",
	Search:            "Search books",
	SearchPlaceholder: "Book title...",
	Login:             "Login",
	Register:          "Register",
	Retry:             "Retry",
	SignOut:           "Sign out",
	SignedInAs:        "Signed in as",
	WelcomeFmt:        "Welcome, %s",
	Loading:           "Loading books...",
	LoadFailed:        "Could not load books",
	Empty:             "No books available",
	NoMatchesFmt:      "No books match %q",
	DidYouMean:        "Did you mean?",
	CountFmt:          "%d of %d books",
	RatingFmt:         "★ %.1f",
	RatingLoading:     "★ …",
	Unrated:           "no ratings yet",
	Help:              "help",
	Form: components.FormLabels{
		Name:     "Name",
		Email:    "Email",
		Password: "Password",
		Submit:   "enter submit",
		Cancel:   "esc cancel",
		Busy:     "Authenticating...",
	},
	ServerOffline: "The server is unavailable",
	AuthFailed:    "Invalid email or password",
	UserExists:    "An account with that email already exists",
	TimedOut:      "The server took too long to respond",
}

// LabelsFor returns the labels for a language code ("es" or "en").
// Unknown codes fall back to Spanish.
func LabelsFor(lang string) Labels {
	if lang == "en" {
		return englishLabels
	}
	return spanishLabels
}

// DescribeError renders an error for display
func (l Labels) DescribeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrServerOffline):
		return l.ServerOffline
	case errors.Is(err, domain.ErrAuthFailed):
		return l.AuthFailed
	case errors.Is(err, domain.ErrUserExists):
		return l.UserExists
	case errors.Is(err, context.DeadlineExceeded):
		return l.TimedOut
	default:
		return err.Error()
	}
}
