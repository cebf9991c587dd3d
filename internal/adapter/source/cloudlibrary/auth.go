package cloudlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cloudlibrary/cloudlib/internal/domain"
)

// Login verifies credentials (POST /api/users/login).
// The backend answers with a bare JSON boolean.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	form := url.Values{}
	form.Set("email", creds.Email)
	form.Set("password", creds.Password)

	body, err := c.doRequest(ctx, c.once, http.MethodPost, "/api/users/login",
		formBody(form), "application/x-www-form-urlencoded")
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
			return domain.User{}, domain.ErrAuthFailed
		}
		return domain.User{}, err
	}

	var ok bool
	if err := json.Unmarshal(body, &ok); err != nil {
		return domain.User{}, fmt.Errorf("failed to parse login response: %w", err)
	}
	if !ok {
		return domain.User{}, domain.ErrAuthFailed
	}
	return domain.User{Email: creds.Email}, nil
}

// Register creates an account (POST /api/users/register).
// 409 Conflict means the email is taken.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	payload, err := json.Marshal(UserDTO{Name: reg.Name, Email: reg.Email, Password: reg.Password})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.doRequest(ctx, c.once, http.MethodPost, "/api/users/register", payload, "application/json")
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusConflict {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}

	var dto UserDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.User{}, fmt.Errorf("failed to parse register response: %w", err)
	}
	user := MapUser(dto)
	if user.Email == "" {
		user.Email = reg.Email
	}
	if user.Name == "" {
		user.Name = reg.Name
	}
	return user, nil
}
