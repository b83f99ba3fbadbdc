package client

import (
	"context"
	"net/http"

	"github.com/retailpos/terminal/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer credential and operator identity issued
// by the identity provider.
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login exchanges operator credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
