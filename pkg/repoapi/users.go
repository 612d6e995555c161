package repoapi

import (
	"context"
	"net/http"
)

// GetProfile gets the signed-in user's profile
func (c *Client) GetProfile(ctx context.Context) (profile Profile, err error) {
	err = c.request(ctx, http.MethodGet, profilePath, nil, nil, &profile)
	return
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn signs in with the given email and password, returning the new session's tokens and the user's profile
func (c *Client) SignIn(ctx context.Context, email, password string) (creds Credentials, err error) {
	err = c.request(ctx, http.MethodPost, signInPath, nil, signInRequest{email, password}, &creds)
	if err == nil && (creds.AccessToken == "" || creds.RefreshToken == "") {
		err = ErrMissingTokens
	}
	return
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	Password        string `json:"password"`
}

// UpdatePassword changes the signed-in user's password
func (c *Client) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.request(ctx, http.MethodPut, updatePasswordPath, nil, updatePasswordRequest{currentPassword, newPassword}, nil)
}
