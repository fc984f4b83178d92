package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// ErrNoToken is returned when an auth endpoint succeeds without a token.
var ErrNoToken = errors.New("login response carried no token")

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type authResponse struct {
	Token       string      `json:"token"`
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

func (s *Service) authenticate(ctx context.Context, path string, body any) (*model.AuthResult, error) {
	resp, err := write[authResponse](ctx, s, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return nil, ErrNoToken
	}
	return &model.AuthResult{Token: token, User: resp.User}, nil
}

// Login signs in with email and password.
func (s *Service) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	return s.authenticate(ctx, "/auth/login", map[string]any{"email": email, "password": password})
}

// Register creates an account and signs in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*model.AuthResult, error) {
	return s.authenticate(ctx, "/auth/register", req)
}

// LoginWithGoogle exchanges a Google ID token from the web flow.
func (s *Service) LoginWithGoogle(ctx context.Context, idToken string) (*model.AuthResult, error) {
	return s.authenticate(ctx, "/auth/google", map[string]any{"id_token": idToken})
}

// LoginWithGoogleMobile exchanges a Google ID token from a native app.
func (s *Service) LoginWithGoogleMobile(ctx context.Context, idToken string) (*model.AuthResult, error) {
	return s.authenticate(ctx, "/auth/google-mobile", map[string]any{"id_token": idToken})
}

// LoginWithAppleMobile exchanges an Apple identity token. Apple only sends
// the user's name on first sign-in, so it is forwarded when known.
func (s *Service) LoginWithAppleMobile(ctx context.Context, identityToken, fullName string) (*model.AuthResult, error) {
	body := map[string]any{"identity_token": identityToken}
	if fullName != "" {
		body["full_name"] = fullName
	}
	return s.authenticate(ctx, "/auth/apple-mobile", body)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	_, err := s.call(ctx, http.MethodPost, "/auth/forgot-password", map[string]any{"email": email})
	return err
}

func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	_, err := s.call(ctx, http.MethodPost, "/auth/reset-password", map[string]any{
		"token":    resetToken,
		"password": newPassword,
	})
	return err
}

// CurrentUser returns the account the session token belongs to.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	return fetch[*model.User](ctx, s, "/auth/me")
}
