package services

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quizarena/apperr"
	"quizarena/config"
)

// ClerkService talks to the Clerk backend API and verifies session tokens.
// Token verification is networkless: Clerk session tokens are RS256 JWTs
// signed with the instance key, so a configured public key is enough.
type ClerkService struct {
	secretKey string
	apiBase   string
	publicKey *rsa.PublicKey
	client    *http.Client
}

func NewClerkService(cfg *config.Config) (*ClerkService, error) {
	service := &ClerkService{
		secretKey: cfg.Clerk.SecretKey,
		apiBase:   cfg.Clerk.APIBase,
		client:    &http.Client{Timeout: 10 * time.Second},
	}

	if cfg.Clerk.JWTPublicKey != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.Clerk.JWTPublicKey))
		if err != nil {
			return nil, fmt.Errorf("invalid clerk jwt public key: %w", err)
		}
		service.publicKey = key
	}

	return service, nil
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// VerifyToken validates a session token and returns the clerk user id it
// was issued for. That id is the opaque, authoritative player identifier
// used by every duel operation.
func (s *ClerkService) VerifyToken(_ context.Context, token string) (string, error) {
	if s.publicKey == nil {
		return "", apperr.Unavailable("token verification is not configured", nil)
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.Forbidden("session token has expired")
		}
		return "", apperr.Forbidden("invalid session token")
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", apperr.Forbidden("invalid session token")
	}
	return claims.Subject, nil
}

// ClerkUser is the subset of the provider's user object the backend needs.
type ClerkUser struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// Email returns the user's primary email address.
func (u *ClerkUser) Email() string {
	if len(u.EmailAddresses) == 0 {
		return ""
	}
	return u.EmailAddresses[0].EmailAddress
}

// CreateUser registers a new account with the identity provider.
func (s *ClerkService) CreateUser(ctx context.Context, email, password, firstName, lastName string) (*ClerkUser, error) {
	payload := map[string]interface{}{
		"email_address": []string{email},
		"password":      password,
		"first_name":    firstName,
		"last_name":     lastName,
	}

	var user ClerkUser
	if err := s.do(ctx, http.MethodPost, "/v1/users", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a provider account by id.
func (s *ClerkService) GetUser(ctx context.Context, userID string) (*ClerkUser, error) {
	var user ClerkUser
	if err := s.do(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail looks a provider account up by email address.
func (s *ClerkService) FindUserByEmail(ctx context.Context, email string) (*ClerkUser, error) {
	var users []ClerkUser
	path := "/v1/users?email_address=" + url.QueryEscape(email)
	if err := s.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("user not found")
	}
	return &users[0], nil
}

// VerifyPassword checks a password against a provider account.
func (s *ClerkService) VerifyPassword(ctx context.Context, userID, password string) (bool, error) {
	payload := map[string]string{"password": password}
	path := "/v1/users/" + url.PathEscape(userID) + "/verify_password"

	var result struct {
		Verified bool `json:"verified"`
	}
	err := s.do(ctx, http.MethodPost, path, payload, &result)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation || apperr.KindOf(err) == apperr.KindNotFound {
			return false, nil
		}
		return false, err
	}
	return result.Verified, nil
}

func (s *ClerkService) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return apperr.Unavailable("failed to encode provider request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.apiBase+path, body)
	if err != nil {
		return apperr.Unavailable("failed to build provider request", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return apperr.Unavailable("identity provider unreachable", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return apperr.NotFound("user not found")
	case res.StatusCode == http.StatusUnprocessableEntity || res.StatusCode == http.StatusBadRequest:
		return apperr.Validation(readProviderError(res.Body))
	case res.StatusCode >= 400:
		return apperr.Unavailable(fmt.Sprintf("identity provider error (%d)", res.StatusCode), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return apperr.Unavailable("failed to decode provider response", err)
	}
	return nil
}

func readProviderError(body io.Reader) string {
	var parsed struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err == nil && len(parsed.Errors) > 0 {
		return parsed.Errors[0].Message
	}
	return "invalid request to identity provider"
}
