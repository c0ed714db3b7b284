package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAccountsURL = "https://identitytoolkit.googleapis.com/v1"
	defaultTokenURL    = "https://securetoken.googleapis.com/v1"
)

// Client talks to the identity provider's REST endpoints for the operations
// the Admin SDK does not cover: email/password sign-in, sign-up and refresh
// token exchange. Base URLs are overridable for tests.
type Client struct {
	apiKey      string
	accountsURL string
	tokenURL    string
	http        *http.Client
}

// Credentials is the provider's response to a successful sign-in/sign-up.
type Credentials struct {
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
	LocalID      string
	Email        string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURLs(accountsURL, tokenURL string) Option {
	return func(c *Client) {
		c.accountsURL = strings.TrimRight(accountsURL, "/")
		c.tokenURL = strings.TrimRight(tokenURL, "/")
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:      apiKey,
		accountsURL: defaultAccountsURL,
		tokenURL:    defaultTokenURL,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignIn exchanges email/password for identity tokens.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	return c.accountsCall(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp creates a new email/password account and returns its tokens.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Credentials, error) {
	return c.accountsCall(ctx, "accounts:signUp", email, password)
}

func (c *Client) accountsCall(ctx context.Context, endpoint, email, password string) (*Credentials, error) {
	body := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/%s?key=%s", c.accountsURL, endpoint, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeProviderError(resp)
	}

	var out struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}

	return &Credentials{
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    parseExpiresIn(out.ExpiresIn),
		LocalID:      out.LocalID,
		Email:        out.Email,
	}, nil
}

// Refresh exchanges a refresh token for a fresh ID token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	u := fmt.Sprintf("%s/token?key=%s", c.tokenURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeProviderError(resp)
	}

	var out struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
		UserID       string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	return &Credentials{
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    parseExpiresIn(out.ExpiresIn),
		LocalID:      out.UserID,
	}, nil
}

// ProviderError carries the provider's error code plus a user-facing message.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

func decodeProviderError(resp *http.Response) error {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error.Message == "" {
		return &ProviderError{Code: "UNKNOWN", Message: fmt.Sprintf("identity provider error (status %d)", resp.StatusCode)}
	}

	// Codes like "WEAK_PASSWORD : Password should be at least 6 characters"
	// carry a trailing explanation.
	code := strings.TrimSpace(strings.SplitN(body.Error.Message, ":", 2)[0])
	return &ProviderError{Code: code, Message: userMessage(code)}
}

// userMessage maps provider error codes to the messages shown to users.
func userMessage(code string) string {
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return "Invalid email or password."
	case "EMAIL_EXISTS":
		return "This email address is already in use."
	case "WEAK_PASSWORD":
		return "The password is too weak."
	case "CONFIGURATION_NOT_FOUND":
		return "Firebase Authentication is not configured for this project. Please enable Email/Password sign-in in the Firebase Console."
	case "TOKEN_EXPIRED", "INVALID_REFRESH_TOKEN", "USER_DISABLED", "USER_NOT_FOUND":
		return "Your session has expired. Please log in again."
	default:
		return "Authentication failed. Please try again."
	}
}

func parseExpiresIn(s string) time.Duration {
	secs, err := strconv.Atoi(s)
	if err != nil || secs <= 0 {
		return time.Hour
	}
	return time.Duration(secs) * time.Second
}
