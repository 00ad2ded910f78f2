package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// SessionClient verifies sessions against the portal's auth endpoint by
// forwarding the request's cookies to GET /api/auth/me.
type SessionClient struct {
	client *resty.Client
}

func NewSessionClient(baseUrl string) *SessionClient {
	return &SessionClient{
		client: resty.New().SetBaseURL(baseUrl).SetTimeout(10 * time.Second),
	}
}

type meResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

func (c *SessionClient) VerifySession(r *http.Request) (User, error) {
	cookie := r.Header.Get("Cookie")
	if cookie == "" {
		return User{}, fmt.Errorf("missing session cookie")
	}

	var body meResponse
	res, err := c.client.R().
		SetContext(r.Context()).
		SetHeader("Cookie", cookie).
		SetResult(&body).
		Get("/api/auth/me")
	if err != nil {
		return User{}, fmt.Errorf("error verifying session: %w", err)
	}

	if res.StatusCode() != http.StatusOK || !body.Success || body.User.Username == "" {
		return User{}, fmt.Errorf("session is not valid")
	}

	return body.User, nil
}
