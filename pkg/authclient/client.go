package authclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/models"
)

// Client covers the role-specific auth and profile endpoints.
type Client struct {
	gw *gateway.Client
}

func NewClient(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

var ErrNoToken = errors.New("login response has no access_token")

// Registration carries the fields of both registration forms; only the ones
// relevant to Role are sent.
type Registration struct {
	Role        models.Role
	Username    string
	Email       string
	Password    string
	AvatarClass models.AvatarClass

	Bio            string
	Specialization string
}

type userRegisterBody struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AvatarClass string `json:"avatar_class,omitempty"`
}

type teacherRegisterBody struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Bio            *string `json:"bio,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
}

func loginPath(role models.Role) string {
	if role == models.RoleTeacher {
		return "/auth/teacher/login"
	}
	return "/auth/login"
}

func registerPath(role models.Role) string {
	if role == models.RoleTeacher {
		return "/auth/teacher/register"
	}
	return "/auth/register"
}

func profilePath(role models.Role) string {
	if role == models.RoleTeacher {
		return "/teachers/me"
	}
	return "/users/me"
}

// Login posts the OAuth2 password form and returns the bearer token.
func (c *Client) Login(ctx context.Context, role models.Role, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var res TokenResponse
	if err := c.gw.PostForm(ctx, loginPath(role), form, &res); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", ErrNoToken
	}
	return res.AccessToken, nil
}

func (c *Client) Register(ctx context.Context, r Registration) error {
	var body any
	if r.Role == models.RoleTeacher {
		body = teacherRegisterBody{
			Username:       r.Username,
			Email:          r.Email,
			Password:       r.Password,
			Bio:            optional(r.Bio),
			Specialization: optional(r.Specialization),
		}
	} else {
		body = userRegisterBody{
			Username:    r.Username,
			Email:       r.Email,
			Password:    r.Password,
			AvatarClass: string(r.AvatarClass),
		}
	}
	return c.gw.Post(ctx, registerPath(r.Role), body, nil)
}

// Profile fetches /users/me or /teachers/me and returns it as an Identity
// carrying role.
func (c *Client) Profile(ctx context.Context, role models.Role) (*models.Identity, error) {
	switch role {
	case models.RoleTeacher:
		var p models.TeacherProfile
		if err := c.gw.Get(ctx, profilePath(role), nil, &p); err != nil {
			return nil, err
		}
		return p.Identity(), nil
	case models.RoleUser:
		var p models.UserProfile
		if err := c.gw.Get(ctx, profilePath(role), nil, &p); err != nil {
			return nil, err
		}
		return p.Identity(), nil
	default:
		return nil, fmt.Errorf("profile: unknown role %q", role)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
