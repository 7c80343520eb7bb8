package testserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/quest_academy/internal/hash"
	"github.com/Skotchmaster/quest_academy/internal/models"
	"github.com/Skotchmaster/quest_academy/pkg/logging"
)

func (s *Server) login(role models.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("handler", "auth_login", "role", role)

		email := c.FormValue("username")
		password := c.FormValue("password")

		s.mu.Lock()
		acc, ok := s.accounts[key(role, email)]
		s.mu.Unlock()
		if !ok || !hash.CheckPassword(acc.PasswordHash, password) {
			l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
			return echo.NewHTTPError(http.StatusUnauthorized, DetailBadCredentials)
		}

		s.mu.Lock()
		ttl := s.ttl
		s.mu.Unlock()

		l.Info("login_success", "status", 200)
		return c.JSON(http.StatusOK, echo.Map{
			"access_token": s.IssueToken(acc, ttl),
			"token_type":   "bearer",
		})
	}
}

func (s *Server) registerUser(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth_register")
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		AvatarClass string `json:"avatar_class"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Email == "" || len(req.Password) < 6 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, []echo.Map{{"msg": "invalid registration"}})
	}

	acc, err := s.create(models.RoleUser, req.Username, req.Email, req.Password)
	if err != nil {
		l.Warn("register_failed", "status", 400, "reason", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.AvatarClass != "" {
		s.Update(models.RoleUser, req.Email, func(a *Account) { a.AvatarClass = req.AvatarClass })
	}

	l.Info("register_success", "status", 201)
	return c.JSON(http.StatusCreated, s.userProfile(acc))
}

func (s *Server) registerTeacher(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth_teacher_register")
	var req struct {
		Username       string  `json:"username"`
		Email          string  `json:"email"`
		Password       string  `json:"password"`
		Bio            *string `json:"bio"`
		Specialization *string `json:"specialization"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	acc, err := s.create(models.RoleTeacher, req.Username, req.Email, req.Password)
	if err != nil {
		l.Warn("register_failed", "status", 400, "reason", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.Update(models.RoleTeacher, req.Email, func(a *Account) {
		if req.Bio != nil {
			a.Bio = *req.Bio
		}
		if req.Specialization != nil {
			a.Specialization = *req.Specialization
		}
	})

	l.Info("register_success", "status", 201)
	return c.JSON(http.StatusCreated, s.teacherProfile(acc))
}

func (s *Server) profile(c echo.Context) error {
	acc := AccountFrom(c)

	s.mu.Lock()
	hold, status := s.hold, s.profileStatus
	s.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}
	if status != 0 {
		return echo.NewHTTPError(status, http.StatusText(status))
	}

	if acc.Role == models.RoleTeacher {
		return c.JSON(http.StatusOK, s.teacherProfile(acc))
	}
	return c.JSON(http.StatusOK, s.userProfile(acc))
}

func (s *Server) userProfile(acc *Account) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.UserProfile{
		UserID:      acc.ID,
		Username:    acc.Username,
		Email:       acc.Email,
		Level:       acc.Level,
		CurrentXP:   acc.XP,
		HPCurrent:   acc.HPCurrent,
		HPMax:       acc.HPMax,
		Gold:        acc.Gold,
		AvatarClass: acc.AvatarClass,
		CreatedAt:   models.Timestamp{Time: acc.CreatedAt},
	}
}

func (s *Server) teacherProfile(acc *Account) models.TeacherProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.TeacherProfile{
		TeacherID:      acc.ID,
		Username:       acc.Username,
		Email:          acc.Email,
		Bio:            optional(acc.Bio),
		Specialization: optional(acc.Specialization),
		CreatedAt:      models.Timestamp{Time: acc.CreatedAt},
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

