package fakeapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const ctxOwner = "owner"

type registerBody struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func newID() string { return uuid.NewString() }

func (s *Server) register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.LastName) == "" || email == "" || body.Password == "" {
		fail(c, http.StatusBadRequest, "All fields are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		fail(c, http.StatusBadRequest, "User already exists")
		return
	}
	s.users[email] = user{Name: body.Name, LastName: body.LastName, Email: email, Password: body.Password}
	c.Status(http.StatusCreated)
}

func (s *Server) authenticate(c *gin.Context) {
	var body authBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Username))

	s.mu.Lock()
	u, ok := s.users[email]
	s.mu.Unlock()
	if !ok || u.Password != body.Password {
		fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tok, err := s.issueToken(email)
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "could not issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

func (s *Server) issueToken(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		ID:        newID(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Token issues a valid token for subject without going through /authenticate.
func (s *Server) Token(subject string) (string, error) {
	return s.issueToken(strings.ToLower(subject))
}

func (s *Server) requireAuth() gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			fail(c, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		var claims jwt.RegisteredClaims
		_, err := parser.ParseWithClaims(strings.TrimSpace(raw), &claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		})
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token expired"
			}
			fail(c, http.StatusUnauthorized, msg)
			return
		}

		s.mu.Lock()
		_, known := s.users[claims.Subject]
		s.mu.Unlock()
		if !known {
			fail(c, http.StatusUnauthorized, "Unknown user")
			return
		}
		c.Set(ctxOwner, claims.Subject)
		c.Next()
	}
}

func owner(c *gin.Context) string { return c.GetString(ctxOwner) }
