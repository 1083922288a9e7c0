package fakeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// handleLogin checks credentials and returns the user's token
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Requisição inválida.")
	}

	s.mu.Lock()
	senha, ok := s.users[req.Email]
	token := ""
	if ok && senha == req.Senha {
		for t, email := range s.tokens {
			if email == req.Email {
				token = t
				break
			}
		}
	}
	s.mu.Unlock()

	if token == "" {
		return errorJSON(c, http.StatusUnauthorized, "Email ou senha inválidos.")
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
