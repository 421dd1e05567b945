package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/zapagente/zapagente/internal/api/dto"
	"github.com/zapagente/zapagente/internal/api/middleware"
	"github.com/zapagente/zapagente/internal/auth"
)

type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Registro creates a user account from a JSON body (nome, email, senha).
func (h *AuthHandler) Registro(w http.ResponseWriter, r *http.Request) {
	var req dto.RegistroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Erro: "Corpo da requisição inválido"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Erro: "Todos os campos são obrigatórios", Detalhes: errs})
		return
	}

	_, err := h.authService.Register(r.Context(), auth.RegisterInput{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: req.Senha,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsuarioExists):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Erro: "Email já cadastrado"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Erro: "Erro ao registrar usuário"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.SuccessResponse{Mensagem: "Usuário registrado com sucesso!"})
}

// Login authenticates a JSON request and starts the cookie session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Erro: "Corpo da requisição inválido"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Erro: "Email e senha são obrigatórios", Detalhes: errs})
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email: req.Email,
		Senha: req.Senha,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsuarioNotFound), errors.Is(err, auth.ErrCredenciaisInvalidas):
			// Which of the two failed is never revealed to the client.
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Erro: "Usuário não encontrado ou senha incorreta"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Erro: "Erro ao efetuar login"})
		}
		return
	}

	h.setSessionCookie(w, resp.Token)

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Mensagem: fmt.Sprintf("Bem-vindo, %s!", resp.Usuario.Nome),
		Usuario: dto.UsuarioDTO{
			ID:    resp.Usuario.ID.String(),
			Nome:  resp.Usuario.Nome,
			Email: resp.Usuario.Email,
			Plano: resp.Usuario.Plano,
		},
	})
}

// LoginWeb authenticates the login form and redirects to the dashboard. Form
// flows answer failures with plain text, not JSON.
func (h *AuthHandler) LoginWeb(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Formulário inválido", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	senha := r.PostFormValue("senha")

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{Email: email, Senha: senha})
	if err != nil {
		if errors.Is(err, auth.ErrUsuarioNotFound) || errors.Is(err, auth.ErrCredenciaisInvalidas) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, "E-mail ou senha incorretos.")
			return
		}
		http.Error(w, "Erro ao efetuar login", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, resp.Token)
	http.Redirect(w, r, "/painel", http.StatusFound)
}

// Logout ends the session and returns to the login page. Ending a session
// that does not exist is not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
