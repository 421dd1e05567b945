package dto

import "github.com/zapagente/zapagente/internal/api/validation"

type RegistroRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

func (r RegistroRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Nome == "" {
		errors["nome"] = "Nome é obrigatório"
	}
	if r.Email == "" {
		errors["email"] = "Email é obrigatório"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Email inválido"
	}
	if r.Senha == "" {
		errors["senha"] = "Senha é obrigatória"
	} else if len(r.Senha) < 8 {
		errors["senha"] = "Senha deve ter pelo menos 8 caracteres"
	}

	return errors
}

type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email é obrigatório"
	}
	if r.Senha == "" {
		errors["senha"] = "Senha é obrigatória"
	}

	return errors
}

type UsuarioDTO struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Plano string `json:"plano"`
}

type AuthResponse struct {
	Mensagem string     `json:"mensagem"`
	Usuario  UsuarioDTO `json:"usuario"`
}
