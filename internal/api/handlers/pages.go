package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/zapagente/zapagente/internal/api/dto"
	"github.com/zapagente/zapagente/internal/api/middleware"
	"github.com/zapagente/zapagente/internal/api/validation"
	"github.com/zapagente/zapagente/internal/auth"
	"github.com/zapagente/zapagente/internal/empresa"
	"github.com/zapagente/zapagente/internal/persona"
)

// PageHandler renders the HTML pages of the web flow.
type PageHandler struct {
	authService    *auth.Service
	empresaService *empresa.Service
	personaService *persona.Service
	templates      *template.Template
}

func NewPageHandler(authService *auth.Service, empresaService *empresa.Service, personaService *persona.Service, templates *template.Template) *PageHandler {
	return &PageHandler{
		authService:    authService,
		empresaService: empresaService,
		personaService: personaService,
		templates:      templates,
	}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", nil)
}

func (h *PageHandler) Planos(w http.ResponseWriter, r *http.Request) {
	h.render(w, "planos.html", nil)
}

func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", nil)
}

func (h *PageHandler) CadastroPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "cadastro.html", nil)
}

// CadastroSubmit processes the combined user+company registration form. This
// is the only flow that creates a company. Form flows answer in plain text.
func (h *PageHandler) CadastroSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Formulário inválido", http.StatusBadRequest)
		return
	}

	usuario := auth.RegisterInput{
		Nome:           validation.SanitizeString(r.PostFormValue("nome")),
		Email:          r.PostFormValue("email"),
		Senha:          r.PostFormValue("senha"),
		CPF:            r.PostFormValue("cpf"),
		DataNascimento: r.PostFormValue("data_nascimento"),
		CEP:            r.PostFormValue("cep"),
		Endereco:       validation.SanitizeString(r.PostFormValue("endereco")),
		Plano:          r.PostFormValue("plano"),
	}
	emp := auth.EmpresaInput{
		RazaoSocial:        validation.SanitizeString(r.PostFormValue("razao_social")),
		NomeFantasia:       validation.SanitizeString(r.PostFormValue("nome_fantasia")),
		CNPJ:               r.PostFormValue("cnpj"),
		TipoEmpresa:        r.PostFormValue("tipo_empresa"),
		Telefone:           r.PostFormValue("telefone"),
		EmailEmpresarial:   r.PostFormValue("email_empresarial"),
		InscricaoEstadual:  r.PostFormValue("inscricao_estadual"),
		InscricaoMunicipal: r.PostFormValue("inscricao_municipal"),
		CEP:                r.PostFormValue("cep_empresa"),
		Endereco:           validation.SanitizeString(r.PostFormValue("endereco_empresa")),
	}

	if usuario.Nome == "" || usuario.Email == "" || usuario.Senha == "" || emp.RazaoSocial == "" {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "Todos os campos obrigatórios devem ser preenchidos.")
		return
	}

	if !validation.IsValidEmail(usuario.Email) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "E-mail inválido.")
		return
	}
	if ok, msg := validation.IsValidSenha(usuario.Senha); !ok {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, msg)
		return
	}

	// Optional documents are validated only when filled in.
	if usuario.CPF != "" && !validation.IsValidCPF(usuario.CPF) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "CPF inválido.")
		return
	}
	if emp.CNPJ != "" && !validation.IsValidCNPJ(emp.CNPJ) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "CNPJ inválido.")
		return
	}
	if emp.Telefone != "" && !validation.IsValidTelefone(emp.Telefone) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "Telefone inválido.")
		return
	}

	_, err := h.authService.RegisterComEmpresa(r.Context(), usuario, emp)
	if err != nil {
		if errors.Is(err, auth.ErrUsuarioExists) {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, "E-mail já cadastrado.")
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "Erro ao cadastrar usuário e empresa.")
		return
	}

	fmt.Fprint(w, "Usuário e empresa cadastrados com sucesso!")
}

func (h *PageHandler) Painel(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.render(w, "painel.html", map[string]interface{}{
		"Usuario": user,
	})
}

func (h *PageHandler) TreinarIA(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.render(w, "treinar_ia.html", map[string]interface{}{
		"Usuario": user,
	})
}

// PersonaIA renders the persona form pre-filled with the company's saved
// configuration. A company or persona that does not exist yet renders an
// empty form, not an error.
func (h *PageHandler) PersonaIA(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Usuario": user,
	}

	if emp, err := h.empresaService.ResolveForUser(r.Context(), user.ID); err == nil {
		if p, err := h.personaService.Get(r.Context(), emp.ID); err == nil {
			data["Persona"] = dto.PersonaResponseFromModel(p)
		}
	}

	h.render(w, "persona_ia.html", data)
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data interface{}) {
	if h.templates == nil {
		http.Error(w, "Templates not loaded", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
