package handlers_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapagente/zapagente/internal/api/handlers"
	"github.com/zapagente/zapagente/internal/api/middleware"
	"github.com/zapagente/zapagente/internal/auth"
	"github.com/zapagente/zapagente/internal/database/models"
	"github.com/zapagente/zapagente/internal/empresa"
	"github.com/zapagente/zapagente/internal/persona"
	"github.com/zapagente/zapagente/internal/testutil"
	"github.com/zapagente/zapagente/internal/web"
)

func setupPageTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	templates, err := web.LoadTemplates()
	require.NoError(t, err)

	handler := handlers.NewPageHandler(
		auth.NewService(tc.DB, tc.JWTService),
		empresa.NewService(tc.DB),
		persona.NewService(tc.DB, slog.Default()),
		templates,
	)

	r := chi.NewRouter()
	r.Get("/", handler.Home)
	r.Get("/planos", handler.Planos)
	r.Get("/login", handler.LoginPage)
	r.Get("/cadastro", handler.CadastroPage)
	r.Post("/cadastro", handler.CadastroSubmit)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(tc.JWTService))
		r.Get("/painel", handler.Painel)
		r.Get("/persona_ia", handler.PersonaIA)
		r.Get("/treinar_ia", handler.TreinarIA)
	})

	return r, tc
}

func TestPageHandler_PublicPages(t *testing.T) {
	router, tc := setupPageTestRouter(t)
	defer tc.Cleanup()

	for _, path := range []string{"/", "/planos", "/login", "/cadastro"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("GET", path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rr.Body.String(), "ZapAgente")
		})
	}
}

func TestPageHandler_CadastroSubmit(t *testing.T) {
	router, tc := setupPageTestRouter(t)
	defer tc.Cleanup()

	postCadastro := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/cadastro", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("creates user and company", func(t *testing.T) {
		rr := postCadastro(url.Values{
			"nome":         {"Fulano"},
			"email":        {"fulano@example.com"},
			"senha":        {"senhasegura123"},
			"razao_social": {"Fulano Comércio LTDA"},
			"telefone":     {"+5511977776666"},
			"cnpj":         {"11222333000181"},
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Usuário e empresa cadastrados com sucesso!", rr.Body.String())

		var user models.Usuario
		require.NoError(t, tc.DB.Where("email = ?", "fulano@example.com").First(&user).Error)

		var emp models.Empresa
		require.NoError(t, tc.DB.Where("usuario_id = ?", user.ID).First(&emp).Error)
		assert.Equal(t, "Fulano Comércio LTDA", emp.RazaoSocial)
		assert.Equal(t, "+5511977776666", emp.Telefone)
	})

	t.Run("missing required fields", func(t *testing.T) {
		rr := postCadastro(url.Values{
			"nome":  {"Sem Empresa"},
			"email": {"sem@example.com"},
			"senha": {"senhasegura123"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Todos os campos obrigatórios devem ser preenchidos.", rr.Body.String())
	})

	t.Run("accepts valid optional documents", func(t *testing.T) {
		rr := postCadastro(url.Values{
			"nome":         {"Documentada"},
			"email":        {"documentada@example.com"},
			"senha":        {"senhasegura123"},
			"razao_social": {"Documentada LTDA"},
			"cpf":          {"529.982.247-25"},
			"cnpj":         {"11.222.333/0001-81"},
			"telefone":     {"+5511966665555"},
		})

		assert.Equal(t, http.StatusOK, rr.Code)

		var user models.Usuario
		require.NoError(t, tc.DB.Where("email = ?", "documentada@example.com").First(&user).Error)
		assert.Equal(t, "529.982.247-25", user.CPF)
	})

	t.Run("malformed CPF is rejected and nothing persists", func(t *testing.T) {
		rr := postCadastro(url.Values{
			"nome":         {"CPF Ruim"},
			"email":        {"cpfruim@example.com"},
			"senha":        {"senhasegura123"},
			"razao_social": {"CPF Ruim LTDA"},
			"cpf":          {"000"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "CPF inválido.", rr.Body.String())

		var count int64
		tc.DB.Model(&models.Usuario{}).Where("email = ?", "cpfruim@example.com").Count(&count)
		assert.Zero(t, count)
	})

	t.Run("malformed CNPJ is rejected", func(t *testing.T) {
		rr := postCadastro(url.Values{
			"nome":         {"CNPJ Ruim"},
			"email":        {"cnpjruim@example.com"},
			"senha":        {"senhasegura123"},
			"razao_social": {"CNPJ Ruim LTDA"},
			"cnpj":         {"11222333000199"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "CNPJ inválido.", rr.Body.String())
	})

	t.Run("malformed telefone is rejected", func(t *testing.T) {
		rr := postCadastro(url.Values{
			"nome":         {"Telefone Ruim"},
			"email":        {"telruim@example.com"},
			"senha":        {"senhasegura123"},
			"razao_social": {"Telefone Ruim LTDA"},
			"telefone":     {"abc"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Telefone inválido.", rr.Body.String())
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		rr := postCadastro(url.Values{
			"nome":         {"Email Ruim"},
			"email":        {"nao-e-email"},
			"senha":        {"senhasegura123"},
			"razao_social": {"Email Ruim LTDA"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "E-mail inválido.", rr.Body.String())
	})

	t.Run("short senha is rejected", func(t *testing.T) {
		rr := postCadastro(url.Values{
			"nome":         {"Senha Curta"},
			"email":        {"curta@example.com"},
			"senha":        {"curta"},
			"razao_social": {"Senha Curta LTDA"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Senha deve ter pelo menos 8 caracteres", rr.Body.String())
	})

	t.Run("free-text fields are sanitized before persisting", func(t *testing.T) {
		rr := postCadastro(url.Values{
			"nome":         {"Maria\x00Souza"},
			"email":        {"sanitizada@example.com"},
			"senha":        {"senhasegura123"},
			"razao_social": {"Sanitizada\x01 LTDA"},
			"cnpj":         {"11.444.777/0001-61"},
		})

		require.Equal(t, http.StatusOK, rr.Code)

		var user models.Usuario
		require.NoError(t, tc.DB.Where("email = ?", "sanitizada@example.com").First(&user).Error)
		assert.Equal(t, "MariaSouza", user.Nome)

		var emp models.Empresa
		require.NoError(t, tc.DB.Where("usuario_id = ?", user.ID).First(&emp).Error)
		assert.Equal(t, "Sanitizada LTDA", emp.RazaoSocial)
	})

	t.Run("duplicate email", func(t *testing.T) {
		form := url.Values{
			"nome":         {"Repetida"},
			"email":        {"repetida@example.com"},
			"senha":        {"senhasegura123"},
			"razao_social": {"Repetida LTDA"},
		}

		rr := postCadastro(form)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = postCadastro(form)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "E-mail já cadastrado.", rr.Body.String())
	})
}

func TestPageHandler_ProtectedPages(t *testing.T) {
	router, tc := setupPageTestRouter(t)
	defer tc.Cleanup()

	getWithSession := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", path, nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: tc.Token})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("painel greets the user", func(t *testing.T) {
		rr := getWithSession("/painel")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), tc.Usuario.Nome)
	})

	t.Run("persona page renders empty form before first save", func(t *testing.T) {
		rr := getWithSession("/persona_ia")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "persona-form")
	})

	t.Run("persona page pre-fills saved values", func(t *testing.T) {
		personaSvc := persona.NewService(tc.DB, slog.Default())
		require.NoError(t, personaSvc.Save(testutil.TestContext(t), tc.Empresa.ID, persona.Input{
			NomeAgente: "Luna",
			Diretrizes: []string{"Seja cordial"},
		}))

		rr := getWithSession("/persona_ia")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Luna")
		assert.Contains(t, rr.Body.String(), "Seja cordial")
	})

	t.Run("browser without session is redirected to login", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/painel", nil)
		req.Header.Set("Accept", "text/html")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})
}
