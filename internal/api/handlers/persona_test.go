package handlers_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapagente/zapagente/internal/api/dto"
	"github.com/zapagente/zapagente/internal/api/handlers"
	"github.com/zapagente/zapagente/internal/api/middleware"
	"github.com/zapagente/zapagente/internal/empresa"
	"github.com/zapagente/zapagente/internal/persona"
	"github.com/zapagente/zapagente/internal/testutil"
)

func setupPersonaTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	handler := handlers.NewPersonaHandler(
		empresa.NewService(tc.DB),
		persona.NewService(tc.DB, slog.Default()),
	)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(tc.JWTService))
		r.Post("/persona_ia/save", handler.Save)
		r.Get("/persona_ia/config", handler.Get)
	})

	return r, tc
}

func TestPersonaHandler_Save(t *testing.T) {
	router, tc := setupPersonaTestRouter(t)
	defer tc.Cleanup()

	t.Run("saves persona for the user's company", func(t *testing.T) {
		body := dto.PersonaRequest{
			NomeAgente: "Luna",
			Diretrizes: []string{"Seja cordial", "Não invente preços"},
		}

		req := testutil.AuthenticatedRequest(t, "POST", "/persona_ia/save", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.SuccessResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Persona salva com sucesso!", resp.Mensagem)
	})

	t.Run("save twice keeps a single config", func(t *testing.T) {
		first := dto.PersonaRequest{NomeAgente: "Primeira"}
		second := dto.PersonaRequest{NomeAgente: "Segunda"}

		for _, body := range []dto.PersonaRequest{first, second} {
			req := testutil.AuthenticatedRequest(t, "POST", "/persona_ia/save", body, tc.Token)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			require.Equal(t, http.StatusOK, rr.Code)
		}

		req := testutil.AuthenticatedRequest(t, "GET", "/persona_ia/config", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.PersonaResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Segunda", resp.NomeAgente)
	})

	t.Run("user without company gets 404", func(t *testing.T) {
		semEmpresa := testutil.CreateTestUsuario(t, tc.DB)
		token := testutil.GenerateTestToken(t, tc.JWTService, semEmpresa)

		req := testutil.AuthenticatedRequest(t, "POST", "/persona_ia/save", dto.PersonaRequest{}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Empresa não encontrada", resp.Erro)
	})

	t.Run("requires session", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "POST", "/persona_ia/save", dto.PersonaRequest{})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestPersonaHandler_Get(t *testing.T) {
	router, tc := setupPersonaTestRouter(t)
	defer tc.Cleanup()

	t.Run("no persona saved yet", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/persona_ia/config", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Persona não encontrada", resp.Erro)
	})

	t.Run("returns saved persona with defaults and eight slots", func(t *testing.T) {
		body := dto.PersonaRequest{
			NomeAgente: "Luna",
			Diretrizes: []string{"Seja cordial"},
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/persona_ia/save", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		req = testutil.AuthenticatedRequest(t, "GET", "/persona_ia/config", nil, tc.Token)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.PersonaResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Luna", resp.NomeAgente)
		assert.Equal(t, persona.DefaultFuncaoAgente, resp.FuncaoAgente)
		assert.Equal(t, persona.DefaultIdioma, resp.Idioma)
		require.Len(t, resp.Diretrizes, 8)
		assert.Equal(t, "Seja cordial", resp.Diretrizes[0])
		assert.Empty(t, resp.Diretrizes[7])
	})
}
