package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zapagente/zapagente/internal/api/dto"
	"github.com/zapagente/zapagente/internal/api/middleware"
	"github.com/zapagente/zapagente/internal/empresa"
	"github.com/zapagente/zapagente/internal/persona"
)

type PersonaHandler struct {
	empresaService *empresa.Service
	personaService *persona.Service
}

func NewPersonaHandler(empresaService *empresa.Service, personaService *persona.Service) *PersonaHandler {
	return &PersonaHandler{
		empresaService: empresaService,
		personaService: personaService,
	}
}

// Save persists the persona of the authenticated user's company. A user
// without a company gets a recoverable 404, not a server error.
func (h *PersonaHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.PersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Erro: "Corpo da requisição inválido"})
		return
	}

	userID := middleware.GetUserID(r.Context())

	emp, err := h.empresaService.ResolveForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, empresa.ErrEmpresaNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Erro: "Empresa não encontrada"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Erro: "Erro ao buscar empresa"})
		return
	}

	if err := h.personaService.Save(r.Context(), emp.ID, persona.Input{
		NomeAgente:      req.NomeAgente,
		FuncaoAgente:    req.FuncaoAgente,
		Idioma:          req.Idioma,
		TomDeVoz:        req.TomDeVoz,
		EstiloConversa:  req.EstiloConversa,
		TamanhoResposta: req.TamanhoResposta,
		Diretrizes:      req.Diretrizes,
	}); err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Erro: "Erro ao salvar persona"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Mensagem: "Persona salva com sucesso!"})
}

// Get returns the saved persona of the authenticated user's company as JSON.
// Absence of a persona is a 404, a normal outcome for a company that never
// saved one.
func (h *PersonaHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	emp, err := h.empresaService.ResolveForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, empresa.ErrEmpresaNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Erro: "Empresa não encontrada"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Erro: "Erro ao buscar empresa"})
		return
	}

	p, err := h.personaService.Get(r.Context(), emp.ID)
	if err != nil {
		if errors.Is(err, persona.ErrPersonaNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Erro: "Persona não encontrada"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Erro: "Erro ao buscar persona"})
		return
	}

	writeJSON(w, http.StatusOK, dto.PersonaResponseFromModel(p))
}
