package dto

import "github.com/zapagente/zapagente/internal/database/models"

// PersonaRequest carries the persona form. Every field is optional; defaults
// are applied by the persona service, and Diretrizes is normalized there to
// the fixed eight slots.
type PersonaRequest struct {
	NomeAgente      string   `json:"nome_agente"`
	FuncaoAgente    string   `json:"funcao_agente"`
	Idioma          string   `json:"idioma"`
	TomDeVoz        string   `json:"tom_de_voz"`
	EstiloConversa  string   `json:"estilo_conversa"`
	TamanhoResposta string   `json:"tamanho_resposta"`
	Diretrizes      []string `json:"diretrizes"`
}

type PersonaResponse struct {
	NomeAgente      string   `json:"nome_agente"`
	FuncaoAgente    string   `json:"funcao_agente"`
	Idioma          string   `json:"idioma"`
	TomDeVoz        string   `json:"tom_de_voz"`
	EstiloConversa  string   `json:"estilo_conversa"`
	TamanhoResposta string   `json:"tamanho_resposta"`
	Diretrizes      []string `json:"diretrizes"`
}

func PersonaResponseFromModel(p *models.PersonaIA) PersonaResponse {
	return PersonaResponse{
		NomeAgente:      p.NomeAgente,
		FuncaoAgente:    p.FuncaoAgente,
		Idioma:          p.Idioma,
		TomDeVoz:        p.TomDeVoz,
		EstiloConversa:  p.EstiloConversa,
		TamanhoResposta: p.TamanhoResposta,
		Diretrizes:      p.Diretrizes(),
	}
}
