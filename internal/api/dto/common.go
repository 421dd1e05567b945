package dto

// ErrorResponse is the structured error body of every JSON endpoint.
type ErrorResponse struct {
	Erro     string            `json:"erro"`
	Detalhes map[string]string `json:"detalhes,omitempty"`
}

type SuccessResponse struct {
	Mensagem string `json:"mensagem"`
}
