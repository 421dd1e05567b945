package models

// Mensagem records one webhook relay: the inbound text, the reply that was
// sent back, and whether the outbound delivery succeeded.
type Mensagem struct {
	Base
	Remetente string `gorm:"index;not null" json:"remetente"`
	Corpo     string `gorm:"not null" json:"corpo"`
	Resposta  string `json:"resposta"`
	Status    string `gorm:"default:'enviada'" json:"status"` // enviada, falha
}

func (Mensagem) TableName() string {
	return "mensagens"
}
