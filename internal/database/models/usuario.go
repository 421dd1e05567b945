package models

// Plano values accepted for a user account.
const (
	PlanoFree       = "free"
	PlanoPlus       = "plus"
	PlanoEnterprise = "enterprise"
)

type Usuario struct {
	Base
	Nome           string `gorm:"not null" json:"nome"`
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	SenhaHash      string `gorm:"not null" json:"-"`
	CPF            string `gorm:"column:cpf" json:"cpf,omitempty"`
	DataNascimento string `json:"data_nascimento,omitempty"`
	CEP            string `gorm:"column:cep" json:"cep,omitempty"`
	Endereco       string `json:"endereco,omitempty"`
	Plano          string `gorm:"default:'free'" json:"plano"` // free, plus, enterprise

	// Relationships
	Empresa *Empresa `gorm:"foreignKey:UsuarioID" json:"empresa,omitempty"`
}

func (Usuario) TableName() string {
	return "usuarios"
}
