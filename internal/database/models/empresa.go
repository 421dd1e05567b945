package models

import "github.com/google/uuid"

type Empresa struct {
	Base
	UsuarioID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"usuario_id"`
	RazaoSocial        string    `gorm:"not null" json:"razao_social"`
	NomeFantasia       string    `json:"nome_fantasia"`
	CNPJ               string    `gorm:"column:cnpj;uniqueIndex" json:"cnpj"`
	TipoEmpresa        string    `json:"tipo_empresa"`
	Telefone           string    `json:"telefone"`
	EmailEmpresarial   string    `json:"email_empresarial"`
	InscricaoEstadual  string    `json:"inscricao_estadual,omitempty"`
	InscricaoMunicipal string    `json:"inscricao_municipal,omitempty"`
	CEP                string    `gorm:"column:cep" json:"cep,omitempty"`
	Endereco           string    `json:"endereco,omitempty"`

	// Relationships
	Persona *PersonaIA `gorm:"foreignKey:EmpresaID" json:"persona,omitempty"`
}

func (Empresa) TableName() string {
	return "empresas"
}
