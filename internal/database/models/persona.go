package models

import "github.com/google/uuid"

// NumDiretrizes is the fixed directive capacity of a persona. The legacy
// schema materializes the list as eight nullable columns; a NULL slot means
// "no directive set".
const NumDiretrizes = 8

type PersonaIA struct {
	Base
	EmpresaID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"empresa_id"`
	NomeAgente      string    `json:"nome_agente"`
	FuncaoAgente    string    `json:"funcao_agente"`
	Idioma          string    `json:"idioma"`
	TomDeVoz        string    `json:"tom_de_voz"`
	EstiloConversa  string    `json:"estilo_conversa"`
	TamanhoResposta string    `json:"tamanho_resposta"`

	Diretriz1 *string `gorm:"column:diretrizes_1" json:"diretrizes_1"`
	Diretriz2 *string `gorm:"column:diretrizes_2" json:"diretrizes_2"`
	Diretriz3 *string `gorm:"column:diretrizes_3" json:"diretrizes_3"`
	Diretriz4 *string `gorm:"column:diretrizes_4" json:"diretrizes_4"`
	Diretriz5 *string `gorm:"column:diretrizes_5" json:"diretrizes_5"`
	Diretriz6 *string `gorm:"column:diretrizes_6" json:"diretrizes_6"`
	Diretriz7 *string `gorm:"column:diretrizes_7" json:"diretrizes_7"`
	Diretriz8 *string `gorm:"column:diretrizes_8" json:"diretrizes_8"`
}

func (PersonaIA) TableName() string {
	return "persona_ia"
}

// Diretrizes returns the eight slots in order, with NULL slots as empty
// strings.
func (p *PersonaIA) Diretrizes() []string {
	slots := []*string{
		p.Diretriz1, p.Diretriz2, p.Diretriz3, p.Diretriz4,
		p.Diretriz5, p.Diretriz6, p.Diretriz7, p.Diretriz8,
	}
	out := make([]string, NumDiretrizes)
	for i, s := range slots {
		if s != nil {
			out[i] = *s
		}
	}
	return out
}

// SetDiretrizes fills the eight columns from normalized slots. Empty slots
// are stored as NULL, not as the empty string.
func (p *PersonaIA) SetDiretrizes(slots []string) {
	cols := []**string{
		&p.Diretriz1, &p.Diretriz2, &p.Diretriz3, &p.Diretriz4,
		&p.Diretriz5, &p.Diretriz6, &p.Diretriz7, &p.Diretriz8,
	}
	for i, col := range cols {
		if i < len(slots) && slots[i] != "" {
			v := slots[i]
			*col = &v
		} else {
			*col = nil
		}
	}
}
