package persona

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/zapagente/zapagente/internal/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPersonaNotFound signals that a company has never saved a persona.
// Absence is a normal outcome, not a fault.
var ErrPersonaNotFound = errors.New("persona not found")

// Default field values applied when the corresponding input is empty.
// NomeAgente deliberately has no default.
const (
	DefaultFuncaoAgente    = "Assistente"
	DefaultIdioma          = "Português"
	DefaultTomDeVoz        = "Amigável"
	DefaultEstiloConversa  = "Chat"
	DefaultTamanhoResposta = "Curta"
)

type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Input is the caller-supplied persona configuration. Diretrizes may have any
// length; it is normalized to exactly eight slots on save.
type Input struct {
	NomeAgente      string   `json:"nome_agente"`
	FuncaoAgente    string   `json:"funcao_agente"`
	Idioma          string   `json:"idioma"`
	TomDeVoz        string   `json:"tom_de_voz"`
	EstiloConversa  string   `json:"estilo_conversa"`
	TamanhoResposta string   `json:"tamanho_resposta"`
	Diretrizes      []string `json:"diretrizes"`
}

// Get returns the persona for a company, or ErrPersonaNotFound if it has
// never been saved.
func (s *Service) Get(ctx context.Context, empresaID uuid.UUID) (*models.PersonaIA, error) {
	var p models.PersonaIA
	if err := s.db.WithContext(ctx).
		Where("empresa_id = ?", empresaID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonaNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save normalizes the input and persists it as the company's single persona
// row. The write is a single upsert keyed on the unique empresa_id column, so
// concurrent saves for the same company serialize in the database instead of
// racing an existence check; repeating a save with identical input leaves the
// row unchanged.
func (s *Service) Save(ctx context.Context, empresaID uuid.UUID, input Input) error {
	p := models.PersonaIA{
		EmpresaID:       empresaID,
		NomeAgente:      input.NomeAgente,
		FuncaoAgente:    defaultIfEmpty(input.FuncaoAgente, DefaultFuncaoAgente),
		Idioma:          defaultIfEmpty(input.Idioma, DefaultIdioma),
		TomDeVoz:        defaultIfEmpty(input.TomDeVoz, DefaultTomDeVoz),
		EstiloConversa:  defaultIfEmpty(input.EstiloConversa, DefaultEstiloConversa),
		TamanhoResposta: defaultIfEmpty(input.TamanhoResposta, DefaultTamanhoResposta),
	}
	p.SetDiretrizes(NormalizeDiretrizes(input.Diretrizes))

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "empresa_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"nome_agente",
			"funcao_agente",
			"idioma",
			"tom_de_voz",
			"estilo_conversa",
			"tamanho_resposta",
			"diretrizes_1",
			"diretrizes_2",
			"diretrizes_3",
			"diretrizes_4",
			"diretrizes_5",
			"diretrizes_6",
			"diretrizes_7",
			"diretrizes_8",
			"updated_at",
		}),
	}).Create(&p).Error

	if err != nil {
		s.logger.Error("failed to save persona", "empresa_id", empresaID, "error", err)
		return fmt.Errorf("saving persona: %w", err)
	}

	return nil
}

// NormalizeDiretrizes materializes an arbitrary-length directive sequence as
// exactly eight slots: the first eight in order, padded with empty strings.
// A ninth-or-later directive is dropped silently (preserved legacy behavior).
func NormalizeDiretrizes(in []string) []string {
	out := make([]string, models.NumDiretrizes)
	for i := 0; i < models.NumDiretrizes && i < len(in); i++ {
		out[i] = in[i]
	}
	return out
}

func defaultIfEmpty(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
