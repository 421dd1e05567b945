package empresa

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zapagente/zapagente/internal/database/models"
	"gorm.io/gorm"
)

// ErrEmpresaNotFound signals that a user has not completed company
// registration. Callers surface it as a recoverable 404, never a fault.
var ErrEmpresaNotFound = errors.New("empresa not found")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ResolveForUser maps a user to its single owned company.
func (s *Service) ResolveForUser(ctx context.Context, userID uuid.UUID) (*models.Empresa, error) {
	var emp models.Empresa
	if err := s.db.WithContext(ctx).
		Where("usuario_id = ?", userID).
		First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// ResolveByTelefone finds the company registered with the given phone number.
// Used by the relay to pick a persona for an inbound conversation.
func (s *Service) ResolveByTelefone(ctx context.Context, telefone string) (*models.Empresa, error) {
	var emp models.Empresa
	if err := s.db.WithContext(ctx).
		Where("telefone = ?", telefone).
		First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}
	return &emp, nil
}
