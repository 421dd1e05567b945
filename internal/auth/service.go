package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zapagente/zapagente/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrUsuarioNotFound      = errors.New("usuario not found")
	ErrUsuarioExists        = errors.New("usuario already exists")
	ErrCredenciaisInvalidas = errors.New("invalid credentials")
)

type Service struct {
	db  *gorm.DB
	jwt *JWTService
}

func NewService(db *gorm.DB, jwt *JWTService) *Service {
	return &Service{db: db, jwt: jwt}
}

type RegisterInput struct {
	Nome  string
	Email string
	Senha string

	// Optional profile fields from the full registration form
	CPF            string
	DataNascimento string
	CEP            string
	Endereco       string
	Plano          string
}

type EmpresaInput struct {
	RazaoSocial        string
	NomeFantasia       string
	CNPJ               string
	TipoEmpresa        string
	Telefone           string
	EmailEmpresarial   string
	InscricaoEstadual  string
	InscricaoMunicipal string
	CEP                string
	Endereco           string
}

type LoginInput struct {
	Email string
	Senha string
}

type AuthResponse struct {
	Token   string          `json:"token"`
	Usuario *models.Usuario `json:"usuario"`
}

// Register creates a standalone user account.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.Usuario, error) {
	var existing models.Usuario
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrUsuarioExists
	}

	hash, err := HashPassword(input.Senha)
	if err != nil {
		return nil, err
	}

	plano := input.Plano
	if plano == "" {
		plano = models.PlanoFree
	}

	user := models.Usuario{
		Nome:           input.Nome,
		Email:          input.Email,
		SenhaHash:      hash,
		CPF:            input.CPF,
		DataNascimento: input.DataNascimento,
		CEP:            input.CEP,
		Endereco:       input.Endereco,
		Plano:          plano,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// RegisterComEmpresa creates a user and its company in one transaction. A
// company is never created independently; this is the only path that makes
// one.
func (s *Service) RegisterComEmpresa(ctx context.Context, input RegisterInput, emp EmpresaInput) (*models.Usuario, error) {
	var existing models.Usuario
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrUsuarioExists
	}

	hash, err := HashPassword(input.Senha)
	if err != nil {
		return nil, err
	}

	plano := input.Plano
	if plano == "" {
		plano = models.PlanoFree
	}

	var user models.Usuario
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user = models.Usuario{
			Nome:           input.Nome,
			Email:          input.Email,
			SenhaHash:      hash,
			CPF:            input.CPF,
			DataNascimento: input.DataNascimento,
			CEP:            input.CEP,
			Endereco:       input.Endereco,
			Plano:          plano,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		empresa := models.Empresa{
			UsuarioID:          user.ID,
			RazaoSocial:        emp.RazaoSocial,
			NomeFantasia:       emp.NomeFantasia,
			CNPJ:               emp.CNPJ,
			TipoEmpresa:        emp.TipoEmpresa,
			Telefone:           emp.Telefone,
			EmailEmpresarial:   emp.EmailEmpresarial,
			InscricaoEstadual:  emp.InscricaoEstadual,
			InscricaoMunicipal: emp.InscricaoMunicipal,
			CEP:                emp.CEP,
			Endereco:           emp.Endereco,
		}
		if err := tx.Create(&empresa).Error; err != nil {
			return err
		}

		user.Empresa = &empresa
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Login authenticates a user by email and password. An unknown email fails
// with ErrUsuarioNotFound; a hash mismatch fails with
// ErrCredenciaisInvalidas. Handlers collapse both to 401.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var user models.Usuario
	if err := s.db.WithContext(ctx).
		Where("email = ?", input.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}

	if !CheckPassword(input.Senha, user.SenhaHash) {
		return nil, ErrCredenciaisInvalidas
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Plano)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:   token,
		Usuario: &user,
	}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.Usuario, error) {
	var user models.Usuario
	if err := s.db.WithContext(ctx).
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return &user, nil
}
