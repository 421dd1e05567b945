//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/zapagente/zapagente/internal/auth"
	"github.com/zapagente/zapagente/internal/database"
	"github.com/zapagente/zapagente/internal/persona"
	"github.com/zapagente/zapagente/pkg/config"
	"github.com/zapagente/zapagente/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(db, jwtService)

	email := os.Getenv("SEED_EMAIL")
	senha := os.Getenv("SEED_SENHA")
	telefone := os.Getenv("SEED_TELEFONE")

	if email == "" {
		email = "demo@zapagente.com"
	}
	if senha == "" {
		senha = "demo1234!"
	}
	if telefone == "" {
		telefone = cfg.Twilio.FromNumber
	}

	user, err := authService.RegisterComEmpresa(context.Background(),
		auth.RegisterInput{
			Nome:  "Usuário Demo",
			Email: email,
			Senha: senha,
		},
		auth.EmpresaInput{
			RazaoSocial:  "Empresa Demo LTDA",
			NomeFantasia: "Demo",
			Telefone:     telefone,
		},
	)

	if err != nil {
		if errors.Is(err, auth.ErrUsuarioExists) {
			fmt.Printf("Demo user already exists: %s\n", email)
			return
		}
		log.Fatalf("failed to create demo user: %v", err)
	}

	personaService := persona.NewService(db, slog.Default())
	err = personaService.Save(context.Background(), user.Empresa.ID, persona.Input{
		NomeAgente: "Zap",
		Diretrizes: []string{
			"Cumprimente o cliente pelo nome quando possível",
			"Encaminhe dúvidas de cobrança para o suporte humano",
		},
	})
	if err != nil {
		log.Fatalf("failed to create demo persona: %v", err)
	}

	fmt.Printf("Demo user created successfully!\n")
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Empresa: %s\n", user.Empresa.RazaoSocial)
	fmt.Printf("WhatsApp: %s\n", user.Empresa.Telefone)
}
