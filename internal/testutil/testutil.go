package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/zapagente/zapagente/internal/auth"
	"github.com/zapagente/zapagente/internal/database/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&models.Usuario{},
		&models.Empresa{},
		&models.PersonaIA{},
		&models.Mensagem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestDB closes the test database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("warning: failed to get sql.DB: %v", err)
		return
	}
	sqlDB.Close()
}

// CreateTestUsuario creates a test user with password "testpassword123"
func CreateTestUsuario(t *testing.T, db *gorm.DB) *models.Usuario {
	t.Helper()

	hash, err := auth.HashPassword("testpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	usuario := &models.Usuario{
		Base: models.Base{
			ID: uuid.New(),
		},
		Nome:      "Usuário de Teste",
		Email:     "test-" + uuid.New().String()[:8] + "@example.com",
		SenhaHash: hash,
		Plano:     models.PlanoFree,
	}

	if err := db.Create(usuario).Error; err != nil {
		t.Fatalf("failed to create test usuario: %v", err)
	}

	return usuario
}

// CreateTestEmpresa creates a test company owned by the given user
func CreateTestEmpresa(t *testing.T, db *gorm.DB, usuario *models.Usuario) *models.Empresa {
	t.Helper()

	empresa := &models.Empresa{
		Base: models.Base{
			ID: uuid.New(),
		},
		UsuarioID:   usuario.ID,
		RazaoSocial: "Empresa de Teste LTDA",
		// CNPJ carries a unique index; derive a distinct value per fixture
		CNPJ:     "test-" + uuid.New().String()[:13],
		Telefone: "+5511" + uuid.New().String()[:8],
	}

	if err := db.Create(empresa).Error; err != nil {
		t.Fatalf("failed to create test empresa: %v", err)
	}

	return empresa
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, usuario *models.Usuario) string {
	t.Helper()

	token, err := jwtService.GenerateToken(usuario.ID, usuario.Email, usuario.Plano)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestSetup holds all the common test dependencies
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	Usuario    *models.Usuario
	Empresa    *models.Empresa
	Token      string
}

// NewTestContext creates a complete test setup with DB, user, company, and token
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	usuario := CreateTestUsuario(t, db)
	empresa := CreateTestEmpresa(t, db, usuario)
	token := GenerateTestToken(t, jwtService, usuario)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		Usuario:    usuario,
		Empresa:    empresa,
		Token:      token,
	}
}

// Cleanup closes resources held by the test setup
func (ts *TestSetup) Cleanup() {
	sqlDB, err := ts.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}
