package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zapagente/zapagente/internal/database/models"
	"github.com/zapagente/zapagente/internal/empresa"
	"github.com/zapagente/zapagente/internal/persona"
	"gorm.io/gorm"
)

var (
	// ErrMissingPayload means the webhook delivered an empty sender or body.
	// Detected before any side effect.
	ErrMissingPayload = errors.New("missing message or sender")

	// ErrConfigMissing means a required third-party credential is absent. No
	// outbound call is attempted.
	ErrConfigMissing = errors.New("third-party credentials not configured")
)

// Mensagem delivery statuses.
const (
	StatusEnviada = "enviada"
	StatusFalha   = "falha"
)

type Service struct {
	db         *gorm.DB
	completion CompletionClient
	messaging  MessagingClient
	empresas   *empresa.Service
	personas   *persona.Service
	logger     *slog.Logger
}

// NewService wires the relay. completion or messaging may be nil when the
// corresponding credentials are absent; HandleInbound then fails with
// ErrConfigMissing without attempting any outbound call.
func NewService(db *gorm.DB, completion CompletionClient, messaging MessagingClient, empresas *empresa.Service, personas *persona.Service, logger *slog.Logger) *Service {
	return &Service{
		db:         db,
		completion: completion,
		messaging:  messaging,
		empresas:   empresas,
		personas:   personas,
		logger:     logger,
	}
}

// Inbound is one webhook delivery. From is the end-customer address, To the
// business number the message arrived on; both may carry the provider's
// whatsapp: prefix.
type Inbound struct {
	From string
	To   string
	Body string
}

// Outcome reports what was relayed back to the sender.
type Outcome struct {
	Reply string
}

// HandleInbound forwards the inbound text to the completion API under the
// persona of the receiving company (or the default prompt) and relays the
// reply to the original sender. The reply is sent unconditionally, whatever
// its origin; an upstream error body relays as conversational text.
func (s *Service) HandleInbound(ctx context.Context, in Inbound) (*Outcome, error) {
	sender := strings.TrimPrefix(in.From, WhatsAppPrefix)
	receiver := strings.TrimPrefix(in.To, WhatsAppPrefix)

	if in.Body == "" || sender == "" {
		return nil, ErrMissingPayload
	}

	if s.completion == nil || s.messaging == nil {
		return nil, ErrConfigMissing
	}

	prompt := s.systemPromptFor(ctx, receiver)

	reply, err := s.completion.Complete(ctx, prompt, in.Body)
	if err != nil {
		s.logMensagem(ctx, sender, in.Body, "", StatusFalha)
		return nil, fmt.Errorf("completing message: %w", err)
	}

	if err := s.messaging.Send(ctx, sender, reply); err != nil {
		s.logMensagem(ctx, sender, in.Body, reply, StatusFalha)
		return nil, fmt.Errorf("relaying reply: %w", err)
	}

	s.logMensagem(ctx, sender, in.Body, reply, StatusEnviada)

	return &Outcome{Reply: reply}, nil
}

// systemPromptFor resolves the persona of the company registered with the
// receiving number. Any miss along the way falls back to the default prompt;
// persona lookup never fails a relay.
func (s *Service) systemPromptFor(ctx context.Context, telefone string) string {
	if telefone == "" || s.empresas == nil || s.personas == nil {
		return DefaultSystemPrompt
	}

	emp, err := s.empresas.ResolveByTelefone(ctx, telefone)
	if err != nil {
		return DefaultSystemPrompt
	}

	p, err := s.personas.Get(ctx, emp.ID)
	if err != nil {
		return DefaultSystemPrompt
	}

	return BuildSystemPrompt(p)
}

// BuildSystemPrompt renders a persona as the completion system prompt.
func BuildSystemPrompt(p *models.PersonaIA) string {
	var b strings.Builder

	if p.NomeAgente != "" {
		fmt.Fprintf(&b, "Você é %s, %s de atendimento.", p.NomeAgente, strings.ToLower(p.FuncaoAgente))
	} else {
		fmt.Fprintf(&b, "Você é um(a) %s de atendimento.", strings.ToLower(p.FuncaoAgente))
	}
	fmt.Fprintf(&b, " Responda em %s, com tom %s e estilo de conversa %s.",
		p.Idioma, strings.ToLower(p.TomDeVoz), strings.ToLower(p.EstiloConversa))
	fmt.Fprintf(&b, " Mantenha as respostas de tamanho %s.", strings.ToLower(p.TamanhoResposta))

	var diretrizes []string
	for _, d := range p.Diretrizes() {
		if d != "" {
			diretrizes = append(diretrizes, "- "+d)
		}
	}
	if len(diretrizes) > 0 {
		b.WriteString("\nSiga estas diretrizes:\n")
		b.WriteString(strings.Join(diretrizes, "\n"))
	}

	return b.String()
}

// logMensagem records the relay outcome. Best effort: a failed audit write is
// logged, never propagated into the relay result.
func (s *Service) logMensagem(ctx context.Context, remetente, corpo, resposta, status string) {
	if s.db == nil {
		return
	}

	m := models.Mensagem{
		Remetente: remetente,
		Corpo:     corpo,
		Resposta:  resposta,
		Status:    status,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		s.logger.Error("failed to record mensagem", "remetente", remetente, "error", err)
	}
}
