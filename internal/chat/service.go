package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/ai"
	"github.com/techstoreperu/storefront-backend/pkg/config"
	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
	"github.com/techstoreperu/storefront-backend/pkg/metrics"
)

// GuestUserID marks an unauthenticated visitor. Guests get no personalization
// and no persisted history.
const GuestUserID = "guest"

const (
	replyTemperature     = 0.7
	recentOrdersInPrompt = 5
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

// Turn is one prior exchange message supplied by the storefront client.
type Turn struct {
	Message string `json:"message"`
	IsUser  bool   `json:"isUser"`
}

// ReplyRequest carries one incoming assistant message.
type ReplyRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	History []Turn `json:"conversationHistory"`
}

// Reply is the assistant answer in wire form.
type Reply struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// HistoryEntry is one persisted exchange in wire form.
type HistoryEntry struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	IsBot     bool      `json:"isBot"`
	Timestamp time.Time `json:"timestamp"`
}

// Service answers storefront assistant messages and serves past exchanges.
type Service interface {
	Reply(ctx context.Context, req ReplyRequest) (*Reply, error)
	History(ctx context.Context, userID string) ([]HistoryEntry, error)
}

// ServiceParams collects the service dependencies. Repo is required; the
// generator and metrics are optional and degrade to the canned fallback.
type ServiceParams struct {
	Repo            Repository
	Generator       ReplyGenerator
	AIMetrics       *metrics.AIMetrics
	Chat            config.ChatConfig
	Logger          *logger.Logger
	FallbackCatalog []ProductInfo
}

type service struct {
	repo      Repository
	generator ReplyGenerator
	aiMetrics *metrics.AIMetrics
	cfg       config.ChatConfig
	logg      *logger.Logger
	fallback  []ProductInfo
}

// NewService builds the chat service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("chat repository required")
	}
	fallback := params.FallbackCatalog
	if fallback == nil {
		fallback = FallbackCatalog()
	}
	return &service{
		repo:      params.Repo,
		generator: params.Generator,
		aiMetrics: params.AIMetrics,
		cfg:       params.Chat,
		logg:      params.Logger,
		fallback:  fallback,
	}, nil
}

// Reply answers one message. A missing message is the only client error;
// every downstream failure resolves to a canned reply instead of an error so
// the storefront widget always has something to show.
func (s *service) Reply(ctx context.Context, req ReplyRequest) (*Reply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Message is required")
	}

	userID, identified := s.resolveUser(req.UserID)
	if identified && s.logg != nil {
		ctx = s.logg.WithUserID(ctx, userID.String())
	}

	var user *models.User
	var orders []models.Order
	if identified {
		found, err := s.repo.FindUserWithRecentOrders(ctx, userID, recentOrdersInPrompt)
		if err != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "chat user lookup failed", err)
			}
			return s.fallbackReply(), nil
		}
		if found != nil {
			user = found
			orders = found.Orders
		}
	}

	catalog := s.loadCatalog(ctx)
	systemPrompt := BuildSystemPrompt(catalog, IsProductQuestion(req.Message), user, orders)

	if s.generator == nil {
		return s.fallbackReply(), nil
	}

	started := time.Now()
	answer, err := s.generator.Complete(ctx, ai.CompletionRequest{
		SystemInstruction: systemPrompt,
		History:           recentTurns(req.History, s.cfg.HistoryContextSize),
		UserPrompt:        req.Message,
		Temperature:       replyTemperature,
		MaxTokens:         s.cfg.MaxTokens,
	})
	s.aiMetrics.ObserveCall("chat", time.Since(started), err)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "chat completion failed", err)
		}
		return s.fallbackReply(), nil
	}
	if answer == "" {
		answer = DefaultReply
	}

	if identified {
		saveErr := s.repo.CreateMessage(ctx, &models.ChatMessage{
			UserID:   userID,
			Message:  req.Message,
			Response: answer,
			IsBot:    true,
		})
		if saveErr != nil && s.logg != nil {
			s.logg.Error(ctx, "chat message save failed", saveErr)
		}
	}

	return &Reply{
		Response:  answer,
		Timestamp: timeNowUTC().Format(time.RFC3339),
	}, nil
}

// History returns the newest exchanges for a customer, oldest first. Guests
// and unknown identifiers get an empty page.
func (s *service) History(ctx context.Context, rawUserID string) ([]HistoryEntry, error) {
	userID, identified := s.resolveUser(rawUserID)
	if !identified {
		return []HistoryEntry{}, nil
	}

	messages, err := s.repo.FindRecentMessages(ctx, userID, s.cfg.HistoryPageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch chat history")
	}

	entries := make([]HistoryEntry, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		entries = append(entries, HistoryEntry{
			ID:        msg.ID,
			Message:   msg.Message,
			Response:  msg.Response,
			IsBot:     msg.IsBot,
			Timestamp: msg.CreatedAt,
		})
	}
	return entries, nil
}

func (s *service) resolveUser(raw string) (uuid.UUID, bool) {
	if raw == "" || raw == GuestUserID {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// loadCatalog prefers live catalog rows and falls back to the static sample
// when the store is empty or unreachable.
func (s *service) loadCatalog(ctx context.Context) []ProductInfo {
	products, err := s.repo.FindActiveProducts(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "chat catalog lookup failed", err)
		}
		return s.fallback
	}
	if len(products) == 0 {
		return s.fallback
	}
	return ProductInfosFromModels(products)
}

func (s *service) fallbackReply() *Reply {
	return &Reply{
		Response:  FallbackReply,
		Timestamp: timeNowUTC().Format(time.RFC3339),
	}
}

func recentTurns(history []Turn, n int) []ai.Turn {
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]ai.Turn, 0, len(history))
	for _, turn := range history {
		role := ai.RoleAssistant
		if turn.IsUser {
			role = ai.RoleUser
		}
		out = append(out, ai.Turn{Role: role, Content: turn.Message})
	}
	return out
}
