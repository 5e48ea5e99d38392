package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lancerkit/lancer/internal/cache"
	"github.com/lancerkit/lancer/internal/config"
	"github.com/lancerkit/lancer/internal/observability/metrics"
	"github.com/lancerkit/lancer/internal/ratelimit"
	"github.com/lancerkit/lancer/internal/usercontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	CapabilityProposal        = "generate-proposal"
	CapabilityFollowUp        = "generate-followup"
	CapabilityEnrichLead      = "enrich-lead"
	CapabilitySuggestActions  = "suggest-actions"
	CapabilitySummarize       = "summarize"
	CapabilitySocialContent   = "generate-social-content"
	CapabilityPaymentReminder = "generate-payment-reminder"
)

const defaultCacheTTL = 5 * time.Minute

// Suggestion is a recommended next action for a lead, client or project.
type Suggestion struct {
	Title    string `json:"title"`
	Reason   string `json:"reason,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// staticSuggestions is served when no user is in the session: without an
// identity there is nothing to personalize, so the upstream service is
// not called at all.
var staticSuggestions = []Suggestion{
	{Title: "Follow up with recent leads", Priority: "high"},
	{Title: "Send pending quotes", Priority: "medium"},
	{Title: "Review project milestones due this week", Priority: "medium"},
	{Title: "Update client contact details", Priority: "low"},
}

type Service interface {
	GenerateProposal(ctx context.Context, leadID string) (string, error)
	GenerateFollowUp(ctx context.Context, leadID string) (string, error)
	EnrichLead(ctx context.Context, leadID string) (map[string]any, error)
	SuggestActions(ctx context.Context, targetType, targetID string) ([]Suggestion, error)
	Summarize(ctx context.Context, text string) (string, error)
	GenerateSocialContent(ctx context.Context, topic, platform string) (string, error)
	GeneratePaymentReminder(ctx context.Context, quoteID string) (string, error)
	Health(ctx context.Context) error
}

type Params struct {
	fx.In

	Client  *Client
	Log     *zap.Logger
	Cache   cache.AIResponseCache
	Limiter *ratelimit.AIRequestLimiter `optional:"true"`
	CRM     *config.CRMConfigHolder     `optional:"true"`
	Metrics *metrics.Metrics            `optional:"true"`
}

type service struct {
	client  *Client
	log     *zap.Logger
	cache   cache.AIResponseCache
	limiter *ratelimit.AIRequestLimiter
	crm     *config.CRMConfigHolder
	metrics *metrics.Metrics
}

func NewService(p Params) Service {
	return &service{
		client:  p.Client,
		log:     p.Log.Named("ai.service"),
		cache:   p.Cache,
		limiter: p.Limiter,
		crm:     p.CRM,
		metrics: p.Metrics,
	}
}

func (s *service) GenerateProposal(ctx context.Context, leadID string) (string, error) {
	return s.generate(ctx, CapabilityProposal, "/generate-proposal/"+leadID, nil)
}

func (s *service) GenerateFollowUp(ctx context.Context, leadID string) (string, error) {
	return s.generate(ctx, CapabilityFollowUp, "/generate-followup/"+leadID, nil)
}

// EnrichLead is a read-like generation: the result for a given lead is
// stable for minutes, so it goes through the TTL cache.
func (s *service) EnrichLead(ctx context.Context, leadID string) (map[string]any, error) {
	raw, err := s.generateCached(ctx, CapabilityEnrichLead, leadID, "/enrich-lead/"+leadID, nil)
	if err != nil {
		return nil, err
	}

	var enrichment map[string]any
	if err := json.Unmarshal([]byte(raw), &enrichment); err != nil {
		return nil, fmt.Errorf("%w: malformed enrichment", ErrGenerationFailed)
	}
	return enrichment, nil
}

func (s *service) SuggestActions(ctx context.Context, targetType, targetID string) ([]Suggestion, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return staticSuggestions, nil
	}

	key := fmt.Sprintf("%s/%s/%s", targetType, targetID, userID.String())
	raw, err := s.generateCached(ctx, CapabilitySuggestActions, key,
		fmt.Sprintf("/suggest-actions/%s/%s", targetType, targetID), nil)
	if err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("%w: malformed suggestions", ErrGenerationFailed)
	}
	return suggestions, nil
}

func (s *service) Summarize(ctx context.Context, text string) (string, error) {
	key := fmt.Sprintf("%x", hashText(text))
	return s.generateCached(ctx, CapabilitySummarize, key, "/summarize", map[string]string{"text": text})
}

// GenerateSocialContent carries user-varying free text, so it is never
// cached.
func (s *service) GenerateSocialContent(ctx context.Context, topic, platform string) (string, error) {
	return s.generate(ctx, CapabilitySocialContent, "/generate-social-content", map[string]string{
		"topic":    topic,
		"platform": platform,
	})
}

func (s *service) GeneratePaymentReminder(ctx context.Context, quoteID string) (string, error) {
	return s.generate(ctx, CapabilityPaymentReminder, "/generate-payment-reminder/"+quoteID, nil)
}

func (s *service) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *service) generate(ctx context.Context, capability, path string, body any) (string, error) {
	if err := s.allow(ctx); err != nil {
		s.metrics.RecordAIRequest(capability, "rate_limited")
		return "", err
	}

	raw, err := s.client.Post(ctx, path, body)
	if err != nil {
		s.metrics.RecordAIRequest(capability, "error")
		return "", err
	}
	s.metrics.RecordAIRequest(capability, "ok")
	return decodeContent(raw)
}

func (s *service) generateCached(ctx context.Context, capability, key, path string, body any) (string, error) {
	if cached, ok := s.cache.Get(capability, key); ok {
		s.metrics.RecordAICacheHit(capability)
		return cached, nil
	}

	content, err := s.generate(ctx, capability, path, body)
	if err != nil {
		return "", err
	}
	s.cache.Set(capability, key, content, s.cacheTTL())
	return content, nil
}

func (s *service) allow(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	userID := ""
	if id, ok := usercontext.UserIDFromContext(ctx); ok {
		userID = id.String()
	}
	result, err := s.limiter.Allow(ctx, userID)
	if err != nil {
		return nil
	}
	if !result.Allowed {
		return ErrRateLimited
	}
	return nil
}

func (s *service) cacheTTL() time.Duration {
	if s.crm != nil {
		if ttl := s.crm.Get().AICacheTTL; ttl > 0 {
			return ttl
		}
	}
	return defaultCacheTTL
}

// decodeContent extracts content from the data document. The upstream
// returns either {"content": "..."} or a bare JSON string; structured
// documents pass through verbatim for capability-specific decoding.
func decodeContent(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	var wrapped struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Content != "" {
		return wrapped.Content, nil
	}

	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	return string(raw), nil
}

func hashText(text string) uint64 {
	// FNV-1a, enough to key a short-lived cache.
	var h uint64 = 14695981039346656037
	for i := 0; i < len(text); i++ {
		h ^= uint64(text[i])
		h *= 1099511628211
	}
	return h
}
