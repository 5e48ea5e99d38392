package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lancerkit/lancer/internal/cache"
	"github.com/lancerkit/lancer/internal/config"
	"github.com/lancerkit/lancer/internal/usercontext"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.Config{AIServiceURL: baseURL}, zap.NewNop())
}

func newTestAIService(client *Client) *service {
	return &service{
		client: client,
		log:    zap.NewNop(),
		cache:  cache.NewAIResponseCache(),
		crm: config.NewStaticCRMConfigHolder(config.CRMConfig{
			Currencies:           []string{"USD"},
			QuoteValidDays:       30,
			NameCollisionRetries: 3,
			AICacheTTL:           5 * time.Minute,
		}),
	}
}

func TestGenerateProposalReturnsContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-proposal/lead-1", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"content":"Dear Ada, ..."}}`))
	}))
	defer ts.Close()

	svc := newTestAIService(newTestClient(ts.URL))

	content, err := svc.GenerateProposal(context.Background(), "lead-1")

	assert.NoError(t, err)
	assert.Equal(t, "Dear Ada, ...", content)
}

func TestRateLimitAndUnavailableMapToDistinctErrors(t *testing.T) {
	var status atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer ts.Close()

	svc := newTestAIService(newTestClient(ts.URL))

	status.Store(http.StatusTooManyRequests)
	_, err := svc.GenerateFollowUp(context.Background(), "lead-1")
	assert.ErrorIs(t, err, ErrRateLimited)

	status.Store(http.StatusServiceUnavailable)
	_, err = svc.GenerateFollowUp(context.Background(), "lead-1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUpstreamFailureIsGenerationFailed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"model overloaded"}`))
	}))
	defer ts.Close()

	svc := newTestAIService(newTestClient(ts.URL))

	_, err := svc.GenerateProposal(context.Background(), "lead-1")

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestSuggestActionsWithoutUserReturnsStaticSet(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer ts.Close()

	svc := newTestAIService(newTestClient(ts.URL))

	suggestions, err := svc.SuggestActions(context.Background(), "lead", "1")

	assert.NoError(t, err)
	assert.Equal(t, staticSuggestions, suggestions)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSuggestActionsCachedForSameIdentity(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success":true,"data":[{"title":"Call Ada","priority":"high"}]}`))
	}))
	defer ts.Close()

	svc := newTestAIService(newTestClient(ts.URL))
	ctx := usercontext.WithUserID(context.Background(), 42)

	first, err := svc.SuggestActions(ctx, "lead", "1")
	assert.NoError(t, err)
	second, err := svc.SuggestActions(ctx, "lead", "1")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSocialContentNeverCached(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success":true,"data":{"content":"post"}}`))
	}))
	defer ts.Close()

	svc := newTestAIService(newTestClient(ts.URL))
	ctx := usercontext.WithUserID(context.Background(), 42)

	_, _ = svc.GenerateSocialContent(ctx, "launch", "linkedin")
	_, _ = svc.GenerateSocialContent(ctx, "launch", "linkedin")

	assert.Equal(t, int32(2), calls.Load())
}

func TestUnconfiguredClientIsUnavailable(t *testing.T) {
	svc := newTestAIService(newTestClient(""))

	_, err := svc.GenerateProposal(context.Background(), "lead-1")

	assert.ErrorIs(t, err, ErrUnavailable)
}
