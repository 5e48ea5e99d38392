package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	clientrepository "github.com/lancerkit/lancer/internal/client/repository"
	"github.com/lancerkit/lancer/internal/clock"
	projectdomain "github.com/lancerkit/lancer/internal/project/domain"
	projectrepository "github.com/lancerkit/lancer/internal/project/repository"
	"github.com/lancerkit/lancer/internal/quote/domain"
	"github.com/lancerkit/lancer/internal/quote/draft"
	"github.com/lancerkit/lancer/internal/quote/repository"
	"github.com/lancerkit/lancer/internal/refs"
	"github.com/lancerkit/lancer/internal/usercontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testOwnerID = int64(42)

type quoteFixture struct {
	svc      *Service
	db       *gorm.DB
	node     *snowflake.Node
	client   clientdomain.Client
	project  projectdomain.Project
	otherPrj projectdomain.Project
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&clientdomain.Client{},
		&projectdomain.Project{},
		&domain.Quote{},
		&domain.QuoteItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))

	svc := &Service{
		db:       conn,
		log:      zap.NewNop(),
		genID:    node,
		clock:    fake,
		repo:     repository.Provide(),
		clients:  clientrepository.Provide(),
		projects: projectrepository.Provide(),
	}

	owner := snowflake.ID(testOwnerID)
	client := clientdomain.Client{
		ID:        node.Generate(),
		OwnerID:   owner,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@acme.test",
		Company:   "Acme Corp",
	}
	require.NoError(t, conn.Create(&client).Error)

	project := projectdomain.Project{
		ID:       node.Generate(),
		OwnerID:  owner,
		ClientID: client.ID,
		Name:     "Acme Corp Project",
		Slug:     "acme-corp-project",
		Status:   projectdomain.ProjectStatusActive,
		Budget:   700,
	}
	require.NoError(t, conn.Create(&project).Error)

	otherClient := clientdomain.Client{
		ID:        node.Generate(),
		OwnerID:   owner,
		FirstName: "Grace",
		Email:     "grace@globex.test",
		Company:   "Globex",
	}
	require.NoError(t, conn.Create(&otherClient).Error)

	otherPrj := projectdomain.Project{
		ID:       node.Generate(),
		OwnerID:  owner,
		ClientID: otherClient.ID,
		Name:     "Globex Launch",
		Slug:     "globex-launch",
		Status:   projectdomain.ProjectStatusActive,
	}
	require.NoError(t, conn.Create(&otherPrj).Error)

	return &quoteFixture{
		svc:      svc,
		db:       conn,
		node:     node,
		client:   client,
		project:  project,
		otherPrj: otherPrj,
	}
}

func userCtx() context.Context {
	return usercontext.WithUserID(context.Background(), testOwnerID)
}

func (f *quoteFixture) validDraft() *draft.Draft {
	d := &draft.Draft{
		Title:       "Website redesign",
		Client:      refs.FromID[draft.ClientInfo](f.client.ID.String()),
		Project:     refs.FromID[draft.ProjectInfo](f.project.ID.String()),
		ClientEmail: "ada@acme.test",
		ValidUntil:  "2026-09-30",
		Items: []draft.LineItem{
			{ItemType: draft.ItemTypeHour, Name: "Design", Quantity: 10, Unit: draft.UnitHour, Rate: 70},
		},
		Tax:      10,
		Discount: 5,
		Currency: draft.CurrencyUSD,
	}
	d.Recompute()
	return d
}

func TestCreateQuoteAssignsSequentialNumbers(t *testing.T) {
	f := newQuoteFixture(t)

	first, err := f.svc.Create(userCtx(), domain.CreateQuoteRequest{Draft: f.validDraft()})
	require.NoError(t, err)
	second, err := f.svc.Create(userCtx(), domain.CreateQuoteRequest{Draft: f.validDraft()})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.QuoteNumber)
	assert.Equal(t, int64(2), second.QuoteNumber)
}

func TestCreateQuotePersistsTotals(t *testing.T) {
	f := newQuoteFixture(t)

	quote, err := f.svc.Create(userCtx(), domain.CreateQuoteRequest{Draft: f.validDraft()})
	require.NoError(t, err)

	assert.InDelta(t, 700.0, quote.Subtotal, 1e-9)
	assert.InDelta(t, 70.0, quote.TaxAmount, 1e-9)
	assert.InDelta(t, 35.0, quote.DiscountAmount, 1e-9)
	assert.InDelta(t, 735.0, quote.Total, 1e-9)

	require.Len(t, quote.Items, 1)
	assert.InDelta(t, 700.0, quote.Items[0].Amount, 1e-9)
	assert.Equal(t, 0, quote.Items[0].Position)
}

func TestCreateQuoteRejectsProjectOfAnotherClient(t *testing.T) {
	f := newQuoteFixture(t)

	d := f.validDraft()
	d.Project = refs.FromID[draft.ProjectInfo](f.otherPrj.ID.String())

	_, err := f.svc.Create(userCtx(), domain.CreateQuoteRequest{Draft: d})
	assert.ErrorIs(t, err, domain.ErrProjectMismatch)
}

func TestCreateQuoteRejectsUnknownCurrency(t *testing.T) {
	f := newQuoteFixture(t)

	d := f.validDraft()
	d.Currency = draft.Currency("JPY")

	_, err := f.svc.Create(userCtx(), domain.CreateQuoteRequest{Draft: d})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestCreateQuoteRequiresUser(t *testing.T) {
	f := newQuoteFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateQuoteRequest{Draft: f.validDraft()})
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestCreateQuoteSurfacesDraftValidation(t *testing.T) {
	f := newQuoteFixture(t)

	d := f.validDraft()
	d.Title = "  "

	_, err := f.svc.Create(userCtx(), domain.CreateQuoteRequest{Draft: d})
	require.Error(t, err)

	var vErr *draft.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Title is required", vErr.Message)
}

func TestUpdateQuoteReplacesItemsAndKeepsNumber(t *testing.T) {
	f := newQuoteFixture(t)

	created, err := f.svc.Create(userCtx(), domain.CreateQuoteRequest{Draft: f.validDraft()})
	require.NoError(t, err)

	edited := f.validDraft()
	edited.Items = []draft.LineItem{
		{ItemType: draft.ItemTypeHour, Name: "Design", Quantity: 10, Unit: draft.UnitHour, Rate: 70},
		{ItemType: draft.ItemTypeFixed, Name: "Hosting setup", Quantity: 1, Unit: draft.UnitProject, Rate: 150},
	}
	edited.Recompute()

	updated, err := f.svc.Update(userCtx(), domain.UpdateQuoteRequest{
		ID:    created.ID.String(),
		Draft: edited,
	})
	require.NoError(t, err)

	assert.Equal(t, created.QuoteNumber, updated.QuoteNumber)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, "Hosting setup", updated.Items[1].Name)
	assert.InDelta(t, 850.0, updated.Subtotal, 1e-9)

	var count int64
	require.NoError(t, f.db.Model(&domain.QuoteItem{}).Where("quote_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateQuoteStatusOnly(t *testing.T) {
	f := newQuoteFixture(t)

	created, err := f.svc.Create(userCtx(), domain.CreateQuoteRequest{Draft: f.validDraft()})
	require.NoError(t, err)

	status := "sent"
	updated, err := f.svc.Update(userCtx(), domain.UpdateQuoteRequest{
		ID:     created.ID.String(),
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteStatusSent, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.InDelta(t, 735.0, updated.Total, 1e-9)
}
