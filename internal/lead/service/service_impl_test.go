package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	clientrepository "github.com/lancerkit/lancer/internal/client/repository"
	"github.com/lancerkit/lancer/internal/lead/domain"
	"github.com/lancerkit/lancer/internal/lead/repository"
	"github.com/lancerkit/lancer/internal/usercontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testOwnerID = int64(42)

func newLeadTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&domain.Lead{},
		&clientdomain.Client{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := &Service{
		db:      conn,
		log:     zap.NewNop(),
		genID:   node,
		repo:    repository.Provide(),
		clients: clientrepository.Provide(),
	}
	return svc, conn
}

func userCtx() context.Context {
	return usercontext.WithUserID(context.Background(), testOwnerID)
}

func TestConvertToClientCreatesLinkedClient(t *testing.T) {
	svc, conn := newLeadTestService(t)

	lead, err := svc.Create(userCtx(), domain.CreateLeadRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@acme.test",
		Company:   "Acme Corp",
		Phone:     "+1 555 0100",
		Source:    "referral",
	})
	require.NoError(t, err)

	result, err := svc.ConvertToClient(userCtx(), lead.ID.String())
	require.NoError(t, err)

	assert.Equal(t, domain.LeadStatusConverted, result.Lead.Status)
	require.NotNil(t, result.Lead.ClientID)
	assert.Equal(t, result.Client.ID, *result.Lead.ClientID)

	assert.Equal(t, "Ada", result.Client.FirstName)
	assert.Equal(t, "ada@acme.test", result.Client.Email)
	assert.Equal(t, "Acme Corp", result.Client.Company)
	assert.Equal(t, lead.ID.String(), result.Client.Metadata["converted_from_lead"])

	var stored clientdomain.Client
	require.NoError(t, conn.First(&stored, "id = ?", result.Client.ID).Error)
	assert.Equal(t, "Acme Corp", stored.Company)
}

func TestConvertToClientTwiceFails(t *testing.T) {
	svc, _ := newLeadTestService(t)

	lead, err := svc.Create(userCtx(), domain.CreateLeadRequest{
		FirstName: "Ada",
		Email:     "ada@acme.test",
	})
	require.NoError(t, err)

	_, err = svc.ConvertToClient(userCtx(), lead.ID.String())
	require.NoError(t, err)

	_, err = svc.ConvertToClient(userCtx(), lead.ID.String())
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
}

func TestConvertToClientLeavesNoClientOnMissingLead(t *testing.T) {
	svc, conn := newLeadTestService(t)

	node, _ := snowflake.NewNode(2)
	_, err := svc.ConvertToClient(userCtx(), node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int64
	require.NoError(t, conn.Model(&clientdomain.Client{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateLeadRejectsUnknownStatus(t *testing.T) {
	svc, _ := newLeadTestService(t)

	lead, err := svc.Create(userCtx(), domain.CreateLeadRequest{
		FirstName: "Ada",
		Email:     "ada@acme.test",
	})
	require.NoError(t, err)

	status := "parked"
	_, err = svc.Update(userCtx(), domain.UpdateLeadRequest{
		ID:     lead.ID.String(),
		Status: &status,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestAttachEnrichmentMergesExistingKeys(t *testing.T) {
	svc, _ := newLeadTestService(t)

	lead, err := svc.Create(userCtx(), domain.CreateLeadRequest{
		FirstName: "Ada",
		Email:     "ada@acme.test",
	})
	require.NoError(t, err)

	_, err = svc.AttachEnrichment(userCtx(), lead.ID.String(), map[string]any{
		"industry": "software",
	})
	require.NoError(t, err)

	updated, err := svc.AttachEnrichment(userCtx(), lead.ID.String(), map[string]any{
		"employees": "50-100",
	})
	require.NoError(t, err)

	assert.Equal(t, "software", updated.Enrichment["industry"])
	assert.Equal(t, "50-100", updated.Enrichment["employees"])
}

func TestCreateLeadRequiresUser(t *testing.T) {
	svc, _ := newLeadTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateLeadRequest{
		FirstName: "Ada",
		Email:     "ada@acme.test",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}
