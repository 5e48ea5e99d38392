package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	"github.com/lancerkit/lancer/internal/clock"
	"github.com/lancerkit/lancer/internal/project/domain"
	"github.com/lancerkit/lancer/internal/usercontext"
	"github.com/lancerkit/lancer/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubProjectRepo struct {
	domain.Repository

	collisions int
	inserted   []domain.Project
}

func (r *stubProjectRepo) Insert(ctx context.Context, db *gorm.DB, project *domain.Project) error {
	if r.collisions > 0 {
		r.collisions--
		return gorm.ErrDuplicatedKey
	}
	r.inserted = append(r.inserted, *project)
	return nil
}

type stubClientRepo struct{}

func (stubClientRepo) Insert(ctx context.Context, db *gorm.DB, client *clientdomain.Client) error {
	return nil
}

func (stubClientRepo) FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*clientdomain.Client, error) {
	return &clientdomain.Client{ID: id, OwnerID: ownerID, FirstName: "Ada", Email: "ada@example.com"}, nil
}

func (stubClientRepo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter clientdomain.ListClientFilter, page pagination.Pagination) ([]*clientdomain.Client, error) {
	return nil, nil
}

func newTestService(repo *stubProjectRepo, fake *clock.FakeClock) *Service {
	node, _ := snowflake.NewNode(1)
	return &Service{
		log:     zap.NewNop(),
		genID:   node,
		clock:   fake,
		repo:    repo,
		clients: stubClientRepo{},
	}
}

func userCtx() context.Context {
	return usercontext.WithUserID(context.Background(), 42)
}

func TestCreateProjectHappyPath(t *testing.T) {
	repo := &stubProjectRepo{}
	svc := newTestService(repo, clock.NewFakeClock(time.Date(2026, 8, 29, 14, 5, 0, 0, time.UTC)))

	project, err := svc.Create(userCtx(), domain.CreateProjectRequest{
		ClientID: "7",
		Name:     "Acme Corp Project",
		Budget:   5000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp Project", project.Name)
	assert.Equal(t, "acme-corp-project", project.Slug)
	assert.Len(t, repo.inserted, 1)
}

func TestCreateProjectRenamesOnCollision(t *testing.T) {
	repo := &stubProjectRepo{collisions: 1}
	svc := newTestService(repo, clock.NewFakeClock(time.Date(2026, 8, 29, 14, 5, 0, 0, time.UTC)))

	project, err := svc.Create(userCtx(), domain.CreateProjectRequest{
		ClientID: "7",
		Name:     "Acme Corp Project",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp Project (2026-08-29 14:05)", project.Name)
	assert.Regexp(t, `^Acme Corp Project \(\d{4}-\d{2}-\d{2} \d{2}:\d{2}\)$`, project.Name)
}

func TestCreateProjectCollisionExhaustsRetries(t *testing.T) {
	repo := &stubProjectRepo{collisions: 10}
	svc := newTestService(repo, clock.NewFakeClock(time.Date(2026, 8, 29, 14, 5, 0, 0, time.UTC)))

	_, err := svc.Create(userCtx(), domain.CreateProjectRequest{
		ClientID: "7",
		Name:     "Acme Corp Project",
	})

	assert.ErrorIs(t, err, domain.ErrNameAlreadyExists)
	// Initial attempt plus three renamed retries, never more.
	assert.Equal(t, 10-4, repo.collisions)
	assert.Empty(t, repo.inserted)
}

func TestCreateProjectRequiresUser(t *testing.T) {
	repo := &stubProjectRepo{}
	svc := newTestService(repo, clock.NewFakeClock(time.Now()))

	_, err := svc.Create(context.Background(), domain.CreateProjectRequest{
		ClientID: "7",
		Name:     "Acme Corp Project",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestCreateProjectRequiresName(t *testing.T) {
	repo := &stubProjectRepo{}
	svc := newTestService(repo, clock.NewFakeClock(time.Now()))

	_, err := svc.Create(userCtx(), domain.CreateProjectRequest{ClientID: "7", Name: "  "})

	assert.ErrorIs(t, err, domain.ErrInvalidName)
}
