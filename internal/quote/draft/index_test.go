package draft

import (
	"testing"

	"github.com/lancerkit/lancer/internal/refs"
	"github.com/stretchr/testify/assert"
)

func testProjects() []ProjectInfo {
	return []ProjectInfo{
		{
			ID:     "p1",
			Name:   "Website redesign",
			Client: refs.FromID[ClientInfo]("c1"),
		},
		{
			ID:     "p2",
			Name:   "Brand refresh",
			Client: refs.FromEntity(ClientInfo{ID: "c1", FirstName: "Ada"}),
		},
		{
			ID:     "p3",
			Name:   "Mobile app",
			Client: refs.FromID[ClientInfo]("c2"),
		},
		{
			ID:   "p4",
			Name: "Orphaned",
		},
	}
}

func TestProjectsForClientMatchesBothShapes(t *testing.T) {
	matched := ProjectsForClient(testProjects(), "c1")

	assert.Len(t, matched, 2)
	assert.Equal(t, "p1", matched[0].ID)
	assert.Equal(t, "p2", matched[1].ID)
}

func TestProjectsForClientUnknownOrEmpty(t *testing.T) {
	assert.Empty(t, ProjectsForClient(testProjects(), "c99"))
	assert.Empty(t, ProjectsForClient(testProjects(), ""))
	assert.Empty(t, ProjectsForClient(nil, "c1"))
}

func TestDefaultLineItemForProject(t *testing.T) {
	item := DefaultLineItemForProject(ProjectInfo{
		ID:          "p1",
		Name:        "Website redesign",
		Description: "Full redesign of the marketing site",
		Budget:      5000,
	})

	assert.Equal(t, "Website redesign", item.Name)
	assert.Equal(t, "Full redesign of the marketing site", item.Description)
	assert.Equal(t, UnitProject, item.Unit)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, 5000.0, item.Rate)
	assert.Equal(t, 5000.0, item.Amount)
}

func TestDefaultLineItemFallbackDescriptionAndZeroBudget(t *testing.T) {
	item := DefaultLineItemForProject(ProjectInfo{ID: "p2", Name: "Brand refresh"})

	assert.Equal(t, "Work on Brand refresh", item.Description)
	assert.Equal(t, 0.0, item.Rate)
}

func TestSetProjectSeedsLedger(t *testing.T) {
	d := NewDraft()
	d.AddItem()
	d.AddItem()

	d.SetProject(ProjectInfo{ID: "p1", Name: "Website redesign", Budget: 5000})

	assert.Len(t, d.Items, 1)
	assert.Equal(t, "Website redesign", d.Items[0].Name)
	assert.InDelta(t, 5000.0, d.Subtotal, 1e-9)
}

func TestSwitchingClientClearsProject(t *testing.T) {
	d := NewDraft()
	d.SetClient(refs.FromID[ClientInfo]("c1"))
	d.SetProject(ProjectInfo{ID: "p1", Name: "Website redesign", Client: refs.FromID[ClientInfo]("c1")})
	assert.Equal(t, "p1", d.Project.ID())

	d.SetClient(refs.FromID[ClientInfo]("c2"))

	assert.True(t, d.Project.IsZero())
}

func TestReassigningSameClientKeepsProject(t *testing.T) {
	d := NewDraft()
	d.SetClient(refs.FromID[ClientInfo]("c1"))
	d.SetProject(ProjectInfo{ID: "p1", Name: "Website redesign"})

	// Same client arriving in populated shape is not a switch.
	d.SetClient(refs.FromEntity(ClientInfo{ID: "c1", FirstName: "Ada"}))

	assert.Equal(t, "p1", d.Project.ID())
}
