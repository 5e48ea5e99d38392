package draft

import (
	"testing"

	"github.com/lancerkit/lancer/internal/refs"
	"github.com/stretchr/testify/assert"
)

func validDraft() *Draft {
	d := NewDraft()
	d.Title = "Website redesign"
	d.SetClient(refs.FromEntity(ClientInfo{ID: "c1", Email: "ada@example.com"}))
	d.SetProject(ProjectInfo{ID: "p1", Name: "Website redesign", Budget: 5000})
	d.ClientEmail = "ada@example.com"
	d.ValidUntil = "2026-09-30"
	return d
}

func TestAssembleValidDraft(t *testing.T) {
	d := validDraft()

	payload, err := Assemble(d)

	assert.NoError(t, err)
	assert.Equal(t, "Website redesign", payload.Title)
	assert.Equal(t, "c1", payload.ClientID)
	assert.Equal(t, "p1", payload.ProjectID)
	assert.Equal(t, "2026-09-30", payload.ValidUntil)
	assert.InDelta(t, 5000.0, payload.Subtotal, 1e-9)
	assert.InDelta(t, 5000.0, payload.Total, 1e-9)
}

func TestAssembleMissingTitle(t *testing.T) {
	d := validDraft()
	d.Title = "   "

	_, err := Assemble(d)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Title is required", verr.Message)
}

func TestAssembleMissingClient(t *testing.T) {
	d := validDraft()
	d.Client = refs.Ref[ClientInfo]{}

	_, err := Assemble(d)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Client is required", verr.Message)
}

func TestAssembleMissingProject(t *testing.T) {
	d := validDraft()
	d.Project = refs.Ref[ProjectInfo]{}

	_, err := Assemble(d)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Project is required", verr.Message)
}

func TestAssembleMissingClientEmail(t *testing.T) {
	d := validDraft()
	d.ClientEmail = ""

	_, err := Assemble(d)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "clientEmail", verr.Field)
}

func TestAssembleBadDate(t *testing.T) {
	d := validDraft()

	d.ValidUntil = ""
	_, err := Assemble(d)
	assert.Error(t, err)

	d.ValidUntil = "not-a-date"
	_, err = Assemble(d)
	assert.Error(t, err)
}

func TestAssembleDateCoercion(t *testing.T) {
	d := validDraft()
	d.ValidUntil = "2026-09-30T12:30:00Z"

	payload, err := Assemble(d)

	assert.NoError(t, err)
	assert.Equal(t, "2026-09-30", payload.ValidUntil)
}

func TestAssembleItemRules(t *testing.T) {
	d := validDraft()
	d.AddItem()
	d.UpdateItem(1, ItemPatch{Name: strPtr(""), Rate: floatPtr(50)})

	_, err := Assemble(d)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Item 2 needs a name", verr.Message)

	d.UpdateItem(1, ItemPatch{Name: strPtr("Extra work"), Rate: floatPtr(0)})
	_, err = Assemble(d)
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Item 2 needs a rate greater than zero", verr.Message)
}

func TestAssembleValidationOrderFirstFailureWins(t *testing.T) {
	d := NewDraft()

	_, err := Assemble(d)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Title is required", verr.Message)
}

func TestAssembleRestampsStaleAmounts(t *testing.T) {
	d := validDraft()
	// Corrupt the derived fields behind the mutators' back.
	d.Items[0].Amount = 1
	d.Subtotal = 1
	d.Total = 1

	payload, err := Assemble(d)

	assert.NoError(t, err)
	assert.InDelta(t, 5000.0, payload.Items[0].Amount, 1e-9)
	assert.InDelta(t, 5000.0, payload.Subtotal, 1e-9)
	assert.InDelta(t, 5000.0, payload.Total, 1e-9)
}

func TestAssembleOmitsEmptyOptionals(t *testing.T) {
	d := validDraft()
	d.Notes = "  "
	d.Description = ""

	payload, err := Assemble(d)

	assert.NoError(t, err)
	assert.Empty(t, payload.Notes)
	assert.Empty(t, payload.Description)
}
