package draft

import (
	"fmt"
	"strings"
)

// ProjectsForClient filters projects down to those whose client
// reference resolves to clientID, whichever wire shape the reference
// arrived in. An empty clientID or no matches yields an empty slice.
func ProjectsForClient(projects []ProjectInfo, clientID string) []ProjectInfo {
	matched := make([]ProjectInfo, 0, len(projects))
	if strings.TrimSpace(clientID) == "" {
		return matched
	}
	for _, project := range projects {
		if project.Client.Matches(clientID) {
			matched = append(matched, project)
		}
	}
	return matched
}

// DefaultLineItemForProject seeds a ledger from a chosen project: one
// line covering the whole project budget, editable afterward.
func DefaultLineItemForProject(project ProjectInfo) LineItem {
	description := strings.TrimSpace(project.Description)
	if description == "" {
		description = fmt.Sprintf("Work on %s", project.Name)
	}
	return LineItem{
		ItemType:    ItemTypeService,
		Name:        project.Name,
		Description: description,
		Quantity:    1,
		Unit:        UnitProject,
		Rate:        project.Budget,
		Amount:      project.Budget,
	}
}
