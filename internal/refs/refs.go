package refs

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Entity is anything a Ref can point at.
type Entity interface {
	EntityID() string
}

// Ref is a foreign-key field that arrives over the wire either as a bare
// id string or as a populated object. Both shapes resolve to the same id,
// so relationship checks behave identically regardless of how the backend
// chose to serialize the reference.
type Ref[E Entity] struct {
	id     string
	entity *E
}

// FromID builds an unresolved reference holding only an id.
func FromID[E Entity](id string) Ref[E] {
	return Ref[E]{id: strings.TrimSpace(id)}
}

// FromEntity builds a resolved reference around a populated entity.
func FromEntity[E Entity](entity E) Ref[E] {
	return Ref[E]{entity: &entity}
}

// IsZero reports whether the reference carries neither an id nor an entity.
func (r Ref[E]) IsZero() bool {
	return r.entity == nil && r.id == ""
}

// ID returns the referenced id, from whichever shape is present.
func (r Ref[E]) ID() string {
	if r.entity != nil {
		return (*r.entity).EntityID()
	}
	return r.id
}

// Entity returns the populated entity when the reference is resolved.
func (r Ref[E]) Entity() (*E, bool) {
	if r.entity == nil {
		return nil, false
	}
	return r.entity, true
}

// Matches reports whether the reference points at targetID. An absent
// reference or empty target is a non-match, never an error.
func (r Ref[E]) Matches(targetID string) bool {
	id := r.ID()
	if id == "" || targetID == "" {
		return false
	}
	return id == targetID
}

func (r Ref[E]) MarshalJSON() ([]byte, error) {
	if r.entity != nil {
		return json.Marshal(r.entity)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

func (r *Ref[E]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref[E]{}
		return nil
	}

	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = FromID[E](id)
		return nil
	}

	var entity E
	if err := json.Unmarshal(data, &entity); err != nil {
		return err
	}
	*r = FromEntity(entity)
	return nil
}
