package refs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testClient struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
}

func (c testClient) EntityID() string { return c.ID }

func TestUnmarshalStringShape(t *testing.T) {
	var ref Ref[testClient]
	err := json.Unmarshal([]byte(`"client-123"`), &ref)
	assert.NoError(t, err)
	assert.Equal(t, "client-123", ref.ID())

	_, resolved := ref.Entity()
	assert.False(t, resolved)
}

func TestUnmarshalObjectShape(t *testing.T) {
	var ref Ref[testClient]
	err := json.Unmarshal([]byte(`{"id":"client-123","firstName":"Ada","email":"ada@example.com"}`), &ref)
	assert.NoError(t, err)
	assert.Equal(t, "client-123", ref.ID())

	entity, resolved := ref.Entity()
	assert.True(t, resolved)
	assert.Equal(t, "Ada", entity.FirstName)
}

func TestUnmarshalNull(t *testing.T) {
	var ref Ref[testClient]
	err := json.Unmarshal([]byte(`null`), &ref)
	assert.NoError(t, err)
	assert.True(t, ref.IsZero())
	assert.Equal(t, "", ref.ID())
}

func TestMatchesBothShapes(t *testing.T) {
	byID := FromID[testClient]("client-123")
	byEntity := FromEntity(testClient{ID: "client-123"})

	assert.True(t, byID.Matches("client-123"))
	assert.True(t, byEntity.Matches("client-123"))
	assert.False(t, byID.Matches("client-456"))
	assert.False(t, byEntity.Matches("client-456"))
}

func TestMatchesAbsentIsNonMatch(t *testing.T) {
	var zero Ref[testClient]
	assert.False(t, zero.Matches("client-123"))
	assert.False(t, zero.Matches(""))
	assert.False(t, FromID[testClient]("client-123").Matches(""))
}

func TestMarshalRoundTrip(t *testing.T) {
	byID := FromID[testClient]("client-123")
	out, err := json.Marshal(byID)
	assert.NoError(t, err)
	assert.Equal(t, `"client-123"`, string(out))

	byEntity := FromEntity(testClient{ID: "client-123", FirstName: "Ada"})
	out, err = json.Marshal(byEntity)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id":"client-123","firstName":"Ada","email":""}`, string(out))

	var zero Ref[testClient]
	out, err = json.Marshal(zero)
	assert.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
