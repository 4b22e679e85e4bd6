package rolestore

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

type call struct {
	write  bool
	cypher string
	params map[string]any
}

type fakeGraph struct {
	calls   []call
	records []*neo4j.Record
	err     error
}

func (g *fakeGraph) ExecuteRead(_ context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	g.calls = append(g.calls, call{cypher: cypher, params: params})
	return g.records, g.err
}

func (g *fakeGraph) ExecuteWrite(_ context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	g.calls = append(g.calls, call{write: true, cypher: cypher, params: params})
	return g.records, g.err
}

func nameRecord(name any) *neo4j.Record {
	return &neo4j.Record{Keys: []string{"name"}, Values: []any{name}}
}

func TestRoles_EnsureSchema(t *testing.T) {
	t.Parallel()
	g := &fakeGraph{}
	require.NoError(t, New(g).EnsureSchema(context.Background()))
	require.Len(t, g.calls, len(schema))
	for _, c := range g.calls {
		assert.True(t, c.write)
		assert.Contains(t, c.cypher, "IF NOT EXISTS")
	}
}

func TestRoles_Grant(t *testing.T) {
	t.Parallel()
	g := &fakeGraph{records: []*neo4j.Record{nameRecord("driver")}}
	id := uuid.New()

	require.NoError(t, New(g).Grant(context.Background(), id, "driver"))
	require.Len(t, g.calls, 1)
	assert.True(t, g.calls[0].write)
	assert.Contains(t, g.calls[0].cypher, "MERGE (u)-[:HAS_ROLE]->(r)")
	assert.Equal(t, map[string]any{"userId": id.String(), "role": "driver"}, g.calls[0].params)
}

func TestRoles_Grant_Fault(t *testing.T) {
	t.Parallel()
	g := &fakeGraph{err: storage.NewFault(storage.KindConcurrency, "neo4j: executewrite", errors.New("deadlock"))}
	err := New(g).Grant(context.Background(), uuid.New(), "driver")
	assert.Equal(t, storage.KindConcurrency, storage.KindOf(err))
}

func TestRoles_RolesOf(t *testing.T) {
	t.Parallel()
	g := &fakeGraph{records: []*neo4j.Record{nameRecord("admin"), nameRecord("driver")}}

	roles, err := New(g).RolesOf(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "driver"}, roles)
	assert.False(t, g.calls[0].write)
}

func TestRoles_RolesOf_NoGrants(t *testing.T) {
	t.Parallel()
	roles, err := New(&fakeGraph{}).RolesOf(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestRoles_RolesOf_MalformedRecord(t *testing.T) {
	t.Parallel()
	g := &fakeGraph{records: []*neo4j.Record{nameRecord(int64(7))}}
	_, err := New(g).RolesOf(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "without a name")
}

func TestRoles_RemoveUser(t *testing.T) {
	t.Parallel()

	removed := func(n int64) []*neo4j.Record {
		return []*neo4j.Record{{Keys: []string{"removed"}, Values: []any{n}}}
	}

	require.NoError(t, New(&fakeGraph{records: removed(1)}).RemoveUser(context.Background(), uuid.New()))
	assert.ErrorIs(t, New(&fakeGraph{records: removed(0)}).RemoveUser(context.Background(), uuid.New()), storage.ErrNotFound)
	assert.ErrorIs(t, New(&fakeGraph{}).RemoveUser(context.Background(), uuid.New()), storage.ErrNotFound)
}
