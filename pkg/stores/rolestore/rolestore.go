// Package rolestore keeps the user-to-role graph in Neo4j.
//
// Users and roles are nodes joined by HAS_ROLE relationships. Writes use
// MERGE, so granting a role twice leaves one relationship.
package rolestore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	neo4jcl "github.com/StricklySoft/jaunts-core/pkg/clients/neo4j"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

// Graph is the query API the store needs. [*neo4jcl.Client] satisfies it.
type Graph interface {
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

var _ Graph = (*neo4jcl.Client)(nil)

var schema = []string{
	`CREATE CONSTRAINT user_id IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
	`CREATE CONSTRAINT role_name IF NOT EXISTS FOR (r:Role) REQUIRE r.name IS UNIQUE`,
}

const (
	grantCypher = `MERGE (u:User {id: $userId})
MERGE (r:Role {name: $role})
MERGE (u)-[:HAS_ROLE]->(r)
RETURN r.name AS name`

	rolesCypher = `MATCH (u:User {id: $userId})-[:HAS_ROLE]->(r:Role)
RETURN r.name AS name
ORDER BY name`

	removeCypher = `MATCH (u:User {id: $userId})
DETACH DELETE u
RETURN count(u) AS removed`
)

// Roles stores role grants.
type Roles struct {
	graph Graph
}

// New returns a role store over graph.
func New(graph Graph) *Roles {
	return &Roles{graph: graph}
}

// EnsureSchema creates the uniqueness constraints the store relies on.
func (s *Roles) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.graph.ExecuteWrite(ctx, stmt, nil); err != nil {
			return err
		}
	}
	return nil
}

// Grant gives role to the user, creating either node when missing.
func (s *Roles) Grant(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := s.graph.ExecuteWrite(ctx, grantCypher, map[string]any{
		"userId": userID.String(),
		"role":   role,
	})
	return err
}

// RolesOf returns the user's role names in ascending order. A user
// without grants has no roles, not an error.
func (s *Roles) RolesOf(ctx context.Context, userID uuid.UUID) ([]string, error) {
	records, err := s.graph.ExecuteRead(ctx, rolesCypher, map[string]any{"userId": userID.String()})
	if err != nil {
		return nil, err
	}
	roles := make([]string, 0, len(records))
	for _, rec := range records {
		v, ok := rec.Get("name")
		name, isString := v.(string)
		if !ok || !isString {
			return nil, fmt.Errorf("rolestore: role record without a name: %v", rec.Values)
		}
		roles = append(roles, name)
	}
	return roles, nil
}

// RemoveUser deletes the user node and its grants, or reports
// [storage.ErrNotFound].
func (s *Roles) RemoveUser(ctx context.Context, userID uuid.UUID) error {
	records, err := s.graph.ExecuteWrite(ctx, removeCypher, map[string]any{"userId": userID.String()})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return storage.ErrNotFound
	}
	if n, _ := records[0].Get("removed"); n == int64(0) {
		return storage.ErrNotFound
	}
	return nil
}
