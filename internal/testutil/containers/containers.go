//go:build integration

// Package containers starts throwaway backends for integration tests.
//
// Each helper starts one container, registers its termination with
// t.Cleanup and returns only what a client configuration needs. Tests
// that use it carry the same build tag:
//
//	//go:build integration
//
//	dsn := containers.Postgres(t)
//	client, err := postgres.NewClient(ctx, postgres.Config{URI: dsn})
package containers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// Images and credentials used by the helpers. The credentials only ever
// reach ephemeral containers.
const (
	PostgresImage    = "docker.io/postgres:16-alpine"
	PostgresDatabase = "jaunts_test"
	PostgresUser     = "jaunts"
	PostgresPassword = "jaunts"

	RedisImage = "docker.io/redis:7-alpine"

	MinIOImage     = "docker.io/minio/minio:latest"
	MinIOAccessKey = "minioadmin"
	MinIOSecretKey = "minioadmin"

	Neo4jImage    = "docker.io/neo4j:5-community"
	Neo4jUsername = "neo4j"
	Neo4jPassword = "jaunts-test"
)

// terminateOnCleanup stops c when the test finishes.
func terminateOnCleanup(t testing.TB, c testcontainers.Container) {
	t.Helper()
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("containers: terminate %s: %v", c.GetContainerID(), err)
		}
	})
}

// Postgres starts PostgreSQL and returns a DSN with sslmode=disable.
func Postgres(t testing.TB) string {
	t.Helper()
	ctx := context.Background()

	c, err := tcpostgres.Run(ctx, PostgresImage,
		tcpostgres.WithDatabase(PostgresDatabase),
		tcpostgres.WithUsername(PostgresUser),
		tcpostgres.WithPassword(PostgresPassword),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "start postgres")
	terminateOnCleanup(t, c)

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string")
	return dsn
}

// Redis starts Redis without authentication and returns its
// redis:// URL.
func Redis(t testing.TB) string {
	t.Helper()
	ctx := context.Background()

	c, err := tcredis.Run(ctx, RedisImage)
	require.NoError(t, err, "start redis")
	terminateOnCleanup(t, c)

	url, err := c.ConnectionString(ctx)
	require.NoError(t, err, "redis connection string")
	return url
}

// MinIO starts MinIO and returns its host:port API endpoint. Use
// MinIOAccessKey and MinIOSecretKey as credentials.
func MinIO(t testing.TB) string {
	t.Helper()
	ctx := context.Background()

	c, err := tcminio.Run(ctx, MinIOImage,
		tcminio.WithUsername(MinIOAccessKey),
		tcminio.WithPassword(MinIOSecretKey),
	)
	require.NoError(t, err, "start minio")
	terminateOnCleanup(t, c)

	endpoint, err := c.ConnectionString(ctx)
	require.NoError(t, err, "minio endpoint")
	return endpoint
}

// Neo4j starts Neo4j Community and returns its Bolt URL. Use
// Neo4jUsername and Neo4jPassword as credentials.
func Neo4j(t testing.TB) string {
	t.Helper()
	ctx := context.Background()

	c, err := tcneo4j.Run(ctx, Neo4jImage, tcneo4j.WithAdminPassword(Neo4jPassword))
	require.NoError(t, err, "start neo4j")
	terminateOnCleanup(t, c)

	url, err := c.BoltUrl(ctx)
	require.NoError(t, err, "neo4j bolt url")
	return url
}
