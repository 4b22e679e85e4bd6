// Package neo4j is the traced Neo4j client behind the user role graph.
//
// Queries run in managed transactions inside OpenTelemetry client spans.
// Driver failures are reported in the storage vocabulary:
//   - constraint violations are uniqueness faults
//   - transient errors, including deadlocks and exhausted driver retries,
//     are concurrency faults
//   - connectivity errors, unavailable databases and deadlines are
//     connectivity faults
//   - any other server error is a write fault
//
// Errors the driver did not produce are returned unchanged.
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

const tracerName = "github.com/StricklySoft/jaunts-core/pkg/clients/neo4j"

// Driver is the part of [neo4j.DriverWithContext] the client needs.
type Driver interface {
	NewSession(ctx context.Context, config neo4j.SessionConfig) neo4j.SessionWithContext
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// session is the part of [neo4j.SessionWithContext] used per query.
type session interface {
	ExecuteRead(ctx context.Context, work neo4j.ManagedTransactionWork, configurers ...func(*neo4j.TransactionConfig)) (any, error)
	ExecuteWrite(ctx context.Context, work neo4j.ManagedTransactionWork, configurers ...func(*neo4j.TransactionConfig)) (any, error)
	Close(ctx context.Context) error
}

// Client is safe for concurrent use. Each query opens its own session.
type Client struct {
	driver       Driver
	tracer       trace.Tracer
	databaseName string
	openSession  func(ctx context.Context) session
}

// NewClient validates cfg, creates the driver and verifies connectivity.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, sserr.Configuration(err, "neo4j: invalid configuration")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.ConnectionURI(),
		neo4j.BasicAuth(cfg.Username, cfg.Password.Value(), ""),
		func(c *config.Config) {
			c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			c.MaxConnectionLifetime = cfg.MaxConnectionLifetime
			c.ConnectionAcquisitionTimeout = cfg.ConnectionAcquisitionTimeout
			c.SocketConnectTimeout = cfg.ConnectTimeout
			c.MaxTransactionRetryTime = cfg.MaxTransactionRetryTime
		})
	if err != nil {
		return nil, sserr.Configuration(err, "neo4j: invalid driver settings")
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, storage.NewFault(storage.KindConnectivity, "neo4j: verify connectivity", err)
	}
	return NewFromDriver(driver, cfg.Database), nil
}

// NewFromDriver wraps an existing driver. database names the Neo4j
// database every session targets; empty means the server default.
func NewFromDriver(driver Driver, database string) *Client {
	c := &Client{
		driver:       driver,
		tracer:       otel.Tracer(tracerName),
		databaseName: database,
	}
	c.openSession = func(ctx context.Context) session {
		return c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.databaseName})
	}
	return c
}

// ExecuteRead runs cypher in a read transaction and collects every record.
func (c *Client) ExecuteRead(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return c.execute(ctx, "ExecuteRead", cypher, params, session.ExecuteRead)
}

// ExecuteWrite runs cypher in a write transaction and collects every
// record.
func (c *Client) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return c.execute(ctx, "ExecuteWrite", cypher, params, session.ExecuteWrite)
}

type txFunc func(s session, ctx context.Context, work neo4j.ManagedTransactionWork, configurers ...func(*neo4j.TransactionConfig)) (any, error)

func (c *Client) execute(ctx context.Context, op, cypher string, params map[string]any, run txFunc) ([]*neo4j.Record, error) {
	ctx, span := c.startSpan(ctx, op, cypher)

	s := c.openSession(ctx)
	defer s.Close(ctx)

	result, err := run(s, ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err == nil {
		if _, ok := result.([]*neo4j.Record); !ok && result != nil {
			err = fmt.Errorf("neo4j: unexpected result type %T", result)
		}
	}
	finishSpan(span, err)
	if err != nil {
		return nil, translate(err, "neo4j: "+strings.ToLower(op))
	}
	records, _ := result.([]*neo4j.Record)
	return records, nil
}

// Health verifies connectivity, applying [DefaultHealthTimeout] when ctx
// has no deadline.
func (c *Client) Health(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "Health", "VERIFY CONNECTIVITY")
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultHealthTimeout)
		defer cancel()
	}

	err := c.driver.VerifyConnectivity(ctx)
	finishSpan(span, err)
	if err != nil {
		return storage.NewFault(storage.KindConnectivity, "neo4j: health", err)
	}
	return nil
}

// Close closes the driver and its connection pool.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func (c *Client) startSpan(ctx context.Context, op, cypher string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "neo4j."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "neo4j"),
			attribute.String("db.name", c.databaseName),
			attribute.String("db.statement", truncateStatement(cypher)),
		),
	)
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// translate maps driver failures onto the storage vocabulary.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if neo4j.IsConnectivityError(err) || errors.Is(err, context.DeadlineExceeded) {
		return storage.NewFault(storage.KindConnectivity, op, err)
	}
	if neo4j.IsTransactionExecutionLimit(err) {
		return storage.NewFault(storage.KindConcurrency, op, err)
	}

	var serverErr *neo4j.Neo4jError
	if errors.As(err, &serverErr) {
		return storage.NewFault(codeKind(serverErr.Code), op, err)
	}
	return err
}

// codeKind classifies a Neo4j status code such as
// "Neo.TransientError.Transaction.DeadlockDetected".
func codeKind(code string) storage.Kind {
	switch {
	case code == "Neo.TransientError.General.DatabaseUnavailable",
		strings.HasPrefix(code, "Neo.ClientError.Security."):
		return storage.KindConnectivity
	case code == "Neo.ClientError.Schema.ConstraintValidationFailed":
		return storage.KindUniqueness
	case strings.HasPrefix(code, "Neo.TransientError."):
		return storage.KindConcurrency
	default:
		return storage.KindWrite
	}
}
