// Package telemetry records a session's history to MongoDB: comm-status
// transitions, e-stop events, team changes, and periodic voltage samples,
// each as a timestamped document written off the hot path.
//
// Grounded on the teacher's database.MongodbHandler (pooled client,
// Stable API v1, health ping) and on the "Sensor Data Storage" example
// the teacher left as a comment in main.go — DSPC turns it into real
// code instead of a comment.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"dspc/config"
	"dspc/logging"
)

// Record is one persisted telemetry document. Kind names the event
// (comm_status, e_stop, team_changed, voltage_sample); Fields carries
// whatever payload that kind needs.
type Record struct {
	SessionID string                 `bson:"session_id"`
	Kind      string                 `bson:"kind"`
	At        time.Time              `bson:"at"`
	Fields    map[string]interface{} `bson:"fields"`
}

// Writer owns a pooled MongoDB connection and a buffered write queue.
// Record is fire-and-forget: a slow or unreachable Mongo never blocks
// the caller (spec's Transient-network error class), it just drops
// records once the buffer is full.
type Writer struct {
	client    *mongo.Client
	database  *mongo.Database
	sessionID string
	queue     chan Record
	cancel    context.CancelFunc
}

// Connect dials MongoDB using cfg.MongoURI/MongoDB, returning an error
// on a connection/ping failure or when cfg.MongoURI is empty. A nil
// *Writer with the empty-URI error means telemetry is disabled, not a
// fatal condition — callers should
// treat that as "skip telemetry" rather than abort startup.
func Connect(ctx context.Context, cfg *config.Config, sessionID string) (*Writer, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("telemetry: MONGODB_URI not set, telemetry disabled")
	}

	wctx, cancel := context.WithCancel(ctx)

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(serverAPI).
		SetMaxPoolSize(config.MongoMaxPoolSize).
		SetMinPoolSize(config.MongoMinPoolSize).
		SetMaxConnIdleTime(0).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(wctx, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("telemetry: connect: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(wctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(wctx)
		cancel()
		return nil, fmt.Errorf("telemetry: ping: %w", err)
	}

	w := &Writer{
		client:    client,
		database:  client.Database(cfg.MongoDB),
		sessionID: sessionID,
		queue:     make(chan Record, 256),
		cancel:    cancel,
	}
	go w.drain(wctx)
	return w, nil
}

// IsHealthy reports whether the underlying connection still answers a
// ping. Used by the HTTP admin surface's status endpoint.
func (w *Writer) IsHealthy() bool {
	if w == nil || w.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.client.Ping(ctx, readpref.Primary()) == nil
}

// Record enqueues kind with fields for asynchronous persistence. A nil
// Writer is a valid no-op receiver, so callers that construct telemetry
// optionally never need a nil check of their own.
func (w *Writer) Record(kind string, fields map[string]interface{}) {
	if w == nil {
		return
	}
	rec := Record{SessionID: w.sessionID, Kind: kind, At: time.Now(), Fields: fields}
	select {
	case w.queue <- rec:
	default:
		logging.Print("telemetry: queue full, dropping %s record", kind)
	}
}

func (w *Writer) drain(ctx context.Context) {
	collection := w.database.Collection("session_events")
	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-w.queue:
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if _, err := collection.InsertOne(writeCtx, bson.M{
				"session_id": rec.SessionID,
				"kind":       rec.Kind,
				"at":         rec.At,
				"fields":     rec.Fields,
			}); err != nil {
				logging.Print("telemetry: insert failed: %v", err)
			}
			cancel()
		}
	}
}

// Close cancels the writer's drain loop and disconnects the client. Safe
// to call on a nil Writer.
func (w *Writer) Close(ctx context.Context) error {
	if w == nil {
		return nil
	}
	w.cancel()
	if w.client != nil {
		return w.client.Disconnect(ctx)
	}
	return nil
}
