// The Mongo handler ships log records to a MongoDB collection without ever
// blocking the request path. Handle only enqueues onto a buffered channel
// (dropping when full); a single background goroutine batches the queue into
// InsertMany calls. Close flushes what is queued and disconnects.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	shipQueueDepth = 4096
	shipBatchMax   = 64
	shipFlushEvery = 2 * time.Second
)

type mongoRecord struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// MongoHandler is an slog.Handler backed by a MongoDB collection.
type MongoHandler struct {
	col    *mongo.Collection
	client *mongo.Client
	queue  chan mongoRecord
	done   chan struct{}
	bound  []slog.Attr
}

// NewMongoHandler connects to uri and ships records into db.collection.
// Callers own the handler and must Close it on shutdown.
func NewMongoHandler(uri, db, collection string) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	h := &MongoHandler{
		col:    col,
		client: client,
		queue:  make(chan mongoRecord, shipQueueDepth),
		done:   make(chan struct{}),
	}
	go h.ship()
	return h, nil
}

func (h *MongoHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := mongoRecord{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: bson.M{},
	}
	take := func(a slog.Attr) {
		if a.Key == "request_id" {
			doc.RequestID = a.Value.String()
			return
		}
		doc.Attrs[a.Key] = a.Value.Any()
	}
	for _, a := range h.bound {
		take(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		take(a)
		return true
	})

	// Full queue drops the record rather than stalling the caller.
	select {
	case h.queue <- doc:
	default:
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.bound = append(append([]slog.Attr{}, h.bound...), attrs...)
	return &clone
}

func (h *MongoHandler) WithGroup(string) slog.Handler { return h }

// ship drains the queue, writing whenever a batch fills or the ticker fires.
func (h *MongoHandler) ship() {
	tick := time.NewTicker(shipFlushEvery)
	defer tick.Stop()

	pending := make([]interface{}, 0, shipBatchMax)
	write := func() {
		if len(pending) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = h.col.InsertMany(ctx, pending)
		cancel()
		pending = pending[:0]
	}

	for {
		select {
		case doc := <-h.queue:
			pending = append(pending, doc)
			if len(pending) >= shipBatchMax {
				write()
			}
		case <-tick.C:
			write()
		case <-h.done:
			for len(h.queue) > 0 {
				pending = append(pending, <-h.queue)
			}
			write()
			return
		}
	}
}

// Close flushes queued records and disconnects. Idempotent.
func (h *MongoHandler) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = h.client.Disconnect(ctx)
}

// MultiHandler duplicates each record across several handlers, so one logger
// can write both the console and Mongo.
type MultiHandler struct {
	targets []slog.Handler
}

func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{targets: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.targets {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.targets {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.targets))
	for i, h := range m.targets {
		out[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{targets: out}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.targets))
	for i, h := range m.targets {
		out[i] = h.WithGroup(name)
	}
	return &MultiHandler{targets: out}
}
