package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore keeps each record as one JSONB document in a shared
// documents table. Partial updates use JSONB concatenation, which gives
// the same top-level last-write-wins merge as the memory store. Change
// events for Subscribe are published in-process after each successful
// write; a single server instance therefore sees its own writes live.
type PostgresStore struct {
	db  *sql.DB
	hub *hub
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{db: db, hub: newHub()}, nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}

func (p *PostgresStore) CreateRecord(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc
	`, collection, id, raw)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	p.hub.publish(Event{Collection: collection, ID: id, Doc: raw})
	return nil
}

func (p *PostgresStore) UpdateRecord(ctx context.Context, collection, id string, partial map[string]any) error {
	patch, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("failed to encode partial: %w", err)
	}

	var raw json.RawMessage
	err = p.db.QueryRowContext(ctx, `
		UPDATE documents
		SET doc = doc || $3::jsonb
		WHERE collection = $1 AND id = $2
		RETURNING doc
	`, collection, id, patch).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	p.hub.publish(Event{Collection: collection, ID: id, Doc: raw})
	return nil
}

func (p *PostgresStore) DeleteRecord(ctx context.Context, collection, id string) error {
	res, err := p.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	p.hub.publish(Event{Collection: collection, ID: id, Deleted: true})
	return nil
}

func (p *PostgresStore) GetRecord(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := p.db.QueryRowContext(ctx, `
		SELECT doc FROM documents
		WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return raw, nil
}

func (p *PostgresStore) QueryRecords(ctx context.Context, collection string, filter Filter) ([]json.RawMessage, error) {
	query := `SELECT doc FROM documents WHERE collection = $1`
	args := []any{collection}
	if len(filter) > 0 {
		patch, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		query += ` AND doc @> $2::jsonb`
		args = append(args, patch)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var raw json.RawMessage
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		out = append(out, raw)
	}
	return out, rows.Err()
}

func (p *PostgresStore) Subscribe(collection string, filter Filter, fn func(Event)) Unsubscribe {
	unsub := p.hub.add(&subscriber{collection: collection, filter: filter, fn: fn})

	snapshot, err := p.QueryRecords(context.Background(), collection, filter)
	if err == nil {
		for _, raw := range snapshot {
			var doc struct {
				ID string `json:"id"`
			}
			_ = json.Unmarshal(raw, &doc)
			fn(Event{Collection: collection, ID: doc.ID, Doc: raw, Snapshot: true})
		}
	}
	return unsub
}

func (p *PostgresStore) SubscribeRecord(collection, id string, fn func(Event)) Unsubscribe {
	unsub := p.hub.add(&subscriber{collection: collection, id: id, fn: fn})

	if raw, err := p.GetRecord(context.Background(), collection, id); err == nil {
		fn(Event{Collection: collection, ID: id, Doc: raw, Snapshot: true})
	}
	return unsub
}
