package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"backend-trailbook/internal/db"
	"backend-trailbook/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Postgres keeps every collection in a single JSONB table keyed by
// (collection, owner_id, id). Only the four RecordStore primitives touch it.
type Postgres struct {
	db db.Querier
}

func NewPostgres(q db.Querier) *Postgres {
	return &Postgres{db: q}
}

// EnsureSchema creates the documents table if it does not exist yet.
func EnsureSchema(ctx context.Context, q db.Querier) error {
	_, err := q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			owner_id   TEXT NOT NULL,
			id         TEXT NOT NULL,
			doc        JSONB NOT NULL,
			PRIMARY KEY (collection, owner_id, id)
		)
	`)
	return err
}

func (p *Postgres) Get(ctx context.Context, collection, ownerID, id string) (Document, error) {
	row := p.db.QueryRow(ctx, `
		SELECT doc FROM documents
		WHERE collection=$1 AND owner_id=$2 AND id=$3
	`, collection, ownerID, id)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
		}
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (p *Postgres) Put(ctx context.Context, collection, ownerID, id string, doc Document) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	doc["id"] = id

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO documents (collection, owner_id, id, doc)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (collection, owner_id, id) DO UPDATE SET doc=EXCLUDED.doc
	`, collection, ownerID, id, raw)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) Update(ctx context.Context, collection, ownerID, id string, fields Document) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	tag, err := p.db.Exec(ctx, `
		UPDATE documents SET doc = doc || $4
		WHERE collection=$1 AND owner_id=$2 AND id=$3
	`, collection, ownerID, id, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, collection, ownerID, id string) error {
	tag, err := p.db.Exec(ctx, `
		DELETE FROM documents
		WHERE collection=$1 AND owner_id=$2 AND id=$3
	`, collection, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	return nil
}

func (p *Postgres) Scan(ctx context.Context, collection, ownerID string, filters ...Filter) ([]Document, error) {
	query := `SELECT doc FROM documents WHERE collection=$1 AND owner_id=$2`
	args := []any{collection, ownerID}
	for _, f := range filters {
		query += ` AND doc->>$` + strconv.Itoa(len(args)+1) + ` = $` + strconv.Itoa(len(args)+2)
		args = append(args, f.Field, filterText(f.Value))
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// filterText renders a filter value the way ->> renders JSON scalars.
func filterText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
