package store

import (
	"context"
	"encoding/json"
)

// Document is a schemaless record as persisted. Feature packages convert
// between documents and their typed models with Encode/Decode.
type Document map[string]any

// Filter is an equality match on a top-level document field.
type Filter struct {
	Field string
	Value any
}

// SharedScope owns records that two users reference symmetrically (friend
// requests, hike invitations) and the global user directory. Everything else
// lives under the owning user's id.
const SharedScope = "shared"

// Collection names.
const (
	Hikes          = "hikes"
	PlannedHikes   = "planned_hikes"
	FriendRequests = "friend_requests"
	Invitations    = "invitations"
	Profiles       = "profiles"
	RefreshTokens  = "refresh_tokens"
)

// RecordStore is the storage contract the engine runs on: per-owner document
// collections with get/put/update by id and field-filtered scans. No
// transactions, no joins. Concurrent writers interleave at these calls.
type RecordStore interface {
	Get(ctx context.Context, collection, ownerID, id string) (Document, error)
	Put(ctx context.Context, collection, ownerID, id string, doc Document) (string, error)
	Update(ctx context.Context, collection, ownerID, id string, fields Document) error
	Delete(ctx context.Context, collection, ownerID, id string) error
	Scan(ctx context.Context, collection, ownerID string, filters ...Filter) ([]Document, error)
}

// Encode converts a typed model into a document via its JSON tags.
func Encode(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Decode fills a typed model from a document via its JSON tags.
func Decode(doc Document, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
