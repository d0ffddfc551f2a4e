package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title       TEXT NOT NULL,
	slug        TEXT NOT NULL,
	description TEXT NOT NULL,
	overview    TEXT NOT NULL,
	image       TEXT NOT NULL,
	venue       TEXT NOT NULL,
	location    TEXT NOT NULL,
	event_date  TEXT NOT NULL,
	event_time  TEXT NOT NULL,
	mode        TEXT NOT NULL CHECK (mode IN ('online', 'offline', 'hybrid')),
	audience    TEXT NOT NULL,
	agenda      TEXT[] NOT NULL,
	organizer   TEXT NOT NULL,
	tags        TEXT[] NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL,
	CONSTRAINT events_slug_key UNIQUE (slug)
);
CREATE INDEX IF NOT EXISTS events_created_at_idx ON events (created_at DESC);
CREATE INDEX IF NOT EXISTS events_tags_idx ON events USING GIN (tags);

CREATE TABLE IF NOT EXISTS bookings (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	event_id   UUID NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	email      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT uniq_event_email UNIQUE (event_id, email)
);
CREATE INDEX IF NOT EXISTS bookings_event_id_created_at_idx ON bookings (event_id, created_at DESC);
CREATE INDEX IF NOT EXISTS bookings_email_idx ON bookings (email);
`

// EnsureSchema creates the events and bookings tables and their indexes if missing.
func EnsureSchema(ctx context.Context, p DatabaseProvider) error {
	db, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
