// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package emit

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/twpayne/go-geom/encoding/ewkb"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/geometry"
)

// DefaultSRID is the spatial reference of emitted rows.
const DefaultSRID = 4326

// OpenDB connects to the PostgreSQL database named by dsn.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("unable to reach database: %w", err)
	}

	return db, nil
}

// PostGIS inserts one row per feature into a table.
type PostGIS struct {
	db    *sql.DB
	table string
	srid  int
}

var _ osmgeom.Emitter = (*PostGIS)(nil)

// NewPostGIS returns an emitter inserting into table of db.  Rows carry
// DefaultSRID unless srid is positive.
func NewPostGIS(db *sql.DB, table string, srid int) *PostGIS {
	if srid <= 0 {
		srid = DefaultSRID
	}

	return &PostGIS{db: db, table: table, srid: srid}
}

func (p *PostGIS) createSQL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	kind     text NOT NULL,
	id       text NOT NULL,
	name     text,
	type     text,
	category text,
	tags     jsonb,
	geom     geometry,
	PRIMARY KEY (kind, id)
)`, pq.QuoteIdentifier(p.table))
}

func (p *PostGIS) insertSQL() string {
	return fmt.Sprintf(`INSERT INTO %s (kind, id, name, type, category, tags, geom)
VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_GeomFromEWKB($7), $8))
ON CONFLICT (kind, id) DO NOTHING`, pq.QuoteIdentifier(p.table))
}

// CreateTable creates the table unless it exists.
func (p *PostGIS) CreateTable(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, p.createSQL()); err != nil {
		return fmt.Errorf("unable to create table %s: %w", p.table, err)
	}

	return nil
}

// Emit inserts f.  A feature whose kind and id are already in the table is
// ignored, so the first of several documents sharing an entity wins.
func (p *PostGIS) Emit(ctx context.Context, f osmgeom.Feature) error {
	args, err := p.row(f)
	if err != nil {
		return err
	}

	if _, err = p.db.ExecContext(ctx, p.insertSQL(), args...); err != nil {
		return fmt.Errorf("unable to insert %s %s: %w", f.Kind, f.ID, err)
	}

	return nil
}

func (p *PostGIS) row(f osmgeom.Feature) ([]any, error) {
	g, err := geometry.ToGeom(f.Geometry)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", f.Kind, f.ID, err)
	}

	b, err := ewkb.Marshal(g, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", f.Kind, f.ID, err)
	}

	tags, err := json.Marshal(f.Tags)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", f.Kind, f.ID, err)
	}

	return []any{
		f.Kind.String(),
		string(f.ID),
		nullString(f.Name),
		nullString(f.Type),
		nullString(string(f.Category)),
		string(tags),
		b,
		p.srid,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
