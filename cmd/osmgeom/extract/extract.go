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

// Package extract implements the extract subcommand.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/cmd/osmgeom/cli"
	"m4o.io/osmgeom/internal/emit"
	"m4o.io/osmgeom/internal/feed"
)

const (
	formatGeoJSON = "geojson"
	formatWKT     = "wkt"
	formatPostGIS = "postgis"
)

type config struct {
	format      string
	inputFormat string
	out         string
	namedOnly   bool
	taggedOnly  bool
	classify    []string
	dsn         string
	table       string
	srid        int
	validate    bool
	cli.Options
}

var cfg config

func init() {
	cli.RootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()
	flags.VarP(cli.NewChoiceValue(formatGeoJSON, &cfg.format, "format", formatGeoJSON, formatWKT, formatPostGIS),
		"format", "f", "output format: geojson, wkt or postgis")
	flags.StringP("out", "o", emit.Stdout, "output file, compressed by its extension")
	flags.Bool("named-only", false, "only extract entities with a name tag")
	flags.Bool("tagged-only", true, "skip points without tags")
	flags.StringSlice("classify", nil, "tag keys categorizing entities, in priority order")
	flags.String("dsn", "", "PostgreSQL connection string for the postgis format")
	flags.String("table", "osm_features", "table receiving rows for the postgis format")
	flags.Int("srid", emit.DefaultSRID, "spatial reference of rows for the postgis format")
	flags.Bool("validate", true, "check reconstructed composites for validity")
	flags.Uint16P("cpu", "c", cli.DefaultNCpu(), "number of CPUs to use for scanning")
	flags.Bool("progress", true, "show progress when reading a single file")
	flags.Var(cli.NewChoiceValue(cli.InputFormats[0], &cfg.inputFormat, "format", cli.InputFormats...),
		"input-format", "input format: auto, xml or pbf; auto detects it from the file name")
}

var extractCmd = &cobra.Command{
	Use:   "extract [<OSM file>...]",
	Short: "Extract reconstructed geometries from OSM files",
	Long:  "Reconstruct the geometries of OSM files and write them as GeoJSON, WKT or PostGIS rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		c := cfg

		var err error

		c.out, _ = flags.GetString("out")
		c.namedOnly, _ = flags.GetBool("named-only")
		c.taggedOnly, _ = flags.GetBool("tagged-only")
		c.dsn, _ = flags.GetString("dsn")
		c.table, _ = flags.GetString("table")
		c.validate, _ = flags.GetBool("validate")

		if c.classify, err = flags.GetStringSlice("classify"); err != nil {
			return err
		}

		if c.srid, err = flags.GetInt("srid"); err != nil {
			return err
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			return err
		}

		c.CPU = int(ncpu)

		if c.Format, err = feed.ParseFormat(c.inputFormat); err != nil {
			return err
		}

		c.Progress, _ = flags.GetBool("progress")
		c.Progress = c.Progress && c.out != emit.Stdout

		return runExtract(cmd.Context(), args, c)
	},
}

// sink is an emitter that must be finished once every feature is written.
type sink struct {
	osmgeom.Emitter
	finish func() error
}

func openSink(ctx context.Context, c config) (*sink, error) {
	if c.format == formatPostGIS {
		if c.dsn == "" {
			return nil, errors.New("postgis format needs --dsn")
		}

		db, err := emit.OpenDB(ctx, c.dsn)
		if err != nil {
			return nil, err
		}

		p := emit.NewPostGIS(db, c.table, c.srid)
		if err := p.CreateTable(ctx); err != nil {
			_ = db.Close()

			return nil, err
		}

		return &sink{Emitter: p, finish: db.Close}, nil
	}

	w, err := emit.Create(c.out)
	if err != nil {
		return nil, err
	}

	var (
		em    osmgeom.Emitter
		flush func() error
	)

	switch c.format {
	case formatWKT:
		e := emit.NewWKT(w)
		em, flush = e, e.Flush
	default:
		e := emit.NewGeoJSON(w)
		em, flush = e, e.Flush
	}

	return &sink{Emitter: em, finish: closeAfter(flush, w)}, nil
}

func closeAfter(flush func() error, c io.Closer) func() error {
	return func() error {
		return errors.Join(flush(), c.Close())
	}
}

func runExtract(ctx context.Context, paths []string, c config) (err error) {
	s, err := openSink(ctx, c)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, s.finish())
	}()

	emitOpts := []osmgeom.EmitOption{}
	if c.namedOnly {
		emitOpts = append(emitOpts, osmgeom.WithNamedOnly())
	}

	if c.taggedOnly {
		emitOpts = append(emitOpts, osmgeom.WithTaggedOnly())
	}

	if len(c.classify) > 0 {
		emitOpts = append(emitOpts, osmgeom.WithClassifier(osmgeom.KeyClassifier(c.classify...)))
	}

	c.Engine = append(c.Engine, osmgeom.WithValidation(c.validate))

	var truncated []string

	err = cli.Process(ctx, paths, c.Options, func(d cli.Document) error {
		if d.Err != nil {
			truncated = append(truncated, d.Path)
		}

		if err := d.Engine.Emit(ctx, s, emitOpts...); err != nil {
			return fmt.Errorf("%s: %w", d.Path, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if len(truncated) > 0 {
		return fmt.Errorf("truncated input: %v", truncated)
	}

	return nil
}
