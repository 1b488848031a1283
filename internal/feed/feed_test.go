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

package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/osm/osmxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/geometry"
	"m4o.io/osmgeom/internal/codec"
	"m4o.io/osmgeom/model"
)

const campus = "../../testdata/campus.osm"

type recorder struct {
	events []string
	ended  int
}

func (r *recorder) OnPoint(id model.ID, x, y float64, tags map[string]string) error {
	r.events = append(r.events, fmt.Sprintf("point %s %g %g %d", id, x, y, len(tags)))

	return nil
}

func (r *recorder) OnPath(id model.ID, pointIDs []model.ID, _ map[string]string) error {
	r.events = append(r.events, fmt.Sprintf("path %s %v", id, pointIDs))

	return nil
}

func (r *recorder) OnComposite(id model.ID, members []model.Member, _ map[string]string) error {
	r.events = append(r.events, fmt.Sprintf("composite %s %v", id, members))

	return nil
}

func (r *recorder) OnEndOfStream() {
	r.ended++
}

func TestRun(t *testing.T) {
	doc := `<osm version="0.6">
 <node id="1" lat="2" lon="1"><tag k="amenity" v="bench"/></node>
 <node id="2" lat="3" lon="4"/>
 <way id="1"><nd ref="1"/><nd ref="2"/></way>
 <relation id="1">
  <member type="way" ref="1" role="outer"/>
  <member type="node" ref="2" role=""/>
  <member type="relation" ref="7" role="subarea"/>
 </relation>
</osm>`

	var r recorder
	require.NoError(t, Run(context.Background(), osmxml.New(context.Background(), strings.NewReader(doc)), &r))

	assert.Equal(t, []string{
		"point 1 1 2 1",
		"point 2 4 3 0",
		"path 1 [1 2]",
		"composite 1 [{1 PATH outer} {2 POINT } {7 COMPOSITE subarea}]",
	}, r.events)
	assert.Equal(t, 1, r.ended)
}

func TestRun_Truncated(t *testing.T) {
	doc := `<osm version="0.6">
 <node id="1" lat="2" lon="1"/>
 <way id="1"><nd ref="1"/><nd`

	var r recorder
	err := Run(context.Background(), osmxml.New(context.Background(), strings.NewReader(doc)), &r)

	assert.Error(t, err)
	assert.Equal(t, []string{"point 1 1 2 0"}, r.events)
	assert.Equal(t, 1, r.ended, "deferred pass runs on truncated input")
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var r recorder
	err := Run(ctx, osmxml.New(context.Background(), strings.NewReader(`<osm><node id="1" lat="0" lon="0"/></osm>`)), &r)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, r.ended)
}

func TestFormatFromName(t *testing.T) {
	test_cases := []struct {
		name   string
		format Format
	}{
		{"a.osm", XML},
		{"a.xml", XML},
		{"a.osm.bz2", XML},
		{"a.osm.pbf", PBF},
		{"a.PBF", PBF},
		{"a.osm.pbf.zst", PBF},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := FormatFromName(tc.name)
			assert.NoError(t, err)
			assert.Equal(t, tc.format, f)
		})
	}

	_, err := FormatFromName("a.shp")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	test_cases := []struct {
		name   string
		format Format
	}{
		{"", UNKNOWN},
		{"auto", UNKNOWN},
		{"xml", XML},
		{"OSM", XML},
		{"pbf", PBF},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ParseFormat(tc.name)
			assert.NoError(t, err)
			assert.Equal(t, tc.format, f)
		})
	}

	_, err := ParseFormat("shp")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func engine() *osmgeom.Engine {
	return osmgeom.NewEngine(osmgeom.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func checkCampus(t *testing.T, e *osmgeom.Engine) {
	t.Helper()

	s := e.Stats()
	assert.Equal(t, 13, s.Points)
	assert.Equal(t, 5, s.Paths)
	assert.Equal(t, 1, s.SkippedPaths)
	assert.Equal(t, 3, s.Composites)
	assert.Equal(t, 2, s.Resolved)
	assert.Equal(t, 1, s.Deferred)
	assert.Equal(t, 1, s.ResolvedDeferred)
	assert.Zero(t, s.Unresolved)
	assert.Zero(t, s.Invalid)

	grounds, ok := e.Composite("1001")
	require.True(t, ok)

	m, ok := grounds.Geometry.(geometry.MultiArea)
	require.True(t, ok)
	assert.Len(t, m.Areas, 2)

	site, ok := e.Composite("1000")
	require.True(t, ok)
	assert.Equal(t, geometry.COLLECTION, site.Geometry.Shape())

	walk, ok := e.Composite("1002")
	require.True(t, ok)
	assert.Equal(t, geometry.MULTILINE, walk.Geometry.Shape())
}

func TestOpen(t *testing.T) {
	src, err := Open(context.Background(), campus)
	require.NoError(t, err)

	assert.Equal(t, XML, src.Format)
	assert.Equal(t, codec.RAW, src.Compression)

	e := engine()
	require.NoError(t, Run(context.Background(), src, e))
	require.NoError(t, src.Close())

	checkCampus(t, e)
}

func TestOpen_Compressed(t *testing.T) {
	raw, err := os.ReadFile(campus)
	require.NoError(t, err)

	for _, ext := range []string{".gz", ".zst", ".xz", ".lz4"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "campus.osm"+ext)

			f, err := os.Create(path)
			require.NoError(t, err)

			c, _ := codec.FromName(path)
			w, err := codec.NewWriter(f, c)
			require.NoError(t, err)

			_, err = w.Write(raw)
			require.NoError(t, err)
			require.NoError(t, w.Close())
			require.NoError(t, f.Close())

			wrapped := false
			src, err := Open(context.Background(), path, WithInputWrapper(func(f *os.File) (io.ReadCloser, error) {
				wrapped = true

				return f, nil
			}))
			require.NoError(t, err)

			defer src.Close()

			assert.True(t, wrapped)
			assert.Equal(t, c, src.Compression)

			e := engine()
			require.NoError(t, Run(context.Background(), src, e))
			checkCampus(t, e)
		})
	}
}

func TestOpen_Format(t *testing.T) {
	raw, err := os.ReadFile(campus)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "campus.data")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	_, err = Open(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	src, err := Open(context.Background(), path, WithFormat(XML))
	require.NoError(t, err)

	defer src.Close()

	assert.Equal(t, XML, src.Format)

	e := engine()
	require.NoError(t, Run(context.Background(), src, e))
	checkCampus(t, e)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), "campus.shp")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "missing.osm"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.osm.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o600))

	_, err = Open(context.Background(), path)
	assert.Error(t, err)
}
