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

package extract

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/cmd/osmgeom/cli"
	"m4o.io/osmgeom/internal/codec"
)

const campus = "../../../testdata/campus.osm"

func testConfig(t *testing.T, format, name string) config {
	t.Helper()

	return config{
		format:     format,
		out:        filepath.Join(t.TempDir(), name),
		taggedOnly: true,
		validate:   true,
		Options: cli.Options{
			CPU:    1,
			Engine: []osmgeom.EngineOption{osmgeom.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))},
		},
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer f.Close()

	c, _ := codec.FromName(path)
	r, err := codec.NewReader(f, c)
	require.NoError(t, err)

	var lines []string

	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, s.Text())
	}

	require.NoError(t, s.Err())

	return lines
}

func TestRunExtract_GeoJSON(t *testing.T) {
	c := testConfig(t, formatGeoJSON, "campus.geojson.zst")
	c.classify = []string{"amenity", "building", "highway"}

	require.NoError(t, runExtract(context.Background(), []string{campus}, c))

	lines := readLines(t, c.out)

	// bench, five paths, three composites
	require.Len(t, lines, 9)

	var ids []string

	categories := map[string]string{}

	for _, l := range lines {
		var f struct {
			ID         string
			Properties map[string]any
		}

		require.NoError(t, json.Unmarshal([]byte(l), &f))
		ids = append(ids, f.ID)

		if cat, ok := f.Properties["category"].(string); ok {
			categories[f.ID] = cat
		}
	}

	assert.Equal(t, []string{
		"POINT/13",
		"PATH/100", "PATH/101", "PATH/102", "PATH/103", "PATH/104",
		"COMPOSITE/1001", "COMPOSITE/1002", "COMPOSITE/1000",
	}, ids)
	assert.Equal(t, "amenity=bench", categories["POINT/13"])
	assert.Equal(t, "building=yes", categories["PATH/103"])
	assert.Equal(t, "amenity=university", categories["COMPOSITE/1001"])
}

func TestRunExtract_WKTNamedOnly(t *testing.T) {
	c := testConfig(t, formatWKT, "campus.wkt")
	c.namedOnly = true

	require.NoError(t, runExtract(context.Background(), []string{campus, campus}, c))

	lines := readLines(t, c.out)
	require.Len(t, lines, 10, "five named entities per document")

	var names []string
	for _, l := range lines[:5] {
		names = append(names, strings.Split(l, "\t")[2])
	}

	assert.Equal(t, []string{"Memorial Bench", "Library", "Campus Walk", "Grounds", "Campus"}, names)
	assert.True(t, strings.HasPrefix(strings.Split(lines[3], "\t")[4], "MULTIPOLYGON"))
}

func TestRunExtract_Errors(t *testing.T) {
	c := testConfig(t, formatPostGIS, "unused")
	assert.Error(t, runExtract(context.Background(), []string{campus}, c), "missing dsn")

	c = testConfig(t, formatGeoJSON, "out.geojson")
	assert.ErrorIs(t, runExtract(context.Background(), []string{"missing.osm"}, c), os.ErrNotExist)

	cut := filepath.Join(t.TempDir(), "cut.osm")
	require.NoError(t, os.WriteFile(cut, []byte(`<osm><node id="1" lat="0" lon="0"><tag k="name" v="x"/></node><way`), 0o600))

	c = testConfig(t, formatGeoJSON, "cut.geojson")
	err := runExtract(context.Background(), []string{cut}, c)
	assert.ErrorContains(t, err, "truncated input")
	assert.Len(t, readLines(t, c.out), 1, "what was read is still extracted")
}
