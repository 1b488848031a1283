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

package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/internal/feed"
)

const campus = "../../../testdata/campus.osm"

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	l, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "id", "7")
	assert.JSONEq(t, `{"level":"WARN","msg":"shown","id":"7"}`, dropTime(t, buf.Bytes()))

	_, err = NewLogger(io.Discard, "loud", "text")
	assert.Error(t, err)

	_, err = NewLogger(io.Discard, "info", "xml")
	assert.Error(t, err)
}

func dropTime(t *testing.T, b []byte) string {
	t.Helper()

	i := bytes.Index(b, []byte(`"level"`))
	require.Positive(t, i)

	return "{" + string(bytes.TrimSpace(b[i:]))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("OSMGEOM_CPU", "3")
	t.Setenv("LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Uint16("cpu", 1, "")
	flags.String("log-level", "info", "")
	flags.String("dsn", "", "")

	require.NoError(t, flags.Parse([]string{"--log-level", "error"}))
	require.NoError(t, ApplyEnv(flags))

	cpu, _ := flags.GetUint16("cpu")
	assert.Equal(t, uint16(3), cpu)

	level, _ := flags.GetString("log-level")
	assert.Equal(t, "error", level, "command line wins")

	dsn, _ := flags.GetString("dsn")
	assert.Empty(t, dsn)

	t.Setenv("OSMGEOM_CPU", "many")
	flags = pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Uint16("cpu", 1, "")
	assert.Error(t, ApplyEnv(flags))
}

func TestChoiceValue(t *testing.T) {
	var format string

	v := NewChoiceValue("geojson", &format, "format", "geojson", "wkt")
	assert.Equal(t, "geojson", v.String())
	assert.Equal(t, "format", v.Type())

	assert.NoError(t, v.Set("WKT"))
	assert.Equal(t, "wkt", format)

	assert.Error(t, v.Set("shp"))
	assert.Equal(t, "wkt", format)
}

func TestProcess(t *testing.T) {
	second := filepath.Join(t.TempDir(), "second.osm")

	raw, err := os.ReadFile(campus)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(second, raw, 0o600))

	quiet := osmgeom.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var paths []string
	err = Process(context.Background(), []string{campus, second, campus}, Options{CPU: 2, Engine: []osmgeom.EngineOption{quiet}}, func(d Document) error {
		paths = append(paths, d.Path)

		assert.NoError(t, d.Err)
		assert.Equal(t, 13, d.Engine.Stats().Points)
		assert.True(t, d.Engine.Closed())

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{campus, second, campus}, paths, "input order")

	err = Process(context.Background(), []string{"missing.osm"}, Options{}, func(Document) error {
		t.Fatal("not called")

		return nil
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProcess_Format(t *testing.T) {
	raw, err := os.ReadFile(campus)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "campus.data")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	none := func(Document) error {
		t.Fatal("not called")

		return nil
	}
	assert.ErrorIs(t, Process(context.Background(), []string{path}, Options{CPU: 1}, none), feed.ErrUnknownFormat)

	quiet := osmgeom.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var points int
	require.NoError(t, Process(context.Background(), []string{path}, Options{CPU: 1, Format: feed.XML, Engine: []osmgeom.EngineOption{quiet}}, func(d Document) error {
		points = d.Engine.Stats().Points

		return d.Err
	}))
	assert.Equal(t, 13, points)
}

func TestProcess_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.osm")
	require.NoError(t, os.WriteFile(path, []byte(`<osm><node id="1" lat="0" lon="0"/><way id="1"><nd`), 0o600))

	var docs []Document
	require.NoError(t, Process(context.Background(), []string{path}, Options{CPU: 1}, func(d Document) error {
		docs = append(docs, d)

		return nil
	}))

	require.Len(t, docs, 1)
	assert.Error(t, docs[0].Err)
	assert.Equal(t, 1, docs[0].Engine.Stats().Points)
}
