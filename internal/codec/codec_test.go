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

package codec

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromName(t *testing.T) {
	test_cases := []struct {
		name        string
		compression Compression
		rest        string
	}{
		{"planet.osm", RAW, "planet.osm"},
		{"planet.osm.gz", GZIP, "planet.osm"},
		{"planet.OSM.BZ2", BZIP2, "planet.OSM"},
		{"out.geojson.zst", ZSTD, "out.geojson"},
		{"a.osm.xz", XZ, "a.osm"},
		{"a.osm.lzma", LZMA, "a.osm"},
		{"a.osm.lz4", LZ4, "a.osm"},
		{"-", RAW, "-"},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rest := FromName(tc.name)
			assert.Equal(t, tc.compression, c)
			assert.Equal(t, tc.rest, rest)
		})
	}
}

func TestWriterReader(t *testing.T) {
	text := strings.Repeat("<node id=\"1\" lat=\"0\" lon=\"0\"/>\n", 100)

	for _, c := range []Compression{RAW, GZIP, ZLIB, LZMA, XZ, LZ4, ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer

			w, err := NewWriter(&buf, c)
			require.NoError(t, err)

			_, err = io.WriteString(w, text)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := NewReader(&buf, c)
			require.NoError(t, err)

			defer r.Close()

			b, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, text, string(b))
		})
	}
}

func TestUnknownCompression(t *testing.T) {
	_, err := NewWriter(io.Discard, BZIP2)
	assert.ErrorIs(t, err, ErrUnknownCompressionType)

	_, err = NewReader(strings.NewReader(""), Compression(42))
	assert.ErrorIs(t, err, ErrUnknownCompressionType)
}

func TestCorruptInput(t *testing.T) {
	_, err := NewReader(strings.NewReader("not gzip"), GZIP)
	assert.Error(t, err)
}
