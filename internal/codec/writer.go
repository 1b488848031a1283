// Copyright 2017-25 the original author or authors.
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
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

type nopCloserWriter struct {
	io.Writer
}

func (nopCloserWriter) Close() error {
	return nil
}

// NewWriter returns a writer compressing to w with c.  Close must be called
// to flush the compressed stream; it does not close w.  BZIP2 has no writer.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	var (
		wc  io.WriteCloser
		err error
	)

	switch c {
	case RAW:
		wc = nopCloserWriter{w}
	case GZIP:
		wc = gzip.NewWriter(w)
	case ZLIB:
		wc = zlib.NewWriter(w)
	case LZMA:
		wc, err = lzma.NewWriter(w)
	case XZ:
		wc, err = xz.NewWriter(w)
	case LZ4:
		wc = lz4.NewWriter(w)
	case ZSTD:
		wc, err = zstd.NewWriter(w)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompressionType, c)
	}

	if err != nil {
		return nil, fmt.Errorf("%s writer error: %w", c, err)
	}

	return wc, nil
}
