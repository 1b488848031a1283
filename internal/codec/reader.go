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
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// ErrUnknownCompressionType is returned for a compression without a reader
// or writer.
var ErrUnknownCompressionType = errors.New("unknown compression type")

type nopCloserReader struct {
	io.Reader
}

func (nopCloserReader) Close() error {
	return nil
}

type zstdReader struct {
	*zstd.Decoder
}

func (r zstdReader) Close() error {
	r.Decoder.Close()

	return nil
}

// NewReader returns a reader uncompressing r with c.  Closing it does not
// close r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	var factory func(r io.Reader) (io.ReadCloser, error)

	switch c {
	case RAW:
		return nopCloserReader{r}, nil
	case GZIP:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		}
	case BZIP2:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return nopCloserReader{bzip2.NewReader(r)}, nil
		}
	case ZLIB:
		factory = zlib.NewReader
	case LZMA:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			lr, err := lzma.NewReader(r)

			return nopCloserReader{lr}, err
		}
	case XZ:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			xr, err := xz.NewReader(r)

			return nopCloserReader{xr}, err
		}
	case LZ4:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return nopCloserReader{lz4.NewReader(r)}, nil
		}
	case ZSTD:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}

			return zstdReader{d}, nil
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompressionType, c)
	}

	rdr, err := factory(r)
	if err != nil {
		return nil, fmt.Errorf("%s reader error: %w", c, err)
	}

	return rdr, nil
}
