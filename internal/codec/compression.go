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

// Package codec wraps readers and writers with the compression named by a
// file's extension.
package codec

//go:generate stringer -type=Compression

import (
	"path/filepath"
	"strings"
)

// Compression is an enumeration of the supported stream compressions.
type Compression int

const (
	RAW Compression = iota
	GZIP
	BZIP2
	ZLIB
	LZMA
	XZ
	LZ4
	ZSTD
)

var extensions = map[string]Compression{
	".gz":   GZIP,
	".bz2":  BZIP2,
	".zz":   ZLIB,
	".lzma": LZMA,
	".xz":   XZ,
	".lz4":  LZ4,
	".zst":  ZSTD,
}

// FromName returns the compression named by the extension of name and name
// with that extension removed.  Names without a known extension are RAW.
func FromName(name string) (Compression, string) {
	ext := strings.ToLower(filepath.Ext(name))

	if c, ok := extensions[ext]; ok {
		return c, strings.TrimSuffix(name, name[len(name)-len(ext):])
	}

	return RAW, name
}
