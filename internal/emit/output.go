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
	"errors"
	"io"
	"os"

	"m4o.io/osmgeom/internal/codec"
)

// Stdout is the path naming standard output.
const Stdout = "-"

type output struct {
	io.WriteCloser
	f *os.File
}

func (o output) Close() error {
	err := o.WriteCloser.Close()
	if o.f != os.Stdout {
		err = errors.Join(err, o.f.Close())
	}

	return err
}

// Create creates the file at path, or uses standard output for Stdout, and
// compresses what is written by the extension of path.  Closing the result
// flushes the compressor and closes the file.
func Create(path string) (io.WriteCloser, error) {
	if path == Stdout {
		return output{WriteCloser: nopCloser{os.Stdout}, f: os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	c, _ := codec.FromName(path)

	w, err := codec.NewWriter(f, c)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return output{WriteCloser: w, f: f}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
