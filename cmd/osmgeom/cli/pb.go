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

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// progressBar is an instance of ReadCloser with an associated ProgressBar.
// Closing this instance closes the delegate as well as clearing the terminal
// line of progress output.
type progressBar struct {
	r   io.ReadCloser
	f   *os.File
	bar *pb.ProgressBar
	out io.Writer
}

// ProgressWrapper returns a function wrapping a file with a ProgressBar,
// written to out, that tracks the bytes read relative to the file size.
func ProgressWrapper(out io.Writer) func(f *os.File) (io.ReadCloser, error) {
	return func(f *os.File) (io.ReadCloser, error) {
		if f == os.Stdin {
			// don't bother wrapping stdin
			return os.Stdin, nil
		}

		fi, err := f.Stat()
		if err != nil {
			return nil, err
		}

		bar := pb.New64(fi.Size()).SetUnits(pb.U_BYTES_DEC).SetWidth(79).Prefix(filepath.Base(f.Name()) + " ")
		bar.Output = out
		bar.Start()

		return progressBar{
			r:   bar.NewProxyReader(f),
			f:   f,
			bar: bar,
			out: out,
		}, nil
	}
}

// Read implements io.Reader.Read by simple delegation.
func (pb progressBar) Read(p []byte) (int, error) {
	return pb.r.Read(p)
}

// Close implements io.Closer.Close by closing the file as well as clearing
// the terminal line of progress output.
func (pb progressBar) Close() error {
	// make sure newline is not printed by Finish()
	pb.bar.Output = nil
	pb.bar.NotPrint = true

	pb.bar.Finish()

	fmt.Fprintf(pb.out, "\033[2K\r") // clear status bar

	return pb.f.Close()
}
