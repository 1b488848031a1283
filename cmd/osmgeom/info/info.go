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

// Package info implements the info subcommand.
package info

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/cmd/osmgeom/cli"
	"m4o.io/osmgeom/internal/feed"
)

var out io.Writer = os.Stdout

var inputFormat string

// summary describes one reconstructed document.
type summary struct {
	Path string `json:"path"`
	osmgeom.Stats

	// Bound is [minX, minY, maxX, maxY] of every reconstructed geometry.
	Bound []float64 `json:"bound,omitempty"`
	Error string    `json:"error,omitempty"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.Uint16P("cpu", "c", cli.DefaultNCpu(), "number of CPUs to use for scanning")
	flags.Bool("progress", true, "show progress when reading a single file")
	flags.Var(cli.NewChoiceValue(cli.InputFormats[0], &inputFormat, "format", cli.InputFormats...),
		"input-format", "input format: auto, xml or pbf; auto detects it from the file name")
}

var infoCmd = &cobra.Command{
	Use:   "info [<OSM file>...]",
	Short: "Print reconstruction statistics of OSM files",
	Long:  "Reconstruct the geometries of OSM files and print how many entities were resolved",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			return err
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			return err
		}

		progress, err := flags.GetBool("progress")
		if err != nil {
			return err
		}

		format, err := feed.ParseFormat(inputFormat)
		if err != nil {
			return err
		}

		summaries, err := runInfo(cmd.Context(), args, cli.Options{
			CPU:      int(ncpu),
			Progress: progress && !jsonfmt,
			Format:   format,
		})
		if err != nil {
			return err
		}

		if jsonfmt {
			return renderJSON(summaries)
		}

		renderTxt(summaries)

		return nil
	},
}

func runInfo(ctx context.Context, paths []string, opts cli.Options) ([]summary, error) {
	var summaries []summary

	err := cli.Process(ctx, paths, opts, func(d cli.Document) error {
		s := summary{Path: d.Path, Stats: d.Engine.Stats()}

		if b := d.Engine.Bound(); !b.IsEmpty() {
			s.Bound = []float64{b.X.Lo, b.Y.Lo, b.X.Hi, b.Y.Hi}
		}

		if d.Err != nil {
			s.Error = d.Err.Error()
		}

		summaries = append(summaries, s)

		return nil
	})

	return summaries, err
}

func renderJSON(summaries []summary) error {
	b, err := json.Marshal(summaries)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, string(b))

	return nil
}

func renderTxt(summaries []summary) {
	var total osmgeom.Stats

	for i, s := range summaries {
		if i > 0 {
			fmt.Fprintln(out)
		}

		fmt.Fprintf(out, "Document: %s\n", s.Path)
		renderStats(s.Stats)

		if s.Bound != nil {
			fmt.Fprintf(out, "Bound: [%g, %g, %g, %g]\n", s.Bound[0], s.Bound[1], s.Bound[2], s.Bound[3])
		}

		if s.Error != "" {
			fmt.Fprintf(out, "Error: %s\n", s.Error)
		}

		total = total.Add(s.Stats)
	}

	if len(summaries) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Total:")
		renderStats(total)
	}
}

func renderStats(s osmgeom.Stats) {
	fmt.Fprintf(out, "Points: %s\n", humanize.Comma(int64(s.Points)))
	fmt.Fprintf(out, "Paths: %s\n", humanize.Comma(int64(s.Paths)))
	fmt.Fprintf(out, "SkippedPaths: %s\n", humanize.Comma(int64(s.SkippedPaths)))
	fmt.Fprintf(out, "Composites: %s\n", humanize.Comma(int64(s.Composites)))
	fmt.Fprintf(out, "Resolved: %s\n", humanize.Comma(int64(s.Resolved)))
	fmt.Fprintf(out, "Deferred: %s\n", humanize.Comma(int64(s.Deferred)))
	fmt.Fprintf(out, "ResolvedDeferred: %s\n", humanize.Comma(int64(s.ResolvedDeferred)))
	fmt.Fprintf(out, "Unresolved: %s\n", humanize.Comma(int64(s.Unresolved)))
	fmt.Fprintf(out, "Invalid: %s\n", humanize.Comma(int64(s.Invalid)))
}
