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

// Package cli holds the root command and the plumbing shared by the
// osmgeom subcommands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvFlags maps flags to the environment variables providing their
// defaults.
var EnvFlags = map[string]string{
	"cpu":        "OSMGEOM_CPU",
	"dsn":        "OSMGEOM_DSN",
	"log-level":  "LOG_LEVEL",
	"log-format": "LOG_FORMAT",
}

// RootCmd is the osmgeom command.  Subcommands add themselves to it.
var RootCmd = &cobra.Command{
	Use:           "osmgeom",
	Short:         "Reconstruct geometries from OpenStreetMap documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()

		envFile, err := flags.GetString("env-file")
		if err != nil {
			return err
		}

		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("unable to load %s: %w", envFile, err)
			}
		}

		if err := ApplyEnv(flags); err != nil {
			return err
		}

		level, _ := flags.GetString("log-level")
		format, _ := flags.GetString("log-format")

		logger, err := NewLogger(os.Stderr, level, format)
		if err != nil {
			return err
		}

		slog.SetDefault(logger)

		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("env-file", "", "load environment variables from this file")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
}

// ApplyEnv sets every flag of EnvFlags that was not given on the command
// line from its environment variable, when set.
func ApplyEnv(flags *pflag.FlagSet) error {
	for name, env := range EnvFlags {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}

		if v, ok := os.LookupEnv(env); ok {
			if err := flags.Set(name, v); err != nil {
				return fmt.Errorf("invalid %s: %w", env, err)
			}
		}
	}

	return nil
}

// NewLogger creates a logger writing to w at level, as text or json.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	return uint16(max(runtime.GOMAXPROCS(-1), 1))
}
