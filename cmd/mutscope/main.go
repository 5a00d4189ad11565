// Copyright 2016-2020, Pulumi Corporation.
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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbovo/mutscope/pkg/util/logging"
	"github.com/mbovo/mutscope/pkg/workspace"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose      int
	logToStderr  bool
	color        bool
	settingsPath string
}

// settings resolves the effective settings for a command: an explicit --settings file, else the nearest
// mutscope.yaml above the working directory, else the defaults. Flags the user set explicitly win.
func (o *globalOptions) settings(cmd *cobra.Command) (*workspace.Settings, error) {
	var s *workspace.Settings
	var err error
	if o.settingsPath != "" {
		s, err = workspace.LoadSettings(o.settingsPath)
	} else {
		var cwd string
		if cwd, err = os.Getwd(); err == nil {
			s, err = workspace.DetectSettings(cwd)
		}
	}
	if err != nil {
		return nil, err
	}
	if s.Path != "" {
		logging.V(5).Infof("using settings from %s", s.Path)
	}

	if cmd.Flags().Changed("color") {
		s.Color = o.color
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func newMutscopeCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "mutscope",
		Short: "Evaluate and inspect scoped binding scripts",
		Long: "Evaluate and inspect scoped binding scripts\n" +
			"\n" +
			"A binding script declares immutable (let) and mutable (var) names in nested scopes.\n" +
			"Names are unique across all live scopes, and only mutable names may be updated with set.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitLogging(opts.logToStderr, opts.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Flush()
		},
	}

	cmd.PersistentFlags().IntVarP(&opts.verbose, "verbose", "v", 0,
		"Enable verbose logging (e.g., v=3); anything >3 is very verbose")
	cmd.PersistentFlags().BoolVar(&opts.logToStderr, "logtostderr", false,
		"Log to stderr instead of to files")
	cmd.PersistentFlags().BoolVar(&opts.color, "color", false,
		"Colorize diagnostics")
	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "",
		"Path to a settings file; defaults to the nearest "+workspace.SettingsFile)

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newGenCmd(opts))
	cmd.AddCommand(newReplCmd(opts))

	return cmd
}

func main() {
	if err := newMutscopeCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logging.Errorf("%v", err)
		logging.Flush()
		os.Exit(1)
	}
}
