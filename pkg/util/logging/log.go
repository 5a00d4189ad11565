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

// Package logging is a thin wrapper over glog. Verbosity levels follow a rough convention: 5 for per-file
// progress, 7 for per-statement evaluation, and 9 for scope bookkeeping.
package logging

import (
	"flag"
	"strconv"
	"sync"

	"github.com/golang/glog"

	"github.com/mbovo/mutscope/pkg/util/contract"
)

// Verbose is returned by V and guards a log statement on the current verbosity.
type Verbose glog.Verbose

var configureOnce sync.Once

// V reports whether verbosity at the call site is at least the requested level.
func V(level glog.Level) Verbose {
	return Verbose(glog.V(level))
}

// Info logs at the info level if v is enabled.
func (v Verbose) Info(args ...interface{}) {
	glog.Verbose(v).Info(args...)
}

// Infoln logs at the info level if v is enabled.
func (v Verbose) Infoln(args ...interface{}) {
	glog.Verbose(v).Infoln(args...)
}

// Infof logs at the info level if v is enabled.
func (v Verbose) Infof(format string, args ...interface{}) {
	glog.Verbose(v).Infof(format, args...)
}

// Warningf logs at the warning level.
func Warningf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}

// Errorf logs at the error level.
func Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

// Flush writes any buffered log entries.
func Flush() {
	glog.Flush()
}

// InitLogging configures glog from the CLI's own flags. glog registers its flags on the standard flag set, so
// this pokes them directly rather than requiring callers to pass glog flags through.
func InitLogging(logToStderr bool, verbose int) {
	configureOnce.Do(func() {
		// glog complains loudly if the standard flag set was never parsed.
		if !flag.Parsed() {
			contract.IgnoreError(flag.CommandLine.Parse([]string{}))
		}
	})

	if logToStderr {
		contract.AssertNoError(flag.Lookup("logtostderr").Value.Set("true"))
	}
	if verbose > 0 {
		contract.AssertNoError(flag.Lookup("v").Value.Set(strconv.Itoa(verbose)))
	}
}
