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

// Package contract contains helpers for checking invariants that, when violated, indicate a bug in the calling code
// rather than bad input. Violations panic.
package contract

import (
	"fmt"
)

const (
	assertMsg  = "An assertion has failed"
	requireMsg = "A precondition has failed for %v"
	failMsg    = "A failure has occurred"
	ignoreMsg  = "An error was unexpectedly ignored"
)

// Assert checks a condition and fails fast if it is false.
func Assert(cond bool) {
	if !cond {
		failfast(assertMsg)
	}
}

// Assertf checks a condition and fails fast with the formatted message if it is false.
func Assertf(cond bool, msg string, args ...interface{}) {
	if !cond {
		failfast(fmt.Sprintf("%v: %v", assertMsg, fmt.Sprintf(msg, args...)))
	}
}

// Require checks a precondition on the named parameter.
func Require(cond bool, param string) {
	if !cond {
		failfast(fmt.Sprintf(requireMsg, param))
	}
}

// Requiref checks a precondition on the named parameter and fails fast with the formatted message if it is false.
func Requiref(cond bool, param string, msg string, args ...interface{}) {
	if !cond {
		failfast(fmt.Sprintf("%v: %v", fmt.Sprintf(requireMsg, param), fmt.Sprintf(msg, args...)))
	}
}

// Failf unconditionally fails fast with the formatted message.
func Failf(msg string, args ...interface{}) {
	failfast(fmt.Sprintf("%v: %v", failMsg, fmt.Sprintf(msg, args...)))
}

// IgnoreError explicitly discards an error. It exists so that ignored errors are greppable; a non-nil error is
// tolerated.
func IgnoreError(err error) {
	_ = err
}

// AssertNoError fails fast if err is non-nil.
func AssertNoError(err error) {
	if err != nil {
		failfast(fmt.Sprintf("%v: %v", ignoreMsg, err))
	}
}

func failfast(msg string) {
	panic(fmt.Sprintf("fatal: %v", msg))
}
