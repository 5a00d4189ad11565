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

package mutability

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind enumerates the ways a table operation can fail.
type ErrorKind int

const (
	// VariableNotFound means no binding of the name is live.
	VariableNotFound ErrorKind = iota
	// VariableAlreadyExists means the name is already live in some frame.
	VariableAlreadyExists
	// CannotMutateImmutable means the binding is live but immutable.
	CannotMutateImmutable
)

func (k ErrorKind) String() string {
	switch k {
	case VariableNotFound:
		return "VariableNotFound"
	case VariableAlreadyExists:
		return "VariableAlreadyExists"
	case CannotMutateImmutable:
		return "CannotMutateImmutable"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by every failing Table operation. A failed operation never modifies the table.
type Error struct {
	Kind ErrorKind
	// Name is the binding name the operation was called with.
	Name string
}

func (e *Error) Error() string {
	switch e.Kind {
	case VariableNotFound:
		return "Variable not found: " + e.Name
	case VariableAlreadyExists:
		return "Variable already exists: " + e.Name
	case CannotMutateImmutable:
		return "Cannot mutate immutable variable: " + e.Name
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Name)
	}
}

func notFound(name string) error {
	return &Error{Kind: VariableNotFound, Name: name}
}

func alreadyExists(name string) error {
	return &Error{Kind: VariableAlreadyExists, Name: name}
}

func cannotMutate(name string) error {
	return &Error{Kind: CannotMutateImmutable, Name: name}
}

// AsError returns the *Error at the root of err's cause chain, if any.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	e, ok := errors.Cause(err).(*Error)
	return e, ok
}

func isKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}

// IsVariableNotFound returns true if err was caused by an operation on a name that is not live.
func IsVariableNotFound(err error) bool {
	return isKind(err, VariableNotFound)
}

// IsVariableAlreadyExists returns true if err was caused by redeclaring a live name.
func IsVariableAlreadyExists(err error) bool {
	return isKind(err, VariableAlreadyExists)
}

// IsCannotMutateImmutable returns true if err was caused by updating an immutable binding.
func IsCannotMutateImmutable(err error) bool {
	return isKind(err, CannotMutateImmutable)
}
