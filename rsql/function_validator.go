/*
 * Copyright 2024 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rsql

import (
	"fmt"
	"strings"
)

// UnknownFunctionError reports a call to an unregistered function.
type UnknownFunctionError struct {
	Names []string
}

func (e *UnknownFunctionError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("unknown function '%s'", e.Names[0])
	}
	return fmt.Sprintf("unknown functions '%s'", strings.Join(e.Names, "', '"))
}

// FunctionValidator checks function calls against a registry.
type FunctionValidator struct {
	exists func(name string) bool
}

// NewFunctionValidator uses exists to decide whether a function is registered.
func NewFunctionValidator(exists func(name string) bool) *FunctionValidator {
	return &FunctionValidator{exists: exists}
}

// Validate checks that every function call in e is registered.
func (fv *FunctionValidator) Validate(e Expression) error {
	var unknown []string
	seen := make(map[string]bool)
	for _, call := range FunctionCalls(e) {
		name := call.Name.String()
		if seen[name] {
			continue
		}
		seen[name] = true
		if !fv.exists(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return &UnknownFunctionError{Names: unknown}
	}
	return nil
}

// FunctionCalls lists the function calls in e in pre-order.
func FunctionCalls(e Expression) []*FunctionCall {
	var calls []*FunctionCall
	Walk(e, func(n Expression) bool {
		if call, ok := n.(*FunctionCall); ok {
			calls = append(calls, call)
		}
		return true
	})
	return calls
}
