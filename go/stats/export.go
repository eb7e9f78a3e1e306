/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package stats is a wrapper for expvar. It additionally
// exports new types that can be used to track performance.
// It also provides a callback hook that allows a program
// to export the variables using methods other than /debug/vars.
// All variables support a String function that
// is expected to return a JSON representation
// of the variable.
// Any function named Add will add the specified
// number to the variable.
// Any function named Counts returns a map of counts
// that can be used by Rates to track rates over time.
package stats

import (
	"expvar"
	"sync"

	"vitess.io/charconv/go/log"
)

// Variable is the minimal interface which each type in this "stats" package
// must implement.
// When integrating the stats types ("variables") with the different
// monitoring systems, you can rely on this interface.
type Variable interface {
	// Help returns the description of the variable.
	Help() string

	// String must implement String() from the expvar.Var interface.
	String() string
}

var (
	varsMu       sync.Mutex
	newVarHooks  []NewVarHook
	publishedVar = map[string]expvar.Var{}
)

// NewVarHook is the type of a hook to export variables in a different way
type NewVarHook func(name string, v expvar.Var)

// Register allows you to register a callback function
// that will be called whenever a new stats variable gets
// created. This can be used to build alternate methods
// of exporting stats variables. Variables published before
// the call are replayed to the hook.
func Register(nvh NewVarHook) {
	varsMu.Lock()
	defer varsMu.Unlock()
	newVarHooks = append(newVarHooks, nvh)
	for name, v := range publishedVar {
		nvh(name, v)
	}
}

// Publish is expvar.Publish+hook
func Publish(name string, v expvar.Var) {
	publish(name, v)
}

func publish(name string, v expvar.Var) {
	varsMu.Lock()
	defer varsMu.Unlock()

	if _, ok := publishedVar[name]; ok {
		log.Warningf("stats: variable %q already published, ignoring", name)
		return
	}
	expvar.Publish(name, v)
	publishedVar[name] = v
	for _, hook := range newVarHooks {
		hook(name, v)
	}
}
