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

package debug

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/viper"
)

// HandlerFunc returns an http.HandlerFunc that renders the settings of v
// for debugging purposes.
//
// By default, this writes the config in viper's "debug" format (what you get
// if you call viper.Debug()). With ?format=json the settings are written as
// a JSON object.
//
// Example requests:
//   - GET /debug/config
//   - GET /debug/config?format=json
func HandlerFunc(v *viper.Viper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := strings.ToLower(r.URL.Query().Get("format"))
		switch format {
		case "":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			v.DebugTo(w)
		case "json":
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(v.AllSettings()); err != nil {
				http.Error(w, fmt.Sprintf("failed to render config: %v", err), http.StatusInternalServerError)
			}
		default:
			http.Error(w, fmt.Sprintf("unsupported config format %s", format), http.StatusBadRequest)
		}
	}
}
