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

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"vitess.io/charconv/go/charconv"
	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/charconv/detect"
	"vitess.io/charconv/go/charconv/encoding"
	"vitess.io/charconv/go/log"
	"vitess.io/charconv/go/vterrors"
)

// EncodingInfo describes one entry of GET /encodings.
type EncodingInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Family      string   `json:"family"`
	UnitSize    int      `json:"unit_size"`
	MaxRuneSize int      `json:"max_rune_size"`
	Variable    bool     `json:"variable"`
	Endian      string   `json:"endian,omitempty"`
}

// DetectResponse is the body of a POST /detect reply.
type DetectResponse struct {
	Encoding  string `json:"encoding"`
	BOMLength int    `json:"bom_length"`
}

// ValidateResponse is the body of a POST /validate reply.
type ValidateResponse struct {
	Encoding   string `json:"encoding"`
	Valid      bool   `json:"valid"`
	CodePoints int    `json:"code_points"`
	ValidBytes int    `json:"valid_bytes"`
	Size       int    `json:"size"`
}

// ErrorResponse is returned with every non 2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	State string `json:"state,omitempty"`
	// Offset is set for conversion failures under the THROW policy.
	Offset *int `json:"offset,omitempty"`
}

// convert handles POST /convert?from=&to=&policy=&strip_bom=. The body is
// converted and returned as is. An empty or "auto" source encoding is
// detected from the body.
func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	q := r.URL.Query()
	to, err := lookup(q.Get("to"), "to")
	if err != nil {
		s.fail(w, err)
		return
	}
	policy := s.opts.DefaultPolicy
	if name := q.Get("policy"); name != "" {
		if policy, err = codec.ParsePolicy(name); err != nil {
			s.fail(w, err)
			return
		}
	}
	from, bomLength, err := source(q.Get("from"), body)
	if err != nil {
		s.fail(w, err)
		return
	}
	if q.Has("strip_bom") {
		strip, err := strconv.ParseBool(q.Get("strip_bom"))
		if err != nil {
			s.fail(w, vterrors.Errorf(vterrors.InvalidArgument, "invalid strip_bom %q", q.Get("strip_bom")))
			return
		}
		if strip {
			body = body[bomLength:]
		}
	}

	labels := []string{from.String(), to.String()}
	conversionBytesIn.Add(labels, int64(len(body)))
	out, err := charconv.Convert(nil, to, body, from, policy)
	if err != nil {
		s.fail(w, err)
		return
	}
	conversionBytesOut.Add(labels, int64(len(out)))
	conversions.Add(1)

	h := w.Header()
	h.Set("Content-Type", "application/octet-stream")
	h.Set("X-Charconv-From", from.String())
	h.Set("X-Charconv-To", to.String())
	w.Write(out)
}

// detect handles POST /detect.
func (s *Server) detect(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	res := detect.Detect(body)
	detections.Add(res.Encoding.String(), 1)
	writeJSON(w, http.StatusOK, DetectResponse{Encoding: res.Encoding.String(), BOMLength: res.BOMLength})
}

// validate handles POST /validate?encoding=.
func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	enc, err := lookup(r.URL.Query().Get("encoding"), "encoding")
	if err != nil {
		s.fail(w, err)
		return
	}
	valid, err := charconv.Validate(body, enc)
	if err != nil {
		s.fail(w, err)
		return
	}
	dec, err := codec.NewDecoder(enc, codec.Throw)
	if err != nil {
		s.fail(w, err)
		return
	}
	codepoints, validBytes := dec.CountValid(body)
	writeJSON(w, http.StatusOK, ValidateResponse{
		Encoding:   enc.String(),
		Valid:      valid,
		CodePoints: codepoints,
		ValidBytes: validBytes,
		Size:       len(body),
	})
}

// encodings handles GET /encodings.
func (s *Server) encodings(w http.ResponseWriter, r *http.Request) {
	all := encoding.All()
	infos := make([]EncodingInfo, 0, len(all))
	for _, enc := range all {
		info := enc.Info()
		infos = append(infos, EncodingInfo{
			Name:        info.Name,
			Aliases:     info.Aliases,
			Family:      info.Family.String(),
			UnitSize:    info.UnitSize,
			MaxRuneSize: info.MaxRuneSize,
			Variable:    info.Variable,
			Endian:      info.Endian.String(),
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, vterrors.Errorf(vterrors.ResourceExhausted, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, vterrors.Wrap(err, "reading request body")
	}
	return body, nil
}

func lookup(name, param string) (encoding.Encoding, error) {
	if name == "" {
		return encoding.Unknown, vterrors.Errorf(vterrors.InvalidArgument, "missing %s encoding", param)
	}
	return encoding.Lookup(name)
}

// source resolves the source encoding and the length of the byte order
// mark at the start of body.
func source(name string, body []byte) (encoding.Encoding, int, error) {
	if name == "" || strings.EqualFold(name, "auto") {
		res := detect.Detect(body)
		detections.Add(res.Encoding.String(), 1)
		if res.Encoding == encoding.Unknown {
			return encoding.Unknown, 0, vterrors.NewErrorf(vterrors.InvalidArgument, vterrors.UnknownEncodingName,
				"cannot detect the source encoding, set from explicitly")
		}
		return res.Encoding, res.BOMLength, nil
	}
	enc, err := encoding.Lookup(name)
	if err != nil {
		return encoding.Unknown, 0, err
	}
	if bom := detect.BOM(enc); len(bom) > 0 && bytes.HasPrefix(body, bom) {
		return enc, len(bom), nil
	}
	return enc, 0, nil
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := vterrors.ErrCode(err)
	state := vterrors.ErrState(err)
	conversionErrors.Add(state.String(), 1)
	log.WarnS("request failed", "code", code.String(), "state", state.String(), "error", err)

	resp := ErrorResponse{Error: err.Error(), Code: code.String()}
	if state != vterrors.Undefined {
		resp.State = state.String()
	}
	var convErr *codec.ConversionError
	if errors.As(err, &convErr) {
		resp.Offset = &convErr.Offset
	}
	writeJSON(w, httpStatus(code), resp)
}

func httpStatus(code vterrors.Code) int {
	switch code {
	case vterrors.InvalidArgument:
		return http.StatusBadRequest
	case vterrors.FailedPrecondition:
		return http.StatusPreconditionFailed
	case vterrors.ResourceExhausted:
		return http.StatusRequestEntityTooLarge
	case vterrors.Unimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warningf("writing response: %v", err)
	}
}
