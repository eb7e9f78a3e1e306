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

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

var (
	logFormat string
	logLevel  string

	// structured is the logger behind InfoS and friends. While it is nil
	// those calls go to glog.
	structured atomic.Pointer[slog.Logger]
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var formats = map[string]func(io.Writer, *slog.HandlerOptions) slog.Handler{
	"json": func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewJSONHandler(w, opts)
	},
	"logfmt": func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewTextHandler(w, opts)
	},
	"pretty": func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return tint.NewHandler(w, &tint.Options{
			AddSource:  opts.AddSource,
			Level:      opts.Level,
			TimeFormat: time.StampMilli,
			NoColor:    !isTerminal(w),
		})
	},
}

// Init switches to structured logging on stderr when --log-fmt was given
// on the command line. Otherwise glog stays in charge.
func Init(fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	if f := fs.Lookup("log-fmt"); f == nil || !f.Changed {
		return nil
	}

	level, err := slogLevel(logLevel)
	if err != nil {
		return err
	}
	h, err := slogHandler(os.Stderr, logFormat, &slog.HandlerOptions{AddSource: true, Level: level})
	if err != nil {
		return err
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	structured.Store(logger)
	return nil
}

func slogLevel(name string) (slog.Level, error) {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("invalid log-level %q: expected debug, info, warn, or error", name)
}

// slogHandler builds the handler for a --log-fmt value. A nil opts is
// the same as the zero options.
func slogHandler(w io.Writer, format string, opts *slog.HandlerOptions) (slog.Handler, error) {
	newHandler, ok := formats[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("invalid log-fmt %q: expected json, logfmt or pretty", format)
	}
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return newHandler(w, opts), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// emit logs msg at level with the caller of the exported helper as the
// record source.
func emit(level slog.Level, msg string, args ...any) {
	const skip = 3 // runtime.Callers, emit, helper

	logger := structured.Load()
	if logger == nil {
		if level < slog.LevelInfo && !glog.V(1) {
			return
		}
		line := glogLine(msg, args)
		switch {
		case level >= slog.LevelError:
			glog.ErrorDepth(skip-1, line)
		case level >= slog.LevelWarn:
			glog.WarningDepth(skip-1, line)
		default:
			glog.InfoDepth(skip-1, line)
		}
		return
	}

	ctx := context.Background()
	if !logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = logger.Handler().Handle(ctx, r)
}

// glogLine renders a message and its attributes as "msg k=v k=v".
func glogLine(msg string, args []any) string {
	r := slog.NewRecord(time.Time{}, slog.LevelInfo, msg, 0)
	r.Add(args...)

	var b strings.Builder
	b.WriteString(msg)
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	return b.String()
}

// Enabled reports whether a call at level would be written. Without a
// structured logger, debug output follows glog's -v 1.
func Enabled(level slog.Level) bool {
	if logger := structured.Load(); logger != nil {
		return logger.Enabled(context.Background(), level)
	}
	return level >= slog.LevelInfo || bool(glog.V(1))
}

func DebugS(msg string, args ...any) { emit(slog.LevelDebug, msg, args...) }
func InfoS(msg string, args ...any) { emit(slog.LevelInfo, msg, args...) }
func WarnS(msg string, args ...any) { emit(slog.LevelWarn, msg, args...) }
func ErrorS(msg string, args ...any) { emit(slog.LevelError, msg, args...) }

// SetLogger routes structured calls to logger until the returned func is
// called. Tests use it to capture output.
func SetLogger(logger *slog.Logger) (restore func()) {
	if logger == nil {
		return func() {}
	}
	prev := structured.Swap(logger)
	return func() { structured.Store(prev) }
}
