/*
 * Copyright 2026 The gqlview Authors
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

package x

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Access log files rotate past this many megabytes, and rotated copies are
// kept for this many days.
var (
	AccessLogMaxSizeMB  int64 = 100
	AccessLogMaxAgeDays       = 10
)

// InitLogger builds the structured access logger.  An empty path, "stderr"
// or "stdout" logs to that stream; any other path is a rotating log file.
func InitLogger(path string) (*Logger, error) {
	var ws zapcore.WriteSyncer
	switch path {
	case "", "stderr", "stdout":
		if path == "" {
			path = "stderr"
		}
		var err error
		if ws, _, err = zap.Open(path); err != nil {
			return nil, errors.Wrapf(err, "opening access log %s", path)
		}
	default:
		w := &LogWriter{
			FilePath: path,
			MaxSize:  AccessLogMaxSizeMB,
			MaxAge:   AccessLogMaxAgeDays,
			Compress: true,
		}
		if err := w.open(); err != nil {
			return nil, errors.Wrapf(err, "opening access log %s", path)
		}
		ws = zapcore.AddSync(w)
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		ws, zap.DebugLevel)

	return &Logger{
		logger: zap.New(core),
	}, nil
}

// NewLogger wraps an existing zap logger, mostly so tests can observe entries.
func NewLogger(l *zap.Logger) *Logger {
	return &Logger{logger: l}
}

// Logger writes access entries. A nil *Logger is valid and logs nothing.
type Logger struct {
	logger *zap.Logger
}

// AccessI logs msg at info level with args as alternating key/value pairs.
func (l *Logger) AccessI(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	l.logger.Info(msg, fields(args)...)
}

// AccessE is AccessI at error level.
func (l *Logger) AccessE(msg string, args ...interface{}) {
	if l == nil {
		return
	}
	l.logger.Error(msg, fields(args)...)
}

func fields(args []interface{}) []zap.Field {
	flds := make([]zap.Field, 0, len(args)/2)
	for i := 0; i+1 < len(args); i = i + 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		flds = append(flds, zap.Any(key, args[i+1]))
	}
	return flds
}

func (l *Logger) Sync() {
	if l == nil {
		return
	}
	_ = l.logger.Sync()
}
