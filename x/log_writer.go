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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const (
	backupTimeFormat = "2006-01-02T15-04-05.000"
)

var _ io.WriteCloser = (*LogWriter)(nil)

// LogWriter is a log file that rotates once it grows past MaxSize megabytes.
// Rotated files older than MaxAge days are removed, the rest are gzipped if
// Compress is set.
type LogWriter struct {
	FilePath string
	MaxSize  int64
	MaxAge   int // number of days
	Compress bool

	mu              sync.Mutex
	size            int64
	file            *os.File
	mch             chan bool
	startDirManager sync.Once
}

func (l *LogWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	if l.file == nil {
		l.manageLogDir()
		if err = l.open(); err != nil {
			return 0, errors.Wrap(err, "not able to create new file")
		}
	}

	if l.MaxSize > 0 && l.size+int64(len(p)) >= l.MaxSize*1024*1024 {
		if err = l.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := l.file.Write(p)
	l.size = l.size + int64(n)
	return n, err
}

// Sync flushes the current file to disk.
func (l *LogWriter) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	return l.file.Sync()
}

func (l *LogWriter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *LogWriter) open() error {
	if err := os.MkdirAll(filepath.Dir(l.FilePath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(l.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	l.file = f
	l.size = info.Size()
	return nil
}

func (l *LogWriter) rotate() error {
	// file not open
	if l.file == nil {
		return l.open()
	}

	if err := l.file.Close(); err != nil {
		return err
	}
	l.file = nil

	// move the existing file
	if err := os.Rename(l.FilePath, backupName(l.FilePath, time.Now())); err != nil {
		return errors.Wrap(err, "can't rename log file")
	}

	err := l.open()
	l.manageLogDir()
	return err
}

func backupName(name string, t time.Time) string {
	dir := filepath.Dir(name)
	prefix, ext := prefixAndExt(name)
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", prefix, t.Format(backupTimeFormat), ext))
}

func compress(src string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	gzf, err := os.OpenFile(src+".gz", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer gzf.Close()

	gz := gzip.NewWriter(gzf)
	if _, err := io.Copy(gz, f); err != nil {
		os.Remove(src + ".gz")
		return err
	}
	if err := gz.Close(); err != nil {
		os.Remove(src + ".gz")
		return err
	}
	// close the descriptors because we need to delete the file
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

func (l *LogWriter) manageLogDir() {
	l.startDirManager.Do(func() {
		l.mch = make(chan bool, 1)
		go func() {
			for range l.mch {
				l.manageOldLogs()
			}
		}()
	})

	select {
	case l.mch <- true:
	default:
	}
}

// this should be called in a serial order
func (l *LogWriter) manageOldLogs() {
	toRemove, toKeep, err := processOldLogFiles(l.FilePath, l.MaxAge, time.Now())
	if err != nil {
		glog.Warningf("error while managing old log files: %v", err)
		return
	}

	for _, f := range toRemove {
		errRemove := os.Remove(filepath.Join(filepath.Dir(l.FilePath), f))
		if err == nil && errRemove != nil {
			err = errRemove
		}
	}

	// if compression enabled do compress
	if l.Compress {
		for _, f := range toKeep {
			// already compressed no need
			if strings.HasSuffix(f, ".gz") {
				continue
			}
			fn := filepath.Join(filepath.Dir(l.FilePath), f)
			errCompress := compress(fn)
			if err == nil && errCompress != nil {
				err = errCompress
			}
		}
	}

	if err != nil {
		glog.Warningf("error while managing old log files: %v", err)
	}
}

func prefixAndExt(file string) (prefix, ext string) {
	filename := filepath.Base(file)
	ext = filepath.Ext(filename)
	prefix = filename[:len(filename)-len(ext)]
	return prefix, ext
}

// processOldLogFiles splits the rotated copies of fp into those past maxAge
// days and those to keep.  A maxAge of zero keeps everything.
func processOldLogFiles(fp string, maxAge int, now time.Time) ([]string, []string, error) {
	dir := filepath.Dir(fp)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't read log file directory")
	}

	defPrefix, defExt := prefixAndExt(fp)
	// check only for old files. Those files have - before the time
	defPrefix = defPrefix + "-"
	toRemove := make([]string, 0)
	toKeep := make([]string, 0)

	cutoff := now.Add(-time.Duration(maxAge) * 24 * time.Hour)

	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasPrefix(name, defPrefix) {
			continue
		}
		stamp := strings.TrimPrefix(name, defPrefix)
		switch {
		case strings.HasSuffix(stamp, defExt+".gz"):
			stamp = strings.TrimSuffix(stamp, defExt+".gz")
		case strings.HasSuffix(stamp, defExt):
			stamp = strings.TrimSuffix(stamp, defExt)
		default:
			continue
		}

		ts, err := time.Parse(backupTimeFormat, stamp)
		if err != nil {
			continue
		}
		if maxAge > 0 && ts.Before(cutoff) {
			toRemove = append(toRemove, name)
		} else {
			toKeep = append(toKeep, name)
		}
	}

	return toRemove, toKeep, nil
}
