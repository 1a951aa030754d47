package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/valyala/fasttemplate"
)

// File permissions for created folders and log files.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

// RunTimestampFormat is the timestamp embedded in per-run file names.
const RunTimestampFormat = "20060102-150405"

// runFileTemplate renders per-run file names; {suffix} is empty unless an
// earlier run in the same second already took the name.
var runFileTemplate = fasttemplate.New("{filename}_{timestamp}{suffix}.log", "{", "}")

// maxRunFileAttempts bounds the collision suffixes tried for one timestamp.
const maxRunFileAttempts = 100

// Files lists the files opened by Setup.
type Files struct {
	// Log is the per-run plain-text file, <folder>/<filename>_<YYYYMMDD-HHMMSS>.log.
	Log string

	// JSONL is the cumulative JSON Lines file, <folder>/<filename>.jsonl.
	JSONL string
}

// fileSet owns the files opened by Setup and closes them once.
type fileSet struct {
	paths Files
	files []*os.File
	once  sync.Once
	err   error
}

func (s *fileSet) close() error {
	s.once.Do(func() {
		var errs []error
		for _, f := range s.files {
			if err := f.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		s.err = errors.Join(errs...)
	})
	return s.err
}

// Setup configures process-wide logging and returns the root logger:
//
//  1. zero options take their defaults and the options are validated,
//     including the level name (*ConfigurationError on failure),
//  2. the folder is created if missing (*FileSystemError on failure),
//  3. a new plain-text file <folder>/<filename>_<YYYYMMDD-HHMMSS>.log is
//     created for this run,
//  4. <folder>/<filename>.jsonl is opened for appending,
//  5. console, plain-text and JSONL handlers are attached, sharing one
//     threshold set to the requested level.
//
// Nothing is created and no handler is attached when validation fails.
// The returned logger becomes the root for Get and Default and slog's
// default logger. Setup is not guarded against repeated calls; a second call
// opens new files and replaces the root.
func Setup(opts Options) (*Logger, error) {
	RegisterLevels()

	opts = opts.withDefaults()
	level, mode, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.Folder, DirPerm); err != nil {
		return nil, &FileSystemError{Op: "mkdir", Path: opts.Folder, Err: err}
	}

	runFile, err := createRunFile(opts.Folder, opts.Filename, time.Now())
	if err != nil {
		return nil, err
	}

	jsonlPath := JSONLPath(opts.Folder, opts.Filename)
	jsonlFile, err := os.OpenFile(jsonlPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, FilePerm)
	if err != nil {
		runFile.Close()
		os.Remove(runFile.Name())
		return nil, &FileSystemError{Op: "open", Path: jsonlPath, Err: err}
	}

	threshold := new(slog.LevelVar)
	threshold.Set(level)

	handler := NewMultiHandler(
		NewConsoleHandler(opts.Console, &ConsoleHandlerOptions{
			Level:       threshold,
			ClassLength: opts.ClassLength,
			Color:       mode.Enabled(opts.Console),
		}),
		NewConsoleHandler(runFile, &ConsoleHandlerOptions{Level: threshold}),
		NewJSONHandler(jsonlFile, &JSONHandlerOptions{Level: threshold}),
	)

	l := &Logger{
		name:    RootName,
		handler: handler,
		level:   threshold,
		files: &fileSet{
			paths: Files{Log: runFile.Name(), JSONL: jsonlPath},
			files: []*os.File{runFile, jsonlFile},
		},
	}
	setRoot(l)
	return l, nil
}

// JSONLPath returns the cumulative JSON Lines path for folder and filename.
func JSONLPath(folder, filename string) string {
	return filepath.Join(folder, filename+".jsonl")
}

// RunFilePath returns the per-run file path for a timestamp. attempt > 0
// adds a "-<attempt>" suffix after the timestamp.
func RunFilePath(folder, filename, stamp string, attempt int) string {
	suffix := ""
	if attempt > 0 {
		suffix = "-" + strconv.Itoa(attempt)
	}
	name := runFileTemplate.ExecuteString(map[string]any{
		"filename":  filename,
		"timestamp": stamp,
		"suffix":    suffix,
	})
	return filepath.Join(folder, name)
}

// createRunFile creates a new per-run file, never reusing an existing one.
func createRunFile(folder, filename string, now time.Time) (*os.File, error) {
	stamp := now.Format(RunTimestampFormat)
	for attempt := range maxRunFileAttempts {
		path := RunFilePath(folder, filename, stamp, attempt)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, FilePerm)
		if err == nil {
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, &FileSystemError{Op: "create", Path: path, Err: err}
		}
	}
	return nil, &FileSystemError{
		Op:   "create",
		Path: RunFilePath(folder, filename, stamp, 0),
		Err:  fmt.Errorf("%d files already exist for timestamp %s", maxRunFileAttempts, stamp),
	}
}
