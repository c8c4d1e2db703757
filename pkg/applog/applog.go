// Package applog points the standard logger at a rotating file in debug
// mode and discards log output otherwise. Both shells own the terminal or
// window, so nothing is ever logged to stdout or stderr.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultDir  = "logs"
	DefaultName = "fluidsim.log"

	MaxSize = 10 * 1024 * 1024
)

// Setup configures the standard logger. With debug unset it returns a nil
// file and discards all output. Otherwise it opens dir/name for appending,
// first rotating it aside if it has grown past MaxSize. The caller closes
// the returned file.
func Setup(debug bool, dir, name string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxSize {
		ext := filepath.Ext(name)
		rotated := filepath.Join(dir, fmt.Sprintf("%s-%s%s",
			strings.TrimSuffix(name, ext), time.Now().Format("20060102-150405"), ext))
		if err := os.Rename(path, rotated); err != nil {
			log.SetOutput(io.Discard)
			return nil, fmt.Errorf("rotating log file: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("logging to %s", path)
	return file, nil
}
