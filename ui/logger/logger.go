// Package logger implements a logging package designed for command
// line utilities. It uses the standard 'log' package and function
// signatures, and is safe for concurrent use.
//
// Print statements are written to both stderr and a rotated log file.
// Verbose statements are only written to stderr when verbose mode is
// enabled, but are always written to the log file.
//
// Fatal does not os.Exit immediately. It panics with a private type
// so that deferred functions still run, then a deferred Cleanup in
// main converts the panic into an exit. This is what lets scratch
// directories be removed even on fatal paths.
package logger

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sync"
)

type Logger interface {
	// Print to both stderr and the file log.
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})

	// Fatal is equivalent to Print, then a panic that a deferred
	// Cleanup will convert to os.Exit(1).
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
	Fatalln(v ...interface{})

	// Panic is equivalent to Print followed by a call to panic.
	Panic(v ...interface{})
	Panicf(format string, v ...interface{})
	Panicln(v ...interface{})

	// Verbose goes to the file log always, and stderr only when
	// verbose mode is enabled.
	Verbose(v ...interface{})
	Verbosef(format string, v ...interface{})
	Verboseln(v ...interface{})

	// Output writes a string directly to the logs.
	Output(calldepth int, str string) error
}

// fatalLog is the private type passed to panic by Fatal so that
// Cleanup and Recover can tell expected exits from real panics.
type fatalLog error

const stdCalldepth = 2

type stdLogger struct {
	stderr  *log.Logger
	verbose bool

	fileLogger *log.Logger
	mutex      sync.Mutex
	file       *os.File
}

var _ Logger = &stdLogger{}

func fileFlags() int {
	return log.Ldate | log.Lmicroseconds | log.Llongfile
}

func New(out io.Writer) *stdLogger {
	return &stdLogger{
		stderr:     log.New(out, "", log.Ltime),
		fileLogger: log.New(ioutil.Discard, "", fileFlags()),
	}
}

// SetVerbose controls whether Verbose statements are written to
// stderr as well as the file log.
func (s *stdLogger) SetVerbose(v bool) {
	s.verbose = v
}

// SetOutput creates the file at path, rotating older copies out of
// the way, and starts writing the file log there.
func (s *stdLogger) SetOutput(path string) {
	if f, err := CreateFileWithRotation(path, 5); err == nil {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		if s.file != nil {
			s.file.Close()
		}
		s.file = f
		s.fileLogger.SetOutput(f)
	} else {
		s.Fatalf("Failed to create log file: %v", err)
	}
}

// Close disables the file log.
func (s *stdLogger) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.file != nil {
		s.file.Close()
		s.file = nil
		s.fileLogger.SetOutput(ioutil.Discard)
	}
}

// Cleanup should be deferred in main. It closes the file log, and
// converts a panic raised by Fatal into os.Exit(1). It must be the
// first defer so that it runs last, after every other deferred
// cleanup has had its chance.
func (s *stdLogger) Cleanup() {
	fatal := false
	p := recover()

	if _, ok := p.(fatalLog); ok {
		fatal = true
		p = nil
	} else if p != nil {
		s.Println(p)
	}

	s.Close()

	if p != nil {
		panic(p)
	} else if fatal {
		os.Exit(1)
	}
}

// Recover can be deferred to handle a Fatal from the same goroutine
// as a normal error. Other panics propagate.
func Recover(fn func(err error)) {
	p := recover()

	if p == nil {
		return
	} else if log, ok := p.(fatalLog); ok {
		fn(error(log))
	} else {
		panic(p)
	}
}

// Output writes to both stderr and the file log.
func (s *stdLogger) Output(calldepth int, str string) error {
	s.stderr.Output(calldepth+1, str)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.fileLogger.Output(calldepth+1, str)
}

// verboseOutput is like Output, but only writes to stderr when
// verbose mode is enabled.
func (s *stdLogger) verboseOutput(calldepth int, str string) error {
	if s.verbose {
		s.stderr.Output(calldepth+1, str)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.fileLogger.Output(calldepth+1, str)
}

func (s *stdLogger) Print(v ...interface{}) {
	s.Output(stdCalldepth, fmt.Sprint(v...))
}

func (s *stdLogger) Printf(format string, v ...interface{}) {
	s.Output(stdCalldepth, fmt.Sprintf(format, v...))
}

func (s *stdLogger) Println(v ...interface{}) {
	s.Output(stdCalldepth, fmt.Sprintln(v...))
}

func (s *stdLogger) Verbose(v ...interface{}) {
	s.verboseOutput(stdCalldepth, fmt.Sprint(v...))
}

func (s *stdLogger) Verbosef(format string, v ...interface{}) {
	s.verboseOutput(stdCalldepth, fmt.Sprintf(format, v...))
}

func (s *stdLogger) Verboseln(v ...interface{}) {
	s.verboseOutput(stdCalldepth, fmt.Sprintln(v...))
}

func (s *stdLogger) Fatal(v ...interface{}) {
	output := fmt.Sprint(v...)
	s.Output(stdCalldepth, output)
	panic(fatalLog(errors.New(output)))
}

func (s *stdLogger) Fatalf(format string, v ...interface{}) {
	output := fmt.Sprintf(format, v...)
	s.Output(stdCalldepth, output)
	panic(fatalLog(errors.New(output)))
}

func (s *stdLogger) Fatalln(v ...interface{}) {
	output := fmt.Sprintln(v...)
	s.Output(stdCalldepth, output)
	panic(fatalLog(errors.New(output)))
}

func (s *stdLogger) Panic(v ...interface{}) {
	output := fmt.Sprint(v...)
	s.Output(stdCalldepth, output)
	panic(output)
}

func (s *stdLogger) Panicf(format string, v ...interface{}) {
	output := fmt.Sprintf(format, v...)
	s.Output(stdCalldepth, output)
	panic(output)
}

func (s *stdLogger) Panicln(v ...interface{}) {
	output := fmt.Sprintln(v...)
	s.Output(stdCalldepth, output)
	panic(output)
}

// CreateFileWithRotation returns a new file for logging, after
// renaming any existing file at that path to path.1, path.1 to
// path.2, and so on up to maxCount.
func CreateFileWithRotation(path string, maxCount int) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return nil, err
	}

	if _, err := os.Lstat(path); err == nil {
		for i := maxCount - 1; i >= 1; i-- {
			os.Rename(rotatedName(path, i), rotatedName(path, i+1))
		}
		if err := os.Rename(path, rotatedName(path, 1)); err != nil {
			return nil, err
		}
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
}

func rotatedName(path string, index int) string {
	return fmt.Sprintf("%s.%d", path, index)
}
