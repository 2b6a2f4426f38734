// Package tracer writes a Chrome trace file recording where an
// interrogation run spent its time. The output loads directly into
// chrome://tracing.
//
// It implements the JSON Array Format defined here:
// https://docs.google.com/document/d/1CvAClvFfyA5R-PhYUmn5OOQtYMH4h6I0nSsKchNAySU/preview
package tracer

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/clchiou/interrogator/ui/logger"
)

type Thread uint64

const (
	MainThread     = Thread(iota)
	MaxInitThreads = Thread(iota)
)

type Tracer interface {
	Begin(name string, thread Thread)
	End(thread Thread)
	Complete(name string, thread Thread, begin, end uint64)

	SetOutput(filename string)
	Close()

	NewThread(name string) Thread
}

type tracerImpl struct {
	lock sync.Mutex
	log  logger.Logger

	buf  bytes.Buffer
	file *os.File

	firstEvent bool
	nextTid    uint64
}

var _ Tracer = &tracerImpl{}

type viewerEvent struct {
	Name  string      `json:"name,omitempty"`
	Phase string      `json:"ph"`
	Scope string      `json:"s,omitempty"`
	Time  uint64      `json:"ts"`
	Dur   uint64      `json:"dur,omitempty"`
	Pid   uint64      `json:"pid"`
	Tid   uint64      `json:"tid"`
	ID    uint64      `json:"id,omitempty"`
	Arg   interface{} `json:"args,omitempty"`
}

type viewerThread struct {
	Name string `json:"name"`
}

// New creates a Tracer that buffers events in memory until SetOutput
// names the trace file.
func New(log logger.Logger) *tracerImpl {
	return &tracerImpl{
		log: log,

		firstEvent: true,
		nextTid:    uint64(MaxInitThreads),
	}
}

func (t *tracerImpl) writeEvent(event *viewerEvent) {
	t.lock.Lock()
	defer t.lock.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		t.log.Verbosef("Failed to marshal event: %v", err)
		return
	}

	if t.firstEvent {
		t.write([]byte("[\n"))
		t.firstEvent = false
	} else {
		t.write([]byte(",\n"))
	}
	t.write(data)
}

func (t *tracerImpl) write(b []byte) {
	if t.file != nil {
		t.file.Write(b)
	} else {
		t.buf.Write(b)
	}
}

// SetOutput creates the trace file, rotating older copies out of the
// way, and flushes all buffered events to it.
func (t *tracerImpl) SetOutput(filename string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	f, err := logger.CreateFileWithRotation(filename, 5)
	if err != nil {
		t.log.Println("Failed to create trace file:", err)
		return
	}
	t.file = f

	if t.buf.Len() > 0 {
		t.file.Write(t.buf.Bytes())
		t.buf.Reset()
	}
}

// Close finishes the JSON array and closes the trace file. It may be
// called more than once; only the first call writes anything.
func (t *tracerImpl) Close() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.file == nil {
		return
	}
	if !t.firstEvent {
		t.file.Write([]byte("\n]\n"))
	}
	t.file.Close()
	t.file = nil
}

// Begin starts a new Duration Event on the thread.
func (t *tracerImpl) Begin(name string, thread Thread) {
	t.writeEvent(&viewerEvent{
		Name:  name,
		Phase: "B",
		Time:  uint64(time.Now().UnixNano()) / 1000,
		Pid:   0,
		Tid:   uint64(thread),
	})
}

// End finishes the most recent Duration Event on the thread.
func (t *tracerImpl) End(thread Thread) {
	t.writeEvent(&viewerEvent{
		Phase: "E",
		Time:  uint64(time.Now().UnixNano()) / 1000,
		Pid:   0,
		Tid:   uint64(thread),
	})
}

// Complete writes a Duration Event with the given begin and end
// timestamps in nanoseconds.
func (t *tracerImpl) Complete(name string, thread Thread, begin, end uint64) {
	t.writeEvent(&viewerEvent{
		Name:  name,
		Phase: "X",
		Time:  begin / 1000,
		Dur:   (end - begin) / 1000,
		Pid:   0,
		Tid:   uint64(thread),
	})
}

// NewThread returns a new Thread, and writes the metadata event
// naming it in the trace viewer.
func (t *tracerImpl) NewThread(name string) Thread {
	t.lock.Lock()
	ret := Thread(t.nextTid)
	t.nextTid += 1
	t.lock.Unlock()

	t.writeEvent(&viewerEvent{
		Name:  "thread_name",
		Phase: "M",
		Pid:   0,
		Tid:   uint64(ret),
		Arg: &viewerThread{
			Name: name,
		},
	})
	return ret
}
