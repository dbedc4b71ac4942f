package bridge

import (
	"errors"
	"sync"
)

// fakeSerialPort is the transport stub the teacher's design note in
// spec §9 calls for: a SerialPort that records writes and can be
// scripted to answer reads, so the worker and the WLED bring-up
// machine can be tested without real hardware. Like a device, it
// answers only once something has been written to it: queued read data
// is withheld until the first successful Write.
type fakeSerialPort struct {
	mu sync.Mutex

	writes   [][]byte
	readData [][]byte
	speed    int
	closed   bool
	failNextWrite bool
}

func newFakeSerialPort() *fakeSerialPort {
	return &fakeSerialPort{}
}

func (f *fakeSerialPort) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNextWrite {
		f.failNextWrite = false
		return 0, errors.New("fake write failure")
	}

	var cp = append([]byte(nil), p...)
	f.writes = append(f.writes, cp)

	return len(p), nil
}

func (f *fakeSerialPort) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.readData) == 0 || len(f.writes) == 0 {
		return 0, nil
	}

	var next = f.readData[0]
	f.readData = f.readData[1:]

	var n = copy(p, next)

	return n, nil
}

func (f *fakeSerialPort) SetSpeed(baud int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.speed = baud

	return nil
}

func (f *fakeSerialPort) Flush() error {
	return nil
}

func (f *fakeSerialPort) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true

	return nil
}

func (f *fakeSerialPort) queueRead(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.readData = append(f.readData, data)
}

func (f *fakeSerialPort) lastWrite() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.writes) == 0 {
		return nil
	}

	return f.writes[len(f.writes)-1]
}

func (f *fakeSerialPort) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.writes)
}
