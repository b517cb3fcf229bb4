package serialmux

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// MockSerialPort implements SerialPorter for testing and for running
// the daemon without scanner hardware attached.
type MockSerialPort struct {
	io.Reader
	io.WriteCloser
}

// NewMockSerialMux creates a SerialMux instance backed by a mock serial
// port that emits the given lines on a loop, one every interval.
func NewMockSerialMux(lines []string, interval time.Duration) *SerialMux[*MockSerialPort] {
	r, w := io.Pipe()

	mockPort := &MockSerialPort{
		Reader:      r,
		WriteCloser: w,
	}

	// generate data periodically to simulate serial port input
	go func() {
		defer w.Close()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		i := 0
		for range ticker.C {
			if len(lines) == 0 {
				continue
			}
			if _, err := io.WriteString(w, lines[i%len(lines)]+"\n"); err != nil {
				return
			}
			i++
		}
	}()

	return NewSerialMux(mockPort)
}

// TestableSerialPort implements SerialPorter with configurable
// behaviour for testing. It provides fine-grained control over reads,
// writes, errors, and latency.
type TestableSerialPort struct {
	mu sync.Mutex

	// ReadBuffer holds data to be returned by Read calls
	ReadBuffer *bytes.Buffer

	// WriteBuffer captures data written to the port
	WriteBuffer *bytes.Buffer

	// ReadLatency adds a delay to each Read call
	ReadLatency time.Duration

	// WriteLatency adds a delay to each Write call
	WriteLatency time.Duration

	// ReadError is returned by the next Read call if set
	ReadError error

	// WriteError is returned by the next Write call if set
	WriteError error

	// CloseError is returned by Close if set
	CloseError error

	// ShortWrite forces Write to report one byte fewer than requested
	ShortWrite bool

	closed bool
}

// NewTestableSerialPort returns a TestableSerialPort with empty buffers.
func NewTestableSerialPort() *TestableSerialPort {
	return &TestableSerialPort{
		ReadBuffer:  &bytes.Buffer{},
		WriteBuffer: &bytes.Buffer{},
	}
}

func (p *TestableSerialPort) Read(b []byte) (int, error) {
	if p.ReadLatency > 0 {
		time.Sleep(p.ReadLatency)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ReadError != nil {
		err := p.ReadError
		p.ReadError = nil
		return 0, err
	}
	if p.closed {
		return 0, io.EOF
	}
	return p.ReadBuffer.Read(b)
}

func (p *TestableSerialPort) Write(b []byte) (int, error) {
	if p.WriteLatency > 0 {
		time.Sleep(p.WriteLatency)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.WriteError != nil {
		err := p.WriteError
		p.WriteError = nil
		return 0, err
	}
	n, err := p.WriteBuffer.Write(b)
	if err != nil {
		return n, err
	}
	if p.ShortWrite && n > 0 {
		return n - 1, nil
	}
	return n, nil
}

func (p *TestableSerialPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return p.CloseError
}

// Written returns everything written to the port so far.
func (p *TestableSerialPort) Written() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.WriteBuffer.String()
}
