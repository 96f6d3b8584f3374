// Copyright 2020 Nathan Taylor (nbtaylor@gmail.com)
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package rwmonitor implements the per-node reader/writer coordinator that
// backs a concurrent tree: many readers may hold a node at once, a writer
// holds it alone, and threads that cannot be admitted immediately queue and
// are woken by an explicit hand-off rather than racing each other on wakeup.
//
// ## Overview
//
// Every node in the tree owns exactly one Monitor. A thread that only wants
// to observe a node (list its children, or walk through it on the way to a
// descendant) takes it in read mode; a thread that wants to mutate a node's
// children (create, remove, or move a child in or out) takes it in write
// mode. Unlike a plain sync.RWMutex, a Monitor reserves the next admission
// explicitly when it releases: end_write hands the lock to a whole batch of
// waiting readers, or to exactly one waiting writer, and end_read prefers a
// waiting writer once the last reader drains. A thread woken as part of a
// hand-off does not re-check the admission predicate — it consumes the slot
// the releaser reserved for it. This is what prevents the lost-wakeup and
// starvation failure modes that a naive "wait, then recheck" monitor admits.
package rwmonitor

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Monitor is a per-node reader/writer coordinator with explicit hand-off.
// The zero value is not usable; construct one with New.
type Monitor struct {
	mu sync.Mutex

	readCond  *sync.Cond
	writeCond *sync.Cond

	readCount int
	writeCount int
	readWait  int
	writeWait int

	wokeWrite bool
	wokeRead  int

	// label is attached to debug trace lines only; it has no effect on
	// locking behavior. It is empty unless SetLabel is called.
	label string
}

// New returns a ready-to-use Monitor.
func New() *Monitor {
	m := &Monitor{}
	m.readCond = sync.NewCond(&m.mu)
	m.writeCond = sync.NewCond(&m.mu)
	return m
}

// SetLabel attaches a human-readable name (typically a path) used only in
// debug-level trace logging.
func (m *Monitor) SetLabel(label string) {
	m.mu.Lock()
	m.label = label
	m.mu.Unlock()
}

// BeginRead blocks the calling goroutine until it is admitted as a reader.
func (m *Monitor) BeginRead() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.writeWait > 0 || m.writeCount > 0 {
		m.readWait++
		log.WithField("node", m.label).Debug("rwmonitor: reader waiting")
		m.readCond.Wait()
		m.readWait--
		if m.wokeRead > 0 {
			m.wokeRead--
			break
		}
	}
	m.readCount++
}

// EndRead releases a previously acquired read hold. When the last reader
// drains, a waiting writer is preferred over waiting readers, unless a
// reader hand-off is already in flight.
func (m *Monitor) EndRead() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount--

	switch {
	case m.readCount == 0 && m.writeCount == 0 && m.writeWait > 0 && m.wokeRead == 0:
		m.wokeWrite = true
		log.WithField("node", m.label).Debug("rwmonitor: handing off to writer")
		m.writeCond.Signal()
	case m.writeCount == 0 && m.readCount == 0 && m.readWait > 0:
		m.wokeRead = m.readWait
		log.WithField("node", m.label).Debug("rwmonitor: handing off to readers")
		m.readCond.Broadcast()
	}
}

// BeginWrite blocks the calling goroutine until it is admitted as the sole
// writer.
func (m *Monitor) BeginWrite() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.writeCount > 0 || m.readCount > 0 || m.writeWait > 0 || m.readWait > 0 {
		m.writeWait++
		log.WithField("node", m.label).Debug("rwmonitor: writer waiting")
		m.writeCond.Wait()
		m.writeWait--
		if m.wokeWrite {
			m.wokeWrite = false
			break
		}
	}
	m.writeCount++
}

// EndWrite releases a previously acquired write hold. Waiting readers are
// preferred (woken as a batch); only if none wait is a single writer
// signalled.
func (m *Monitor) EndWrite() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount--

	switch {
	case m.readWait > 0:
		m.wokeRead = m.readWait
		log.WithField("node", m.label).Debug("rwmonitor: handing off to readers")
		m.readCond.Broadcast()
	case m.writeWait > 0:
		m.wokeWrite = true
		log.WithField("node", m.label).Debug("rwmonitor: handing off to writer")
		m.writeCond.Signal()
	}
}
