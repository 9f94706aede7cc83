package keybinding

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per-command metrics
	commandMetrics map[string]*CommandMetrics

	// Global counters
	totalEvents    uint64
	totalMatched   uint64
	totalUnmatched uint64
	totalErrors    uint64
	totalPanics    uint64
}

// CommandMetrics holds metrics for a specific command.
type CommandMetrics struct {
	CommandID     string
	InvokeCount   uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastDuration  time.Duration
	LastInvoke    time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commandMetrics: make(map[string]*CommandMetrics),
	}
}

// RecordEvent records a key event and whether a binding consumed it.
func (m *Metrics) RecordEvent(matched bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalEvents++
	if matched {
		m.totalMatched++
	} else {
		m.totalUnmatched++
	}
}

// RecordInvocation records a completed handler call.
func (m *Metrics) RecordInvocation(commandID string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cm := m.commandLocked(commandID)
	cm.InvokeCount++
	cm.TotalDuration += duration
	cm.LastDuration = duration
	cm.LastInvoke = time.Now()
	if duration > cm.MaxDuration {
		cm.MaxDuration = duration
	}

	if err != nil {
		m.totalErrors++
		cm.ErrorCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(commandID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++
	cm := m.commandLocked(commandID)
	cm.InvokeCount++
	cm.ErrorCount++
	cm.LastInvoke = time.Now()
}

func (m *Metrics) commandLocked(commandID string) *CommandMetrics {
	cm := m.commandMetrics[commandID]
	if cm == nil {
		cm = &CommandMetrics{CommandID: commandID}
		m.commandMetrics[commandID] = cm
	}
	return cm
}

// TotalEvents returns the number of key events seen.
func (m *Metrics) TotalEvents() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalEvents
}

// TotalMatched returns the number of key events consumed by a binding.
func (m *Metrics) TotalMatched() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalMatched
}

// TotalUnmatched returns the number of key events passed through.
func (m *Metrics) TotalUnmatched() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalUnmatched
}

// TotalErrors returns the number of handler errors.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the number of handler panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// Command returns a copy of the metrics for a command, or nil.
func (m *Metrics) Command(commandID string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commandMetrics[commandID]
	if cm == nil {
		return nil
	}
	c := *cm
	return &c
}

// TopCommands returns the most invoked commands, highest count first.
func (m *Metrics) TopCommands(n int) []CommandMetrics {
	m.mu.RLock()
	result := make([]CommandMetrics, 0, len(m.commandMetrics))
	for _, cm := range m.commandMetrics {
		result = append(result, *cm)
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].InvokeCount != result[j].InvokeCount {
			return result[i].InvokeCount > result[j].InvokeCount
		}
		return result[i].CommandID < result[j].CommandID
	})

	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// Reset clears all collected metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commandMetrics = make(map[string]*CommandMetrics)
	m.totalEvents = 0
	m.totalMatched = 0
	m.totalUnmatched = 0
	m.totalErrors = 0
	m.totalPanics = 0
}
