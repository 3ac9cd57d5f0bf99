package tasks

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	MaxLogsPerTask = 1000
	DefaultTimeout = 2 * time.Minute
)

// Manager runs named tasks on an interval and on demand.
// Scheduled tasks stop when the context passed to NewManager is done.
type Manager struct {
	ctx   context.Context
	mu    sync.RWMutex
	tasks map[string]*RunnableTask
}

func NewManager(ctx context.Context) *Manager {
	return &Manager{
		ctx:   ctx,
		tasks: make(map[string]*RunnableTask),
	}
}

// Register adds a task. An interval <= 0 registers a task that only runs when triggered.
func (m *Manager) Register(name string, interval time.Duration, fn TaskFunc) *RunnableTask {
	task := &RunnableTask{
		Name:         name,
		Interval:     interval,
		Timeout:      DefaultTimeout,
		Handler:      fn,
		registeredAt: time.Now(),
		logs:         make([]LogEntry, 0),
	}

	m.mu.Lock()
	m.tasks[name] = task
	m.mu.Unlock()

	if interval > 0 {
		go m.scheduler(task)
	}
	return task
}

// Trigger starts the task in the background.
func (m *Manager) Trigger(name string) error {
	task, err := m.get(name)
	if err != nil {
		return err
	}
	go func() {
		_ = task.Run(m.ctx)
	}()
	return nil
}

// RunNow runs the task and waits for it to finish.
func (m *Manager) RunNow(ctx context.Context, name string) error {
	task, err := m.get(name)
	if err != nil {
		return err
	}
	return task.Run(ctx)
}

func (m *Manager) ListStatus() []TaskStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]TaskStatus, 0, len(m.tasks))
	for _, task := range m.tasks {
		list = append(list, task.Status())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func (m *Manager) GetLogs(name string) ([]LogEntry, error) {
	task, err := m.get(name)
	if err != nil {
		return nil, err
	}
	return task.Logs(), nil
}

func (m *Manager) get(name string) (*RunnableTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[name]
	if !ok {
		return nil, TaskNotFoundError{Name: name}
	}
	return task, nil
}

func (m *Manager) scheduler(task *RunnableTask) {
	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			_ = task.Run(m.ctx)
		}
	}
}
