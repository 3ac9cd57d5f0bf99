package tasks

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/darmiel/advisor/internal/logging"
)

var _ logging.InternalLogger = (*taskLogger)(nil)

// taskLogger appends to the log buffer of a task.
type taskLogger struct {
	task *RunnableTask
}

func (t taskLogger) Info(format string, args ...any) {
	t.task.appendLog("info", fmt.Sprintf(format, args...))
}

func (t taskLogger) Warn(format string, args ...any) {
	t.task.appendLog("warn", fmt.Sprintf(format, args...))
}

func (t taskLogger) Error(format string, args ...any) {
	t.task.appendLog("error", fmt.Sprintf(format, args...))
}

// newCompositeLogger logs to zerolog first and then stores the line in the task logs.
func newCompositeLogger(task *RunnableTask, zlog zerolog.Logger) logging.MultiLogger {
	return logging.NewMultiLogger(
		logging.NewZLogger(zlog),
		taskLogger{task: task},
	)
}
