package knowledge

import (
	"context"

	"github.com/darmiel/advisor/internal/logging"
	"github.com/darmiel/advisor/internal/tasks"
)

// ReloadTaskName is the name the reload task is registered under.
const ReloadTaskName = "knowledge-reload"

// ReloadTask fetches a fresh snapshot from src and stores it in m.
// A failed fetch keeps the previous snapshot in place.
func ReloadTask(src Source, m *Manager) tasks.TaskFunc {
	return func(ctx context.Context, log logging.InternalLogger) error {
		base, err := src.Fetch(ctx, log)
		if err != nil {
			return err
		}
		if m.Update(base) {
			log.Info("knowledge base updated to version %s", base.Version)
		} else {
			log.Info("knowledge base unchanged (version %s)", base.Version)
		}
		return nil
	}
}
