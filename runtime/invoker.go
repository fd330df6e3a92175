package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultInvocationTimeout bounds a single task invocation, covering
// all outbound uploads and the optional webhook call.
const DefaultInvocationTimeout = 2 * time.Minute

// Invoker runs a single node task per invocation. The host GUI owns
// graph execution, so there is no step loop here: one task, one
// timeout, one result.
type Invoker struct {
	l       *slog.Logger
	timeout time.Duration
}

func NewInvoker(l *slog.Logger) *Invoker {
	return &Invoker{
		l:       l,
		timeout: DefaultInvocationTimeout,
	}
}

// WithTimeout returns a copy of the Invoker with a different per-invocation timeout.
func (i *Invoker) WithTimeout(d time.Duration) *Invoker {
	copy := *i
	copy.timeout = d
	return &copy
}

func (i *Invoker) Invoke(execution *Execution, taskName string, args map[string]any) (map[string]any, error) {
	task := execution.Container.GetTask(taskName)
	if task == nil {
		return nil, fmt.Errorf("unknown task: %s", taskName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
	defer cancel()
	scoped := execution.WithContext(ctx)

	i.l.InfoContext(scoped, fmt.Sprintf("Invoking task: %s", taskName),
		"execution", execution.ID,
		"node", execution.Node)

	start := time.Now()
	result, err := task.Execute(scoped, args)
	if err != nil {
		i.l.ErrorContext(scoped, fmt.Sprintf("Task failed: %s", taskName),
			"execution", execution.ID,
			"duration", time.Since(start),
			"error", err)
		return nil, fmt.Errorf("error executing task %s: %w", taskName, err)
	}

	i.l.InfoContext(scoped, fmt.Sprintf("Task completed: %s", taskName),
		"execution", execution.ID,
		"duration", time.Since(start))

	return result, nil
}
