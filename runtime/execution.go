package runtime

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var _ context.Context = &Execution{}

// Execution is the per-invocation context passed to every node task method.
// It implements context.Context so deadlines and cancellation propagate
// through slog calls and outbound HTTP requests made by nodes.
type Execution struct {
	ID        string
	Node      string
	Values    map[string]any
	Container *Container
	ctx       context.Context
}

func NewExecution(node string, container *Container) Execution {
	return Execution{
		ID:        uuid.New().String(),
		Node:      node,
		Values:    make(map[string]any),
		Container: container,
		ctx:       context.Background(),
	}
}

func (e *Execution) Deadline() (deadline time.Time, ok bool) {
	return e.ctx.Deadline()
}

func (e *Execution) Done() <-chan struct{} {
	return e.ctx.Done()
}

func (e *Execution) Err() error {
	return e.ctx.Err()
}

func (e *Execution) Value(key any) any {
	k, ok := key.(string)
	if !ok {
		return e.ctx.Value(key)
	}
	return e.Values[k]
}

// WithContext returns a shallow copy of the Execution with a new embedded
// context. Use this to apply a per-invocation timeout without mutating the
// parent. Mirrors the http.Request.WithContext pattern.
func (e *Execution) WithContext(ctx context.Context) *Execution {
	copy := *e
	copy.ctx = ctx
	return &copy
}

func (e *Execution) AddValue(k string, v any) {
	e.Values[k] = v
}

// envVarPattern matches ${VAR} and ${VAR:default} syntax
var envVarPattern = regexp.MustCompile(`^\$\{([A-Z_][A-Z0-9_]*)(:[^}]*)?\}$`)

// resolveEnvVar resolves environment variable references in node
// definition values. Plain values pass through unchanged.
func resolveEnvVar(value any) (any, error) {
	strValue, ok := value.(string)
	if !ok {
		return value, nil
	}

	matches := envVarPattern.FindStringSubmatch(strValue)
	if matches == nil {
		return value, nil
	}

	varName := matches[1]
	defaultPart := matches[2]

	envValue, exists := os.LookupEnv(varName)
	if exists {
		return envValue, nil
	}

	if defaultPart != "" {
		return strings.TrimPrefix(defaultPart, ":"), nil
	}

	return nil, fmt.Errorf("required environment variable not set: %s", varName)
}
