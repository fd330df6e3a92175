package runtime

import (
	"fmt"
	"reflect"
	"strings"
)

// Container holds registered node instances and the tasks discovered
// from their methods.
type Container struct {
	Tasks map[string]Task
	nodes map[string]any
}

func NewContainer() *Container {
	return &Container{
		Tasks: make(map[string]Task),
		nodes: make(map[string]any),
	}
}

func (c *Container) GetTask(name string) Task {
	task, ok := c.Tasks[name]
	if !ok {
		return nil
	}
	return task
}

func (c *Container) SetTask(name string, task Task) {
	c.Tasks[name] = task
}

// GetNode returns a registered node instance by name.
func (c *Container) GetNode(name string) any {
	return c.nodes[name]
}

// NodeNames returns the names of all registered nodes.
func (c *Container) NodeNames() []string {
	names := make([]string, 0, len(c.nodes))
	for name := range c.nodes {
		names = append(names, name)
	}
	return names
}

// RegisterNode registers a node instance and auto-discovers its tasks.
//
// Two method signatures are recognized:
//
//	func (n *Node) TaskName(exec *Execution, args map[string]any) (map[string]any, error)
//	func (n *Node) TaskName(exec *Execution, input InputStruct) (OutputStruct, error)
//
// Typed signatures get automatic map-to-struct conversion and input
// validation before the method is called.
func (c *Container) RegisterNode(nodeName string, node any) error {
	if node == nil {
		return fmt.Errorf("node cannot be nil")
	}

	c.nodes[nodeName] = node

	nodeType := reflect.TypeOf(node)
	nodeValue := reflect.ValueOf(node)

	for i := 0; i < nodeType.NumMethod(); i++ {
		method := nodeType.Method(i)

		if !method.IsExported() {
			continue
		}

		taskName := fmt.Sprintf("%s.%s", nodeName, toLowerFirst(method.Name))

		switch {
		case isMapTaskSignature(method.Type):
			c.Tasks[taskName] = &mapTaskWrapper{node: nodeValue, method: method}
		case isTypedTaskSignature(method.Type):
			c.Tasks[taskName] = &typedTaskWrapper{
				node:       nodeValue,
				method:     method,
				inputType:  method.Type.In(2),
				outputType: method.Type.Out(0),
			}
		}
	}

	return nil
}

// Initialize calls Initialize on all nodes implementing Initializer.
// Fails fast: the first error aborts startup.
func (c *Container) Initialize() error {
	for name, node := range c.nodes {
		if init, ok := node.(Initializer); ok {
			if err := init.Initialize(); err != nil {
				return fmt.Errorf("node %s initialization failed: %w", name, err)
			}
		}
	}
	return nil
}

// Shutdown calls Shutdown on all nodes implementing Shutdowner.
func (c *Container) Shutdown() error {
	var errs []error
	for name, node := range c.nodes {
		if sd, ok := node.(Shutdowner); ok {
			if err := sd.Shutdown(); err != nil {
				errs = append(errs, fmt.Errorf("node %s shutdown failed: %w", name, err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

var (
	executionPtrType = reflect.TypeOf((*Execution)(nil))
	mapType          = reflect.TypeOf(map[string]any(nil))
	errorType        = reflect.TypeOf((*error)(nil)).Elem()
)

// isMapTaskSignature checks for:
// func(exec *Execution, args map[string]any) (map[string]any, error)
func isMapTaskSignature(methodType reflect.Type) bool {
	if methodType.NumIn() != 3 || methodType.NumOut() != 2 {
		return false
	}
	return methodType.In(1) == executionPtrType &&
		methodType.In(2) == mapType &&
		methodType.Out(0) == mapType &&
		methodType.Out(1) == errorType
}

// isTypedTaskSignature checks for:
// func(exec *Execution, input StructType) (StructType, error)
func isTypedTaskSignature(methodType reflect.Type) bool {
	if methodType.NumIn() != 3 || methodType.NumOut() != 2 {
		return false
	}
	return methodType.In(1) == executionPtrType &&
		methodType.In(2).Kind() == reflect.Struct &&
		methodType.Out(0).Kind() == reflect.Struct &&
		methodType.Out(1) == errorType
}

// toLowerFirst converts first character of string to lowercase
func toLowerFirst(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// mapTaskWrapper wraps a map-based node method to implement Task.
type mapTaskWrapper struct {
	node   reflect.Value
	method reflect.Method
}

func (w *mapTaskWrapper) Execute(exec *Execution, args map[string]any) (map[string]any, error) {
	results := w.method.Func.Call([]reflect.Value{
		w.node,
		reflect.ValueOf(exec),
		reflect.ValueOf(args),
	})

	resultMap := results[0].Interface().(map[string]any)

	var err error
	if !results[1].IsNil() {
		err = results[1].Interface().(error)
	}

	return resultMap, err
}

// typedTaskWrapper wraps a typed node method to implement Task.
// It converts the args map into the input struct, validates it, calls
// the method, and converts the output struct back into a map.
type typedTaskWrapper struct {
	node       reflect.Value
	method     reflect.Method
	inputType  reflect.Type
	outputType reflect.Type
}

func (w *typedTaskWrapper) Execute(exec *Execution, args map[string]any) (map[string]any, error) {
	inputPtr := reflect.New(w.inputType)
	if err := mapToStruct(args, inputPtr.Interface()); err != nil {
		return nil, fmt.Errorf("invalid input for %s: %w", w.method.Name, err)
	}

	if err := validateConfig(inputPtr.Elem().Interface()); err != nil {
		return nil, fmt.Errorf("input validation failed for %s: %w", w.method.Name, err)
	}

	results := w.method.Func.Call([]reflect.Value{
		w.node,
		reflect.ValueOf(exec),
		inputPtr.Elem(),
	})

	if !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}

	output, err := structToMap(results[0].Interface())
	if err != nil {
		return nil, fmt.Errorf("failed to convert output of %s: %w", w.method.Name, err)
	}

	return output, nil
}
