package runtime

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// ExpressionEvaluator evaluates boolean conditions using the expr-lang
// library, e.g. the notify_when condition on a node definition.
type ExpressionEvaluator struct{}

func NewExpressionEvaluator() *ExpressionEvaluator {
	return &ExpressionEvaluator{}
}

func (e *ExpressionEvaluator) Eval(expression string, context map[string]any) (any, error) {
	// Add null as alias for nil (JSON/YAML compatibility)
	context["null"] = nil

	opts := []expr.Option{
		expr.Env(context),
		expr.AllowUndefinedVariables(), // Missing variables return nil instead of compile error
	}

	program, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, err
	}
	return expr.Run(program, context)
}

// EvalBool evaluates a condition and requires a boolean result.
func (e *ExpressionEvaluator) EvalBool(expression string, context map[string]any) (bool, error) {
	result, err := e.Eval(expression, context)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("condition %s evaluated to %T, expected boolean", expression, result)
	}
	return b, nil
}
