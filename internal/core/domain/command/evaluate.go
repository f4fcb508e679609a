package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"strconv"

	"github.com/Knetic/govaluate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Evaluate struct {
	messenger port.Messenger
	prefix    string
	l         *zerolog.Logger
}

func NewEvaluate(messenger port.Messenger, prefix string) *Evaluate {
	logger := log.With().
		Str("command", prefix).
		Str("handler", "evaluate").
		Logger()

	return &Evaluate{messenger: messenger, prefix: prefix, l: &logger}
}

func (e *Evaluate) GetPrefix() string {
	return e.prefix
}

// Respond evaluates a math expression. The first field is the expression;
// further fields bind its variables positionally, in order of first
// appearance.
func (e *Evaluate) Respond(ctx context.Context, message *domain.Message) error {
	inputs := SplitArgs(message.Text, e.prefix)
	if len(inputs) == 0 {
		return e.reject(ctx, "Please enter an expression to evaluate.")
	}

	e.l.Info().Str("input", inputs[0]).Str("username", message.From.Username).Msg("evaluating")

	expression, err := govaluate.NewEvaluableExpression(inputs[0])
	if err != nil {
		e.l.Debug().Err(err).Msg("expression did not parse")
		return e.reject(ctx, "An error occurred while trying to parse your input.")
	}

	variables := distinct(expression.Vars())
	if len(inputs)-1 != len(variables) {
		return e.reject(ctx,
			fmt.Sprintf("You have not provided the correct number of variables. (Expected %d)", len(variables)))
	}

	params := make(map[string]interface{}, len(variables))
	for i, name := range variables {
		value, err := strconv.ParseFloat(inputs[i+1], 64)
		if err != nil {
			return e.reject(ctx, fmt.Sprintf("Variable value %q is not a number.", inputs[i+1]))
		}
		params[name] = value
	}

	result, err := expression.Evaluate(params)
	if err != nil {
		e.l.Debug().Err(err).Msg("expression did not evaluate")
		return e.reject(ctx, "An error occurred while trying to evaluate your input.")
	}

	if _, err = e.messenger.SendMessage(ctx,
		fmt.Sprintf("++**Evaluation result:**++\n%v", result), ""); err != nil {
		return fmt.Errorf("failed to send evaluation result: %w", err)
	}

	return nil
}

func (e *Evaluate) reject(ctx context.Context, text string) error {
	if _, err := e.messenger.SendMessage(ctx, text, ""); err != nil {
		return fmt.Errorf("failed to send rejection: %w", err)
	}

	return nil
}

func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}
