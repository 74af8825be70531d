package engine

import "context"

// Request describes one prompt for a missing or rejected value.
type Request struct {
	Name string
	// Text is the prompt phrase: the prompt, information or help
	// attribute, or the kind's standard phrase.
	Text string
	// Default is offered when the answer is empty.
	Default string
	// Help describes acceptable values.
	Help string
	// Attempt counts from 1. Rejected and Err describe the previous
	// attempt when Attempt > 1.
	Attempt  int
	Rejected string
	Err      error
}

// Prompter asks the user for a value.
type Prompter interface {
	Prompt(ctx context.Context, req Request) (string, error)
}

// PrompterFunc adapts a function to a [Prompter].
type PrompterFunc func(ctx context.Context, req Request) (string, error)

// Prompt implements [Prompter].
func (f PrompterFunc) Prompt(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
