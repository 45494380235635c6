package schedule

import "context"

// Task one polling pipeline, Run is invoked on every tick by a Runner
type Task interface {
	Run(ctx context.Context) error
	Name() string
}
