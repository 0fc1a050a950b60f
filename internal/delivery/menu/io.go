package menu

import "context"

// LineIO is the only thing the controller knows about its operator: a source
// of lines and a sink for text. Write emits text without a line break, used
// for prompts.
type LineIO interface {
	ReadLine(ctx context.Context) (string, error)
	Write(s string) error
	WriteLine(s string) error
}
