package share

import "fmt"

// Kind names a shareable sub-item type. Every kind goes through the same
// access procedure and the same storage shape; the distinction only matters
// to the frontend and to trash snapshots.
type Kind string

const (
	KindClipboard       Kind = "clipboard"
	KindTodoCategory    Kind = "todo_category"
	KindLinkCategory    Kind = "link_category"
	KindCommand         Kind = "command"
	KindCommandCategory Kind = "command_category"
)

var kinds = map[Kind]bool{
	KindClipboard:       true,
	KindTodoCategory:    true,
	KindLinkCategory:    true,
	KindCommand:         true,
	KindCommandCategory: true,
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !kinds[k] {
		return "", fmt.Errorf("%w: unknown item kind %q", ErrInvalidInput, s)
	}
	return k, nil
}
