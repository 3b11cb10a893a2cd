package emit

import (
	"fmt"
	"strings"
)

// writer is a small indent-tracking text builder, the same shape as
// pegen's c_generator.Printer: callers open a nested block with with, which
// bumps the indent level for the duration of the callback.
type writer struct {
	sb    *strings.Builder
	level int
}

func newWriter(sb *strings.Builder) *writer {
	return &writer{sb: sb}
}

func (w *writer) printf(format string, args ...any) {
	w.sb.WriteString(strings.Repeat("\t", w.level))
	fmt.Fprintf(w.sb, format, args...)
	w.sb.WriteByte('\n')
}

func (w *writer) blank() {
	w.sb.WriteByte('\n')
}

// with runs body with the indent level bumped by one, restoring it
// afterward even if body panics.
func (w *writer) with(body func()) {
	w.level++
	defer func() { w.level-- }()
	body()
}
