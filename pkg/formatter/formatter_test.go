package formatter_test

import (
	"strings"
	"testing"

	"github.com/rverma/filmi/pkg/formatter"
	"github.com/rverma/filmi/pkg/parser"
)

func mustFormat(t *testing.T, source string) string {
	t.Helper()
	prog, diag := parser.Parse(source)
	if diag != nil {
		t.Fatalf("unexpected parse error: %v", diag)
	}
	return formatter.Format(prog)
}

func TestFormatRoundTripsThroughReparse(t *testing.T) {
	source := `action!
maan lo total = 0
jab tak hai jaan (total < 3) {
	ek baat bataun: total
	total = total + 1
}
paisa vasool`
	out := mustFormat(t, source)
	if _, diag := parser.Parse(out); diag != nil {
		t.Fatalf("formatted output failed to reparse: %v\n%s", diag, out)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	source := `action!
climax square(n) {
	dialogue wapas do n * n
}
ek baat bataun: square(4)
paisa vasool`
	first := mustFormat(t, source)
	prog2, diag := parser.Parse(first)
	if diag != nil {
		t.Fatalf("unexpected parse error: %v", diag)
	}
	second := formatter.Format(prog2)
	if first != second {
		t.Errorf("formatting is not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestFormatPreservesOperatorPrecedenceWithParens(t *testing.T) {
	out := mustFormat(t, `action!
ek baat bataun: (1 + 2) * 3
paisa vasool`)
	if !strings.Contains(out, "(1 + 2) * 3") {
		t.Errorf("expected explicit parens to survive formatting, got:\n%s", out)
	}
}

func TestFormatIfElseIfElseChain(t *testing.T) {
	out := mustFormat(t, `action!
agar kismat rahi (sach) {
	ek baat bataun: 1
} nahi to (galat) {
	ek baat bataun: 2
} warna {
	ek baat bataun: 3
}
paisa vasool`)
	for _, want := range []string{"agar kismat rahi", "nahi to", "warna"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
