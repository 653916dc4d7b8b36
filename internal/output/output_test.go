package output

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestFromContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithPrinter(context.Background(), &buf)

	FromContext(ctx).Println("golang/go")
	FromContext(ctx).Println("charmbracelet/bubbletea")

	want := "golang/go\ncharmbracelet/bubbletea\n"
	if buf.String() != want {
		t.Errorf("printed %q, want %q", buf.String(), want)
	}
}

func TestFromContextFallsBackToStdout(t *testing.T) {
	t.Parallel()

	p := FromContext(context.Background())
	if p == nil {
		t.Fatal("FromContext on bare context returned nil")
	}
	if p.Writer() != os.Stdout {
		t.Error("fallback printer should write to stdout")
	}
}

func TestPrinterFormatting(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	// The shapes the commands actually emit: a rendered table chunk,
	// then the count footer.
	p.Print("#   STATE  TITLE\n42  open   flaky test\n")
	p.Printf("\nshowing %d of ~%d issues\n", 100, 700)

	got := buf.String()
	want := "#   STATE  TITLE\n42  open   flaky test\n\nshowing 100 of ~700 issues\n"
	if got != want {
		t.Errorf("printed %q, want %q", got, want)
	}
}
