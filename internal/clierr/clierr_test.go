package clierr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{UsageError, ExitUsage},
		{IOError, ExitFailure},
		{InvalidInput, ExitFailure},
		{InvalidConfig, ExitFailure},
		{NotATerminal, ExitFailure},
		{InternalError, ExitFailure},
	}
	for _, tt := range tests {
		if got := New(tt.code, "x").ExitCode(); got != tt.want {
			t.Errorf("%s: exit code = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestIOWrapsCause(t *testing.T) {
	err := IO("reading", "/tmp/todo.txt", fs.ErrNotExist)

	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if err.Error() != "reading /tmp/todo.txt: file does not exist" {
		t.Fatalf("message = %q", err.Error())
	}
	if err.Details["path"] != "/tmp/todo.txt" {
		t.Fatalf("details = %v", err.Details)
	}
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := New(InvalidInput, "empty")
	outer := fmt.Errorf("adding task: %w", inner)

	if !HasCode(outer, InvalidInput) {
		t.Fatal("HasCode missed a wrapped error")
	}
	if HasCode(outer, IOError) {
		t.Fatal("HasCode matched the wrong code")
	}
	if HasCode(errors.New("plain"), InvalidInput) {
		t.Fatal("HasCode matched a plain error")
	}
}
