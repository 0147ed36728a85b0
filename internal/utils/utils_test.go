package utils

import (
	"context"
	"testing"
	"time"
)

func TestWaitForReturnsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); err != context.Canceled {
		t.Fatalf("WaitFor() error = %v, want context.Canceled", err)
	}
}

func TestWaitForZeroDuration(t *testing.T) {
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("WaitFor(0) error = %v", err)
	}
}

func TestWaitForCompletes(t *testing.T) {
	orig := sleep
	sleep = func(time.Duration) {}
	defer func() { sleep = orig }()

	if err := WaitFor(context.Background(), time.Second); err != nil {
		t.Fatalf("WaitFor() error = %v", err)
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter than limit", "abc", 10, "abc"},
		{"exactly limit", "abcde", 5, "abcde"},
		{"truncated", "abcdefgh", 5, "abcde..."},
		{"multibyte runes", "데이터 분석가 채용", 3, "데이터..."},
		{"trims whitespace", "  abc  ", 10, "abc"},
		{"non-positive limit", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}
