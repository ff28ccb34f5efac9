package robomaster

import (
	"bytes"
	"testing"
)

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i + 1)
	}
	return b
}

func TestSplitCommandExactFrame(t *testing.T) {
	frames := SplitCommand(seq(8))
	if len(frames) != 1 || !bytes.Equal(frames[0], seq(8)) {
		t.Fatalf("unexpected split: %v", frames)
	}
}

func TestSplitCommandMultipleFrames(t *testing.T) {
	frames := SplitCommand(seq(12))
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if !bytes.Equal(frames[0], seq(12)[:8]) || !bytes.Equal(frames[1], seq(12)[8:]) {
		t.Fatalf("unexpected split: %v", frames)
	}
}

func TestSplitCommandUnevenSplit(t *testing.T) {
	frames := SplitCommand(seq(9))
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if len(frames[0]) != 8 || len(frames[1]) != 1 || frames[1][0] != 9 {
		t.Fatalf("unexpected split: %v", frames)
	}
}

func TestSplitCommandEmpty(t *testing.T) {
	if frames := SplitCommand(nil); len(frames) != 0 {
		t.Fatalf("expected no frames, got %v", frames)
	}
}

func TestSplitCommandPreservesOrder(t *testing.T) {
	command := seq(169) // boot-sequence sized
	frames := SplitCommand(command)
	if len(frames) != 22 {
		t.Fatalf("expected 22 frames, got %d", len(frames))
	}

	var joined []byte
	for _, f := range frames {
		if len(f) > MaxFrameData {
			t.Fatalf("oversized frame: %d bytes", len(f))
		}
		joined = append(joined, f...)
	}
	if !bytes.Equal(joined, command) {
		t.Fatal("frames do not reassemble the original buffer")
	}
}
