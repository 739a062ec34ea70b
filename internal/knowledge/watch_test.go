package knowledge

import (
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeKB(t, testKB)
	src, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}

	w, err := Watch(src)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	updated := strings.Replace(testKB, `"version": "2.1.0"`, `"version": "3.0.0"`, 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if src.Name() == "file:3.0.0" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("watcher did not reload, Name() = %q", src.Name())
}

func TestWatcherCloseStopsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	src, err := NewFileSource(writeKB(t, testKB))
	if err != nil {
		t.Fatal(err)
	}

	w, err := Watch(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}
