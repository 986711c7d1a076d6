package textpool

import (
	"fmt"
	"io"
	"sync"
	"testing"
)

// Buffer's write methods follow the standard io signatures.
var _ io.ByteWriter = (*Buffer)(nil)

func TestBufferWrites(t *testing.T) {
	p := NewPool()
	buf := p.Acquire()
	defer p.Release(buf)

	buf.WriteString("a")
	if err := buf.WriteByte('b'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if _, err := buf.WriteRune('ç'); err != nil {
		t.Fatalf("WriteRune: %v", err)
	}
	if got := buf.String(); got != "abç" {
		t.Fatalf("got %q", got)
	}
}

func TestAcquireReleaseBalance(t *testing.T) {
	p := NewPool()
	for i := 0; i < 10; i++ {
		buf := p.Acquire()
		buf.WriteString("x")
		p.Release(buf)
	}
	acq, rel := p.Stats()
	if acq != rel {
		t.Fatalf("acquired %d != released %d", acq, rel)
	}
}

func TestAcquireReturnsEmptyBuffer(t *testing.T) {
	p := NewPool()
	buf := p.Acquire()
	buf.WriteString("leftover")
	p.Release(buf)

	buf2 := p.Acquire()
	defer p.Release(buf2)
	if buf2.Len() != 0 {
		t.Fatalf("reacquired buffer has %d bytes", buf2.Len())
	}
}

func TestReleaseNilIsNoop(t *testing.T) {
	p := NewPool()
	p.Release(nil)
	if _, rel := p.Stats(); rel != 0 {
		t.Fatalf("nil release counted: %d", rel)
	}
}

func TestConcurrentCheckoutsDoNotShareBuffers(t *testing.T) {
	p := NewPool()
	const workers = 16
	const rounds = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				buf := p.Acquire()
				want := fmt.Sprintf("worker-%d-%d", w, i)
				buf.WriteString(want)
				if got := buf.String(); got != want {
					t.Errorf("buffer shared across runs: got %q, want %q", got, want)
				}
				p.Release(buf)
			}
		}(w)
	}
	wg.Wait()

	acq, rel := p.Stats()
	if acq != rel || acq != workers*rounds {
		t.Fatalf("stats = %d/%d, want %d/%d", acq, rel, workers*rounds, workers*rounds)
	}
}
