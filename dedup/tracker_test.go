package dedup

import (
	"sync"
	"testing"
)

func TestTrackerMarkAndSeen(t *testing.T) {
	tr := NewTracker()

	if tr.Seen("CVE-2024-0001") {
		t.Error("empty tracker reported an identifier as seen")
	}

	tr.Mark("CVE-2024-0001")
	if !tr.Seen("CVE-2024-0001") {
		t.Error("marked identifier not reported as seen")
	}
	if tr.Seen("CVE-2024-0002") {
		t.Error("unmarked identifier reported as seen")
	}

	// Marking twice is a no-op
	tr.Mark("CVE-2024-0001")
	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1", tr.Len())
	}
}

func TestTrackerIgnoresEmptyID(t *testing.T) {
	tr := NewTracker()
	tr.Mark("")
	if tr.Len() != 0 {
		t.Errorf("Len = %d after marking empty id, want 0", tr.Len())
	}
	if tr.Seen("") {
		t.Error("empty identifier reported as seen")
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	tr.Mark("CVE-2024-0001")
	tr.Mark("msrc-ADV240001")

	tr.Reset()
	if tr.Len() != 0 {
		t.Errorf("Len = %d after reset, want 0", tr.Len())
	}
	if tr.Seen("CVE-2024-0001") {
		t.Error("identifier survived reset")
	}
}

func TestTrackerConcurrentAccess(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Mark("CVE-2024-0001")
			tr.Seen("CVE-2024-0001")
		}()
	}
	wg.Wait()

	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1", tr.Len())
	}
}
