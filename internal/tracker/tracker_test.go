package tracker

import (
	"fmt"
	"sync"
	"testing"
)

func TestSetOverwritesSilently(t *testing.T) {
	tr := New()

	tr.Set(1, "gate")
	tr.Set(1, "library")

	got, ok := tr.Get(1)
	if !ok || got != "library" {
		t.Fatalf("Get = (%q, %v), want (library, true)", got, ok)
	}
	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1: a user holds at most one assignment", tr.Len())
	}
}

func TestClearIsIdempotent(t *testing.T) {
	tr := New()
	tr.Set(7, "gate")

	tr.Clear(7)
	tr.Clear(7)

	if _, ok := tr.Get(7); ok {
		t.Error("assignment survived Clear")
	}
	if tr.Len() != 0 {
		t.Errorf("Len = %d, want 0", tr.Len())
	}
}

func TestConcurrentActivationsKeepOneAssignmentPerUser(t *testing.T) {
	tr := New()
	const users = 8
	const activations = 50

	var wg sync.WaitGroup
	for u := int64(1); u <= users; u++ {
		for i := 0; i < activations; i++ {
			wg.Add(1)
			go func(userID int64, n int) {
				defer wg.Done()
				tr.Set(userID, fmt.Sprintf("task-%d", n))
			}(u, i)
		}
	}
	wg.Wait()

	if tr.Len() != users {
		t.Fatalf("Len = %d, want %d", tr.Len(), users)
	}
	for u := int64(1); u <= users; u++ {
		if _, ok := tr.Get(u); !ok {
			t.Errorf("user %d lost its assignment", u)
		}
	}
}
