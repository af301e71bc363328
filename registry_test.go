package draw

import (
	"strings"
	"sync"
	"testing"
)

// mockBackend is a recorder that remembers its name and Reset calls.
type mockBackend struct {
	recorder
	name   string
	resets int
}

func newMockBackend(name string) *mockBackend {
	return &mockBackend{name: name}
}

func (b *mockBackend) Reset() {
	b.recorder = recorder{}
	b.resets++
}

// resetRegistry clears all registered backends for test isolation.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends = make(map[string]BackendFactory)
}

func TestRegisterAndNewBackend(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("test", func() Backend {
		return newMockBackend("test")
	})

	backend, err := NewBackend("test")
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}

	mock, ok := backend.(*mockBackend)
	if !ok {
		t.Fatal("backend is not a mockBackend")
	}
	if mock.name != "test" {
		t.Errorf("got name %q, want %q", mock.name, "test")
	}
}

func TestNewBackendUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	_, err := NewBackend("unknown")
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "forgotten import") {
		t.Errorf("error %q should hint at a missing import", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	factory := func() Backend { return newMockBackend("x") }
	tests := []struct {
		name    string
		regName string
		factory BackendFactory
		want    string
	}{
		{"empty name", "", factory, "draw: Register name is empty"},
		{"nil factory", "nil", nil, "draw: Register factory is nil"},
		{"duplicate", "dup", factory, "draw: Register called twice for dup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRegistry()
			defer resetRegistry()
			Register("dup", factory)

			assertPanics(t, tt.want, func() { Register(tt.regName, tt.factory) })
		})
	}
}

func TestUnregister(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("temp", func() Backend {
		return newMockBackend("temp")
	})

	if !IsRegistered("temp") {
		t.Error("backend should be registered")
	}

	Unregister("temp")

	if IsRegistered("temp") {
		t.Error("backend should not be registered after Unregister")
	}

	// Unregister non-existent should not panic
	Unregister("nonexistent")
}

func TestBackends(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	// Register in non-alphabetical order
	Register("charlie", func() Backend { return newMockBackend("c") })
	Register("alpha", func() Backend { return newMockBackend("a") })
	Register("bravo", func() Backend { return newMockBackend("b") })

	names := Backends()

	if len(names) != 3 {
		t.Fatalf("expected 3 backends, got %d", len(names))
	}

	expected := []string{"alpha", "bravo", "charlie"}
	for i, name := range names {
		if name != expected[i] {
			t.Errorf("names[%d] = %q, want %q", i, name, expected[i])
		}
	}
}

func TestCount(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	if Count() != 0 {
		t.Errorf("expected count 0, got %d", Count())
	}

	Register("one", func() Backend { return newMockBackend("1") })
	if Count() != 1 {
		t.Errorf("expected count 1, got %d", Count())
	}

	Register("two", func() Backend { return newMockBackend("2") })
	if Count() != 2 {
		t.Errorf("expected count 2, got %d", Count())
	}
}

func TestMustBackendPanic(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown backend")
		}
	}()

	_ = MustBackend("unknown")
}

func TestBackendLifecycle(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("lifecycle", func() Backend {
		return newMockBackend("lifecycle")
	})

	backend := MustBackend("lifecycle")
	mock := backend.(*mockBackend)

	d := New()
	d.Rect()
	d.Render(backend)
	if len(mock.calls) != 1 {
		t.Errorf("expected 1 call after render, got %d", len(mock.calls))
	}

	backend.Reset()
	if mock.resets != 1 || len(mock.calls) != 0 {
		t.Errorf("Reset: resets=%d calls=%d", mock.resets, len(mock.calls))
	}
}

func TestConcurrentRegistration(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			name := "concurrent" + string(rune('A'+i%26)) + string(rune('0'+i/26))
			Register(name, func() Backend { return newMockBackend(name) })
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = Backends()
			_ = Count()
			_ = IsRegistered("nonexistent")
		}
	}()

	wg.Wait()

	if Count() != 100 {
		t.Errorf("expected 100 backends, got %d", Count())
	}
}
