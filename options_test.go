package turtle

import "testing"

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.background != TransparentWhite {
		t.Errorf("default background = %+v, want transparent white", o.background)
	}
	if o.backend != nil {
		t.Errorf("default backend = %v, want nil (software)", o.backend)
	}
	if o.penSize != DefaultPenSize || o.penColor != Black {
		t.Errorf("default pen = %+v size %v, want black size 1", o.penColor, o.penSize)
	}
}

func TestWithBackground(t *testing.T) {
	c, err := New(4, 4, WithBackground(Black))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Destroy()

	if c.Background() != Black {
		t.Errorf("Background() = %+v, want black", c.Background())
	}
	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if got := snap.NRGBAAt(2, 2); got != Black.NRGBA() {
		t.Errorf("initial pixel = %v, want opaque black", got)
	}
}

func TestWithBackendSelectsBackend(t *testing.T) {
	be := NewSoftwareBackend()
	c, err := New(4, 4, WithBackend(be))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Destroy()
	if c.Backend() != be {
		t.Error("Backend() did not return the configured backend")
	}
}
