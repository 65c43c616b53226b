package models

import "testing"

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		m, err := New(name)
		if err != nil {
			t.Errorf("model %q: %v", name, err)
			continue
		}
		if m.Dims().Nq == 0 {
			t.Errorf("model %q has no coordinates", name)
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	if _, err := New("warp_drive"); err == nil {
		t.Error("expected error for unknown model")
	}
}
