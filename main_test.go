package main

import (
	"testing"
)

func TestLoadArea_ShippedConfigs(t *testing.T) {
	seed := int64(99)
	a, err := loadArea("configs/defs.yaml", "configs/area.yaml", &seed)
	if err != nil {
		t.Fatalf("loadArea() error = %v", err)
	}
	if a.Seed != 99 {
		t.Errorf("Seed = %d, want 99", a.Seed)
	}
	if len(a.Features) == 0 || !a.Features[0].Fixed || a.Features[0].ID != "shrine" {
		t.Errorf("Features[0] = %+v, want the fixed shrine", a.Features)
	}
}

func TestParseInts(t *testing.T) {
	v, err := parseInts("1, 2,3", 3)
	if err != nil {
		t.Fatalf("parseInts() error = %v", err)
	}
	if v[0] != 1 || v[1] != 2 || v[2] != 3 {
		t.Errorf("parseInts() = %v, want [1 2 3]", v)
	}
	for _, bad := range []string{"1,2", "1,x,3", ""} {
		if _, err := parseInts(bad, 3); err == nil {
			t.Errorf("parseInts(%q) error = nil", bad)
		}
	}
}
