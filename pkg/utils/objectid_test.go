package utils

import "testing"

func TestIsValidID(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"65a1f0c2b3d4e5f607182930", true},
		{"65A1F0C2B3D4E5F607182930", true},
		{"", false},
		{"abc", false},
		{"65a1f0c2b3d4e5f60718293", false},
		{"65a1f0c2b3d4e5f6071829300", false},
		{"zza1f0c2b3d4e5f607182930", false},
		{"undefined", false},
	}
	for i, c := range cases {
		if got := IsValidID(c.value); got != c.ok {
			t.Fatalf("case %d (%q): expected %v, got %v", i, c.value, c.ok, got)
		}
	}
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("65a1f0c2b3d4e5f607182930")
	if !ok {
		t.Fatal("expected valid id")
	}
	if id.Hex() != "65a1f0c2b3d4e5f607182930" {
		t.Fatalf("unexpected hex %s", id.Hex())
	}

	if _, ok := ParseID("nope"); ok {
		t.Fatal("expected invalid id")
	}
}
