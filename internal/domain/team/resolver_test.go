package team

import "testing"

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	resolver := NewResolver([]Team{
		{Key: "gb", Name: "Green Bay Packers", Abbreviation: "GB", AltNames: []string{"Packers", "G.B."}},
		{Key: "kc", Name: "Kansas City Chiefs", Abbreviation: "KC", AltNames: []string{"Chiefs"}},
	})

	cases := []struct {
		label string
		want  string
	}{
		{"Green Bay Packers", "gb"},
		{"  green  bay   packers ", "gb"},
		{"GB", "gb"},
		{"g.b.", "gb"},
		{"PACKERS", "gb"},
		{"kc", "kc"},
		{"Chiefs", "kc"},
	}
	for _, tc := range cases {
		got, ok := resolver.Resolve(tc.label)
		if !ok {
			t.Fatalf("label %q did not resolve", tc.label)
		}
		if got != tc.want {
			t.Fatalf("label %q resolved to %q, want %q", tc.label, got, tc.want)
		}
	}

	if _, ok := resolver.Resolve("vikings"); ok {
		t.Fatal("unknown label must not resolve")
	}
	if _, ok := resolver.Resolve(""); ok {
		t.Fatal("empty label must not resolve")
	}
}
