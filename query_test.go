package everseek

import "testing"

func TestQuery_Build(t *testing.T) {
	tests := []struct {
		name string
		q    *Query
		want string
	}{
		{
			name: "term only",
			q:    NewQuery("*t*c*m*d*"),
			want: "*t*c*m*d*",
		},
		{
			name: "extensions and term",
			q:    NewQuery("*t*c*m*d*").Extensions("exe", "bat", "lnk"),
			want: "file: ext:exe;bat;lnk *t*c*m*d*",
		},
		{
			name: "extensions only",
			q:    NewQuery("").Extensions("exe"),
			want: "file: ext:exe",
		},
		{
			name: "empty",
			q:    NewQuery(""),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Build(); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuery_Values(t *testing.T) {
	v := NewQuery("*t*c*").
		Extensions("exe").
		WholeWord().
		SortBy(SortDateModified).
		Descending().
		Max(50).
		Values()

	if got := v.Get("search"); got != "file: ext:exe *t*c*" {
		t.Errorf("search = %q", got)
	}
	if v.Get("json") != "1" {
		t.Error("json column flag missing")
	}
	if v.Get("path_column") != "1" || v.Get("size_column") != "1" || v.Get("date_modified_column") != "1" {
		t.Error("result columns missing")
	}
	if v.Get("wholeword") != "1" {
		t.Error("wholeword flag missing")
	}
	if v.Get("case") != "" {
		t.Error("case flag set without MatchCase")
	}
	if v.Get("sort") != "date_modified" {
		t.Errorf("sort = %q", v.Get("sort"))
	}
	if v.Get("ascending") != "0" {
		t.Errorf("ascending = %q", v.Get("ascending"))
	}
	if v.Get("count") != "50" {
		t.Errorf("count = %q", v.Get("count"))
	}
	if v.Get("offset") != "" {
		t.Error("offset set without Offset")
	}
}

func TestQuery_ValuesDefaults(t *testing.T) {
	v := NewQuery("x").Values()

	if v.Get("sort") != "name" {
		t.Errorf("default sort = %q, want name", v.Get("sort"))
	}
	if v.Get("ascending") != "" {
		t.Error("default order must be ascending")
	}
}

func TestInterleave(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tcmd", "*t*c*m*d*"},
		{"tc md", "*t*c*m*d*"},
		{"a", "*a*"},
		{" ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Interleave(tt.in); got != tt.want {
			t.Errorf("Interleave(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
