package entity

import (
	"testing"
	"time"
)

func TestNewsletter_Validate(t *testing.T) {
	base := func() *Newsletter {
		return &Newsletter{Title: "Weekly Go", Content: "Body", AuthorID: "u1"}
	}

	tests := []struct {
		name      string
		mutate    func(n *Newsletter)
		wantField string
	}{
		{name: "valid", mutate: func(*Newsletter) {}},
		{name: "blank title", mutate: func(n *Newsletter) { n.Title = "  " }, wantField: "title"},
		{name: "empty content", mutate: func(n *Newsletter) { n.Content = "" }, wantField: "content"},
		{name: "missing author", mutate: func(n *Newsletter) { n.AuthorID = "" }, wantField: "authorId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := base()
			tt.mutate(n)
			err := n.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("want *ValidationError, got %T (%v)", err, err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestNewsletter_Visibility(t *testing.T) {
	author := &User{ID: "author", Role: RoleUser}
	other := &User{ID: "other", Role: RoleUser}
	admin := &User{ID: "admin", Role: RoleAdmin}

	draft := &Newsletter{ID: "n1", AuthorID: "author", Published: false}
	published := &Newsletter{ID: "n2", AuthorID: "author", Published: true}

	cases := []struct {
		name   string
		n      *Newsletter
		viewer *User
		want   bool
	}{
		{"draft/anonymous", draft, nil, false},
		{"draft/other", draft, other, false},
		{"draft/author", draft, author, true},
		{"draft/admin", draft, admin, true},
		{"published/anonymous", published, nil, true},
		{"published/other", published, other, true},
	}
	for _, c := range cases {
		if got := c.n.VisibleTo(c.viewer); got != c.want {
			t.Errorf("%s: VisibleTo = %v, want %v", c.name, got, c.want)
		}
	}

	if published.EditableBy(other) {
		t.Error("non-author must not edit")
	}
	if !published.EditableBy(admin) {
		t.Error("admin must be able to edit")
	}
}

func TestNewsletter_CategoryOrOther(t *testing.T) {
	n := &Newsletter{}
	if got := n.CategoryOrOther(); got != CategoryOther {
		t.Fatalf("nil category: got %q", got)
	}
	empty := Category("")
	n.Category = &empty
	if got := n.CategoryOrOther(); got != CategoryOther {
		t.Fatalf("empty category: got %q", got)
	}
	tech := CategoryTechnology
	n.Category = &tech
	if got := n.CategoryOrOther(); got != CategoryTechnology {
		t.Fatalf("got %q", got)
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]struct {
		want Category
		ok   bool
	}{
		"Technology":   {CategoryTechnology, true},
		"science":      {CategoryScience, true},
		"  Health.  ":  {CategoryHealth, true},
		"\"Business\"": {CategoryBusiness, true},
		"Sports":       {"", false},
		"":             {"", false},
	}
	for in, want := range cases {
		got, ok := ParseCategory(in)
		if got != want.want || ok != want.ok {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", in, got, ok, want.want, want.ok)
		}
	}
}

func TestNewspaperTitleAndStartOfDay(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, time.March, 7, 15, 4, 5, 6, loc)

	day := StartOfDay(now)
	if !day.Equal(time.Date(2024, time.March, 7, 0, 0, 0, 0, loc)) {
		t.Fatalf("StartOfDay = %v", day)
	}
	if day.Location() != loc {
		t.Fatalf("location lost: %v", day.Location())
	}
	if got := NewspaperTitle(day); got != "Daily Digest - 3/7/2024" {
		t.Fatalf("NewspaperTitle = %q", got)
	}
}

func TestParseRole(t *testing.T) {
	if ParseRole("ADMIN") != RoleAdmin {
		t.Error("ADMIN should parse as admin")
	}
	if ParseRole("admin") != RoleUser || ParseRole("") != RoleUser {
		t.Error("anything else should default to USER")
	}
	var nilUser *User
	if nilUser.IsAdmin() {
		t.Error("nil user is not admin")
	}
}
