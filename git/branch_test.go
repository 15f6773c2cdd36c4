package git

import "testing"

func TestBranchNamer_ForItem(t *testing.T) {
	namer := DefaultBranchNamer()

	tests := []struct {
		id    int
		title string
		want  string
	}{
		{121, "Use Task Store", "feature/item-121-use-task-store"},
		{122, "ShellView: real data!", "feature/item-122-shellview-real-data"},
		{123, "", "feature/item-123"},
	}

	for _, tt := range tests {
		got := namer.ForItem(tt.id, tt.title)
		if got != tt.want {
			t.Errorf("ForItem(%d, %q) = %q, want %q", tt.id, tt.title, got, tt.want)
		}
	}
}

func TestBranchNamer_ForItem_truncatesLongTitles(t *testing.T) {
	namer := DefaultBranchNamer()
	namer.MaxLength = 40

	got := namer.ForItem(1, "a very long title that keeps going and going and going forever")
	if len(got) > 40 {
		t.Errorf("branch name too long: %d chars: %q", len(got), got)
	}
}

func TestBranchNamer_ForItem_noTitleSlug(t *testing.T) {
	namer := &BranchNamer{TypePrefix: "feature", IncludeTitle: false, MaxLength: 100}

	got := namer.ForItem(5, "Some Title")
	if got != "feature/item-5" {
		t.Errorf("ForItem = %q, want %q", got, "feature/item-5")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add User Authentication", "add-user-authentication"},
		{"fix_the_thing", "fix-the-thing"},
		{"--weird---input--", "weird-input"},
		{"Ünïcode & symbols!", "ncode-symbols"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInitBranchMessage(t *testing.T) {
	got := InitBranchMessage(121, "Use task store")
	want := "chore: init branch for #121 - Use task store"
	if got != want {
		t.Errorf("InitBranchMessage = %q, want %q", got, want)
	}
}
