package topic

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"designer.command.executed", "designer.command.executed", true},
		{"designer.command.executed", "designer.command.*", true},
		{"designer.command.executed", "designer.*", false},
		{"designer.command.executed", "designer.**", true},
		{"designer.command.executed", "**", true},
		{"designer.command.executed", "*.command.*", true},
		{"designer.command.executed", "designer.command.undone", false},
		{"designer", "designer.**", true},
		{"designer", "designer.*", false},
		{"config.reloaded", "designer.**", false},
		{"a.b.c.d", "a.**.d", true},
		{"a.d", "a.**.d", true},
		{"a.b.c", "a.**.d", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.topic)+"~"+string(tt.pattern), func(t *testing.T) {
			if got := tt.topic.Matches(tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	if got := Topic("a.b.c").Segments(); len(got) != 3 {
		t.Errorf("Segments = %v", got)
	}
	if got := Topic("").Segments(); got != nil {
		t.Errorf("empty Segments = %v", got)
	}
}

func TestParentChildBase(t *testing.T) {
	tp := Topic("designer.command")
	if got := tp.Child("merged"); got != "designer.command.merged" {
		t.Errorf("Child = %q", got)
	}
	if got := tp.Parent(); got != "designer" {
		t.Errorf("Parent = %q", got)
	}
	if got := Topic("designer").Parent(); got != "" {
		t.Errorf("top-level Parent = %q", got)
	}
	if got := tp.Base(); got != "command" {
		t.Errorf("Base = %q", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"designer.command.executed", true},
		{"designer", true},
		{"", false},
		{".designer", false},
		{"designer.", false},
		{"designer..command", false},
	}
	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("designer", "command", "executed"); got != "designer.command.executed" {
		t.Errorf("Join = %q", got)
	}
}
