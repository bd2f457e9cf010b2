package render

import "testing"

func TestAvailableTUIThemes(t *testing.T) {
	for _, theme := range AvailableTUIThemes() {
		if theme.Name == "" || theme.Description == "" {
			t.Errorf("theme %+v is missing name or description", theme)
		}
		if string(theme.Primary) == "" || string(theme.Secondary) == "" || string(theme.Text) == "" {
			t.Errorf("theme %s is missing colours", theme.Name)
		}
		if !IsStandardStyle(theme.MarkdownStyle) {
			t.Errorf("theme %s uses unknown markdown style %q", theme.Name, theme.MarkdownStyle)
		}
	}

	names := TUIThemeNames()
	if len(names) != len(AvailableTUIThemes()) {
		t.Errorf("expected %d names, got %d", len(AvailableTUIThemes()), len(names))
	}
}

func TestSetTUITheme(t *testing.T) {
	defer SetTUITheme("tokyonight")

	if !SetTUITheme("lux") {
		t.Fatal("expected lux theme to exist")
	}
	if GetTUITheme().Name != "lux" {
		t.Errorf("expected active theme lux, got %s", GetTUITheme().Name)
	}

	if SetTUITheme("nope") {
		t.Error("expected unknown theme to be rejected")
	}
	if GetTUITheme().Name != "lux" {
		t.Error("unknown theme must not change the active theme")
	}
}

func TestOptionsForTheme(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	opts := OptionsForTheme(DraculaTheme, 70)
	if opts.Style != "dracula" || opts.Width != 70 {
		t.Errorf("unexpected options %+v", opts)
	}

	t.Setenv("GLAMOUR_STYLE", "notty")
	if OptionsForTheme(DraculaTheme, 70).Style != "notty" {
		t.Error("expected GLAMOUR_STYLE to take precedence")
	}
}
