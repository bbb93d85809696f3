package util

import "testing"

func TestParseSize_Success(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"plain bytes", "1024", 1024},
		{"kilobytes", "512KB", 512 * 1024},
		{"megabytes", "10MB", 10 * 1024 * 1024},
		{"gigabytes", "2GB", 2 * 1024 * 1024 * 1024},
		{"lowercase", "10mb", 10 * 1024 * 1024},
		{"whitespace", "  5MB ", 5 * 1024 * 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSize(tt.input, 0); got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSize_Default(t *testing.T) {
	const def = int64(42)
	for _, input := range []string{"", "abc", "-1MB", "MB"} {
		if got := ParseSize(input, def); got != def {
			t.Errorf("ParseSize(%q) = %d, want default %d", input, got, def)
		}
	}
}

func TestMaskSecret_Success(t *testing.T) {
	if got := MaskSecret("supersecretvalue", 4); got != "supe***" {
		t.Errorf("expected prefix mask, got %q", got)
	}
}

func TestMaskSecret_ShortValue(t *testing.T) {
	if got := MaskSecret("abc", 4); got != "***" {
		t.Errorf("short secrets must be fully masked, got %q", got)
	}
	if got := MaskSecret("", 4); got != "***" {
		t.Errorf("empty secrets must be fully masked, got %q", got)
	}
}
