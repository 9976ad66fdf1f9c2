package cli

import "testing"

func TestDialogueFormats(t *testing.T) {
	tests := []struct {
		input   string
		wantSRT bool
		wantASS bool
		wantErr bool
	}{
		{"srt", true, false, false},
		{"ass", false, true, false},
		{"both", true, true, false},
		{"SRT", true, false, false},
		{"vtt", false, false, true},
		{"", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			srt, ass, err := dialogueFormats(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if srt != tt.wantSRT || ass != tt.wantASS {
				t.Errorf("dialogueFormats(%q) = (%v, %v), want (%v, %v)",
					tt.input, srt, ass, tt.wantSRT, tt.wantASS)
			}
		})
	}
}

func TestBaseNameWithoutExt(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/media/episode01.mkv", "episode01"},
		{"song.flac", "song"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := baseNameWithoutExt(tt.input); got != tt.want {
			t.Errorf("baseNameWithoutExt(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolveAPIKeyPrefersFlag(t *testing.T) {
	key, err := resolveAPIKey("flag-key", "openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "flag-key" {
		t.Errorf("key = %q, want flag value", key)
	}
}

func TestResolveAPIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	key, err := resolveAPIKey("", "gemini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "env-key" {
		t.Errorf("key = %q, want env value", key)
	}
}

func TestResolveAPIKeyMissing(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := resolveAPIKey("", "anthropic"); err == nil {
		t.Error("expected error when no key available")
	}
}

func TestResolveAPIKeyUnknownProvider(t *testing.T) {
	if _, err := resolveAPIKey("", "whisper-cpp"); err == nil {
		t.Error("expected error for unknown provider")
	}
}
