package audiotag

import "testing"

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := applyOptions(nil)

		if opts.format != 0 {
			t.Errorf("expected no format, got %v", opts.format)
		}
		if opts.id3v2Version != 0 {
			t.Errorf("expected no ID3v2 version, got %d", opts.id3v2Version)
		}
		if opts.strategy != StrategyPreserve {
			t.Errorf("expected %v, got %v", StrategyPreserve, opts.strategy)
		}
		if opts.backupSuffix != "" {
			t.Errorf("expected empty backupSuffix, got %q", opts.backupSuffix)
		}
		if opts.validate {
			t.Error("expected validate to be false")
		}
		if opts.preserveModTime {
			t.Error("expected preserveModTime to be false")
		}
	})

	t.Run("WithFormat", func(t *testing.T) {
		opts := applyOptions([]Option{WithFormat(FormatID3v1)})

		if opts.format != FormatID3v1 {
			t.Errorf("expected %v, got %v", FormatID3v1, opts.format)
		}
	})

	t.Run("WithID3v2Version", func(t *testing.T) {
		opts := applyOptions([]Option{WithID3v2Version(4)})

		if opts.id3v2Version != 4 {
			t.Errorf("expected 4, got %d", opts.id3v2Version)
		}

		opts = applyOptions([]Option{WithID3v2Version(260)})
		if opts.id3v2Version != 260 {
			t.Errorf("expected 260 to be kept as given, got %d", opts.id3v2Version)
		}
	})

	t.Run("WithBackup", func(t *testing.T) {
		opts := applyOptions([]Option{WithBackup(".bak")})

		if opts.backupSuffix != ".bak" {
			t.Errorf("expected backupSuffix %q, got %q", ".bak", opts.backupSuffix)
		}
	})

	t.Run("later options win", func(t *testing.T) {
		opts := applyOptions([]Option{
			WithStrategy(StrategySync),
			WithValidation(),
			WithPreserveModTime(),
			WithStrategy(StrategyCleanup),
		})

		if opts.strategy != StrategyCleanup {
			t.Errorf("expected %v, got %v", StrategyCleanup, opts.strategy)
		}
		if !opts.validate || !opts.preserveModTime {
			t.Error("expected validate and preserveModTime to be set")
		}
	})
}

func TestStrategy_String(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{StrategyPreserve, "preserve"},
		{StrategySync, "sync"},
		{StrategyCleanup, "cleanup"},
		{Strategy(9), "Strategy(9)"},
	}

	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d: got %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
