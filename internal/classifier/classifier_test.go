package classifier_test

import (
	"slices"
	"sync"
	"testing"

	"github.com/JaimeStill/vouch/internal/classifier"
)

func TestClassify(t *testing.T) {
	c := classifier.New()

	tests := []struct {
		name     string
		text     string
		matched  bool
		evidence string
	}{
		{"empty text", "", false, ""},
		{"name field", "氏名: 山田太郎", true, "氏名"},
		{"health insurance card", "健康保険証\n記号 123 番号 45\n氏名 山田花子", true, "健康保険証"},
		{"driver license", "運転免許証 有効期限 令和8年", true, "運転免許証"},
		{"my number", "個人番号カード", true, "個人番号"},
		{"unrelated receipt", "領収書 合計 1,200円", false, ""},
		{"english text", "Hello world", false, ""},
		{"halfwidth variant not normalized", "ﾏｲﾅﾝﾊﾞｰ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)

			if got.Matched != tt.matched {
				t.Fatalf("Classify(%q).Matched = %v, want %v", tt.text, got.Matched, tt.matched)
			}
			if !tt.matched {
				if got.Evidence != nil {
					t.Errorf("Evidence = %q, want nil", *got.Evidence)
				}
				return
			}
			if got.Evidence == nil || *got.Evidence != tt.evidence {
				t.Errorf("Evidence = %v, want %q", got.Evidence, tt.evidence)
			}
		})
	}
}

func TestClassifyFirstKeywordWins(t *testing.T) {
	c := classifier.New()

	got := c.Classify("生年月日 昭和60年 氏名 山田太郎 運転免許証")
	if got.Evidence == nil || *got.Evidence != "運転免許証" {
		t.Errorf("Evidence = %v, want 運転免許証 (earliest in keyword list)", got.Evidence)
	}
}

func TestClassifyCustomKeywords(t *testing.T) {
	c := classifier.New("Passport", "氏名")

	if got := c.Classify("PASSPORT"); got.Matched {
		t.Error("matching should be case-sensitive")
	}
	if got := c.Classify("Passport No. TK1234567"); !got.Matched || *got.Evidence != "Passport" {
		t.Errorf("Classify() = %+v, want Passport match", got)
	}
	if got := c.Classify("運転免許証"); got.Matched {
		t.Error("default keywords should not apply when custom keywords are given")
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := classifier.New()
	text := "マイナンバーカード 氏名 山田太郎"

	first := c.Classify(text)
	for range 5 {
		got := c.Classify(text)
		if got.Matched != first.Matched || *got.Evidence != *first.Evidence {
			t.Fatalf("Classify() = %+v, want %+v", got, first)
		}
	}
}

func TestClassifyConcurrent(t *testing.T) {
	c := classifier.New()

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			if got := c.Classify("氏名"); !got.Matched {
				t.Error("concurrent Classify() should match")
			}
		})
	}
	wg.Wait()
}

func TestNewCopiesKeywords(t *testing.T) {
	kw := []string{"氏名", "生年月日"}
	c := classifier.New(kw...)
	kw[0] = "changed"

	if got := c.Keywords(); !slices.Equal(got, []string{"氏名", "生年月日"}) {
		t.Errorf("Keywords() = %v, caller mutation should not leak", got)
	}
}

func TestNewDropsEmptyKeywords(t *testing.T) {
	c := classifier.New("", "氏名")

	if got := c.Classify("領収書"); got.Matched {
		t.Error("empty keyword should not match every text")
	}
}

func TestLabel(t *testing.T) {
	if got := (classifier.Judgement{Matched: true}).Label(); got != "identity-document" {
		t.Errorf("Label() = %q, want identity-document", got)
	}
	if got := (classifier.Judgement{}).Label(); got != "unknown" {
		t.Errorf("Label() = %q, want unknown", got)
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg classifier.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if !slices.Equal(cfg.Keywords, classifier.DefaultKeywords) {
			t.Errorf("Keywords = %v, want defaults", cfg.Keywords)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_CLASSIFIER_KEYWORDS", "氏名, 住所")

		var cfg classifier.Config
		if err := cfg.Finalize(&classifier.Env{Keywords: "TEST_CLASSIFIER_KEYWORDS"}); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if !slices.Equal(cfg.Keywords, []string{"氏名", "住所"}) {
			t.Errorf("Keywords = %v, want [氏名 住所]", cfg.Keywords)
		}
	})

	t.Run("empty keyword rejected", func(t *testing.T) {
		cfg := classifier.Config{Keywords: []string{"氏名", ""}}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected validation error")
		}
	})
}
