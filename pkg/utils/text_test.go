package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePostText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"plain", "TSLA to the moon!", "TSLA to the moon!"},
		{"http url", "see https://example.com/a?b=1 now", "see now"},
		{"www url", "visit www.example.com today", "visit today"},
		{"subreddit ref", "posted in r/wallstreetbets earlier", "posted in earlier"},
		{"user ref", "thanks u/some_user_42 for this", "thanks for this"},
		{"emoji", "GME 🚀🚀🚀 rocket 💎🙌", "GME rocket"},
		{"dingbat", "done ✅ ok", "done ok"},
		{"flags", "made in 🇺🇸 factory", "made in factory"},
		{"punctuation kept", "Up 5% at $200, isn't it? -yes.", "Up 5% at $200, isn't it? -yes."},
		{"punctuation replaced", "calls*puts#(hedge)", "calls puts hedge"},
		{"collapse whitespace", "a  \n\n b\t\tc", "a b c"},
		{"markdown", "**Bold** _claim_ > quote", "Bold claim quote"},
		{"url before no-break space", "https://x.com/a\u00a0bullish on TSLA", "bullish on TSLA"},
		{"url before ideographic space", "www.x.com\u3000moon", "moon"},
		{"subreddit ref with accents", "r/josé123 is hyped", "is hyped"},
		{"user ref with accents", "thanks u/björn_99 today", "thanks today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePostText(tt.in))
		})
	}
}

func TestNormalizePostText_OnlyAllowedCharacters(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-zA-Z0-9.,!?'\-$% ]*$`)
	inputs := []string{
		"Ünïcödé café — déjà vu «quotes»",
		"mixed\r\n\ttabs and   spaces ",
		"💰 $NVDA earnings 📈 beat by 12.5%!!! https://t.co/xyz",
		"中文 текст عربى",
		"[link](http://x.y) ~~strike~~ `code` {json: 1}",
		string([]byte{0xff, 0xfe, 'o', 'k'}),
		"  leading and trailing  ",
	}

	for _, in := range inputs {
		out := NormalizePostText(in)
		assert.Regexp(t, allowed, out, "input %q", in)
		assert.NotContains(t, out, "  ", "input %q", in)
		assert.Equal(t, strings.TrimSpace(out), out, "input %q", in)
	}
}

func TestNormalizePostText_Idempotent(t *testing.T) {
	in := "Apple r/stocks u/bob https://apple.com 🍎 is $AAPL a buy?? 100%"

	first := NormalizePostText(in)
	assert.Equal(t, first, NormalizePostText(in))
	assert.Equal(t, first, NormalizePostText(first))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3, "..."))
	assert.Equal(t, "ab...", Truncate("abc", 2, "..."))
	assert.Equal(t, "", Truncate("", 3, "..."))

	long := strings.Repeat("é", 301)
	got := Truncate(long, 300, "...")
	assert.Equal(t, strings.Repeat("é", 300)+"...", got)
	assert.Len(t, []rune(got), 303)
}
