package romaji

import "testing"

func TestKatakanaToRomaji(t *testing.T) {
	tests := []struct {
		kana string
		want string
	}{
		{"コンニチハ", "konnichiha"},
		{"ミズ", "mizu"},
		{"キョウ", "kyou"},
		{"シャシン", "shashin"},
		{"ガッコウ", "gakkou"},
		{"マッチャ", "matcha"},
		{"ラーメン", "raamen"},
		{"チーズ", "chiizu"},
		{"パーティー", "paatii"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := KatakanaToRomaji(tt.kana); got != tt.want {
			t.Errorf("KatakanaToRomaji(%q) = %q, want %q", tt.kana, got, tt.want)
		}
	}
}

func TestKatakanaToRomaji_HiraganaInput(t *testing.T) {
	if got := KatakanaToRomaji("ありがとう"); got != "arigatou" {
		t.Errorf("hiragana input = %q, want arigatou", got)
	}
}

func TestKatakanaToRomaji_PassThrough(t *testing.T) {
	// Non-kana runes survive unchanged.
	if got := KatakanaToRomaji("ABCカ"); got != "ABCka" {
		t.Errorf("mixed input = %q, want ABCka", got)
	}
}

func TestIsJapanese(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"おはよう", true},
		{"カタカナ", true},
		{"漢字", true},
		{"水を飲む", true},
		{"hello", false},
		{"12345", false},
		{"", false},
		{"mixed 水", true},
	}

	for _, tt := range tests {
		if got := IsJapanese(tt.input); got != tt.want {
			t.Errorf("IsJapanese(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
