package romaji

import (
	"strings"
	"unicode"
)

// kanaRomaji maps katakana strings to Hepburn romaji.
// Two-character entries (yōon and foreign digraphs) are checked before
// single characters (longest match).
var kanaRomaji = []struct {
	kana  string
	roman string
}{
	// 拗音 (2文字) — must come before single-char entries
	{"キャ", "kya"}, {"キュ", "kyu"}, {"キョ", "kyo"},
	{"ギャ", "gya"}, {"ギュ", "gyu"}, {"ギョ", "gyo"},
	{"シャ", "sha"}, {"シュ", "shu"}, {"ショ", "sho"},
	{"ジャ", "ja"}, {"ジュ", "ju"}, {"ジョ", "jo"},
	{"チャ", "cha"}, {"チュ", "chu"}, {"チョ", "cho"},
	{"ニャ", "nya"}, {"ニュ", "nyu"}, {"ニョ", "nyo"},
	{"ヒャ", "hya"}, {"ヒュ", "hyu"}, {"ヒョ", "hyo"},
	{"ビャ", "bya"}, {"ビュ", "byu"}, {"ビョ", "byo"},
	{"ピャ", "pya"}, {"ピュ", "pyu"}, {"ピョ", "pyo"},
	{"ミャ", "mya"}, {"ミュ", "myu"}, {"ミョ", "myo"},
	{"リャ", "rya"}, {"リュ", "ryu"}, {"リョ", "ryo"},
	// 外来語
	{"ティ", "ti"}, {"ディ", "di"}, {"デュ", "dyu"}, {"トゥ", "tu"}, {"ドゥ", "du"},
	{"ファ", "fa"}, {"フィ", "fi"}, {"フェ", "fe"}, {"フォ", "fo"},
	{"チェ", "che"}, {"シェ", "she"}, {"ジェ", "je"},
	{"ウィ", "wi"}, {"ウェ", "we"}, {"ウォ", "wo"},
	{"ヴァ", "va"}, {"ヴィ", "vi"}, {"ヴェ", "ve"}, {"ヴォ", "vo"},
	{"ツァ", "tsa"}, {"ツィ", "tsi"}, {"ツェ", "tse"}, {"ツォ", "tso"},
	{"イェ", "ye"},

	// 単独カナ
	{"ア", "a"}, {"イ", "i"}, {"ウ", "u"}, {"エ", "e"}, {"オ", "o"},
	{"カ", "ka"}, {"キ", "ki"}, {"ク", "ku"}, {"ケ", "ke"}, {"コ", "ko"},
	{"ガ", "ga"}, {"ギ", "gi"}, {"グ", "gu"}, {"ゲ", "ge"}, {"ゴ", "go"},
	{"サ", "sa"}, {"シ", "shi"}, {"ス", "su"}, {"セ", "se"}, {"ソ", "so"},
	{"ザ", "za"}, {"ジ", "ji"}, {"ズ", "zu"}, {"ゼ", "ze"}, {"ゾ", "zo"},
	{"タ", "ta"}, {"チ", "chi"}, {"ツ", "tsu"}, {"テ", "te"}, {"ト", "to"},
	{"ダ", "da"}, {"ヂ", "ji"}, {"ヅ", "zu"}, {"デ", "de"}, {"ド", "do"},
	{"ナ", "na"}, {"ニ", "ni"}, {"ヌ", "nu"}, {"ネ", "ne"}, {"ノ", "no"},
	{"ハ", "ha"}, {"ヒ", "hi"}, {"フ", "fu"}, {"ヘ", "he"}, {"ホ", "ho"},
	{"バ", "ba"}, {"ビ", "bi"}, {"ブ", "bu"}, {"ベ", "be"}, {"ボ", "bo"},
	{"パ", "pa"}, {"ピ", "pi"}, {"プ", "pu"}, {"ペ", "pe"}, {"ポ", "po"},
	{"マ", "ma"}, {"ミ", "mi"}, {"ム", "mu"}, {"メ", "me"}, {"モ", "mo"},
	{"ヤ", "ya"}, {"ユ", "yu"}, {"ヨ", "yo"},
	{"ラ", "ra"}, {"リ", "ri"}, {"ル", "ru"}, {"レ", "re"}, {"ロ", "ro"},
	{"ワ", "wa"}, {"ヲ", "o"}, {"ン", "n"},
	{"ヴ", "vu"},
	{"ァ", "a"}, {"ィ", "i"}, {"ゥ", "u"}, {"ェ", "e"}, {"ォ", "o"},
	{"ャ", "ya"}, {"ュ", "yu"}, {"ョ", "yo"},
}

// KatakanaToRomaji converts a katakana string to modified Hepburn romaji.
// Hiragana input is promoted to katakana first. The sokuon (ッ) doubles the
// following consonant; the chōonpu (ー) repeats the previous vowel.
// Characters outside kana pass through unchanged.
func KatakanaToRomaji(kana string) string {
	runes := []rune(hiraganaToKatakana(kana))
	var b strings.Builder
	geminate := false

	for i := 0; i < len(runes); {
		// Sokuon: remember to double the next consonant.
		if runes[i] == 'ッ' {
			geminate = true
			i++
			continue
		}

		// Chōonpu: repeat the last vowel written so far.
		if runes[i] == 'ー' {
			out := b.String()
			if len(out) > 0 {
				last := out[len(out)-1]
				if strings.ContainsRune("aiueo", rune(last)) {
					b.WriteByte(last)
				}
			}
			i++
			continue
		}

		roman, consumed := matchKana(runes[i:])
		if consumed == 0 {
			b.WriteRune(runes[i])
			i++
			continue
		}

		if geminate && len(roman) > 0 {
			// "チ" geminates to "tchi" in Hepburn, everything else doubles
			// the initial consonant.
			if strings.HasPrefix(roman, "ch") {
				b.WriteByte('t')
			} else if !strings.ContainsRune("aiueo", rune(roman[0])) {
				b.WriteByte(roman[0])
			}
			geminate = false
		}

		b.WriteString(roman)
		i += consumed
	}

	return b.String()
}

// matchKana finds the longest kana entry at the head of runes.
// Returns the romaji and the number of runes consumed (0 if no match).
func matchKana(runes []rune) (string, int) {
	for _, entry := range kanaRomaji {
		ek := []rune(entry.kana)
		if len(ek) > len(runes) {
			continue
		}
		match := true
		for j := range ek {
			if runes[j] != ek[j] {
				match = false
				break
			}
		}
		if match {
			return entry.roman, len(ek)
		}
	}
	return "", 0
}

// hiraganaToKatakana shifts hiragana code points into the katakana block.
func hiraganaToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ぁ' && r <= 'ゖ' {
			return r + ('ァ' - 'ぁ')
		}
		return r
	}, s)
}

// IsJapanese reports whether s contains at least one Japanese-script rune
// (hiragana, katakana, or kanji).
func IsJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}
