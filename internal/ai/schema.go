package ai

import "google.golang.org/genai"

// Output schemas for the schema-constrained operations. The backend is
// forced into these shapes, but responses are still validated after
// deserialization: a backend can honor the syntax and miss the semantics.

// translationSchema constrains the translate operation.
// Tone is restricted to the three enumerated registers; breakdown items
// require word, romaji, meaning, and partOfSpeech at minimum.
var translationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"japanese": {Type: genai.TypeString, Description: "The Japanese translation"},
		"romaji":   {Type: genai.TypeString, Description: "Latin transliteration of the Japanese text"},
		"pronunciation": {
			Type:        genai.TypeString,
			Description: "Phonetic pronunciation guide for an English speaker",
		},
		"englishMeaning": {Type: genai.TypeString, Description: "Literal English meaning of the translation"},
		"tone": {
			Type: genai.TypeString,
			Enum: []string{"Casual", "Polite", "Formal"},
		},
		"culturalNote": {Type: genai.TypeString, Description: "Optional cultural usage note"},
		"breakdown": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"word":            {Type: genai.TypeString},
					"romaji":          {Type: genai.TypeString},
					"meaning":         {Type: genai.TypeString},
					"partOfSpeech":    {Type: genai.TypeString},
					"exampleSentence": {Type: genai.TypeString},
				},
				Required: []string{"word", "romaji", "meaning", "partOfSpeech"},
			},
		},
	},
	Required: []string{"japanese", "romaji", "pronunciation", "englishMeaning", "tone", "breakdown"},
}

// dictionarySchema constrains dictionary lookups. The found flag lets the
// backend mark unrecognized terms without breaking the shape.
var dictionarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"found": {
			Type:        genai.TypeBoolean,
			Description: "False when the term is not a recognized Japanese word or phrase",
		},
		"word":    {Type: genai.TypeString},
		"reading": {Type: genai.TypeString, Description: "Kana reading"},
		"romaji":  {Type: genai.TypeString},
		"meanings": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"partOfSpeech": {Type: genai.TypeString},
		"jlptLevel":    {Type: genai.TypeString, Description: "JLPT level such as N5, if known"},
		"kanjiBreakdown": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"character": {Type: genai.TypeString},
					"onyomi":    {Type: genai.TypeString},
					"kunyomi":   {Type: genai.TypeString},
					"meaning":   {Type: genai.TypeString},
				},
				Required: []string{"character"},
			},
		},
		"usageNotes": {Type: genai.TypeString},
		"exampleSentences": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ja": {Type: genai.TypeString},
					"en": {Type: genai.TypeString},
				},
				Required: []string{"ja", "en"},
			},
		},
	},
	Required: []string{"found", "word", "reading", "romaji", "meanings", "partOfSpeech", "exampleSentences"},
}

// pronunciationSchema constrains pronunciation evaluation.
var pronunciationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score": {
			Type:        genai.TypeInteger,
			Description: "Accuracy score from 0 to 100",
		},
		"transcript": {Type: genai.TypeString, Description: "What was actually heard"},
		"feedback":   {Type: genai.TypeString, Description: "Short actionable feedback"},
	},
	Required: []string{"score", "transcript", "feedback"},
}
