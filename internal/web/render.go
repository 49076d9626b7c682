package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a structured error response. Unknown error types are
// wrapped as INTERNAL before serialization so the code field is always set.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternal(err)
	}
	if log != nil && appErr.Status >= 500 {
		log.Error("request failed", "code", appErr.Code, "error", appErr.Message)
	}

	writeJSON(w, appErr.Status, map[string]any{
		"error": map[string]any{
			"code":    string(appErr.Code),
			"message": appErr.Message,
			"status":  appErr.Status,
		},
	})
}

const studySheetShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s — Study Sheet</title>
<style>
body { font-family: sans-serif; max-width: 42rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; width: 100%%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
blockquote { color: #555; border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; }
</style>
</head>
<body>
%s
</body>
</html>
`

// renderStudySheet writes a printable HTML page for one history item. The
// sheet body is authored as markdown and converted with goldmark.
func renderStudySheet(w http.ResponseWriter, item *phrase.HistoryItem) {
	md := studyMarkdown(item)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		// Fall back to the escaped source rather than failing the page.
		buf.Reset()
		buf.WriteString("<pre>" + template.HTMLEscapeString(md) + "</pre>")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, studySheetShell, template.HTMLEscapeString(item.Result.Japanese), buf.String())
}

// studyMarkdown builds the markdown source of a study sheet.
func studyMarkdown(item *phrase.HistoryItem) string {
	r := item.Result

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Japanese)
	fmt.Fprintf(&b, "**%s** · *%s*\n\n", r.Romaji, r.Tone)
	fmt.Fprintf(&b, "Say it like: %s\n\n", r.Pronunciation)
	fmt.Fprintf(&b, "Meaning: %s\n\n", r.EnglishMeaning)
	fmt.Fprintf(&b, "Original: %s\n\n", item.OriginalText)

	if r.CulturalNote != "" {
		fmt.Fprintf(&b, "> %s\n\n", r.CulturalNote)
	}

	if len(r.Breakdown) > 0 {
		b.WriteString("## Word by word\n\n")
		b.WriteString("| Word | Romaji | Meaning | Part of speech |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, word := range r.Breakdown {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", word.Word, word.Romaji, word.Meaning, word.PartOfSpeech)
		}
		b.WriteString("\n")

		for _, word := range r.Breakdown {
			if word.ExampleSentence != "" {
				fmt.Fprintf(&b, "- **%s**: %s\n", word.Word, word.ExampleSentence)
			}
		}
	}

	fmt.Fprintf(&b, "\n---\n\nTranslated %s\n", item.Timestamp.Format("2006-01-02 15:04 MST"))
	return b.String()
}
