package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/ai"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/audio"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/config"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/errors"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/history"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/phrase"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/romaji"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/session"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/web"
)

// newBackendClient builds the AI client with the local romaji analyzer.
// The analyzer is optional; a dictionary load failure only disables the
// romaji backfill.
func newBackendClient(cfg *config.Config, log *slog.Logger) (*ai.Client, error) {
	analyzer, err := romaji.NewAnalyzer()
	if err != nil {
		if log != nil {
			log.Warn("tokenizer unavailable, romaji backfill disabled", "error", err)
		}
		analyzer = nil
	}
	return ai.NewClient(context.Background(), cfg, log, analyzer)
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(database *sql.DB, cfg *config.Config, log *slog.Logger) *cli.App {
	var store *history.Store
	if database != nil {
		store = history.NewStore(database, historyCap(cfg), log)
	}

	app := &cli.App{
		Name:    "nihongo",
		Usage:   "Japanese learning assistant",
		Version: Version,
		Commands: []*cli.Command{
			translateCmd(store, cfg, log),
			lookupCmd(cfg, log),
			transcribeCmd(cfg, log),
			pronounceCmd(cfg, log),
			speakCmd(cfg, log),
			historyCmd(store),
			savedCmd(store),
			exportCmd(store),
			importCmd(store),
			themeCmd(store),
			serveCmd(store, cfg, log),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func historyCap(cfg *config.Config) int {
	if cfg == nil {
		return 50
	}
	return cfg.HistoryCap
}

// translateCmd creates the translate command.
func translateCmd(store *history.Store, cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Usage:     "Translate text to Japanese (args or stdin)",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Usage: "Source language hint (default: auto)"},
		},
		Action: func(c *cli.Context) error {
			text, err := argOrStdin(c)
			if err != nil {
				return outputError(err)
			}

			client, err := newBackendClient(cfg, log)
			if err != nil {
				return outputError(err)
			}

			sourceLang := c.String("lang")
			if sourceLang == "" {
				sourceLang = cfg.SourceLang
			}

			result, err := client.Translate(c.Context, text, sourceLang)
			if err != nil {
				return outputError(err)
			}

			item, err := store.Record(text, *result)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(item)
		},
	}
}

// lookupCmd creates the lookup command.
func lookupCmd(cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Look up a Japanese word or phrase in the dictionary",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")
			if query == "" {
				return outputError(errors.NewInvalidRequest("query is required"))
			}

			client, err := newBackendClient(cfg, log)
			if err != nil {
				return outputError(err)
			}

			entry, err := client.LookupDictionary(c.Context, query)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(entry)
		},
	}
}

// transcribeCmd creates the transcribe command.
func transcribeCmd(cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "transcribe",
		Usage: "Transcribe an audio file to text",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "Audio file path"},
			&cli.StringFlag{Name: "mime", Aliases: []string{"m"}, Usage: "Audio MIME type (default: inferred from extension)"},
		},
		Action: func(c *cli.Context) error {
			audioB64, mimeType, err := readAudioFile(c.String("file"), c.String("mime"))
			if err != nil {
				return outputError(err)
			}

			client, err := newBackendClient(cfg, log)
			if err != nil {
				return outputError(err)
			}

			text, err := client.Transcribe(c.Context, audioB64, mimeType)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]string{"text": text})
		},
	}
}

// pronounceCmd creates the pronounce command.
func pronounceCmd(cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "pronounce",
		Usage: "Score a recorded pronunciation attempt against a reference phrase",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "Audio file path"},
			&cli.StringFlag{Name: "reference", Aliases: []string{"r"}, Required: true, Usage: "Expected Japanese phrase"},
			&cli.StringFlag{Name: "mime", Aliases: []string{"m"}, Usage: "Audio MIME type (default: inferred from extension)"},
		},
		Action: func(c *cli.Context) error {
			audioB64, mimeType, err := readAudioFile(c.String("file"), c.String("mime"))
			if err != nil {
				return outputError(err)
			}

			client, err := newBackendClient(cfg, log)
			if err != nil {
				return outputError(err)
			}

			result, err := client.EvaluatePronunciation(c.Context, audioB64, mimeType, c.String("reference"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(result)
		},
	}
}

// speakCmd creates the speak command.
func speakCmd(cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "speak",
		Usage:     "Synthesize Japanese speech to a WAV file",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "speech.wav", Usage: "Output WAV path"},
			&cli.Float64Flag{Name: "speed", Value: 1.0, Usage: "Playback speed multiplier (applied by the player)"},
		},
		Action: func(c *cli.Context) error {
			text, err := argOrStdin(c)
			if err != nil {
				return outputError(err)
			}

			client, err := newBackendClient(cfg, log)
			if err != nil {
				return outputError(err)
			}

			result, err := client.SynthesizeSpeech(c.Context, text, c.Float64("speed"))
			if err != nil {
				return outputError(err)
			}
			if result == nil {
				return outputError(errors.NewInvalidRequest("text is required"))
			}

			f, err := os.Create(c.String("out"))
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			defer f.Close()

			if err := audio.WriteWAV(f, result.PCM, result.SampleRate, result.Channels); err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"path":     c.String("out"),
				"duration": result.Buffer.Duration().Seconds(),
				"speed":    result.Speed,
			})
		},
	}
}

// historyCmd creates the history command with list/clear/delete subcommands.
func historyCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage recent translation history",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent translations, newest first",
				Action: func(c *cli.Context) error {
					items, err := store.Recent()
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"items": items})
				},
			},
			{
				Name:  "clear",
				Usage: "Clear recent history (saved items are untouched)",
				Action: func(c *cli.Context) error {
					if err := store.ClearRecent(); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"cleared": true})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete one recent item by ID",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}
					if err := store.Delete(history.CollectionRecent, id); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"deleted": true, "id": id})
				},
			},
		},
	}
}

// savedCmd creates the saved command with list/toggle subcommands.
func savedCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:  "saved",
		Usage: "Manage saved phrases",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved phrases",
				Action: func(c *cli.Context) error {
					items, err := store.Saved()
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"items": items})
				},
			},
			{
				Name:      "toggle",
				Usage:     "Save or unsave a history item by ID",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return outputError(errors.NewInvalidRequest("id is required"))
					}

					item, err := findItem(store, id)
					if err != nil {
						return outputError(err)
					}
					saved, err := store.ToggleSaved(*item)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"id": id, "saved": saved})
				},
			},
		},
	}
}

// exportCmd creates the export command.
func exportCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a collection to a dated JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "collection", Aliases: []string{"c"}, Value: "saved", Usage: "Collection: saved|recent"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Output directory (default: ~/.nihongo/exports)"},
		},
		Action: func(c *cli.Context) error {
			dir := c.String("dir")
			if dir == "" {
				homeDir, err := os.UserHomeDir()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				dir = filepath.Join(homeDir, ".nihongo", "exports")
			}

			path, err := store.ExportToFile(dir, history.Collection(c.String("collection")))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]string{"path": path})
		},
	}
}

// importCmd creates the import command.
func importCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import an exported JSON file into saved phrases",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
		},
		Action: func(c *cli.Context) error {
			data, err := os.ReadFile(c.String("path"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("failed to read import file: %v", err)))
			}

			n, err := store.Import(data)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]int{"imported": n})
		},
	}
}

// themeCmd creates the theme command.
func themeCmd(store *history.Store) *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "Get or set the UI theme (dark|light)",
		ArgsUsage: "[value]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				theme, err := store.Theme()
				if err != nil {
					return outputError(err)
				}
				return outputJSON(map[string]string{"theme": theme})
			}

			theme := c.Args().First()
			if err := store.SetTheme(theme); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]string{"theme": theme})
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(store *history.Store, cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the JSON API for the browser UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8480, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			client, err := newBackendClient(cfg, log)
			if err != nil {
				return outputError(err)
			}

			sess := session.New(client, store, nil, cfg.SourceLang, log)
			srv := web.NewServer(client, store, sess, cfg, log, c.String("bind"), c.Int("port"))
			if err := web.Run(srv, log); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// Helper functions

// findItem looks an item up by ID across recent and saved.
func findItem(store *history.Store, id string) (*phrase.HistoryItem, error) {
	recent, err := store.Recent()
	if err != nil {
		return nil, err
	}
	saved, err := store.Saved()
	if err != nil {
		return nil, err
	}
	for _, items := range [][]phrase.HistoryItem{recent, saved} {
		for i := range items {
			if items[i].ID == id {
				return &items[i], nil
			}
		}
	}
	return nil, errors.NewNotFound(id)
}

// argOrStdin returns joined positional args, falling back to piped stdin.
func argOrStdin(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	if !stdinHasData() {
		return "", errors.NewInvalidRequest("text must be given as arguments or piped via stdin")
	}
	return readStdin()
}

// readAudioFile reads and base64-encodes an audio file, inferring the MIME
// type from the extension when not given.
func readAudioFile(path, mimeType string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", errors.NewInvalidRequest(fmt.Sprintf("failed to open audio file: %v", err))
	}
	defer f.Close()

	audioB64, err := audio.EncodeToTransferable(f)
	if err != nil {
		return "", "", err
	}

	if mimeType == "" {
		mimeType = mimeForExtension(filepath.Ext(path))
	}
	return audioB64, mimeType, nil
}

// mimeForExtension maps common audio extensions to MIME types.
func mimeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	case ".m4a":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
