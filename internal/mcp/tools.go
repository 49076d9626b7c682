package mcp

import "github.com/mark3labs/mcp-go/mcp"

var translateToolDef = mcp.NewTool("translate",
	mcp.WithDescription("Translate text to Japanese. Returns the phrase with romaji, pronunciation guide, tone, cultural note, and a word-by-word breakdown. The result is recorded in recent history."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Text to translate into Japanese"),
	),
	mcp.WithString("source_lang",
		mcp.Description("Source language hint; \"auto\" detects (default)"),
	),
)

var dictionaryToolDef = mcp.NewTool("dictionary_lookup",
	mcp.WithDescription("Look up a Japanese word or phrase. Returns reading, romaji, meanings, part of speech, JLPT level, per-kanji breakdown, usage notes, and example sentences."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Japanese word or phrase to look up"),
	),
)

var historyListToolDef = mcp.NewTool("history_list",
	mcp.WithDescription("List translation history. The recent collection is capped and deduplicated by input text; the saved collection holds starred items."),
	mcp.WithString("collection",
		mcp.Description("Which collection to list: \"recent\" (default) or \"saved\""),
	),
)

var savedToggleToolDef = mcp.NewTool("saved_toggle",
	mcp.WithDescription("Save or unsave a history item by ID. Toggling an item whose Japanese text is already saved removes the saved entry."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("History item ID (from history_list)"),
	),
)

var exportToolDef = mcp.NewTool("history_export",
	mcp.WithDescription("Export a collection to a dated JSON file (nihongo-<collection>-<date>.json). Defaults to the saved collection and the exports directory."),
	mcp.WithString("collection",
		mcp.Description("Collection to export: \"saved\" (default) or \"recent\""),
	),
	mcp.WithString("dir",
		mcp.Description("Directory to write the export into; defaults to the exports directory"),
	),
)

var importToolDef = mcp.NewTool("history_import",
	mcp.WithDescription("Import a previously exported JSON file into the saved collection. The whole file is validated before anything is applied; imported records win on collision."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the export file"),
	),
)
