package config

import (
	"time"
)

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state"},
		{Key: "storage_url", Default: "", Comment: "Storage backend: sqlite://<path>, file://<dir> or mem:// (empty = sqlite in data_dir)"},

		{Key: "preview.debounce", Default: time.Second, Comment: "Quiet period after the last edit before the preview is recomputed"},
		{Key: "preview.dir", Default: "", Comment: "Where live HTML previews are written (empty = data_dir/preview)"},
		{Key: "render.cache_size", Default: 128, Comment: "Rendered documents kept in memory; 0 disables the cache"},
		{Key: "tui.style", Default: "dracula", Comment: "Glamour style for terminal previews (dark, light, dracula, notty, ...)"},
		{Key: "tui.word_wrap", Default: 80, Comment: "Wrap width for terminal previews"},
		{Key: "log.level", Default: "warn", Comment: "Log level: debug, info, warn, error"},
		{Key: "log.format", Default: "console", Comment: "Log encoding: console or json"},
		{Key: "buildinfo.repo_url", Default: "", Comment: "Source repository URL used to link commits in `inkleaf version`"},
		{Key: "editor.delete_empty", Default: true, Comment: "Delete a new note if the editor exits with no title and no content"},
	}
}
