package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var lines []string
	lines = append(lines, "# inkleaf configuration (TOML)", "")
	top, sections, order := groupOptions(GetConfigOptions())
	for _, o := range top {
		lines = appendOption(lines, o)
	}
	for _, section := range order {
		lines = append(lines, "["+section+"]")
		for _, o := range sections[section] {
			lines = appendOption(lines, o)
		}
	}
	return strings.Join(lines, "\n")
}

// UpdateTOML merges defaults into an existing TOML string and comments out
// unknown keys. It reports whether anything changed.
func UpdateTOML(existing string) (string, bool) {
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	// sectionEnd is the index in out just past the last line of each table.
	sectionEnd := make(map[string]int)
	section := ""
	out := make([]string, 0)
	changed := false
	for _, line := range strings.Split(existing, "\n") {
		trim := strings.TrimSpace(line)
		if strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") {
			section = strings.TrimSpace(trim[1 : len(trim)-1])
			out = append(out, line)
			sectionEnd[section] = len(out)
			continue
		}
		if key, ok := parseTOMLKey(line); ok && !strings.HasPrefix(trim, "#") {
			if section != "" {
				key = section + "." + key
			}
			seen[key] = true
			if !known[key] {
				indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
				out = append(out, indent+"# OUTDATED: option removed from config schema")
				line = indent + "# " + strings.TrimLeft(line, " \t")
				changed = true
			}
		}
		out = append(out, line)
		if section != "" && trim != "" {
			sectionEnd[section] = len(out)
		}
	}

	var missing []ConfigOption
	for _, o := range GetConfigOptions() {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	top, sections, order := groupOptions(missing)

	// Keys of tables that already exist go at the end of that table, last
	// table in the file first so earlier indexes stay valid.
	var existingTables []string
	for _, s := range order {
		if _, ok := sectionEnd[s]; ok {
			existingTables = append(existingTables, s)
		}
	}
	sort.Slice(existingTables, func(i, j int) bool {
		return sectionEnd[existingTables[i]] > sectionEnd[existingTables[j]]
	})
	for _, s := range existingTables {
		at := sectionEnd[s]
		var block []string
		for _, o := range sections[s] {
			block = appendOption(block, o)
		}
		out = append(out[:at], append(block, out[at:]...)...)
	}
	var fresh []string
	for _, s := range order {
		if _, ok := sectionEnd[s]; ok {
			continue
		}
		fresh = append(fresh, "["+s+"]")
		for _, o := range sections[s] {
			fresh = appendOption(fresh, o)
		}
	}

	// Root keys must precede the first table header.
	if len(top) > 0 {
		var block []string
		block = append(block, "# Added by config update")
		for _, o := range top {
			block = appendOption(block, o)
		}
		at := len(out)
		for i, line := range out {
			t := strings.TrimSpace(line)
			if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
				at = i
				break
			}
		}
		out = append(out[:at], append(block, out[at:]...)...)
	}
	if len(fresh) > 0 {
		out = append(out, "", "# Added by config update")
		out = append(out, fresh...)
	}
	return strings.Join(out, "\n"), true
}

// groupOptions splits dotted keys into sections, preserving declaration order.
func groupOptions(opts []ConfigOption) (top []ConfigOption, sections map[string][]ConfigOption, order []string) {
	sections = make(map[string][]ConfigOption)
	for _, o := range opts {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, seen := sections[section]; !seen {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func parseTOMLKey(line string) (string, bool) {
	key, _, ok := strings.Cut(line, "=")
	if !ok {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

func appendOption(lines []string, o ConfigOption) []string {
	if o.Comment != "" {
		lines = append(lines, "# "+o.Comment)
	}
	return append(lines, fmt.Sprintf("%s = %s", o.Key, tomlValue(o.Default)), "")
}

func tomlValue(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case time.Duration:
		return strconv.Quote(v.String())
	case []string:
		q := make([]string, 0, len(v))
		for _, s := range v {
			q = append(q, strconv.Quote(s))
		}
		return "[" + strings.Join(q, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
