// Package bufconfig resolves per-buffer editing configuration (C3):
// indent style/size, tab width, end-of-line, charset, trim/final-newline
// policy. Grounded on _examples/original_source/core/src/config.rs, which
// itself credits https://github.com/mathphreak/mfte/blob/master/src/config.rs
// and layers an `.editorconfig`-equivalent source over sensible defaults.
// No editorconfig-parsing library exists in the retrieval pack, so the INI
// + glob resolver below is hand-rolled (DESIGN.md justifies this); the
// additional `.vedit.toml` override layer uses github.com/BurntSushi/toml.
package bufconfig

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// IndentStyle selects tab or space indentation.
type IndentStyle int

const (
	IndentSpace IndentStyle = iota
	IndentTab
)

// IndentSize is either a fixed column count or "follow tab_width".
type IndentSize struct {
	FollowTab bool
	Size      uint8
}

// EndOfLine selects the line terminator written on newline insertion.
type EndOfLine int

const (
	EOLLf EndOfLine = iota
	EOLCrLf
	EOLCr
)

// Charset is informational only (C3); vedit does not transcode text.
type Charset int

const (
	CharsetUTF8 Charset = iota
	CharsetUTF16BE
	CharsetUTF16LE
	CharsetLatin1
)

// Config is a resolved BufferConfig.
type Config struct {
	IndentStyle             IndentStyle
	IndentSize              IndentSize
	TabWidth                uint8
	EndOfLine               EndOfLine
	Charset                 Charset
	TrimTrailingWhitespace  bool
	InsertFinalNewline      bool
}

// Default returns the sensible-default configuration (space/4/utf8/lf,
// trim=true, final-nl=true).
func Default() Config {
	return Config{
		IndentStyle:            IndentSpace,
		IndentSize:             IndentSize{Size: 4},
		TabWidth:               4,
		EndOfLine:              EOLLf,
		Charset:                CharsetUTF8,
		TrimTrailingWhitespace: true,
		InsertFinalNewline:     true,
	}
}

// TabsConfig returns the tab-indented preset (tab_width 8).
func TabsConfig() Config {
	c := Default()
	c.IndentStyle = IndentTab
	c.IndentSize = IndentSize{FollowTab: true}
	c.TabWidth = 8
	return c
}

// SpacesConfig returns a space-indented preset with the given width.
func SpacesConfig(spaces uint8) Config {
	c := Default()
	c.IndentStyle = IndentSpace
	c.IndentSize = IndentSize{Size: spaces}
	c.TabWidth = spaces
	return c
}

// ForPath resolves configuration for a file path by walking its directory
// ancestry for `.editorconfig` sections that match the filename, then for a
// `.vedit.toml` file whose keys take precedence. An empty path yields
// Default().
func ForPath(path string) Config {
	result := Default()
	if path == "" {
		return result
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return result
	}
	overlayEditorConfig(&result, abs)
	overlayVeditTOML(&result, abs)
	return result
}

// overlayEditorConfig walks from the file's directory up to the filesystem
// root (or until a `root = true` section stops the walk), applying the
// first-found value for each key (closest directory wins, matching
// editorconfig's documented precedence), ignoring unknown keys and leaving
// defaults on unparseable values.
func overlayEditorConfig(cfg *Config, absPath string) {
	seen := map[string]bool{}
	dir := filepath.Dir(absPath)
	name := filepath.Base(absPath)
	for {
		ecPath := filepath.Join(dir, ".editorconfig")
		if kv, isRoot, ok := parseEditorConfig(ecPath, name); ok {
			for k, v := range kv {
				if !seen[k] {
					seen[k] = true
					applyKey(cfg, k, v)
				}
			}
			if isRoot {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}

// parseEditorConfig reads a minimal INI-style editorconfig file: `[glob]`
// section headers (matched against the file's base name with
// filepath.Match, so `*`, `*.go` and exact names work; brace and `**`
// globs do not) and `key = value` lines. Outside any section only a
// top-level `root = true` is recognized; other keys there are ignored.
func parseEditorConfig(path, filename string) (kv map[string]string, isRoot bool, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, false
	}
	defer f.Close()

	kv = map[string]string{}
	inMatchingSection := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			glob := line[1 : len(line)-1]
			inMatchingSection = globMatches(glob, filename)
			continue
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.ToLower(strings.TrimSpace(v))
		if k == "root" && !inMatchingSection {
			isRoot = v == "true"
			continue
		}
		if inMatchingSection {
			kv[k] = v
		}
	}
	return kv, isRoot, true
}

func globMatches(glob, filename string) bool {
	if glob == "*" {
		return true
	}
	if ok, err := filepath.Match(glob, filename); err == nil && ok {
		return true
	}
	return glob == filename
}

func applyKey(cfg *Config, key, value string) {
	switch key {
	case "indent_style":
		switch value {
		case "tab":
			cfg.IndentStyle = IndentTab
		case "space":
			cfg.IndentStyle = IndentSpace
		}
	case "indent_size":
		if value == "tab" {
			cfg.IndentSize = IndentSize{FollowTab: true}
		} else if n, err := strconv.ParseUint(value, 10, 8); err == nil {
			cfg.IndentSize = IndentSize{Size: uint8(n)}
		}
	case "tab_width":
		if n, err := strconv.ParseUint(value, 10, 8); err == nil && n >= 1 && n <= 16 {
			cfg.TabWidth = uint8(n)
		}
	case "end_of_line":
		switch value {
		case "cr":
			cfg.EndOfLine = EOLCr
		case "crlf":
			cfg.EndOfLine = EOLCrLf
		case "lf":
			cfg.EndOfLine = EOLLf
		}
	case "charset":
		switch value {
		case "latin1":
			cfg.Charset = CharsetLatin1
		case "utf-8", "utf8":
			cfg.Charset = CharsetUTF8
		case "utf-16be":
			cfg.Charset = CharsetUTF16BE
		case "utf-16le":
			cfg.Charset = CharsetUTF16LE
		}
	case "trim_trailing_whitespace":
		cfg.TrimTrailingWhitespace = value == "true"
	case "insert_final_newline":
		cfg.InsertFinalNewline = value == "true"
	}
}

// veditTOML mirrors Config's overridable fields for TOML decoding; only
// present keys are applied.
type veditTOML struct {
	IndentStyle            *string `toml:"indent_style"`
	IndentSize             *string `toml:"indent_size"`
	TabWidth               *uint8  `toml:"tab_width"`
	EndOfLine              *string `toml:"end_of_line"`
	TrimTrailingWhitespace *bool   `toml:"trim_trailing_whitespace"`
	InsertFinalNewline     *bool   `toml:"insert_final_newline"`
}

// overlayVeditTOML applies `.vedit.toml` in the file's own directory, if
// present; unlike the editorconfig walk this does not ascend, since it is
// meant as an explicit per-project pin rather than an inherited default.
func overlayVeditTOML(cfg *Config, absPath string) {
	dir := filepath.Dir(absPath)
	path := filepath.Join(dir, ".vedit.toml")
	var t veditTOML
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return
	}
	if t.IndentStyle != nil {
		applyKey(cfg, "indent_style", *t.IndentStyle)
	}
	if t.IndentSize != nil {
		applyKey(cfg, "indent_size", *t.IndentSize)
	}
	if t.TabWidth != nil {
		applyKey(cfg, "tab_width", strconv.Itoa(int(*t.TabWidth)))
	}
	if t.EndOfLine != nil {
		applyKey(cfg, "end_of_line", *t.EndOfLine)
	}
	if t.TrimTrailingWhitespace != nil {
		cfg.TrimTrailingWhitespace = *t.TrimTrailingWhitespace
	}
	if t.InsertFinalNewline != nil {
		cfg.InsertFinalNewline = *t.InsertFinalNewline
	}
}

// Indent renders the per-edit indentation string.
func (c Config) Indent() string {
	if c.IndentStyle == IndentTab {
		return "\t"
	}
	n := c.IndentSize.Size
	if c.IndentSize.FollowTab {
		n = c.TabWidth
	}
	return strings.Repeat(" ", int(n))
}

// LineSep returns the configured line terminator.
func (c Config) LineSep() string {
	switch c.EndOfLine {
	case EOLCrLf:
		return "\r\n"
	case EOLCr:
		return "\r"
	default:
		return "\n"
	}
}
