package blocks

import "strings"

// CodeLanguage is the numeric language code of a code block.
type CodeLanguage int

const (
	LanguagePlainText  CodeLanguage = 1
	LanguageBash       CodeLanguage = 4
	LanguageC          CodeLanguage = 9
	LanguageCPP        CodeLanguage = 11
	LanguageCSharp     CodeLanguage = 12
	LanguageCSS        CodeLanguage = 13
	LanguageGo         CodeLanguage = 23
	LanguageHTML       CodeLanguage = 24
	LanguageJava       CodeLanguage = 27
	LanguageJavaScript CodeLanguage = 30
	LanguageJSON       CodeLanguage = 31
	LanguageMarkdown   CodeLanguage = 37
	LanguagePHP        CodeLanguage = 47
	LanguagePython     CodeLanguage = 49
	LanguageRuby       CodeLanguage = 51
	LanguageRust       CodeLanguage = 52
	LanguageShell      CodeLanguage = 53
	LanguageSQL        CodeLanguage = 54
	LanguageTypeScript CodeLanguage = 63
	LanguageXML        CodeLanguage = 65
	LanguageYAML       CodeLanguage = 66
)

var languageCodes = map[string]CodeLanguage{
	"python":     LanguagePython,
	"javascript": LanguageJavaScript,
	"java":       LanguageJava,
	"c":          LanguageC,
	"cpp":        LanguageCPP,
	"csharp":     LanguageCSharp,
	"go":         LanguageGo,
	"ruby":       LanguageRuby,
	"rust":       LanguageRust,
	"typescript": LanguageTypeScript,
	"php":        LanguagePHP,
	"html":       LanguageHTML,
	"css":        LanguageCSS,
	"sql":        LanguageSQL,
	"shell":      LanguageShell,
	"bash":       LanguageBash,
	"json":       LanguageJSON,
	"xml":        LanguageXML,
	"yaml":       LanguageYAML,
	"markdown":   LanguageMarkdown,
}

var languageAliases = map[string]string{
	"py":     "python",
	"js":     "javascript",
	"ts":     "typescript",
	"golang": "go",
	"c++":    "cpp",
	"c#":     "csharp",
	"cs":     "csharp",
	"sh":     "shell",
	"yml":    "yaml",
	"md":     "markdown",
	"rb":     "ruby",
	"rs":     "rust",
}

// LookupLanguage resolves a fenced-code info word, case-insensitively.
// Unknown or empty names resolve to LanguagePlainText with ok == false.
func LookupLanguage(name string) (CodeLanguage, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return LanguagePlainText, false
	}
	if canonical, ok := languageAliases[key]; ok {
		key = canonical
	}
	if code, ok := languageCodes[key]; ok {
		return code, true
	}
	return LanguagePlainText, false
}

// Languages returns a copy of the canonical name to code table.
func Languages() map[string]CodeLanguage {
	table := make(map[string]CodeLanguage, len(languageCodes))
	for name, code := range languageCodes {
		table[name] = code
	}
	return table
}

// LanguageAliases returns a copy of the alias to canonical name table.
func LanguageAliases() map[string]string {
	aliases := make(map[string]string, len(languageAliases))
	for alias, name := range languageAliases {
		aliases[alias] = name
	}
	return aliases
}
