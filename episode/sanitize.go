package episode

import "strings"

// replacements run in order, each on the output of the previous one
var replacements = [...][2]string{
	{`\`, "-"},
	{"/", "-"},
	{":", " -"},
	{"*", "-"},
	{"?", ""},
	{`"`, ""},
	{"<", "←"},
	{">", "→"},
	{"|", "-"},
}

// Sanitize replaces characters that are not allowed in file names
func Sanitize(s string) string {
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}
