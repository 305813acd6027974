package compose

import "regexp"

// https://core.telegram.org/bots/api#markdownv2-style
var (
	// Matches either a well-formed [label](http…) link, which must survive
	// escaping untouched, or a single character Telegram treats as syntax.
	escapePattern = regexp.MustCompile(`(\[[^\][]*\]\(http[^()]*\))|[_*\[\]()~>#+=|{}.!-]`)

	// Matches the opening of a [label]( construct to harden its label.
	labelPattern = regexp.MustCompile(`\[([^\][]*)\]\(`)

	// Characters that need escaping inside a link label, which Telegram
	// parses in a second, more literal context.
	labelChars = regexp.MustCompile(`[-.+?^$\[\](){}\\!#]`)
)

// EscapeMarkdown escapes free text for Telegram's MarkdownV2 mode.
// Well-formed [label](http…) links pass through the bulk pass intact;
// their labels are then escaped separately.
func EscapeMarkdown(text string) string {
	out := escapePattern.ReplaceAllStringFunc(text, func(m string) string {
		if len(m) > 1 {
			// a whole [label](url) construct, already valid markup
			return m
		}
		return `\` + m
	})
	return labelPattern.ReplaceAllStringFunc(out, func(m string) string {
		label := labelPattern.FindStringSubmatch(m)[1]
		return "[" + labelChars.ReplaceAllString(label, `\$0`) + "]("
	})
}
