package compose

import "regexp"

const vkBaseURL = "https://vk.com/"

var (
	// VK renders internal links as [target|label].
	vkLinkPattern  = regexp.MustCompile(`\[(\S+)\|([^\]]+)\]`)
	absoluteScheme = regexp.MustCompile(`^https?:`)
)

// NormalizeLinks rewrites VK's [target|label] link syntax into markdown
// [label](url). Bare internal targets such as club ids are expanded
// against vk.com; targets that are already absolute URLs pass through
// unchanged.
func NormalizeLinks(text string) string {
	return vkLinkPattern.ReplaceAllStringFunc(text, func(m string) string {
		parts := vkLinkPattern.FindStringSubmatch(m)
		target, label := parts[1], parts[2]
		if !absoluteScheme.MatchString(target) {
			target = vkBaseURL + target
		}
		return "[" + label + "](" + target + ")"
	})
}
