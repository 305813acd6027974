package compose

import (
	"strings"
	"unicode/utf8"

	"github.com/vkgram/vkgram/internal/vk"
)

const (
	// captionLimit is Telegram's maximum caption length for media.
	captionLimit = 1024
	// mediaGroupLimit is Telegram's maximum number of items per media group.
	mediaGroupLimit = 10
)

// Composer turns one wall item into the ordered drafts that reproduce it in
// the destination channel.
type Composer struct {
	appendText string // optional template; {id} expands to wall<owner>_<id>
}

// NewComposer creates a Composer. appendText may be empty.
func NewComposer(appendText string) *Composer {
	return &Composer{appendText: appendText}
}

// draftState is the intermediate value the compose steps transform. Each
// step returns a new state, keeping the ordering contract explicit: text
// placement before video handling, videos before the link, the link before
// the media/text split.
type draftState struct {
	photos []MediaItem // caption, if any, sits on the first item
	text   string
	link   string
	extra  []Draft // standalone per-video drafts, appended after the main drafts
}

// Compose applies the full splitting/merging policy to one wall item and
// returns zero or more drafts in delivery order.
func (c *Composer) Compose(item vk.Item) []Draft {
	cls := classifyAttachments(item.Attachments)

	state := draftState{link: cls.link}
	for _, url := range cls.photos {
		state.photos = append(state.photos, MediaItem{URL: url})
	}

	text := item.Text
	if c.appendText != "" {
		text += strings.ReplaceAll(c.appendText, "{id}", item.Ref())
	}

	state = applyText(state, text)
	state = applyVideos(state, cls.videos)
	state = applyLink(state)
	return assemble(state)
}

// applyText places the item text: text short enough for a caption rides on
// the first photo, anything else stays a standalone body.
func applyText(s draftState, text string) draftState {
	if text == "" {
		return s
	}
	if utf8.RuneCountInString(text) < captionLimit && len(s.photos) > 0 {
		s.photos[0].Caption = text
	} else {
		s.text = text
	}
	return s
}

// applyVideos merges a lone video into existing standalone text; in every
// other case each video becomes its own text draft.
func applyVideos(s draftState, videos []string) draftState {
	if len(videos) == 0 {
		return s
	}
	if len(videos) == 1 && s.link == "" && s.text != "" {
		s.text += "\n " + videos[0]
		return s
	}
	for _, v := range videos {
		s.extra = append(s.extra, Draft{Kind: KindText, Body: v})
	}
	return s
}

// applyLink appends the outbound link unless the text already carries it.
func applyLink(s draftState) draftState {
	if s.link == "" || strings.Contains(s.text, s.link) {
		return s
	}
	s.text += "\n " + s.link
	return s
}

// assemble finalizes the drafts in delivery order: media first, remaining
// text next, standalone video drafts last. An item that ends up with no
// photos, no text, and no videos yields nothing.
func assemble(s draftState) []Draft {
	var out []Draft
	if len(s.photos) > 0 {
		out = append(out, mediaDrafts(s.photos)...)
	}
	if body := finalizeText(s.text); body != "" {
		out = append(out, Draft{Kind: KindText, Body: body})
	}
	for _, d := range s.extra {
		d.Body = finalizeText(d.Body)
		out = append(out, d)
	}
	return out
}

// finalizeText runs outbound text through link normalization and then
// MarkdownV2 escaping, in that order.
func finalizeText(text string) string {
	if text == "" {
		return ""
	}
	return EscapeMarkdown(NormalizeLinks(text))
}

// mediaDrafts splits the photo list into Telegram-sized media groups. The
// caption, if any, stays on the very first item.
func mediaDrafts(photos []MediaItem) []Draft {
	var out []Draft
	for len(photos) > mediaGroupLimit {
		out = append(out, Draft{Kind: KindMedia, Media: photos[:mediaGroupLimit]})
		photos = photos[mediaGroupLimit:]
	}
	out = append(out, Draft{Kind: KindMedia, Media: photos})
	return out
}
