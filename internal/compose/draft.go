// Package compose implements the core transformation from VK wall items to
// Telegram-ready message drafts: MarkdownV2 escaping, VK link rewriting,
// attachment classification, and the splitting/merging policy that decides
// how many messages one wall post becomes.
package compose

// DraftKind distinguishes the two delivery paths a draft can take.
type DraftKind int

const (
	// KindText is delivered via sendMessage.
	KindText DraftKind = iota
	// KindMedia is delivered via sendMediaGroup.
	KindMedia
)

func (k DraftKind) String() string {
	if k == KindMedia {
		return "media"
	}
	return "text"
}

// MediaItem is one photo in a media group. Only the first item of a group
// may carry a caption.
type MediaItem struct {
	URL     string
	Caption string
}

// Draft is one outbound message, finished except for caption escaping,
// which the delivery adapter applies right before transmission. Body is
// already normalized and escaped for MarkdownV2.
type Draft struct {
	Kind  DraftKind
	Body  string      // set for KindText
	Media []MediaItem // set for KindMedia
}
