package compose

import (
	"fmt"

	"github.com/vkgram/vkgram/internal/vk"
)

// Telegram cannot host VK videos, so they are forwarded as watch links.
const vkVideoBaseURL = "https://vk.com/video"

// classified holds the usable parts of one item's attachment list.
type classified struct {
	photos []string // max-resolution URL per photo, attachment order
	videos []string // watch links, attachment order
	link   string   // last link attachment wins
}

// classifyAttachments extracts photos, videos, and the outbound link from
// an attachment list. Unknown attachment types are ignored.
func classifyAttachments(attachments []vk.Attachment) classified {
	var c classified
	for _, att := range attachments {
		switch att.Type {
		case "photo":
			if att.Photo == nil {
				continue
			}
			if url := maxSizeURL(att.Photo.Sizes); url != "" {
				c.photos = append(c.photos, url)
			}
		case "video":
			if att.Video == nil {
				continue
			}
			c.videos = append(c.videos,
				fmt.Sprintf("%s%d_%d", vkVideoBaseURL, att.Video.OwnerID, att.Video.ID))
		case "link":
			if att.Link == nil {
				continue
			}
			c.link = att.Link.URL
		}
	}
	return c
}

// maxSizeURL picks the variant with the strictly largest width; on equal
// widths the earlier variant wins.
func maxSizeURL(sizes []vk.PhotoSize) string {
	maxWidth := 0
	url := ""
	for _, s := range sizes {
		if s.Width > maxWidth {
			maxWidth = s.Width
			url = s.URL
		}
	}
	return url
}
