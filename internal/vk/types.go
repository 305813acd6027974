package vk

import "fmt"

// Response is the payload of a successful wall.get call.
type Response struct {
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

// Item is one wall post as returned by the VK API, newest first.
type Item struct {
	ID          int64        `json:"id"`
	OwnerID     int64        `json:"owner_id"`
	Date        int64        `json:"date"`
	MarkedAsAds int          `json:"marked_as_ads"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

// Sponsored reports whether the post is a paid placement.
func (i Item) Sponsored() bool {
	return i.MarkedAsAds != 0
}

// Ref returns the canonical wall post identifier, e.g. "wall-123_456".
func (i Item) Ref() string {
	return fmt.Sprintf("wall%d_%d", i.OwnerID, i.ID)
}

// Attachment is a tagged union; the pointer field matching Type is the one
// that is populated.
type Attachment struct {
	Type  string `json:"type"`
	Photo *Photo `json:"photo,omitempty"`
	Video *Video `json:"video,omitempty"`
	Link  *Link  `json:"link,omitempty"`
}

// Photo carries the size variants VK generates for one uploaded image.
type Photo struct {
	Sizes []PhotoSize `json:"sizes"`
}

// PhotoSize is one resolution variant of a photo.
type PhotoSize struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Video identifies a video by its owner and id; VK does not expose a
// directly embeddable file URL through wall.get.
type Video struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"owner_id"`
}

// Link is an outbound link attachment.
type Link struct {
	URL string `json:"url"`
}
