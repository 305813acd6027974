package compose

import (
	"strings"
	"testing"

	"github.com/vkgram/vkgram/internal/vk"
)

func TestComposeEmptyItem(t *testing.T) {
	t.Parallel()

	drafts := NewComposer("").Compose(vk.Item{ID: 1, OwnerID: -1})
	if len(drafts) != 0 {
		t.Fatalf("expected no drafts for an empty item, got %d", len(drafts))
	}
}

func TestComposeTextOnly(t *testing.T) {
	t.Parallel()

	drafts := NewComposer("").Compose(vk.Item{Text: "plain news"})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if drafts[0].Kind != KindText || drafts[0].Body != "plain news" {
		t.Errorf("draft = %+v, want text draft %q", drafts[0], "plain news")
	}
}

func TestComposeCaptionThreshold(t *testing.T) {
	t.Parallel()

	photo := photoAttachment(vk.PhotoSize{URL: "p1", Width: 100})

	t.Run("1023 chars becomes caption", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("a", 1023)
		drafts := NewComposer("").Compose(vk.Item{Text: text, Attachments: []vk.Attachment{photo}})
		if len(drafts) != 1 {
			t.Fatalf("expected 1 draft, got %d", len(drafts))
		}
		if drafts[0].Kind != KindMedia {
			t.Fatalf("draft kind = %v, want media", drafts[0].Kind)
		}
		if drafts[0].Media[0].Caption != text {
			t.Errorf("caption does not carry the item text")
		}
	})

	t.Run("1024 chars becomes standalone text", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("a", 1024)
		drafts := NewComposer("").Compose(vk.Item{Text: text, Attachments: []vk.Attachment{photo}})
		if len(drafts) != 2 {
			t.Fatalf("expected media+text split, got %d drafts", len(drafts))
		}
		if drafts[0].Kind != KindMedia || drafts[0].Media[0].Caption != "" {
			t.Errorf("first draft should be caption-less media, got %+v", drafts[0])
		}
		if drafts[1].Kind != KindText || drafts[1].Body != text {
			t.Errorf("second draft should carry the text")
		}
	})
}

func TestComposeSingleVideoMergesIntoText(t *testing.T) {
	t.Parallel()

	drafts := NewComposer("").Compose(vk.Item{
		Text:        "Hello",
		Attachments: []vk.Attachment{videoAttachment(1, 2)},
	})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 merged draft, got %d", len(drafts))
	}
	want := "Hello\n https://vk\\.com/video1\\_2"
	if drafts[0].Kind != KindText || drafts[0].Body != want {
		t.Errorf("body = %q, want %q", drafts[0].Body, want)
	}
}

func TestComposeMultiVideoSplit(t *testing.T) {
	t.Parallel()

	drafts := NewComposer("").Compose(vk.Item{
		Attachments: []vk.Attachment{
			videoAttachment(1, 10),
			videoAttachment(1, 20),
		},
	})
	if len(drafts) != 2 {
		t.Fatalf("expected one draft per video, got %d", len(drafts))
	}
	wantFirst := "https://vk\\.com/video1\\_10"
	wantSecond := "https://vk\\.com/video1\\_20"
	if drafts[0].Body != wantFirst || drafts[1].Body != wantSecond {
		t.Errorf("video drafts out of order: %q, %q", drafts[0].Body, drafts[1].Body)
	}
}

func TestComposeVideoNotMergedWhenTextIsCaption(t *testing.T) {
	t.Parallel()

	drafts := NewComposer("").Compose(vk.Item{
		Text: "Hi",
		Attachments: []vk.Attachment{
			photoAttachment(vk.PhotoSize{URL: "p1", Width: 100}),
			videoAttachment(3, 4),
		},
	})
	if len(drafts) != 2 {
		t.Fatalf("expected media draft plus video draft, got %d", len(drafts))
	}
	if drafts[0].Kind != KindMedia || drafts[0].Media[0].Caption != "Hi" {
		t.Errorf("first draft should be captioned media, got %+v", drafts[0])
	}
	if drafts[1].Kind != KindText || !strings.Contains(drafts[1].Body, "video3") {
		t.Errorf("second draft should carry the video link, got %+v", drafts[1])
	}
}

func TestComposeLinkAppended(t *testing.T) {
	t.Parallel()

	drafts := NewComposer("").Compose(vk.Item{
		Text:        "read this",
		Attachments: []vk.Attachment{linkAttachment("https://example.com/a")},
	})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	want := "read this\n https://example\\.com/a"
	if drafts[0].Body != want {
		t.Errorf("body = %q, want %q", drafts[0].Body, want)
	}
}

func TestComposeLinkNotDuplicated(t *testing.T) {
	t.Parallel()

	drafts := NewComposer("").Compose(vk.Item{
		Text:        "check https://example.com/page now",
		Attachments: []vk.Attachment{linkAttachment("https://example.com/page")},
	})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if n := strings.Count(drafts[0].Body, "https://example"); n != 1 {
		t.Errorf("link appears %d times, want 1 (body %q)", n, drafts[0].Body)
	}
}

func TestComposeCaptionedMediaWithLink(t *testing.T) {
	t.Parallel()

	drafts := NewComposer("").Compose(vk.Item{
		Text: "Short",
		Attachments: []vk.Attachment{
			photoAttachment(vk.PhotoSize{URL: "p1", Width: 100}),
			linkAttachment("https://ex.com/a"),
		},
	})
	if len(drafts) != 2 {
		t.Fatalf("expected media draft plus link draft, got %d", len(drafts))
	}
	if drafts[0].Kind != KindMedia || drafts[0].Media[0].Caption != "Short" {
		t.Errorf("first draft should keep the caption, got %+v", drafts[0])
	}
	want := "\n https://ex\\.com/a"
	if drafts[1].Kind != KindText || drafts[1].Body != want {
		t.Errorf("second draft body = %q, want %q", drafts[1].Body, want)
	}
}

func TestComposeAppendTextTemplate(t *testing.T) {
	t.Parallel()

	drafts := NewComposer("\nvia {id}").Compose(vk.Item{
		ID:      42,
		OwnerID: -10,
		Text:    "Hi",
	})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	want := "Hi\nvia wall\\-10\\_42"
	if drafts[0].Body != want {
		t.Errorf("body = %q, want %q", drafts[0].Body, want)
	}
}

func TestComposeMediaGroupCap(t *testing.T) {
	t.Parallel()

	var attachments []vk.Attachment
	for range 12 {
		attachments = append(attachments, photoAttachment(vk.PhotoSize{URL: "p", Width: 100}))
	}

	drafts := NewComposer("").Compose(vk.Item{Attachments: attachments})
	if len(drafts) != 2 {
		t.Fatalf("expected 12 photos to spill into 2 groups, got %d drafts", len(drafts))
	}
	if len(drafts[0].Media) != 10 || len(drafts[1].Media) != 2 {
		t.Errorf("group sizes = %d, %d, want 10, 2", len(drafts[0].Media), len(drafts[1].Media))
	}
}

func TestComposeMediaTextSplitOrdering(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("b", 2000)
	drafts := NewComposer("").Compose(vk.Item{
		Text:        text,
		Attachments: []vk.Attachment{photoAttachment(vk.PhotoSize{URL: "p1", Width: 100})},
	})
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].Kind != KindMedia || drafts[1].Kind != KindText {
		t.Errorf("media must precede text, got kinds %v, %v", drafts[0].Kind, drafts[1].Kind)
	}
}
