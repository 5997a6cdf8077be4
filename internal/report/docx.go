package report

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumberd = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// WriteDocx renders the slide narratives into a styled document. Inline
// image tokens become their own caption paragraphs so the references
// stay visible without the pixels.
func WriteDocx(path, title string, blocks []string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for i, block := range blocks {
		addStyledRun(doc.AddParagraph(""), "Slide "+strconv.Itoa(i+1), true, 15)

		block = reImageRef.ReplaceAllString(block, "\n[$1: $2]\n")

		for _, line := range strings.Split(block, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || trimmed == "---" {
				continue
			}

			if m := reHeading.FindStringSubmatch(trimmed); m != nil {
				addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
				continue
			}

			if m := reBullet.FindStringSubmatch(trimmed); m != nil {
				addRichText(doc.AddParagraph(""), "• "+m[1])
				continue
			}

			if reNumberd.MatchString(trimmed) {
				addRichText(doc.AddParagraph(""), trimmed)
				continue
			}

			addRichText(doc.AddParagraph(""), trimmed)
		}
	}

	return doc.SaveTo(path)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
