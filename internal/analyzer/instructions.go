package analyzer

import (
	"fmt"
	"strings"

	"github.com/deckwise/deckbrief/internal/packager"
)

// instructionsTemplate explains the two identifier namespaces and the
// inline reference format the narrative must use.
const instructionsTemplate = `Analyze the provided slides and images. Create a cohesive summary of the content, ` +
	`integrating relevant information from both the text and images. ` +
	"There are two types of images provided:\n" +
	"1. Individual images extracted from the slides (IMG_X_X)\n" +
	"2. Full slide snapshots (snapshot_X)\n\n" +
	"For each image or snapshot that adds value to the summary:\n" +
	"1. Reference the image using its ID (e.g., IMG_1_1 or snapshot_1)\n" +
	"2. Provide a brief, descriptive caption for the image or snapshot\n" +
	"3. Place the image reference immediately after the relevant text\n\n" +
	`Format image references as: [image src=IMG_X_X.png caption="Your caption here"] ` +
	`or [image src=snapshot_X.png caption="Your caption here"]` + "\n\n" +
	`Use the full slide snapshots to understand the overall context and layout. ` +
	`Refer to individual images when discussing specific details. ` +
	`Ignore any images that don't contribute significant information to the summary. ` +
	`Focus on creating a flowing, informative summary that incorporates text and ` +
	"image references seamlessly.\n\n" +
	"%sHere's the text content from the slides:\n%s"

// buildInstructions assembles the submission payload for one slide.
// When images travel as a composite, their individual identifiers are
// no longer addressable through pixels alone, so the payload enumerates
// them left to right.
func buildInstructions(slideNumber int, text string, items []packager.Item, combined bool) string {
	var compositeNote string
	if combined {
		for _, item := range items {
			if !item.Snapshot() && len(item.IDs) > 1 {
				compositeNote = fmt.Sprintf(
					"The individual images are combined into a single image; left to right they are: %s.\n\n",
					strings.Join(item.IDs, ", "),
				)
				break
			}
		}
	}

	slideText := fmt.Sprintf("Slide %d:\n%s", slideNumber, text)
	return fmt.Sprintf(instructionsTemplate, compositeNote, slideText)
}
