package ai

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// triggerMessage closes the conversation after the file parts and the
// instruction text.
const triggerMessage = "Analyze the provided content as instructed."

func (g *implGemini) Stage(ctx context.Context, path, mimeType string) (StagedFile, error) {
	file, err := g.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType: mimeType,
	})
	if err != nil {
		return StagedFile{}, fmt.Errorf("upload %s: %w", path, err)
	}

	g.logger.Debug(ctx, "Uploaded %s as %s", path, file.URI)

	return StagedFile{
		Name:     file.Name,
		URI:      file.URI,
		MIMEType: mimeType,
	}, nil
}

// AwaitReady polls each handle until it leaves the processing state. The
// wait is bounded by the configured attempt count and the context, so a
// stuck file cannot hang the run forever.
func (g *implGemini) AwaitReady(ctx context.Context, files []StagedFile) error {
	for _, staged := range files {
		file, err := g.client.Files.Get(ctx, staged.Name, nil)
		if err != nil {
			return fmt.Errorf("get file %s: %w", staged.Name, err)
		}

		attempts := 0
		for file.State == genai.FileStateProcessing {
			attempts++
			if attempts > g.pollAttempts {
				return fmt.Errorf("file %s still processing after %d checks", staged.Name, g.pollAttempts)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(g.pollInterval):
			}

			file, err = g.client.Files.Get(ctx, staged.Name, nil)
			if err != nil {
				return fmt.Errorf("get file %s: %w", staged.Name, err)
			}
		}

		if file.State != genai.FileStateActive {
			return fmt.Errorf("file %s failed to process (state %v)", staged.Name, file.State)
		}
	}

	return nil
}

func (g *implGemini) Submit(ctx context.Context, files []StagedFile, instructions string) (string, error) {
	// One user turn per staged file, then the instructions, then the
	// trigger, mirroring a chat history whose last message starts the
	// analysis.
	contents := make([]*genai.Content, 0, len(files)+2)
	for _, f := range files {
		contents = append(contents, genai.NewContentFromParts(
			[]*genai.Part{genai.NewPartFromURI(f.URI, f.MIMEType)},
			genai.RoleUser,
		))
	}
	contents = append(contents,
		genai.NewContentFromText(instructions, genai.RoleUser),
		genai.NewContentFromText(triggerMessage, genai.RoleUser),
	)

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](1),
		TopP:             genai.Ptr[float32](0.95),
		TopK:             genai.Ptr[float32](40),
		MaxOutputTokens:  8192,
		ResponseMIMEType: "text/plain",
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
