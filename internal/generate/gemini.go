package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

// DefaultModel is used when the configuration names none.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `You are an expert web designer and copywriter for high-end weddings.
Your goal is to generate JSON content for a new wedding website page.
The style should be romantic, elegant, classic, and welcoming.
The content must be coherent with the provided existing pages.
Output strictly JSON.`

const promptTemplate = `I need a new page for a wedding website about: %q.

Here is the context of the existing site content:
%s

Please generate a valid JSON object for a single page with a title, a slug
starting with "/" and a list of sections. Section types are hero, text,
image-text and gallery. Use https://picsum.photos/width/height for images.

Rules:
1. Use 'hero' for the top section.
2. Write romantic, inviting copy in Portuguese (pt-BR).
3. Ensure the tone matches the existing pages.`

// completeFunc sends one prompt and returns the raw JSON answer.
type completeFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

// Gemini generates pages with the Gemini API.
type Gemini struct {
	apiKey   string
	model    string
	complete completeFunc
}

// NewGemini returns a generator. apiKey may be empty when every request
// carries its own key.
func NewGemini(apiKey, modelName string) *Gemini {
	if modelName == "" {
		modelName = DefaultModel
	}

	return &Gemini{apiKey: apiKey, model: modelName, complete: complete}
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, req Request) (model.Page, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return model.Page{}, ErrEmptyTopic
	}

	key := req.APIKey
	if key == "" {
		key = g.apiKey
	}

	if key == "" {
		return model.Page{}, ErrMissingAPIKey
	}

	existing, err := json.Marshal(summarize(req.Existing))
	if err != nil {
		return model.Page{}, err
	}

	raw, err := g.complete(ctx, key, g.model, fmt.Sprintf(promptTemplate, topic, existing))
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("page generation failed")
		return model.Page{}, err
	}

	if strings.TrimSpace(raw) == "" {
		return model.Page{}, ErrNoContent
	}

	var page model.Page
	if err = json.Unmarshal([]byte(raw), &page); err != nil {
		return model.Page{}, pkgerrors.Wrap(err, "generated page is not valid JSON")
	}

	page.IsSystem = false

	return page, nil
}

func complete(ctx context.Context, apiKey, modelName, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to create gemini client")
	}

	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    pageSchema(),
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}

	return sb.String(), nil
}

func pageSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	nullable := func(s *genai.Schema) *genai.Schema {
		s.Nullable = model.Ptr(true)
		return s
	}

	sectionType := str()
	sectionType.Enum = []string{
		string(model.SectionHero),
		string(model.SectionText),
		string(model.SectionImageText),
		string(model.SectionGallery),
	}

	position := nullable(str())
	position.Enum = []string{string(model.ImageLeft), string(model.ImageRight)}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":       str(),
			"title":    str(),
			"slug":     str(),
			"isSystem": {Type: genai.TypeBoolean},
			"sections": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":            str(),
						"type":          sectionType,
						"title":         nullable(str()),
						"content":       nullable(str()),
						"imageUrl":      nullable(str()),
						"imagePosition": position,
					},
					Required: []string{"id", "type"},
				},
			},
		},
		Required: []string{"id", "title", "slug", "isSystem", "sections"},
	}
}
