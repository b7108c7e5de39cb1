package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	openai "github.com/sashabaranov/go-openai"

	"funnelpress/internal/app"
)

// Generator implements app.Generator on top of the OpenAI API. Text
// generation uses tool-calling so the model is forced into a parseable
// structure; image generation goes through the images endpoint.
type Generator struct {
	client *openai.Client
	model  string
}

func NewGenerator(apiKey, model string) *Generator {
	if model == "" {
		model = openai.GPT4o
	}
	return &Generator{client: openai.NewClient(apiKey), model: model}
}

const articleSystemPrompt = "You are an editorial copywriter for native advertising. " +
	"Write advertorial articles that read like genuine journalism: a hook, a personal angle, " +
	"product discovery as part of the story, and a natural call to action. " +
	"Body HTML may use only <p>, <h2>, <h3>, <ul>, <li>, <strong> and <em> tags."

func (g *Generator) GenerateArticle(ctx context.Context, topic, sourceText, ctaURL string) (app.ArticleDraft, error) {
	userPrompt := "Write an advertorial article about: " + topic
	if sourceText != "" {
		userPrompt += "\n\nGround the article in this source material:\n" + sourceText
	}
	if ctaURL != "" {
		userPrompt += "\n\nThe call to action will link to " + ctaURL + "."
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: articleSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "submit_article",
				Description: "Submit the finished advertorial article",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"title":     map[string]interface{}{"type": "string"},
						"subtitle":  map[string]interface{}{"type": "string"},
						"author":    map[string]interface{}{"type": "string", "description": "A plausible byline"},
						"body_html": map[string]interface{}{"type": "string"},
						"cta_text":  map[string]interface{}{"type": "string", "description": "Button label for the call to action"},
					},
					"required": []string{"title", "body_html", "cta_text"},
				},
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: "submit_article"},
		},
	})
	if err != nil {
		return app.ArticleDraft{}, fmt.Errorf("article completion: %w", err)
	}

	args, err := toolArguments(resp, "submit_article")
	if err != nil {
		return app.ArticleDraft{}, err
	}
	var parsed struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Author   string `json:"author"`
		BodyHTML string `json:"body_html"`
		CtaText  string `json:"cta_text"`
	}
	if err := json.Unmarshal([]byte(args), &parsed); err != nil {
		return app.ArticleDraft{}, fmt.Errorf("parse article arguments: %w", err)
	}
	return app.ArticleDraft{
		Title:    parsed.Title,
		Subtitle: parsed.Subtitle,
		Author:   parsed.Author,
		BodyHTML: parsed.BodyHTML,
		CtaText:  parsed.CtaText,
	}, nil
}

const quizSystemPrompt = "You are a quiz funnel designer for direct-response marketing. " +
	"Design personality-style quizzes that segment takers into a small set of result categories. " +
	"Every option must carry the category it counts toward."

func (g *Generator) GenerateQuizPlan(ctx context.Context, topic string, questionCount int) (app.QuizPlan, error) {
	userPrompt := "Design a quiz funnel about: " + topic +
		"\nGenerate exactly " + strconv.Itoa(questionCount) + " questions with 3 or 4 options each, " +
		"2 to 4 result categories, and a short offer pitch."

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: quizSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "submit_quiz",
				Description: "Submit the designed quiz funnel",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]interface{}{"type": "string"},
						"questions": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"headline": map[string]interface{}{"type": "string"},
									"options": map[string]interface{}{
										"type": "array",
										"items": map[string]interface{}{
											"type": "object",
											"properties": map[string]interface{}{
												"text":     map[string]interface{}{"type": "string"},
												"category": map[string]interface{}{"type": "string"},
											},
											"required": []string{"text", "category"},
										},
									},
								},
								"required": []string{"headline", "options"},
							},
						},
						"results": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"name":     map[string]interface{}{"type": "string"},
									"headline": map[string]interface{}{"type": "string"},
									"body":     map[string]interface{}{"type": "string"},
								},
								"required": []string{"name", "headline", "body"},
							},
						},
						"offer_text": map[string]interface{}{"type": "string"},
					},
					"required": []string{"name", "questions", "results"},
				},
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: "submit_quiz"},
		},
	})
	if err != nil {
		return app.QuizPlan{}, fmt.Errorf("quiz completion: %w", err)
	}

	args, err := toolArguments(resp, "submit_quiz")
	if err != nil {
		return app.QuizPlan{}, err
	}
	var parsed struct {
		Name      string `json:"name"`
		Questions []struct {
			Headline string `json:"headline"`
			Options  []struct {
				Text     string `json:"text"`
				Category string `json:"category"`
			} `json:"options"`
		} `json:"questions"`
		Results []struct {
			Name     string `json:"name"`
			Headline string `json:"headline"`
			Body     string `json:"body"`
		} `json:"results"`
		OfferText string `json:"offer_text"`
	}
	if err := json.Unmarshal([]byte(args), &parsed); err != nil {
		return app.QuizPlan{}, fmt.Errorf("parse quiz arguments: %w", err)
	}

	plan := app.QuizPlan{Name: parsed.Name, OfferText: parsed.OfferText}
	for _, q := range parsed.Questions {
		pq := app.PlannedQuestion{Headline: q.Headline}
		for _, o := range q.Options {
			pq.Options = append(pq.Options, app.PlannedOption{Text: o.Text, Category: o.Category})
		}
		plan.Questions = append(plan.Questions, pq)
	}
	for _, r := range parsed.Results {
		plan.Results = append(plan.Results, app.PlannedResult{Name: r.Name, Headline: r.Headline, Body: r.Body})
	}
	return plan, nil
}

// GenerateImage returns a temporary URL to the generated image; callers
// are expected to fetch and re-store it.
func (g *Generator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          openai.CreateImageModelDallE3,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              1,
	})
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("image generation returned no data")
	}
	return resp.Data[0].URL, nil
}

func toolArguments(resp openai.ChatCompletionResponse, name string) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return "", fmt.Errorf("no tool calls in response")
	}
	if calls[0].Function.Name != name {
		return "", fmt.Errorf("unexpected tool call: %s", calls[0].Function.Name)
	}
	return calls[0].Function.Arguments, nil
}
