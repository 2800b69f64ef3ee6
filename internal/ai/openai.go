package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/logger"
)

const analysisModel = openai.GPT4oMini

// openAIAnalyzer implements Analyzer on the OpenAI API: Whisper for
// transcription and chat completions (JSON mode) for practice analysis.
type openAIAnalyzer struct {
	client       *openai.Client
	whisperModel string
}

// NewOpenAIAnalyzer creates an Analyzer backed by the OpenAI API.
func NewOpenAIAnalyzer(apiKey, whisperModel string) (Analyzer, error) {
	if apiKey == "" {
		return nil, apperrors.ErrAnalyzerUnavailable
	}
	if whisperModel == "" {
		whisperModel = openai.Whisper1
	}
	return &openAIAnalyzer{
		client:       openai.NewClient(apiKey),
		whisperModel: whisperModel,
	}, nil
}

// Transcribe sends the extracted audio to Whisper and returns the verbose
// result with per-segment timestamps.
func (a *openAIAnalyzer) Transcribe(ctx context.Context, audioPath string) (*TranscriptionResult, error) {
	resp, err := a.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    a.whisperModel,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("whisper transcription: %w", err))
	}

	result := &TranscriptionResult{
		Text:     resp.Text,
		Language: resp.Language,
		Segments: make([]Segment, 0, len(resp.Segments)),
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return result, nil
}

// AnalyzeTranscript asks the model to evaluate the transcript against the
// category's practice catalog and return structured findings.
func (a *openAIAnalyzer) AnalyzeTranscript(ctx context.Context, transcript string, category string, positive, negative []string) ([]Finding, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       analysisModel,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(category, positive, negative),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: "Analyze this teaching session transcript:\n\n" + transcript,
			},
		},
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("transcript analysis: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "Analysis returned no result")
	}
	return parseFindings(resp.Choices[0].Message.Content)
}

// AnalyzeFrames sends sampled frames through the vision endpoint for visual
// indicators the transcript cannot capture (positioning, materials, prompts).
func (a *openAIAnalyzer) AnalyzeFrames(ctx context.Context, frames []string, category string, positive, negative []string) ([]Finding, error) {
	if len(frames) == 0 {
		return nil, nil
	}

	parts := []openai.ChatMessagePart{
		{
			Type: openai.ChatMessagePartTypeText,
			Text: "These frames are sampled in order from a teaching session video. Analyze the visual teaching indicators: teacher positioning, prompting style, material readiness, and student engagement.",
		},
	}
	for _, frame := range frames {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:image/jpeg;base64," + frame,
				Detail: openai.ImageURLDetailLow,
			},
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       analysisModel,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(category, positive, negative),
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("frame analysis: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "Analysis returned no result")
	}
	return parseFindings(resp.Choices[0].Message.Content)
}

func systemPrompt(category string, positive, negative []string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert evaluator of special education teaching sessions. ")
	sb.WriteString(fmt.Sprintf("The session uses the %q teaching format.\n\n", category))
	sb.WriteString("Positive practices to look for:\n")
	for _, p := range positive {
		sb.WriteString("- " + p + "\n")
	}
	sb.WriteString("\nNegative practices to flag:\n")
	for _, p := range negative {
		sb.WriteString("- " + p + "\n")
	}
	sb.WriteString(`
Respond with JSON only, in this shape:
{"findings": [{"practice": "<practice name from the lists above>", "is_positive": true, "comment": "<specific observation>", "quote": "<short verbatim transcript excerpt, empty if visual>", "confidence": 0.0}]}

Report each distinct observation once. Confidence is between 0 and 1.`)
	return sb.String()
}

// parseFindings decodes the model's JSON response. A bare array is accepted
// as a fallback when the model skips the wrapper object.
func parseFindings(content string) ([]Finding, error) {
	content = strings.TrimSpace(content)

	var wrapper struct {
		Findings []Finding `json:"findings"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err == nil && wrapper.Findings != nil {
		return wrapper.Findings, nil
	}

	var findings []Finding
	if err := json.Unmarshal([]byte(content), &findings); err == nil {
		return findings, nil
	}

	logger.Get().Warnw("unparseable analysis response", "content_length", len(content))
	return nil, apperrors.WithMessage(apperrors.ErrInternalServer, "Analysis returned malformed findings")
}
