package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/detective-quest/internal/archive"
	"github.com/tatianab/detective-quest/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/describe_room.txt
var describeRoomPrompt string

var describeRoomTmpl = template.Must(template.New("describe_room").Parse(describeRoomPrompt))

// DefaultModel is the Gemini model used for narration.
const DefaultModel = "gemini-2.5-flash"

// Recorder stores finished accusations.
type Recorder interface {
	Save(ctx context.Context, r archive.Record) (int64, error)
}

// Engine creates game sessions, narrates the rooms the player enters when
// an API key is configured, and archives accusations when a recorder is set.
type Engine struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	recorder  Recorder
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithModel selects the Gemini model.
func WithModel(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.modelName = name
		}
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRecorder archives every accusation made in the engine's sessions.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine returns an engine. An empty apiKey disables narration.
func NewEngine(ctx context.Context, apiKey string, opts ...Option) (*Engine, error) {
	e := &Engine{
		modelName: DefaultModel,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("source", "Engine")
	if apiKey == "" {
		return e, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	e.client = client
	e.model = client.GenerativeModel(e.modelName)
	return e, nil
}

// Close releases the Gemini client, if any.
func (e *Engine) Close() {
	if e.client != nil {
		e.client.Close()
	}
}

// Narrates reports whether Narrate will produce text.
func (e *Engine) Narrates() bool {
	return e.model != nil
}

// NewSession starts a fresh investigation of c.
func (e *Engine) NewSession(c *models.Case) (*Session, error) {
	return newSession(c, e.recorder, e.logger)
}

// Scene is what the narrator is told about a room.
type Scene struct {
	Case  string
	Room  string
	Clue  string
	Exits []string
}

// Narrate returns a short description of scene. It returns an empty string
// when narration is disabled.
func (e *Engine) Narrate(ctx context.Context, scene Scene) (string, error) {
	if e.model == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := describeRoomTmpl.Execute(&buf, scene); err != nil {
		return "", err
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return "", fmt.Errorf("failed to narrate %q: %w", scene.Room, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}
