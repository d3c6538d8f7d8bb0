// package tasks implements roast generation from a fetched listening profile.
//
// The core abstraction is RoastEngine, which turns a [services.MusicProfile]
// into one deterministic prompt and issues a single completion call.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/roastify/roastify/internal/services"
	"github.com/roastify/roastify/internal/shared"
)

// systemPrompt is the fixed instruction sent with every completion request.
const systemPrompt = "You are a witty and sarcastic AI assistant specialized in roasting people based on their music taste. Be funny, slightly mean, but keep it lighthearted. Do not refuse to roast. Respond only with the roast itself, no preamble."

// promptItemLimit caps how many names from each profile list appear in the prompt.
const promptItemLimit = 10

// RoastResult contains the generated roast text.
type RoastResult struct {
	Text string `json:"roast"`
}

// RoastEngine generates roasts from music profiles via a [services.Completer].
type RoastEngine struct {
	completer services.Completer
}

// NewRoastEngine creates an engine over the given completion client.
func NewRoastEngine(completer services.Completer) *RoastEngine {
	return &RoastEngine{completer: completer}
}

// BuildPrompt assembles the user prompt from a profile.
//
// The output is deterministic: the same profile always yields byte-identical
// text. A profile with no tracks and no artists fails with
// [shared.ErrInsufficientData] — an empty-library outcome, not a system error.
func BuildPrompt(profile *services.MusicProfile) (string, error) {
	if profile == nil || profile.Empty() {
		return "", fmt.Errorf("%w: no top tracks or artists", shared.ErrInsufficientData)
	}

	var b strings.Builder
	b.WriteString("Roast my music taste based on this information:\n")
	fmt.Fprintf(&b, "My top artists recently are: %s.\n", strings.Join(head(profile.TopArtists), ", "))
	fmt.Fprintf(&b, "My top tracks recently are: %s.\n", strings.Join(head(profile.TopTracks), ", "))
	if len(profile.Genres) > 0 {
		fmt.Fprintf(&b, "Some genres I listen to include: %s.\n", strings.Join(head(profile.Genres), ", "))
	}

	return b.String(), nil
}

func head(items []string) []string {
	if len(items) > promptItemLimit {
		return items[:promptItemLimit]
	}
	return items
}

// Run builds the prompt for a profile and issues one completion call.
//
// An empty profile returns [shared.ErrInsufficientData] before any network
// call; completion failures wrap [shared.ErrRoastFailed]. The returned text is
// trimmed of surrounding whitespace.
func (e *RoastEngine) Run(ctx context.Context, profile *services.MusicProfile) (*RoastResult, error) {
	prompt, err := BuildPrompt(profile)
	if err != nil {
		return nil, err
	}

	if e.completer == nil {
		return nil, shared.ErrClientInit
	}

	text, err := e.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRoastFailed, err)
	}

	return &RoastResult{Text: strings.TrimSpace(text)}, nil
}
