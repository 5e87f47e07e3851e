package ai

import (
	"strings"

	"github.com/myrjola/podium/internal/narrative"
	"github.com/sashabaranov/go-openai"
)

const basePrompt = `You are the story engine of Podium, a psychological detective game.

The player is a sharp detective who solves crimes driven by psychological manipulation. The player has to spot the
manipulation hidden in the dialogue and name the killer or mastermind.

Write cinematic, tense and layered fiction in the second person. Never name a manipulation tactic while the story is
still unfolding.

%MODE%

STORY STRUCTURE:
1. SCENE: the crime, told in a noir tone.
2. SUSPECTS: three to five suspects with distinct personalities.
3. INTERROGATION: dialogue-heavy exchanges where the pressure shows.
4. CLUES: a short list of the detective's notes, subtle enough not to give the answer away.
5. DECISION: close by asking the player "Who is the killer?".
6. REVEAL & PSYCHOLOGICAL BREAKDOWN: the mastermind unmasked, followed by an analysis in five key points.

OUTPUT RULES:
- Keep the tension and the ambiguity until the reveal.
- The killer always relies on psychological manipulation.
- Stay analytical. Build awareness of harmful behaviour, never glorify it.
- Start every section on its own line with exactly one of these headers, in capitals: %HEADINGS%.`

const investigativePrompt = `MODE: Manipulation
Work with subtle, everyday influence hidden inside what the characters say: emotional framing, social pressure, ego
triggers, authority bias, scarcity signals, guilt, mirroring and misdirection.`

const highPressurePrompt = `MODE: Dark Manipulation
Work with high-intensity pressure: coercive control, emotional destabilisation, isolation, power imbalance,
intimidation and strategic pressure. The tone is darker and more calculated.`

const userInstruction = "Generate a new psychological detective scenario using the guidelines. " +
	"Output only the story sections with the exact headers."

// SystemPrompt is the instruction sent on the system channel for mode.
func SystemPrompt(mode narrative.Mode) string {
	modePrompt := investigativePrompt
	if mode == narrative.HighPressure {
		modePrompt = highPressurePrompt
	}
	return strings.NewReplacer(
		"%MODE%", modePrompt,
		"%HEADINGS%", strings.Join(narrative.Headings, ", "),
	).Replace(basePrompt)
}

// Messages builds the conversation sent to the provider for mode.
func Messages(mode narrative.Mode) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{ //nolint:exhaustruct // this is better for readability
			Role:    openai.ChatMessageRoleSystem,
			Content: SystemPrompt(mode),
		},
		{ //nolint:exhaustruct // this is better for readability
			Role:    openai.ChatMessageRoleUser,
			Content: userInstruction,
		},
	}
}
