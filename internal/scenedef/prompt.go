package scenedef

import "strings"

// Prompt is the structured video-generation prompt for one scene. Only the
// cinematic description is required; the remaining fields refine character,
// framing, lighting, and performance.
type Prompt struct {
	CinematicDescription string `json:"cinematic_description"`
	CharacterConsistency string `json:"character_consistency,omitempty"`
	CameraMovement       string `json:"camera_movement,omitempty"`
	LightingStyle        string `json:"lighting_style,omitempty"`
	EmotionPerformance   string `json:"emotion_performance,omitempty"`
	DialogueText         string `json:"dialogue_text,omitempty"`
}

// Compile flattens the structured prompt into the single free-text
// instruction the generation service accepts. Optional fields are appended in
// fixed order with their labels; the dialogue text is not part of the visual
// prompt.
func (p Prompt) Compile() string {
	parts := []string{strings.TrimSpace(p.CinematicDescription)}

	appendLabeled := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			parts = append(parts, label+": "+value)
		}
	}
	appendLabeled("Character", p.CharacterConsistency)
	appendLabeled("Camera", p.CameraMovement)
	appendLabeled("Lighting", p.LightingStyle)
	appendLabeled("Performance", p.EmotionPerformance)

	return strings.Join(parts, ". ")
}

// Dialogue returns the trimmed dialogue text.
func (p Prompt) Dialogue() string {
	return strings.TrimSpace(p.DialogueText)
}

// HasDialogue reports whether the scene carries speakable dialogue.
func (p Prompt) HasDialogue() bool {
	return p.Dialogue() != ""
}
