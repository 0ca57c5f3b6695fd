// Package elevenlabs synthesizes scene dialogue into audio files through the
// ElevenLabs text-to-speech API and exposes the account's voice catalog.
package elevenlabs
