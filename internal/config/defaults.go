package config

const (
	defaultProjectRoot = "./project"
	defaultLogDir      = "~/.local/share/sceneforge/logs"

	defaultVeoBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	defaultVeoModel           = "veo-3.0-generate-001"
	defaultVeoDurationSeconds = 5
	defaultVeoAspectRatio     = "16:9"
	defaultVeoPollInterval    = 10
	defaultVeoTimeout         = 600

	defaultElevenLabsBaseURL        = "https://api.elevenlabs.io"
	defaultElevenLabsVoiceID        = "21m00Tcm4TlvDq8ikWAM"
	defaultElevenLabsModelID        = "eleven_multilingual_v2"
	defaultElevenLabsStability      = 0.5
	defaultElevenLabsSimilarity     = 0.75
	defaultElevenLabsRequestTimeout = 120

	defaultDIDBaseURL      = "https://api.d-id.com"
	defaultDIDPollInterval = 5
	defaultDIDTimeout      = 600

	defaultFFmpegBinary  = "ffmpeg"
	defaultProResProfile = 2
	defaultFFmpegTimeout = 600

	defaultYouTubePrivacyStatus = "private"
	defaultYouTubeCategoryID    = "22"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ProjectRoot: defaultProjectRoot,
			LogDir:      defaultLogDir,
		},
		Veo: Veo{
			BaseURL:         defaultVeoBaseURL,
			Model:           defaultVeoModel,
			DurationSeconds: defaultVeoDurationSeconds,
			AspectRatio:     defaultVeoAspectRatio,
			PollInterval:    defaultVeoPollInterval,
			Timeout:         defaultVeoTimeout,
		},
		ElevenLabs: ElevenLabs{
			BaseURL:         defaultElevenLabsBaseURL,
			VoiceID:         defaultElevenLabsVoiceID,
			ModelID:         defaultElevenLabsModelID,
			Stability:       defaultElevenLabsStability,
			SimilarityBoost: defaultElevenLabsSimilarity,
			RequestTimeout:  defaultElevenLabsRequestTimeout,
		},
		DID: DID{
			BaseURL:      defaultDIDBaseURL,
			PollInterval: defaultDIDPollInterval,
			Timeout:      defaultDIDTimeout,
		},
		FFmpeg: FFmpeg{
			Binary:        defaultFFmpegBinary,
			ProResProfile: defaultProResProfile,
			Timeout:       defaultFFmpegTimeout,
		},
		YouTube: YouTube{
			PrivacyStatus: defaultYouTubePrivacyStatus,
			CategoryID:    defaultYouTubeCategoryID,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
