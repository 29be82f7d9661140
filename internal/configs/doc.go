// Package configs resolves the effective configuration for one invocation.
//
// Configuration is YAML with top-level databases, defaults, and workflows
// sections. Discovery checks ranked locations and loads the first file
// that exists:
//
//  1. The explicit --config path (must exist; skips discovery entirely)
//  2. ./audio-workflow.yaml
//  3. ./config.yaml
//  4. ~/.config/audio-workflow/config.yaml
//  5. ~/.audio-workflow.yaml
//  6. The path named by AUDIO_WORKFLOW_CONFIG
//  7. The embedded fallback configuration
//
// Exactly one file-derived source wins; files are never merged across
// locations. The user config directory deliberately outranks the home
// dotfile. CLI flags override individual fields at the call site, and
// environment values merge on top of whichever file loaded:
//
//   - OPENAI_API_KEY, NOTION_API_KEY: credentials, environment-only
//   - OPENAI_MODEL, OPENAI_TEMPERATURE: deepcast defaults
//   - WORKFLOW_OUTPUT_DIR, WORKFLOW_TEMP_DIR: directory overrides
//   - NOTION_DATABASE_ID, <NAME>_DATABASE_ID: database id fallbacks
//
// Example configuration file:
//
//	databases:
//	  meetings: 1f2e3d4c5b6a
//	  podcast: a6b5c4d3e2f1
//
//	defaults:
//	  database: meetings
//	  workflow: quick_notes
//	  output_dir: "."
//
//	workflows:
//	  full_analysis:
//	    description: Transcribe, analyze, and upload
//	    steps: [transcribe, deepcast, notion-upload]
//	    deepcast_model: gpt-4o
//	    deepcast_temperature: 0.3
package configs
