// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PipelineState is the record threaded through the Research, Draft and
// Critique stages. A fresh state is built for every request and discarded
// once the response is formed; only content, critique and research leave
// the pipeline.
type PipelineState struct {
	// Topic is the subject the content is written about.
	Topic string `json:"topic" yaml:"topic"`

	// Platform is the raw platform text from the request (e.g. "LinkedIn").
	Platform string `json:"platform" yaml:"platform"`

	// Tone is free text describing the voice of the content.
	Tone string `json:"tone" yaml:"tone"`

	// Creativity is the 1-10 sampling scale requested by the caller.
	Creativity int `json:"creativity" yaml:"creativity"`

	// ResearchData is written by the research stage.
	ResearchData string `json:"research_data" yaml:"research_data"`

	// DraftContent is written by the draft stage.
	DraftContent string `json:"draft_content" yaml:"draft_content"`

	// CritiqueFeedback is written by the critique stage. It holds either
	// editorial feedback or the literal "PERFECT".
	CritiqueFeedback string `json:"critique_feedback" yaml:"critique_feedback"`

	// FinalContent is reserved for a revision loop and is never written.
	FinalContent string `json:"final_content" yaml:"final_content"`

	// RevisionCount starts at 0 and is reset to 0 by the draft stage.
	RevisionCount int `json:"revision_count" yaml:"revision_count"`
}
