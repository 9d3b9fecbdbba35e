// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Field names a stage-written field of the pipeline state.
type Field string

const (
	FieldResearchData     Field = "research_data"
	FieldDraftContent     Field = "draft_content"
	FieldCritiqueFeedback Field = "critique_feedback"
)

// Update is the delta a stage returns. Nil fields are left untouched.
type Update struct {
	ResearchData     *string
	DraftContent     *string
	CritiqueFeedback *string
	RevisionCount    *int
}

// fields lists the write-once fields u sets.
func (u Update) fields() []Field {
	var fs []Field
	if u.ResearchData != nil {
		fs = append(fs, FieldResearchData)
	}
	if u.DraftContent != nil {
		fs = append(fs, FieldDraftContent)
	}
	if u.CritiqueFeedback != nil {
		fs = append(fs, FieldCritiqueFeedback)
	}
	return fs
}

// merge returns a copy of s with u applied. written tracks the write-once
// fields already set during this run and is updated on success.
func merge(s types.PipelineState, u Update, written map[Field]bool) (types.PipelineState, error) {
	for _, f := range u.fields() {
		if written[f] {
			return s, fmt.Errorf("%w: %s", ErrFieldRewritten, f)
		}
	}

	next := s
	if u.ResearchData != nil {
		next.ResearchData = *u.ResearchData
	}
	if u.DraftContent != nil {
		next.DraftContent = *u.DraftContent
	}
	if u.CritiqueFeedback != nil {
		next.CritiqueFeedback = *u.CritiqueFeedback
	}
	if u.RevisionCount != nil {
		next.RevisionCount = *u.RevisionCount
	}

	for _, f := range u.fields() {
		written[f] = true
	}
	return next, nil
}

func ptr[T any](v T) *T { return &v }
