// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt holds the platform prompt catalog and the message builders
// used by the draft and critique stages.
package prompt

import (
	"strings"
	"text/template"
)

// Platform is the closed set of platforms with a dedicated content structure.
type Platform int

const (
	// Unknown is any platform without its own template. It renders the
	// LinkedIn template.
	Unknown Platform = iota
	LinkedIn
	Medium
	Twitter
)

// Perfect is the critique sentinel meaning the draft needs no changes.
const Perfect = "PERFECT"

var platformNames = map[string]Platform{
	"LinkedIn": LinkedIn,
	"Medium":   Medium,
	"Twitter":  Twitter,
}

// ParsePlatform maps request text to a Platform. Matching is exact, so
// "linkedin" is Unknown.
func ParsePlatform(s string) Platform {
	if p, ok := platformNames[s]; ok {
		return p
	}
	return Unknown
}

func (p Platform) String() string {
	switch p {
	case LinkedIn:
		return "LinkedIn"
	case Medium:
		return "Medium"
	case Twitter:
		return "Twitter"
	default:
		return "Unknown"
	}
}

var linkedInTmpl = template.Must(template.New("linkedin").Parse(`You are a top-tier LinkedIn Influencer. Write a viral LinkedIn post about the given topic.
Style: Professional yet personal, use short paragraphs, emojis, and a strong hook.
Structure: Hook -> Insight -> Actionable Advice -> Engagement Question.
Tone: {{.Tone}}
`))

var mediumTmpl = template.Must(template.New("medium").Parse(`You are a thought leader on Medium. Write a comprehensive article about the given topic.
Style: In-depth, storytelling, use headers (##), and bullet points.
Structure: Title -> Introduction -> Deep Dive (3-4 sections) -> Conclusion.
Tone: {{.Tone}}
`))

var twitterTmpl = template.Must(template.New("twitter").Parse(`You are a Twitter/X viral content creator. Write a Thread (5-7 tweets) about the given topic.
Style: Punchy, controversial or insightful, very short sentences.
Structure: Tweet 1 (Hook) -> Tweet 2-6 (Value) -> Tweet 7 (Call to Action).
Tone: {{.Tone}}
`))

var critiqueTmpl = template.Must(template.New("critique").Parse(`You are a strict Editor. Review the draft content.
Check for:
1. Tone consistency (Is it {{.Tone}}?)
2. Platform fit (Is it good for {{.Platform}}?)
3. Engagement (Is the hook strong?)

Provide brief, constructive feedback on how to improve it.
If it is perfect, just say "` + Perfect + `".
`))

func (p Platform) template() *template.Template {
	switch p {
	case LinkedIn:
		return linkedInTmpl
	case Medium:
		return mediumTmpl
	case Twitter:
		return twitterTmpl
	case Unknown:
		return linkedInTmpl
	}
	return linkedInTmpl
}

// SystemPrompt returns the drafting instruction for p with tone substituted.
func SystemPrompt(p Platform, tone string) string {
	return render(p.template(), struct{ Tone string }{Tone: tone})
}

// CritiquePrompt returns the editorial instruction. platform is the raw
// request text so the editor sees what the caller asked for.
func CritiquePrompt(platform, tone string) string {
	return render(critiqueTmpl, struct{ Platform, Tone string }{Platform: platform, Tone: tone})
}

// DraftMessage builds the user message for the draft stage.
func DraftMessage(topic, research string) string {
	var b strings.Builder
	b.WriteString("Topic: ")
	b.WriteString(topic)
	b.WriteString("\n\nResearch Data:\n")
	b.WriteString(research)
	b.WriteString("\n\nWrite the content now.")
	return b.String()
}

// CritiqueMessage builds the user message for the critique stage.
func CritiqueMessage(draft, platform, tone string) string {
	return "Draft:\n" + draft + "\n\nPlatform: " + platform + "\nTone: " + tone
}

// IsPerfect reports whether critique feedback is the no-changes sentinel.
func IsPerfect(feedback string) bool {
	return strings.TrimSpace(feedback) == Perfect
}

// render executes a package template. The templates are parsed at init and
// only reference string fields, so execution into a builder cannot fail.
func render(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		panic("prompt: executing " + t.Name() + ": " + err.Error())
	}
	return b.String()
}
