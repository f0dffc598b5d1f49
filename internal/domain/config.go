package domain

import "slices"

// ActionConfig is one entry of an "actions" list. The "type" key selects the
// builder; every other key belongs to that builder.
type ActionConfig map[string]any

// Type returns the action type name, or "" when it is missing.
func (c ActionConfig) Type() string {
	t, _ := c["type"].(string)
	return t
}

// IconConfig registers SVG markup under a name.
type IconConfig struct {
	Name   string `json:"name"`
	Markup string `json:"markup"`
}

// RibbonButtonConfig describes a toolbar button.
type RibbonButtonConfig struct {
	Icon      string         `json:"icon"`
	HoverText string         `json:"hoverText"`
	Actions   []ActionConfig `json:"actions,omitempty"`
}

// Alignment of a code-block action bar.
type Alignment string

const (
	AlignLeft  Alignment = "left"
	AlignRight Alignment = "right"
)

// CodeBlockButtonConfig describes a button shown next to fenced code blocks.
// An empty Languages list matches every language.
type CodeBlockButtonConfig struct {
	Languages []string       `json:"languages,omitempty"`
	Align     Alignment      `json:"align"`
	Text      string         `json:"text"`
	Actions   []ActionConfig `json:"actions,omitempty"`
}

// MatchesLanguage reports whether the button applies to a block in language.
func (c CodeBlockButtonConfig) MatchesLanguage(language string) bool {
	return len(c.Languages) == 0 || slices.Contains(c.Languages, language)
}

// Config is the plugin's config.json.
type Config struct {
	Icons            []IconConfig            `json:"icons,omitempty"`
	RibbonButtons    []RibbonButtonConfig    `json:"ribbonButtons,omitempty"`
	CodeBlockButtons []CodeBlockButtonConfig `json:"codeBlockButtons,omitempty"`
}
