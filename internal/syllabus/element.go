// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package syllabus

// Kind classifies an Element. It alone decides how the element renders.
type Kind int

const (
	KindTitle Kind = iota
	KindHeader
	KindItalic
	KindListItem
	KindSubListItem
	KindText
)

var kindNames = [...]string{
	KindTitle:       "title",
	KindHeader:      "header",
	KindItalic:      "italic",
	KindListItem:    "list_item",
	KindSubListItem: "sub_list_item",
	KindText:        "text",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText lets kinds appear by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Element is one classified unit of output.
type Element struct {
	Text string `json:"text" yaml:"text"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Markdown renders the element. The result depends only on Kind and Text.
func (e Element) Markdown() string {
	switch e.Kind {
	case KindTitle:
		return "# " + e.Text
	case KindHeader:
		return "## " + e.Text
	case KindItalic:
		return "*" + e.Text + "*"
	case KindListItem:
		return "- " + e.Text
	case KindSubListItem:
		return "\t- " + e.Text
	default:
		// Two trailing spaces force a hard line break.
		return e.Text + "  "
	}
}
