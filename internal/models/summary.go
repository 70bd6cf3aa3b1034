package models

// SummarySpan is one typed run of text within a rendered summary line.
// Bold spans correspond to double-asterisk emphasis in the generated text.
type SummarySpan struct {
	Text string `json:"text"`
	Bold bool   `json:"bold"`
}

// SummaryLine is one render unit of a generated summary: either a bullet
// item or a plain paragraph, holding its typed spans in order.
type SummaryLine struct {
	Bullet bool          `json:"bullet"`
	Spans  []SummarySpan `json:"spans"`
}

// BoldSpans returns the bold spans of the line in order
func (l SummaryLine) BoldSpans() []SummarySpan {
	var bold []SummarySpan
	for _, s := range l.Spans {
		if s.Bold {
			bold = append(bold, s)
		}
	}
	return bold
}

// PlainText returns the line's text with span markup removed
func (l SummaryLine) PlainText() string {
	var out string
	for _, s := range l.Spans {
		out += s.Text
	}
	return out
}
