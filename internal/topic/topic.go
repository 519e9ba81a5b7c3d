package topic

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Timecode is a position inside the program audio. The data files write
// it either as a "m:ss" string or as a bare number of seconds; both
// decode to the string form.
type Timecode string

// UnmarshalJSON accepts both representations.
func (t *Timecode) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*t = Timecode(v)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Timecode(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// ContentItem is one timestamped bilingual line of a transcript.
type ContentItem struct {
	EN   string   `json:"en"`
	TW   string   `json:"tw"`
	Time Timecode `json:"time,omitempty"`
}

// GlossaryItem is one line of a topic's vocabulary glossary.
type GlossaryItem struct {
	Text string   `json:"text"`
	Time Timecode `json:"time,omitempty"`
}

// Glossary is a topic's vocabulary section.
type Glossary struct {
	Preface    string         `json:"preface,omitempty"`
	Content    []GlossaryItem `json:"content"`
	Postscript string         `json:"postscript,omitempty"`
}

// QuizItem is one comprehension question attached to a topic.
type QuizItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Time     Timecode `json:"time,omitempty"`
}

// Topic is one radio-program transcript with its attachments.
type Topic struct {
	ID         string        `json:"id"`
	Type       string        `json:"type"`
	Tags       []string      `json:"tag"`
	Title      string        `json:"title"`
	Audio      string        `json:"audio,omitempty"`
	Content    []ContentItem `json:"content"`
	Vocabulary *Glossary     `json:"vocabulary,omitempty"`
	Quiz       []QuizItem    `json:"quiz,omitempty"`
}
