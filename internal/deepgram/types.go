package deepgram

import "time"

// Response is the decoded payload of a prerecorded transcription request.
// Raw preserves the verbatim response body so callers can archive exactly
// what the API returned.
type Response struct {
	Metadata Metadata `json:"metadata"`
	Results  Results  `json:"results"`

	Raw []byte `json:"-"`
}

// Metadata describes the processed media and the request itself.
type Metadata struct {
	RequestID string   `json:"request_id"`
	Created   string   `json:"created"`
	Duration  float64  `json:"duration"` // Media length in seconds.
	Channels  int      `json:"channels"`
	Models    []string `json:"models,omitempty"`
}

// Results holds per-channel recognition output.
type Results struct {
	Channels []Channel `json:"channels"`
}

// Channel is one audio channel's recognition alternatives, best first.
type Channel struct {
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is a single transcription hypothesis.
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words"`
}

// Word is one recognized token with timing in seconds from media start.
type Word struct {
	Word           string  `json:"word"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence"`
	PunctuatedWord string  `json:"punctuated_word,omitempty"`
}

// Text returns the display form of the word: the punctuated variant when the
// API produced one, the bare token otherwise.
func (w Word) Text() string {
	if w.PunctuatedWord != "" {
		return w.PunctuatedWord
	}
	return w.Word
}

// best returns the first alternative of the first channel, the one the API
// ranks highest. Returns nil when the response carries no alternatives.
func (r *Response) best() *Alternative {
	if r == nil || len(r.Results.Channels) == 0 {
		return nil
	}
	ch := r.Results.Channels[0]
	if len(ch.Alternatives) == 0 {
		return nil
	}
	return &ch.Alternatives[0]
}

// Transcript returns the best hypothesis text, "" when absent.
func (r *Response) Transcript() string {
	if alt := r.best(); alt != nil {
		return alt.Transcript
	}
	return ""
}

// Confidence returns the best hypothesis confidence in 0..1, 0 when absent.
func (r *Response) Confidence() float64 {
	if alt := r.best(); alt != nil {
		return alt.Confidence
	}
	return 0
}

// Words returns the best hypothesis word timings, nil when absent.
func (r *Response) Words() []Word {
	if alt := r.best(); alt != nil {
		return alt.Words
	}
	return nil
}

// AudioDuration returns the media length reported by the API.
func (r *Response) AudioDuration() time.Duration {
	if r == nil {
		return 0
	}
	return time.Duration(r.Metadata.Duration * float64(time.Second))
}
