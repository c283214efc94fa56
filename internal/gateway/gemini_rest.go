package gateway

import (
	"strings"
)

// Wire types of the Gemini generateContent REST endpoint. Only the fields used here are
// modelled.

type RESTRequest struct {
	Contents []RESTContent `json:"contents"`
}

type RESTContent struct {
	Parts []RESTPart `json:"parts"`
}

type RESTPart struct {
	InlineData *RESTInlineData `json:"inline_data,omitempty"`
	Text       string          `json:"text,omitempty"`
}

type RESTInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type RESTResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewImagePromptRequest puts the image first and the instruction second, which is the order
// the proxy has always used.
func NewImagePromptRequest(prompt, mimeType, data string) RESTRequest {
	return RESTRequest{Contents: []RESTContent{{Parts: []RESTPart{
		{InlineData: &RESTInlineData{MimeType: mimeType, Data: data}},
		{Text: prompt},
	}}}}
}

// CandidateText joins the text parts of the first candidate. ok is false when the envelope
// carries no text at all.
func (r RESTResponse) CandidateText() (string, bool) {
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return "", false
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}
