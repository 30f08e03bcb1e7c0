package deepgram

import (
	"encoding/json"

	"github.com/heartmarshall/talklens-backend/internal/domain"
)

// apiResponse mirrors the prerecorded-transcription response envelope.
// Only the first channel's first alternative is consumed.
type apiResponse struct {
	Results apiResults `json:"results"`
}

type apiResults struct {
	Channels []apiChannel `json:"channels"`
}

type apiChannel struct {
	Alternatives []apiAlternative `json:"alternatives"`
}

type apiAlternative struct {
	Transcript string         `json:"transcript"`
	Words      []apiWord      `json:"words"`
	Paragraphs *apiParagraphs `json:"paragraphs"`
}

type apiWord struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

type apiParagraphs struct {
	Paragraphs []apiParagraph `json:"paragraphs"`
}

type apiParagraph struct {
	Start     float64       `json:"start"`
	End       float64       `json:"end"`
	Sentences []apiSentence `json:"sentences"`
}

type apiSentence struct {
	Text string `json:"text"`
}

// mapAPIResponse converts the raw provider body into a TranscriptResult.
// Missing channels or alternatives produce an empty transcript, never an
// error — the provider signals "nothing recognized" that way. The full
// body is retained as Raw for audit.
func mapAPIResponse(body []byte) (*domain.TranscriptResult, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	result := &domain.TranscriptResult{
		Words:      []domain.Word{},
		Paragraphs: []domain.Paragraph{},
		Raw:        json.RawMessage(body),
	}

	if len(resp.Results.Channels) == 0 || len(resp.Results.Channels[0].Alternatives) == 0 {
		return result, nil
	}

	alt := resp.Results.Channels[0].Alternatives[0]
	result.Text = alt.Transcript

	for _, w := range alt.Words {
		result.Words = append(result.Words, domain.Word{
			Word:       w.Word,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		})
	}

	if alt.Paragraphs != nil {
		for _, p := range alt.Paragraphs.Paragraphs {
			para := domain.Paragraph{Start: p.Start, End: p.End}
			for _, s := range p.Sentences {
				para.Sentences = append(para.Sentences, s.Text)
			}
			result.Paragraphs = append(result.Paragraphs, para)
		}
	}

	return result, nil
}
