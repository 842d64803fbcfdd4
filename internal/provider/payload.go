package provider

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/jonathan/keyword-atlas/internal/types"
)

// Provider payloads use snake_case keys and vary by integration: some
// nest children, some declare flat parent ids, some carry only a URL or
// an HTML body. The wire shapes below collapse into the one internal
// record form on ingestion.

type keywordPayload struct {
	ID                 int              `json:"id"`
	KeywordTitle       string           `json:"keyword_title"`
	Keyword            string           `json:"keyword"`
	MetaTitle          string           `json:"meta_title"`
	PostContent        string           `json:"post_content"`
	LinkedURL          string           `json:"linked_url"`
	ParentID           int              `json:"parent_id"`
	SupportingKeywords []keywordPayload `json:"supporting_keywords"`
	Categories         []string         `json:"categories"`
}

type serpReportPayload struct {
	ReportID   string           `json:"report_id"`
	CapturedAt time.Time        `json:"captured_at"`
	Rows       []serpRowPayload `json:"rows"`
}

type serpRowPayload struct {
	Keyword string `json:"keyword"`
	Google  *int   `json:"google_position"`
	Bing    *int   `json:"bing_position"`
	Yahoo   *int   `json:"yahoo_position"`
}

type linkPayload struct {
	Direction      string `json:"direction"`
	SourceURL      string `json:"source_url"`
	TargetURL      string `json:"target_url"`
	Link           string `json:"link"`
	AnchorText     string `json:"anchor_text"`
	Category       string `json:"category"`
	ParentCategory string `json:"parent_category"`
	Reciprocal     bool   `json:"reciprocal"`
	Disabled       bool   `json:"disabled"`
}

// DecodeKeywords parses a raw keyword list payload.
func DecodeKeywords(data []byte) ([]types.KeywordRecord, error) {
	var payload []keywordPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &DecodeError{Resource: "keyword list", Message: "invalid JSON", Cause: err}
	}

	records := make([]types.KeywordRecord, 0, len(payload))
	for _, p := range payload {
		records = append(records, p.toRecord())
	}
	return records, nil
}

func (p keywordPayload) toRecord() types.KeywordRecord {
	rec := types.KeywordRecord{
		ID:           p.ID,
		KeywordTitle: p.KeywordTitle,
		Keyword:      p.Keyword,
		MetaTitle:    p.MetaTitle,
		PostContent:  p.PostContent,
		LinkedURL:    p.LinkedURL,
		ParentID:     p.ParentID,
		Categories:   p.Categories,
	}
	for _, child := range p.SupportingKeywords {
		rec.SupportingKeywords = append(rec.SupportingKeywords, child.toRecord())
	}
	return rec
}

// DecodeSerpHistory parses a raw report list payload into a history
// ordered by capture timestamp.
func DecodeSerpHistory(data []byte) (types.SerpHistory, error) {
	var payload []serpReportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &DecodeError{Resource: "serp report", Message: "invalid JSON", Cause: err}
	}

	history := make(types.SerpHistory, 0, len(payload))
	for _, report := range payload {
		snapshot := types.SerpSnapshot{
			ReportID:   report.ReportID,
			CapturedAt: report.CapturedAt,
		}
		for _, row := range report.Rows {
			snapshot.Rows = append(snapshot.Rows, types.SerpSnapshotRow{
				KeywordText: row.Keyword,
				Positions: map[types.Engine]*int{
					types.EngineGoogle: row.Google,
					types.EngineBing:   row.Bing,
					types.EngineYahoo:  row.Yahoo,
				},
			})
		}
		history = append(history, snapshot)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CapturedAt.Before(history[j].CapturedAt)
	})
	return history, nil
}

// DecodeLinks parses a raw link report payload and splits it by
// direction.
func DecodeLinks(data []byte) (inbound, outbound []types.LinkRecord, err error) {
	var payload []linkPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, nil, &DecodeError{Resource: "link report", Message: "invalid JSON", Cause: err}
	}

	for _, p := range payload {
		record := types.LinkRecord{
			SourceURL:      p.SourceURL,
			TargetURL:      p.TargetURL,
			Link:           p.Link,
			AnchorText:     p.AnchorText,
			Category:       p.Category,
			ParentCategory: p.ParentCategory,
			Reciprocal:     p.Reciprocal,
			Disabled:       p.Disabled,
		}
		switch p.Direction {
		case "inbound":
			record.Direction = types.LinkInbound
			inbound = append(inbound, record)
		default:
			record.Direction = types.LinkOutbound
			outbound = append(outbound, record)
		}
	}
	return inbound, outbound, nil
}
