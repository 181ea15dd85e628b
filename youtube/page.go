package youtube

import (
	"encoding/json"

	"judol-guard/models"
)

// threadListResponse mirrors the subset of the commentThreads.list payload
// the pipeline reads.
type threadListResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			TopLevelComment struct {
				ID      string `json:"id"`
				Snippet struct {
					AuthorChannelURL string `json:"authorChannelUrl"`
					TextOriginal     string `json:"textOriginal"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// ThreadPage is one parsed page of top-level comments.
type ThreadPage struct {
	NextPageToken string
	Comments      []models.Comment
}

// ParseThreadPage extracts the next page token and the (id, author channel
// url, original text) triples from a raw page payload. Cached and freshly
// fetched payloads go through the same path.
func ParseThreadPage(data []byte) (ThreadPage, error) {
	var resp threadListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return ThreadPage{}, err
	}

	page := ThreadPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		top := item.Snippet.TopLevelComment
		page.Comments = append(page.Comments, models.Comment{
			ID:      top.ID,
			Channel: top.Snippet.AuthorChannelURL,
			Text:    top.Snippet.TextOriginal,
		})
	}
	return page, nil
}
