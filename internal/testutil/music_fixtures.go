package testutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// SearchHit describes one search record used to build upstream payloads in tests
type SearchHit struct {
	ID     string
	Title  string
	Artist string // Empty omits the singer list entirely
	Album  string // Empty omits the album field
}

// QQSearchJSONP generates a QQ Music client_search_cp JSONP payload wrapping the given hits.
func QQSearchJSONP(callback string, hits ...SearchHit) string {
	list := make([]map[string]any, 0, len(hits))
	for _, hit := range hits {
		item := map[string]any{
			"songmid":  hit.ID,
			"songname": hit.Title,
			"songid":   len(list) + 1000,
		}
		if hit.Artist != "" {
			item["singer"] = []map[string]any{{"name": hit.Artist, "mid": "singer" + hit.ID}}
		}
		if hit.Album != "" {
			item["albumname"] = hit.Album
		}
		list = append(list, item)
	}

	payload := map[string]any{
		"code": 0,
		"data": map[string]any{
			"keyword": "test",
			"song": map[string]any{
				"curnum":   len(list),
				"curpage":  1,
				"list":     list,
				"totalnum": len(list),
			},
		},
	}
	return wrapJSONP(callback, mustMarshal(payload))
}

// QQEmptyJSONP generates a JSONP payload without the data.song wrapper.
func QQEmptyJSONP(callback string) string {
	return wrapJSONP(callback, `{"code":0,"subcode":0,"data":{}}`)
}

// NeteaseSearchJSON generates a NetEase search/get payload. Hit IDs must be numeric.
func NeteaseSearchJSON(hits ...SearchHit) string {
	songs := make([]map[string]any, 0, len(hits))
	for _, hit := range hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("netease hit id must be numeric, got %q", hit.ID))
		}
		song := map[string]any{
			"id":       id,
			"name":     hit.Title,
			"duration": 215000,
		}
		artists := []map[string]any{}
		if hit.Artist != "" {
			artists = append(artists, map[string]any{"id": 1, "name": hit.Artist})
		}
		song["artists"] = artists
		if hit.Album != "" {
			song["album"] = map[string]any{"id": 2, "name": hit.Album}
		}
		songs = append(songs, song)
	}

	return mustMarshal(map[string]any{
		"code": 200,
		"result": map[string]any{
			"songCount": len(songs),
			"songs":     songs,
		},
	})
}

// NeteaseEmptyJSON generates a NetEase payload without a result object.
func NeteaseEmptyJSON() string {
	return `{"code":200}`
}

// LookupReplyJSON generates a lookup API reply document.
func LookupReplyJSON(code int, url, message string) string {
	reply := map[string]any{"code": code}
	if url != "" {
		reply["url"] = url
	}
	if message != "" {
		reply["message"] = message
	}
	return mustMarshal(reply)
}

// AudioBytes returns n bytes of deterministic non-JSON content starting with an MPEG frame sync.
func AudioBytes(n int) []byte {
	header := []byte{0xFF, 0xFB, 0x90, 0x64}
	out := make([]byte, n)
	for i := range out {
		if i < len(header) {
			out[i] = header[i]
			continue
		}
		out[i] = byte(i % 251)
	}
	return out
}

func wrapJSONP(callback, body string) string {
	if callback == "" {
		return body
	}
	var sb strings.Builder
	sb.WriteString(callback)
	sb.WriteString("(")
	sb.WriteString(body)
	sb.WriteString(")")
	return sb.String()
}

func mustMarshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
