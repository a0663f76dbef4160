// MIT License
//
// Copyright 2024 Hive Tools Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package hive

import (
	"context"
	"encoding/json"
	"strings"
	"unicode"
)

// Condenser API methods used by the content readers.
const (
	MethodGetContent        = "condenser_api.get_content"
	MethodGetContentReplies = "condenser_api.get_content_replies"
)

// Post is a shaped condenser_api content record, used for both root posts
// and comments. Tags is computed from JSONMetadata rather than unmarshaled.
type Post struct {
	Author             string `json:"author"`
	Permlink           string `json:"permlink"`
	Category           string `json:"category"`
	ParentAuthor       string `json:"parent_author"`
	ParentPermlink     string `json:"parent_permlink"`
	Title              string `json:"title"`
	Body               string `json:"body"`
	Created            Time   `json:"created"`
	LastUpdate         Time   `json:"last_update"`
	Depth              uint32 `json:"depth"`
	Children           uint32 `json:"children"`
	NetVotes           int32  `json:"net_votes"`
	TotalPayoutValue   Asset  `json:"total_payout_value"`
	CuratorPayoutValue Asset  `json:"curator_payout_value"`
	PendingPayoutValue Asset  `json:"pending_payout_value"`
	JSONMetadata       string `json:"json_metadata"`

	Tags []string `json:"-"`
}

// IsPopulated returns true if the record refers to an existing post.
// condenser_api reports missing content as a record with an empty author
// rather than an error.
func (p Post) IsPopulated() bool {
	return p.Author != ""
}

// shape fills the computed fields.
func (p *Post) shape() {
	if p.JSONMetadata == "" {
		return
	}
	var meta struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(p.JSONMetadata), &meta); err != nil {
		return
	}
	p.Tags = meta.Tags
}

// Excerpt returns the first n runes of the post body with markdown image and
// link noise stripped, intended for previews.
func (p Post) Excerpt(n int) string {
	body := SanitizeBody(p.Body)
	runes := []rune(body)
	if len(runes) <= n {
		return body
	}
	return strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace) + "..."
}

// GetContent returns the shaped post record for author/permlink, or nil if
// no such post exists. Empty arguments fail with a ValidationError before
// any network call.
func GetContent(ctx context.Context, c Caller,
	author, permlink string) (*Post, error) {

	if author == "" {
		return nil, ValidationError{Field: "author",
			Reason: "must not be empty"}
	}
	if permlink == "" {
		return nil, ValidationError{Field: "permlink",
			Reason: "must not be empty"}
	}

	var post Post
	params := []interface{}{author, permlink}
	if err := c.Call(ctx, MethodGetContent, params, &post); err != nil {
		return nil, err
	}
	if !post.IsPopulated() {
		return nil, nil
	}
	post.shape()
	return &post, nil
}

// GetContentReplies returns the direct comments on author/permlink, oldest
// first as the node reports them. The result is never nil: a missing post or
// a post without comments both yield an empty slice.
func GetContentReplies(ctx context.Context, c Caller,
	author, permlink string) ([]Post, error) {

	if author == "" {
		return nil, ValidationError{Field: "author",
			Reason: "must not be empty"}
	}
	if permlink == "" {
		return nil, ValidationError{Field: "permlink",
			Reason: "must not be empty"}
	}

	replies := []Post{}
	params := []interface{}{author, permlink}
	if err := c.Call(ctx, MethodGetContentReplies, params, &replies); err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []Post{}
	}
	for i := range replies {
		replies[i].shape()
	}
	return replies, nil
}

// SanitizeBody strips markdown image tags and collapses whitespace runs in a
// post body. Link targets are dropped, link texts kept.
func SanitizeBody(body string) string {
	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); {
		// Image: ![alt](url) is dropped entirely.
		if body[i] == '!' && i+1 < len(body) && body[i+1] == '[' {
			if end := skipMarkdownLink(body[i+1:]); end > 0 {
				i += 1 + end
				continue
			}
		}
		// Link: [text](url) keeps text only.
		if body[i] == '[' {
			if end := skipMarkdownLink(body[i:]); end > 0 {
				text := body[i+1 : i+strings.IndexByte(body[i:], ']')]
				b.WriteString(text)
				i += end
				continue
			}
		}
		b.WriteByte(body[i])
		i++
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// skipMarkdownLink returns the length of a leading [..](..) group, or 0 if s
// does not start one.
func skipMarkdownLink(s string) int {
	if len(s) == 0 || s[0] != '[' {
		return 0
	}
	closing := strings.IndexByte(s, ']')
	if closing < 0 || closing+1 >= len(s) || s[closing+1] != '(' {
		return 0
	}
	end := strings.IndexByte(s[closing:], ')')
	if end < 0 {
		return 0
	}
	return closing + end + 1
}
