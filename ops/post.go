package ops

import (
	"context"
	"encoding/json"

	"github.com/hive-tools/hivekit/hive"
	"github.com/hive-tools/hivekit/hivecrypto"
)

// App is the application tag written into every post's json_metadata.
const App = "hivekit/1.0"

// PostData describes a post to create. Permlink is optional: when empty a
// URL-safe permlink with a random suffix is derived from the title.
type PostData struct {
	Title       string
	Body        string
	Tags        []string
	Permlink    string
	Description string
	Image       string
}

// PostUpdate carries the fields EditPost should change. Zero fields keep the
// existing value.
type PostUpdate struct {
	Title string
	Body  string
	Tags  []string
}

// postMetadata is the json_metadata document attached to posts.
type postMetadata struct {
	Tags        []string `json:"tags"`
	App         string   `json:"app"`
	Format      string   `json:"format"`
	Description string   `json:"description,omitempty"`
	Image       []string `json:"image,omitempty"`
}

func (m postMetadata) encode() string {
	data, _ := json.Marshal(m)
	return string(data)
}

// validatePost checks the parts of PostData common to create and edit.
func validatePost(title, body string, tags []string) error {
	if title == "" {
		return hive.ValidationError{Field: "title",
			Reason: "must not be empty"}
	}
	if body == "" {
		return hive.ValidationError{Field: "body",
			Reason: "must not be empty"}
	}
	if len(tags) == 0 {
		return hive.ValidationError{Field: "tags",
			Reason: "must not be empty"}
	}
	for _, tag := range tags {
		if err := hive.ValidateTag(tag); err != nil {
			return err
		}
	}
	return nil
}

// CreatePost validates postData, builds a comment operation for a new root
// post, signs it with the posting key and broadcasts it. Validation and
// network failures come back in the Result; only a malformed WIF is returned
// as an error, before any network call.
func CreatePost(ctx context.Context, c Client, creds Credentials,
	postData PostData) (Result, error) {

	key, err := hivecrypto.ParsePrivateKey(creds.PostingWIF)
	if err != nil {
		return Result{}, err
	}

	if err := hive.ValidateUsername(creds.Username); err != nil {
		return failure(err), nil
	}
	if err := validatePost(postData.Title, postData.Body,
		postData.Tags); err != nil {
		return failure(err), nil
	}

	permlink := postData.Permlink
	if permlink == "" {
		permlink = hive.NewPermlinkSuffixed(postData.Title)
	} else if err := hive.ValidatePermlink(permlink); err != nil {
		return failure(err), nil
	}

	metadata := postMetadata{
		Tags:        postData.Tags,
		App:         App,
		Format:      "markdown",
		Description: postData.Description,
	}
	if postData.Image != "" {
		metadata.Image = []string{postData.Image}
	}

	op := hive.CommentOperation{
		ParentPermlink: postData.Tags[0],
		Author:         creds.Username,
		Permlink:       permlink,
		Title:          postData.Title,
		Body:           postData.Body,
		JSONMetadata:   metadata.encode(),
	}
	result := broadcast(ctx, c, key, op)
	result.Permlink = permlink
	return result, nil
}

// EditPost rebroadcasts an existing post's comment operation with updated
// fields, reusing its permlink. The target must exist and be owned by the
// credential's account; both are checked against the chain before anything
// is signed.
func EditPost(ctx context.Context, c Client, creds Credentials,
	author, permlink string, update PostUpdate) (Result, error) {

	key, err := hivecrypto.ParsePrivateKey(creds.PostingWIF)
	if err != nil {
		return Result{}, err
	}

	if err := hive.ValidateUsername(creds.Username); err != nil {
		return failure(err), nil
	}
	if creds.Username != author {
		return failure(hive.ValidationError{Field: "author",
			Reason: "posts can only be edited by their author"}), nil
	}

	existing, err := hive.GetContent(ctx, c, author, permlink)
	if err != nil {
		return failure(err), nil
	}
	if existing == nil {
		return failure(hive.ValidationError{Field: "permlink",
			Reason: "no such post"}), nil
	}

	title := existing.Title
	if update.Title != "" {
		title = update.Title
	}
	body := existing.Body
	if update.Body != "" {
		body = update.Body
	}
	tags := existing.Tags
	if len(update.Tags) > 0 {
		tags = update.Tags
	}
	if len(tags) == 0 {
		tags = []string{existing.Category}
	}
	if err := validatePost(title, body, tags); err != nil {
		return failure(err), nil
	}

	op := hive.CommentOperation{
		ParentAuthor:   existing.ParentAuthor,
		ParentPermlink: existing.Category,
		Author:         author,
		Permlink:       permlink,
		Title:          title,
		Body:           body,
		JSONMetadata: postMetadata{
			Tags:   tags,
			App:    App,
			Format: "markdown",
		}.encode(),
	}
	result := broadcast(ctx, c, key, op)
	result.Permlink = permlink
	return result, nil
}
