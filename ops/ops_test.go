package ops

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hive-tools/hivekit/hive"
	"github.com/hive-tools/hivekit/hivecrypto"
)

// A known good 0x80 WIF test vector.
const testWIF = "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ"

var testCreds = Credentials{Username: "alice", PostingWIF: testWIF}

// fakeClient satisfies Client without any network, capturing the broadcast
// transaction for inspection.
type fakeClient struct {
	contentJSON string
	taposErr    error
	calls       int
	broadcast   *hive.Transaction
}

func (f *fakeClient) ChainID() hive.Bytes32 {
	return hive.Bytes32{0xbe, 0xea, 0xb0, 0xde}
}

func (f *fakeClient) TaposCache(context.Context) (hive.TaposEntry, error) {
	if f.taposErr != nil {
		return hive.TaposEntry{}, f.taposErr
	}
	return hive.TaposEntry{
		RefBlockNum:    0x1e4b,
		RefBlockPrefix: 0x12345678,
		ChainTime:      time.Unix(1700000000, 0).UTC(),
	}, nil
}

func (f *fakeClient) Call(_ context.Context,
	method string, params, result interface{}) error {
	f.calls++
	switch method {
	case hive.MethodGetContent:
		return json.Unmarshal([]byte(f.contentJSON), result)
	case hive.MethodBroadcastTransaction:
		f.broadcast = params.([]interface{})[0].(*hive.Transaction)
		return json.Unmarshal(
			[]byte(`{"id": "txid", "block_num": 1}`), result)
	}
	return fmt.Errorf("unexpected method %v", method)
}

// verifySignature checks that the captured transaction carries exactly one
// canonical signature that recovers to the posting key.
func verifySignature(t *testing.T, c *fakeClient) {
	t.Helper()
	require := require.New(t)

	require.NotNil(c.broadcast)
	require.Len(c.broadcast.Signatures, 1)
	sig, err := hex.DecodeString(c.broadcast.Signatures[0])
	require.NoError(err)
	require.True(hivecrypto.IsCanonical(sig))

	digest := hivecrypto.Digest(c.ChainID(), c.broadcast.MarshalBinary())
	recovered, err := hivecrypto.RecoverPublicKey(sig, digest)
	require.NoError(err)

	key, err := hivecrypto.ParsePrivateKey(testWIF)
	require.NoError(err)
	require.Equal(key.Public().SerializeCompressed(),
		recovered.SerializeCompressed())
}

func TestCreatePost(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := &fakeClient{}
	result, err := CreatePost(context.Background(), c, testCreds, PostData{
		Title:       "My First Post",
		Body:        "Hello chain!",
		Tags:        []string{"blog", "intro"},
		Description: "a greeting",
		Image:       "http://x/pic.png",
	})
	require.NoError(err)
	require.True(result.Success, "create failed: %v", result.Err)
	assert.Equal("txid", result.TransactionID)
	assert.True(strings.HasPrefix(result.Permlink, "my-first-post-"))
	assert.NoError(hive.ValidatePermlink(result.Permlink))

	require.Len(c.broadcast.Operations, 1)
	op := c.broadcast.Operations[0].(hive.CommentOperation)
	assert.Equal("alice", op.Author)
	assert.Empty(op.ParentAuthor)
	assert.Equal("blog", op.ParentPermlink, "first tag is the category")
	assert.Equal(result.Permlink, op.Permlink)

	var meta struct {
		Tags        []string `json:"tags"`
		App         string   `json:"app"`
		Format      string   `json:"format"`
		Description string   `json:"description"`
		Image       []string `json:"image"`
	}
	require.NoError(json.Unmarshal([]byte(op.JSONMetadata), &meta))
	assert.Equal([]string{"blog", "intro"}, meta.Tags)
	assert.Equal(App, meta.App)
	assert.Equal("markdown", meta.Format)
	assert.Equal("a greeting", meta.Description)
	assert.Equal([]string{"http://x/pic.png"}, meta.Image)

	verifySignature(t, c)
}

func TestCreatePostExplicitPermlink(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := &fakeClient{}
	result, err := CreatePost(context.Background(), c, testCreds, PostData{
		Title:    "Title",
		Body:     "Body",
		Tags:     []string{"blog"},
		Permlink: "my-fixed-permlink",
	})
	require.NoError(err)
	assert.True(result.Success)
	assert.Equal("my-fixed-permlink", result.Permlink)
}

func TestCreatePostValidation(t *testing.T) {
	assert := assert.New(t)

	for name, post := range map[string]PostData{
		"empty title": {Body: "b", Tags: []string{"blog"}},
		"empty body":  {Title: "t", Tags: []string{"blog"}},
		"no tags":     {Title: "t", Body: "b"},
		"bad tag":     {Title: "t", Body: "b", Tags: []string{"No Caps"}},
		"bad permlink": {Title: "t", Body: "b", Tags: []string{"blog"},
			Permlink: "Not Valid"},
	} {
		c := &fakeClient{}
		result, err := CreatePost(context.Background(), c, testCreds, post)
		assert.NoError(err, name)
		assert.False(result.Success, name)
		var vErr hive.ValidationError
		assert.ErrorAs(result.Err, &vErr, name)
		assert.Zero(c.calls, "%v: validation must precede I/O", name)
	}
}

func TestCreatePostBadWIF(t *testing.T) {
	assert := assert.New(t)

	c := &fakeClient{}
	_, err := CreatePost(context.Background(), c,
		Credentials{Username: "alice", PostingWIF: "garbage"},
		PostData{Title: "t", Body: "b", Tags: []string{"blog"}})

	assert.ErrorIs(err, hivecrypto.ErrInvalidKey)
	assert.Zero(c.calls, "a bad key must fail before any network call")
}

func TestCreatePostNetworkFailure(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := &fakeClient{taposErr: errors.New("all nodes down")}
	result, err := CreatePost(context.Background(), c, testCreds,
		PostData{Title: "t", Body: "b", Tags: []string{"blog"}})

	require.NoError(err, "network failures travel in the Result")
	assert.False(result.Success)
	assert.Error(result.Err)
}

func TestUpvote(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := &fakeClient{}
	result, err := Upvote(context.Background(), c, testCreds,
		"bob", "some-post", 10000)
	require.NoError(err)
	require.True(result.Success, "upvote failed: %v", result.Err)
	assert.Equal("some-post", result.Permlink)

	require.Len(c.broadcast.Operations, 1)
	op := c.broadcast.Operations[0].(hive.VoteOperation)
	assert.Equal("alice", op.Voter)
	assert.Equal("bob", op.Author)
	assert.EqualValues(10000, op.Weight)

	verifySignature(t, c)
}

func TestUpvoteValidation(t *testing.T) {
	assert := assert.New(t)

	type vote struct {
		author, permlink string
		weight           int16
	}
	for name, v := range map[string]vote{
		"negative weight": {"bob", "p", -1},
		"over max":        {"bob", "p", MaxVoteWeight + 1},
		"bad author":      {"x", "p", 100},
		"bad permlink":    {"bob", "Not Valid", 100},
	} {
		c := &fakeClient{}
		result, err := Upvote(context.Background(), c, testCreds,
			v.author, v.permlink, v.weight)
		assert.NoError(err, name)
		assert.False(result.Success, name)
		var vErr hive.ValidationError
		assert.ErrorAs(result.Err, &vErr, name)
		assert.Zero(c.calls, name)
	}
}

func TestEditPost(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := &fakeClient{contentJSON: `{
		"author": "alice",
		"permlink": "old-post",
		"category": "blog",
		"title": "Old Title",
		"body": "Old body",
		"json_metadata": "{\"tags\":[\"blog\",\"old\"]}"
	}`}

	result, err := EditPost(context.Background(), c, testCreds,
		"alice", "old-post", PostUpdate{Body: "New body"})
	require.NoError(err)
	require.True(result.Success, "edit failed: %v", result.Err)
	assert.Equal("old-post", result.Permlink)

	op := c.broadcast.Operations[0].(hive.CommentOperation)
	assert.Equal("Old Title", op.Title, "unset fields keep their value")
	assert.Equal("New body", op.Body)
	assert.Equal("blog", op.ParentPermlink)
	assert.Equal("old-post", op.Permlink)

	var meta struct {
		Tags []string `json:"tags"`
	}
	require.NoError(json.Unmarshal([]byte(op.JSONMetadata), &meta))
	assert.Equal([]string{"blog", "old"}, meta.Tags)

	verifySignature(t, c)
}

func TestEditPostWrongAuthor(t *testing.T) {
	assert := assert.New(t)

	c := &fakeClient{}
	result, err := EditPost(context.Background(), c, testCreds,
		"bob", "some-post", PostUpdate{Body: "b"})
	assert.NoError(err)
	assert.False(result.Success)
	var vErr hive.ValidationError
	assert.ErrorAs(result.Err, &vErr)
	assert.Zero(c.calls, "ownership is checked before fetching")
}

func TestEditPostMissing(t *testing.T) {
	assert := assert.New(t)

	// Missing content comes back as an empty record.
	c := &fakeClient{contentJSON: `{"author": ""}`}
	result, err := EditPost(context.Background(), c, testCreds,
		"alice", "no-such-post", PostUpdate{Body: "b"})
	assert.NoError(err)
	assert.False(result.Success)
	var vErr hive.ValidationError
	assert.ErrorAs(result.Err, &vErr)
	assert.Equal(1, c.calls, "only the existence lookup ran")
}
