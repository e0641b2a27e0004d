package api_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/api"
	"ustat/internal/domain"
)

func TestDecodeList(t *testing.T) {
	cases := map[string]string{
		"bare":  `[{"id":"1","title":"İnfaz düzenlemesi"}]`,
		"posts": `{"posts":[{"id":"1","title":"İnfaz düzenlemesi"}],"total":1}`,
		"data":  `{"data":[{"id":"1","title":"İnfaz düzenlemesi"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			posts, err := api.DecodeList[domain.Post](json.RawMessage(raw), "posts", "data")
			require.NoError(t, err)
			require.Len(t, posts, 1)
			assert.Equal(t, "İnfaz düzenlemesi", posts[0].Title)
		})
	}
}

func TestDecodeList_NullAndObject(t *testing.T) {
	posts, err := api.DecodeList[domain.Post](json.RawMessage(`null`), "posts")
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = api.DecodeList[domain.Post](json.RawMessage(`{"id":"1"}`), "posts")
	assert.Error(t, err)
}

func TestDecodeObject(t *testing.T) {
	var u domain.User
	require.NoError(t, api.DecodeObject(json.RawMessage(`{"data":{"id":"3","email":"x@y.z"}}`), &u, "data"))
	assert.Equal(t, "3", u.ID)

	require.NoError(t, api.DecodeObject(json.RawMessage(`{"id":"4"}`), &u, "data"))
	assert.Equal(t, "4", u.ID)
}
