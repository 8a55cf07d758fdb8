package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePattern_ExtractsParams(t *testing.T) {
	m, err := CompilePattern("/users/:id/:section")
	require.NoError(t, err)

	assert.True(t, m.Test("/users/42/profile"))
	assert.Equal(t, Params{"id": "42", "section": "profile"}, m.Params("/users/42/profile"))
	assert.Equal(t, []string{"id", "section"}, m.ParamNames())
}

func TestCompilePattern_Anchored(t *testing.T) {
	m := MustCompilePattern("/users/:id")

	tests := []struct {
		path string
		want bool
	}{
		{"/users/1", true},
		{"/users/abc-def", true},
		{"/users", false},
		{"/users/", false},
		{"/users/1/edit", false},
		{"/api/users/1", false},
		{"/Users/1", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Test(tt.path))
		})
	}
}

func TestCompilePattern_LiteralMetaCharacters(t *testing.T) {
	m := MustCompilePattern("/files/v1.0/:name")

	assert.True(t, m.Test("/files/v1.0/readme"))
	assert.False(t, m.Test("/files/v1x0/readme"))
}

func TestCompilePattern_ParamValuesAreRaw(t *testing.T) {
	m := MustCompilePattern("/search/:q")

	params, ok := m.Match("/search/hello%20world")
	require.True(t, ok)
	assert.Equal(t, "hello%20world", params["q"])
}

func TestCompilePattern_DuplicateParamName(t *testing.T) {
	_, err := CompilePattern("/a/:id/b/:id")
	require.Error(t, err)
	assert.True(t, IsInvalidPattern(err))
}

func TestCompilePattern_EmptyParamName(t *testing.T) {
	_, err := CompilePattern("/a/:")
	require.Error(t, err)
	assert.True(t, IsInvalidPattern(err))
}

func TestMatcher_ParamsWithoutMatch(t *testing.T) {
	m := MustCompilePattern("/users/:id")

	params := m.Params("/posts/1")
	assert.NotNil(t, params)
	assert.Empty(t, params)
}

func TestMatcher_Root(t *testing.T) {
	m := MustCompilePattern("/")

	assert.True(t, m.Test("/"))
	assert.False(t, m.Test("/a"))
}
