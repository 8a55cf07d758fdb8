package navigation

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectShadow(t *testing.T) {
	tests := []struct {
		name    string
		earlier string
		later   string
		want    bool
		index   int
	}{
		{"param before literal", "/a/:x", "/a/b", true, 1},
		{"same shape", "/a/:x", "/a/:y", true, -1},
		{"literal before param", "/a/b", "/a/:x", false, 0},
		{"different length", "/a/:x", "/a/b/c", false, 0},
		{"different literal", "/a/b", "/a/c", false, 0},
		{"partial overlap", "/a/:x/c", "/a/b/:y", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shadow := detectShadow(tt.earlier, tt.later)
			if !tt.want {
				assert.Nil(t, shadow)
				return
			}
			require.NotNil(t, shadow)
			assert.Equal(t, tt.index, shadow.index)
		})
	}
}

func TestRouteTable_Validate(t *testing.T) {
	table := NewRouteTable()
	require.NoError(t, table.Register("/users/:id", "user"))
	require.NoError(t, table.Register("/users/new", "user-new"))
	require.NoError(t, table.Register("/posts/new", "post-new"))
	require.NoError(t, table.Register("/posts/:id", "post"))

	errs := table.Validate()
	require.Len(t, errs, 1)
	assert.True(t, HasTextCode(errs[0], TextCodeRouteShadowed))

	var rich *goerrors.Error
	require.True(t, errors.As(errs[0], &rich))
	assert.Equal(t, "/users/new", rich.Metadata["pattern"])
	assert.Equal(t, "/users/:id", rich.Metadata["shadowed_by"])
	assert.Equal(t, "user-new", rich.Metadata["handler"])
}
