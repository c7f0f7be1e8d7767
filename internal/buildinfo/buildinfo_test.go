package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortHash(t *testing.T) {
	assert.Equal(t, "0123456", Info{Commit: "0123456789abcdef"}.ShortHash())
	assert.Equal(t, "abc", Info{Commit: "abc"}.ShortHash())
}

func TestFormattedDateIsUTC(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-05-01T10:11:12+09:00", "2024-05-01 01:11:12"},
		{"2024-05-01 10:11:12 +0000", "2024-05-01 10:11:12"},
		{"2023-12-31T23:59:59Z", "2023-12-31 23:59:59"},
		{"unknown", "unknown"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Info{CommitDate: tc.in}.FormattedDate(), tc.in)
	}
}

func TestShowBranch(t *testing.T) {
	assert.False(t, Info{Branch: "master"}.ShowBranch())
	assert.False(t, Info{Branch: "unknown"}.ShowBranch())
	assert.False(t, Info{}.ShowBranch())
	assert.True(t, Info{Branch: "main"}.ShowBranch())
	assert.True(t, Info{Branch: "feature/x"}.ShowBranch())
}

func TestCommitURL(t *testing.T) {
	i := Info{Commit: "deadbeefcafe", RepoURL: "https://github.com/mithrel/inkleaf/"}
	assert.Equal(t, "https://github.com/mithrel/inkleaf/commit/deadbeefcafe", i.CommitURL())
	assert.Empty(t, Info{Commit: "deadbeef"}.CommitURL())
	assert.Empty(t, Info{Commit: "unknown", RepoURL: "https://x"}.CommitURL())
}

func TestWritePanel(t *testing.T) {
	var buf bytes.Buffer
	i := Info{
		Version:    "1.2.0",
		Commit:     "0123456789abcdef",
		CommitDate: "2024-05-01T10:11:12Z",
		Branch:     "master",
	}
	require.NoError(t, i.WritePanel(&buf))
	assert.Equal(t, "inkleaf 1.2.0\ncommit: 0123456\n2024-05-01 10:11:12\n", buf.String())

	buf.Reset()
	i.Branch = "dev"
	require.NoError(t, i.WritePanel(&buf))
	assert.Contains(t, buf.String(), "branch: dev\n")
}
