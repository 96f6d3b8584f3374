package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/a/", true},
		{"/a/b/c/", true},
		{"", false},
		{"a/", false},
		{"/a", false},
		{"/A/", false},
		{"//", false},
		{"/a//b/", false},
		{"/1/", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Valid(c.path), "Valid(%q)", c.path)
	}
}

func TestValidRejectsOverlong(t *testing.T) {
	l := Limits{MaxComponentLength: 2, MaxDepth: 10}
	assert.True(t, l.Valid("/ab/"))
	assert.False(t, l.Valid("/abc/"))
}

func TestValidRejectsTooDeep(t *testing.T) {
	l := Limits{MaxComponentLength: 10, MaxDepth: 2}
	assert.True(t, l.Valid("/a/b/"))
	assert.False(t, l.Valid("/a/b/c/"))
}

func TestSplit(t *testing.T) {
	c, rest, ok := Split("/a/b/c/")
	assert.True(t, ok)
	assert.Equal(t, "a", c)
	assert.Equal(t, "/b/c/", rest)

	_, _, ok = Split("/")
	assert.False(t, ok)
}

func TestComponents(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Components("/a/b/c/"))
	assert.Nil(t, Components("/"))
}

func TestToParent(t *testing.T) {
	parent, last, ok := ToParent("/a/b/c/")
	assert.True(t, ok)
	assert.Equal(t, "/a/b/", parent)
	assert.Equal(t, "c", last)

	parent, last, ok = ToParent("/a/")
	assert.True(t, ok)
	assert.Equal(t, "/", parent)
	assert.Equal(t, "a", last)

	_, _, ok = ToParent("/")
	assert.False(t, ok)
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "/a/b/", CommonPrefix("/a/b/c/", "/a/b/d/"))
	assert.Equal(t, "/", CommonPrefix("/a/", "/b/"))
	assert.Equal(t, "/a/b/", CommonPrefix("/a/b/", "/a/b/c/"))
}

func TestIsPrefix(t *testing.T) {
	assert.True(t, IsPrefix("/a/", "/a/b/"))
	assert.False(t, IsPrefix("/a/b/", "/a/"))
	assert.False(t, IsPrefix("/a/", "/a/"))
	assert.True(t, IsPrefix("/", "/a/"))
}

func TestJoinContents(t *testing.T) {
	assert.Equal(t, "a,b,c", JoinContents([]string{"c", "a", "b"}))
	assert.Equal(t, "", JoinContents(nil))
}
