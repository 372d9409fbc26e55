package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues_TypedAccessors(t *testing.T) {
	v := Values{
		"s":        "hello",
		"i64":      int64(42),
		"i":        7,
		"f":        float64(3),
		"fraction": 1.5,
		"istr":     " 12 ",
		"b":        true,
		"bstr":     "true",
		"list":     []any{"a", 1, "b"},
		"strs":     []string{"x"},
		"csv":      "one, two,,three",
	}

	assert.Equal(t, "hello", v.String("s"))
	assert.Equal(t, "", v.String("i"))
	assert.Equal(t, "", v.String("missing"))

	assert.Equal(t, 42, v.Int("i64"))
	assert.Equal(t, 7, v.Int("i"))
	assert.Equal(t, 3, v.Int("f"))
	assert.Equal(t, 0, v.Int("fraction"))
	assert.Equal(t, 12, v.Int("istr"))
	assert.Equal(t, 0, v.Int("s"))

	assert.True(t, v.Bool("b"))
	assert.True(t, v.Bool("bstr"))
	assert.False(t, v.Bool("s"))
	assert.False(t, v.Bool("missing"))

	assert.Equal(t, []string{"a", "b"}, v.StringSlice("list"))
	assert.Equal(t, []string{"x"}, v.StringSlice("strs"))
	assert.Equal(t, []string{"one", "two", "three"}, v.StringSlice("csv"))
	assert.Nil(t, v.StringSlice("i"))
}

func TestFlatten(t *testing.T) {
	flat := Flatten(map[string]any{
		"github": map[string]any{"user": "octocat", "per_page": int64(50)},
		"top":    true,
		"a":      map[string]any{"b": map[string]any{"c": "deep"}},
	})

	assert.Equal(t, Values{
		"github.user":     "octocat",
		"github.per_page": int64(50),
		"top":             true,
		"a.b.c":           "deep",
	}, flat)
}

func TestNest_InverseOfFlatten(t *testing.T) {
	nested := map[string]any{
		"github": map[string]any{"user": "octocat"},
		"filter": map[string]any{"languages": []string{"Java"}, "stale_days": 30},
		"top":    "x",
	}
	assert.Equal(t, nested, Flatten(nested).Nest())
}

func TestNest_ValueWinsOverPrefix(t *testing.T) {
	v := Values{"a": "leaf", "a.b": "child"}
	assert.Equal(t, map[string]any{"a": "leaf"}, v.Nest())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{"a"}, SplitList(" a ,"))
}
