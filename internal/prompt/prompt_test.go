package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/go-post-generator/internal/prompt"
)

func TestBuild_FullText(t *testing.T) {
	got := prompt.Build(prompt.Input{
		URL:      "https://example.com/post",
		Platform: "linkedin",
		Tone:     "witty",
		Content:  "  Go is fun.\n",
	})

	want := "You are a social media strategist and expert copywriter.\n" +
		"\n" +
		"Write a high-performing post for **linkedin**  \n" +
		"Tone: **witty**\n" +
		"\n" +
		"Use this blog URL as reference:\n" +
		"https://example.com/post\n" +
		"\n" +
		"Extracted blog content:\n" +
		"\"\"\"Go is fun.\"\"\"\n" +
		"\n" +
		"Instructions:\n" +
		"- Start with a scroll-stopping hook\n" +
		"- Highlight key insights from the blog\n" +
		"- Match the tone and format suited for **linkedin**\n" +
		"- End with a compelling CTA\n" +
		"- Keep it short, engaging, and platform-native"

	require.Equal(t, want, got)
}

func TestBuild_Deterministic(t *testing.T) {
	in := prompt.Input{
		URLs:     []string{"https://example.com/a", "https://example.com/b"},
		Platform: "twitter",
		Tone:     "casual",
		Content:  "body",
	}

	first := prompt.Build(in)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, prompt.Build(in))
	}
}

func TestBuild_DefaultTone(t *testing.T) {
	got := prompt.Build(prompt.Input{URL: "https://example.com", Platform: "reddit"})

	assert.Contains(t, got, "Tone: **Neutral**")
}

func TestBuild_URLHeadings(t *testing.T) {
	t.Run("single url", func(t *testing.T) {
		got := prompt.Build(prompt.Input{URL: "https://example.com/one", Platform: "x"})

		assert.Contains(t, got, "Use this blog URL as reference:\nhttps://example.com/one\n")
		assert.NotContains(t, got, "Use the following blog URLs")
	})

	t.Run("one element list", func(t *testing.T) {
		got := prompt.Build(prompt.Input{URLs: []string{"https://example.com/one"}, Platform: "x"})

		assert.Contains(t, got, "Use the following blog URLs as reference:\nhttps://example.com/one\n")
		assert.NotContains(t, got, "Use this blog URL")
	})

	t.Run("list wins over single url", func(t *testing.T) {
		got := prompt.Build(prompt.Input{
			URL:      "https://example.com/ignored",
			URLs:     []string{"https://example.com/one", "https://example.com/two"},
			Platform: "x",
		})

		assert.Contains(t, got, "Use the following blog URLs as reference:\n"+
			"https://example.com/one\nhttps://example.com/two\n")
		assert.NotContains(t, got, "ignored")
	})

	t.Run("several urls", func(t *testing.T) {
		got := prompt.Build(prompt.Input{
			URLs:     []string{"https://example.com/one", "https://example.com/two", "https://example.com/three"},
			Platform: "x",
		})

		assert.Contains(t, got, "Use the following blog URLs as reference:\n"+
			"https://example.com/one\nhttps://example.com/two\nhttps://example.com/three\n")
		assert.NotContains(t, got, "Use this blog URL")
	})
}

func TestBuild_ContentBlock(t *testing.T) {
	t.Run("omitted when empty", func(t *testing.T) {
		got := prompt.Build(prompt.Input{URL: "https://example.com", Platform: "x", Tone: "t"})

		assert.NotContains(t, got, "Extracted blog content")
		assert.NotContains(t, got, `"""`)
	})

	t.Run("trimmed when present", func(t *testing.T) {
		got := prompt.Build(prompt.Input{URL: "https://example.com", Platform: "x", Content: "\n\n  body text \t\n"})

		assert.Contains(t, got, "Extracted blog content:\n\"\"\"body text\"\"\"")
	})
}

func TestBuild_FiveInstructions(t *testing.T) {
	got := prompt.Build(prompt.Input{URL: "https://example.com", Platform: "threads"})

	_, instructions, found := strings.Cut(got, "Instructions:\n")
	require.True(t, found)
	assert.Len(t, strings.Split(instructions, "\n"), 5)
}
