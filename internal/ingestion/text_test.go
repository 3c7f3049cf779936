package ingestion

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/daily-reading/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line endings", "가\r\n나\r다", "가\n나\n다"},
		{"bold markers", "**굵게** 쓴 글", "굵게 쓴 글"},
		{"horizontal whitespace", "가  \t 나", "가 나"},
		{"control characters", "가\x07나\x1f다", "가나다"},
		{"trim lines and text", "  \n 가 \n\n", "가"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestUnescapeMarkdown(t *testing.T) {
	assert.Equal(t, "[정답]", UnescapeMarkdown(`\[정답\]`))
	assert.Equal(t, "22.", UnescapeMarkdown(`22\.`))
	assert.Equal(t, "22~26", UnescapeMarkdown(`22\~26`))
	assert.Equal(t, `\가`, UnescapeMarkdown(`\가`))
}

func TestCleaner_Stages(t *testing.T) {
	c := NewCleaner(Options{})
	assert.Equal(t, []string{"normalize", "unescape", "meta-lines", "markers", "normalize"}, c.Stages())
	assert.Equal(t, DefaultExamCutThreshold, c.ExamCutThreshold())

	assert.Equal(t, 80, NewCleaner(Options{ExamCutThreshold: 80}).ExamCutThreshold())
}

func TestClean_DropsHeadingsAndInstructions(t *testing.T) {
	input := "# 제목\n다음 글을 읽고 물음에 답하시오.\n봄이 오면 산과 들에 꽃이 핀다.\n\n---\n여름에는 비가 많이 온다."
	got := NewCleaner(Options{}).Clean(input)

	assert.Equal(t, "봄이 오면 산과 들에 꽃이 핀다.\n\n여름에는 비가 많이 온다.", got)
}

func TestClean_InstructionSplitAcrossLines(t *testing.T) {
	input := "다음 글을 읽고 물음에 답하\n시오.\n바다는 넓고 푸르다."
	got := NewCleaner(Options{}).Clean(input)

	assert.Equal(t, "바다는 넓고 푸르다.", got)
}

func TestClean_DropsWorkbookMetaLines(t *testing.T) {
	input := strings.Join([]string{
		"2023학년도 6월 모평",
		"마더텅 수능 기출",
		"정답과 해설 p.12",
		"[보기]",
		"[22~26]",
		"12",
		"답장",
		"강물은 천천히 흘러 바다로 간다.",
	}, "\n")

	got := NewCleaner(Options{}).Clean(input)
	assert.Equal(t, "강물은 천천히 흘러 바다로 간다.", got)
}

func TestClean_ExamBlockCutsRest(t *testing.T) {
	passage := "옛날 어느 마을에 마음씨 착한 나무꾼이 살았다. 나무꾼은 날마다 산에 올라 나무를 했고, 그 나무를 장에 내다 팔아 늙은 어머니를 모셨다."
	input := passage + "\n\n1. 윗글의 내용으로 적절한 것은?\n① 나무꾼은 부자였다.\n뒤에 붙은 해설 문장이다."

	got := NewCleaner(Options{}).Clean(input)

	assert.Equal(t, passage, got)
	assert.NotContains(t, got, "해설 문장")
}

func TestClean_ExamCutThresholdBoundary(t *testing.T) {
	body := strings.Repeat("가", 60)
	input := body + "\n정답: 3\n이후 문장"

	t.Run("at threshold cuts", func(t *testing.T) {
		got := NewCleaner(Options{ExamCutThreshold: 60}).Clean(input)
		assert.Equal(t, body, got)
	})

	t.Run("below threshold drops only the trigger line", func(t *testing.T) {
		got := NewCleaner(Options{ExamCutThreshold: 61}).Clean(input)
		assert.Equal(t, body+"\n이후 문장", got)
	})

	t.Run("default threshold", func(t *testing.T) {
		short := strings.Repeat("가", 59) + "\n정답: 3\n이후 문장"
		got := NewCleaner(Options{}).Clean(short)
		assert.Contains(t, got, "이후 문장")
		assert.NotContains(t, got, "정답")
	})
}

func TestClean_CreditLinesDoNotCount(t *testing.T) {
	body := strings.Repeat("나", 50)
	input := "「봄봄」, 김유정\n" + body + "\n정답: 3\n이후 문장"

	got := NewCleaner(Options{}).Clean(input)

	assert.Contains(t, got, "「봄봄」")
	assert.Contains(t, got, "이후 문장")
}

func TestClean_RemovesMarkers(t *testing.T) {
	got := NewCleaner(Options{}).Clean("첫 문장 ㉠이다. [A]두 번째. ⓐ셋 [12~15]")
	assert.Equal(t, "첫 문장 이다. 두 번째. 셋", got)
}

func TestCleanSource_Insufficient(t *testing.T) {
	c := NewCleaner(Options{})

	_, err := c.CleanSource("짧은 글", 200)
	require.Error(t, err)

	var insufficient *InsufficientSourceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 4, insufficient.Length)
	assert.Equal(t, 200, insufficient.Min)

	text := strings.Repeat("다", 200)
	got, err := c.CleanSource(text, 200)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestSplitParts(t *testing.T) {
	t.Run("labeled", func(t *testing.T) {
		parts := SplitParts("(가) 첫째 글이다.\n(나) 둘째 글이다.")
		require.Len(t, parts, 2)
		assert.Equal(t, Part{Label: "가", Text: "첫째 글이다."}, parts[0])
		assert.Equal(t, Part{Label: "나", Text: "둘째 글이다."}, parts[1])
	})

	t.Run("single label is not split", func(t *testing.T) {
		text := "(가) 하나뿐인 글이다."
		parts := SplitParts(text)
		require.Len(t, parts, 1)
		assert.Equal(t, "", parts[0].Label)
		assert.Equal(t, text, parts[0].Text)
	})
}

func TestCleanParts(t *testing.T) {
	long := strings.Repeat("라", 30)
	input := "(가) " + long + "\n(나) 짧다\n(다) " + long

	parts := NewCleaner(Options{}).CleanParts(input, 20)

	require.Len(t, parts, 2)
	assert.Equal(t, "가", parts[0].Label)
	assert.Equal(t, "다", parts[1].Label)
	assert.Equal(t, long, parts[1].Text)
}

func TestStripExamHeaders(t *testing.T) {
	got := StripExamHeaders("[1~3] 다음 글을 읽고 물음에 답하시오.\n### 제목\n\n본문이다.")
	assert.Equal(t, "본문이다.", got)

	lines := []string{"하나", "둘", "셋", "넷", "다섯", "### 여섯"}
	got = StripExamHeaders(strings.Join(lines, "\n"))
	assert.Contains(t, got, "### 여섯")
}

func TestCleanElementary(t *testing.T) {
	got := NewCleaner(Options{}).CleanElementary("학교(學校)에 갔다*. 漢字")
	assert.Equal(t, "학교에 갔다.", got)
}

func TestSimplifyForLowestTier(t *testing.T) {
	set := rules.Default()

	got := SimplifyForLowestTier("따라서 비가 왔다, 그러나 해가 떴다.", set)
	assert.Equal(t, "그래서 비가 왔다. 하지만 해가 떴다.", got)

	got = SimplifyForLowestTier("비가 왔다., 그리고 갰다.", set)
	assert.Equal(t, "비가 왔다. 그리고 갰다.", got)
}

func TestIsArchaic(t *testing.T) {
	set := rules.Default()
	assert.True(t, IsArchaic("산에 가노라", set))
	assert.False(t, IsArchaic("산에 간다.", set))
}

func TestCountParens(t *testing.T) {
	assert.Equal(t, 4, CountParens("(가) 나 (다)"))
	assert.Equal(t, 0, CountParens("괄호 없음"))
}

func TestHTMLToText(t *testing.T) {
	html := `<html><body>
<nav>메뉴</nav>
<article><p>첫 문단이다.</p><p>둘째 줄<br>셋째 줄</p></article>
<footer>끝</footer>
</body></html>`

	got, err := HTMLToText(html)
	require.NoError(t, err)

	assert.Equal(t, "첫 문단이다.\n\n둘째 줄\n셋째 줄", got)
	assert.NotContains(t, got, "메뉴")
	assert.NotContains(t, got, "끝")
}

func TestHTMLToText_NoBlocks(t *testing.T) {
	got, err := HTMLToText(`<html><body><div>그냥 글</div></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "그냥 글", got)

	_, err = HTMLToText(`<html><body></body></html>`)
	assert.Error(t, err)
}

func TestIsExamBlockStart_NumberedStems(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"1. 윗글의 내용으로 적절한 것은?", true},
		{"3. 이 글의 내용으로 보아 알 수 있는 것은?", true},
		{"2) 다음 중 옳은 것은", true},
		{"1) 정말 그럴까?", false},
		{"2) 내용으로만 보면 그렇다.", false},
		{"3. 봄이 오면 꽃이 핀다.", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExamBlockStart(tt.line))
		})
	}
}

func TestClean_NumberedQuestionInsidePassageIsKept(t *testing.T) {
	body := strings.Repeat("가", 60)
	got := NewCleaner(Options{}).Clean(body + "\n1) 정말 그럴까?\n이후 문장")

	assert.Contains(t, got, "정말 그럴까?")
	assert.Contains(t, got, "이후 문장")
}
