package exercise

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/jonathan/daily-reading/internal/levels"
	"github.com/jonathan/daily-reading/internal/rules"
	"github.com/jonathan/daily-reading/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePassage = `[1~3] 다음 글을 읽고 물음에 답하시오.

도시의 나무는 여름철 기온을 낮추는 데 큰 역할을 한다. 나무 그늘은 햇빛을 가려 땅이 뜨거워지는 것을 막는다. 또한 잎에서 증발하는 수분은 주변 공기를 식힌다.

그러나 도시의 나무는 좁은 땅과 오염된 공기 때문에 쉽게 병든다. 따라서 나무를 심는 것만큼 돌보는 일도 중요하다. 예를 들어 뿌리 주변의 흙을 넓게 확보하면 나무가 더 오래 산다.

1. 윗글의 내용으로 적절한 것은?
① 나무는 기온을 높인다.`

func newTestBuilder(seed int64) *Builder {
	return NewBuilder(nil, rules.Default(), rand.New(rand.NewSource(seed)))
}

func TestBuild(t *testing.T) {
	level, err := levels.Lookup("russell1")
	require.NoError(t, err)

	ex, err := newTestBuilder(20260214).Build(NewMeta(level, 7, levels.Nonfiction), samplePassage)
	require.NoError(t, err)

	assert.Equal(t, "dr-r1-007", ex.ContentID)
	assert.Equal(t, types.ContentTypeDailyReading, ex.ContentType)
	assert.Equal(t, "독해(비문학) Day 7", ex.Title)
	assert.Equal(t, "RUSSELL_1", ex.TargetLevel)
	assert.Equal(t, types.GradeRange{Min: 7, Max: 7}, ex.SchoolGradeRange)
	assert.Equal(t, "NONFICTION", ex.SubArea)
	assert.Equal(t, 300, ex.TimeLimitSec)
	assert.Equal(t, Description, ex.Description)

	paras := ex.Payload.Passage.Paragraphs
	require.Len(t, paras, 2)
	assert.Equal(t, "p1", paras[0].ID)
	assert.True(t, strings.HasPrefix(paras[0].Text, "도시의 나무는"))
	assert.NotContains(t, paras[1].Text, "윗글")

	assert.NotEmpty(t, ex.Payload.Intensive.Timeline)
	assert.NotEmpty(t, ex.Payload.Recall.Cards)
	require.Len(t, ex.Payload.Confirm.Questions, 1)
	assert.NotEmpty(t, ex.Payload.Confirm.Questions[0].AnswerRanges)

	require.NoError(t, ex.Validate())
}

func TestBuild_JSONShape(t *testing.T) {
	level, _ := levels.Lookup("frege1")
	ex, err := newTestBuilder(1).Build(NewMeta(level, 1, levels.Literature), samplePassage)
	require.NoError(t, err)

	data, err := json.Marshal(ex)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "DAILY_READING", doc["contentType"])
	assert.Equal(t, "READING", doc["area"])
	assert.Equal(t, map[string]any{"mode": "FREE"}, doc["access"])
	assert.Equal(t, map[string]any{"seedType": "WHEAT", "count": float64(3), "multiplier": float64(1)}, doc["seedReward"])
	assert.Equal(t, map[string]any{}, doc["assets"])
	assert.Equal(t, []any{"READING"}, doc["competencies"])
	assert.Equal(t, []any{"daily"}, doc["tags"])

	payload := doc["payload"].(map[string]any)
	timeline := payload["intensive"].(map[string]any)["timeline"].([]any)
	first := timeline[0].(map[string]any)["question"].(map[string]any)
	assert.Equal(t, map[string]any{"correctDeltaSec": float64(20), "wrongDeltaSec": float64(-20), "eliminateWrongChoice": true}, first["scoring"])

	q := payload["confirm"].(map[string]any)["questions"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"correctDeltaSec": float64(30), "wrongDeltaSec": float64(-30)}, q["scoring"])
	assert.Equal(t, true, q["revealOnWrong"])
}

func TestBuild_Deterministic(t *testing.T) {
	level, _ := levels.Lookup("wittgenstein2")
	meta := NewMeta(level, 100, levels.Nonfiction)

	a, err := newTestBuilder(42).Build(meta, samplePassage)
	require.NoError(t, err)
	b, err := newTestBuilder(42).Build(meta, samplePassage)
	require.NoError(t, err)

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	assert.Equal(t, string(ja), string(jb))
}

func TestBuild_EmptyPassage(t *testing.T) {
	level, _ := levels.Lookup("russell1")

	_, err := newTestBuilder(1).Build(NewMeta(level, 1, levels.Nonfiction), "### 제목\n12\n")
	require.Error(t, err)

	var exErr *Error
	assert.True(t, errors.As(err, &exErr))
}

func TestBuild_LongSingleParagraphIsSplit(t *testing.T) {
	level, _ := levels.Lookup("russell3")
	passage := strings.Repeat("바다는 넓고 깊으며 많은 생물이 그 안에서 살아간다. ", 10)

	ex, err := newTestBuilder(3).Build(NewMeta(level, 3, levels.Nonfiction), passage)
	require.NoError(t, err)
	assert.Len(t, ex.Payload.Passage.Paragraphs, 2)
}
