package ingestion

import (
	"regexp"
	"strings"
)

var (
	instructionFragmentRe = regexp.MustCompile(`^(물음에|답하(?:시오|라|여라|세요)\.?|하(?:시오|라|여라|세요)\.?)$`)
	instructionSuffixRe   = regexp.MustCompile(`^(오\.?|하?\s*시오\.?)$`)
	workbookAttributionRe = regexp.MustCompile(`(정답과\s*해설편|정답과\s*해설|해설편\s*p\.\s*\d+|해설편\s*p\.)`)
	examYearRe            = regexp.MustCompile(`\d{4}\s*(학년도|년).*(모평|학평|수능|전국연합|모의평가|학력평가)`)
	barePageNumberRe      = regexp.MustCompile(`^\d{1,4}$`)
	askInlineRe           = regexp.MustCompile(`물음에\s*답`)
	askDanglingRe         = regexp.MustCompile(`물음에\s*답(하[가-힣]{0,2})?\s*$`)
	askFragmentRe         = regexp.MustCompile(`물음에\s*답(?:\s*하[가-힣]{0,6})?\.?`)
	rangeLabelRe          = regexp.MustCompile(`^\[[0-9]+\s*~\s*[0-9]+\]$`)
	sectionLabelRe        = regexp.MustCompile(`^\[[^\]]*(상황|자료|보기|해설|정답|출전|문항|점검)[^\]]*\]$`)
	plotSummaryRe         = regexp.MustCompile(`앞부분\s*줄거리|중략\s*줄거리`)
	numberedLineRe        = regexp.MustCompile(`^\d+\.\s`)
	itemLineRe            = regexp.MustCompile(`^문항\s*\d+`)
)

const instructionLead = "다음 글을 읽고"

// Words left behind by mail-client exports of workbook pages
var chromeWords = map[string]bool{
	"목록": true, "위": true, "아래": true, "답장": true, "전달": true,
	"×삭제": true, "스팸 신고": true, "전체 답장": true,
}

var sectionLabels = map[string]bool{
	"[본문]": true, "[지문]": true, "[자료]": true, "[보기]": true,
	"<보기>": true, "[해설]": true, "[정답]": true,
}

// examBlockStarts detect the first line of a question/option/answer block
var examBlockStarts = []*regexp.Regexp{
	// unnumbered stems (PDF extraction may lose the number)
	regexp.MustCompile(`(가장\s*적절한\s*것은|적절하지\s*않은\s*것은|적절한\s*것은|옳은\s*것은|틀린\s*것은|알맞은\s*것은)`),
	regexp.MustCompile(`^(정답|해설|오답\s*해설|오답해설|풀이|모범\s*답안)([^\p{L}\p{N}_]|$)`),
	regexp.MustCompile(`(정답\s*[:：]|오답해설|작품\s*해설|줄거리\s*[:：]|해설\s*$|출전\s*[:：])`),
	// numbered stems with a question cue at a word boundary
	regexp.MustCompile(`^\d+\s*[.)]\s*.*(\?[\p{L}\p{N}_]|(적절한 것은|옳은 것은|틀린 것은|알맞은 것은|내용으로)([^\p{L}\p{N}_]|$))`),
	regexp.MustCompile(`^문항\s*\d+`),
	// option markers
	regexp.MustCompile(`^[①②③④⑤⑥⑦⑧⑨⑩㉠㉡㉢㉣㉤ⓐⓑⓒⓓⓔⒶⒷⒸⒹⒺ]`),
	regexp.MustCompile(`<보기|\[[0-9]+\s*점\]`),
	regexp.MustCompile(`^\[.*(해설|정답|줄거리)`),
}

// IsExamBlockStart reports whether a trimmed line opens a question/option block
func IsExamBlockStart(line string) bool {
	for _, re := range examBlockStarts {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// isCreditLine reports lines that name a work or author rather than carry passage text
func isCreditLine(s string) bool {
	return (strings.Contains(s, "「") && strings.Contains(s, "」") && RuneLen(s) <= 40) ||
		strings.HasPrefix(s, "— ")
}

// stripNonPassageLines drops exam/workbook meta lines. Once threshold passage characters
// have been kept, the first exam-block line ends the passage.
func stripNonPassageLines(text string, threshold int) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	contentChars := 0
	skipNextSuffix := false

	for _, ln := range lines {
		s := strings.TrimSpace(ln)
		if s == "" {
			out = append(out, "")
			continue
		}

		if skipNextSuffix {
			// "물음에 답하" + "시오."
			skipNextSuffix = false
			if instructionSuffixRe.MatchString(s) {
				continue
			}
		}

		if strings.HasPrefix(s, "#") || s == "---" || s == "***" {
			continue
		}
		if instructionFragmentRe.MatchString(s) {
			continue
		}
		if workbookAttributionRe.MatchString(s) || strings.Contains(s, "마더텅") {
			continue
		}
		if chromeWords[s] || examYearRe.MatchString(s) || barePageNumberRe.MatchString(s) {
			continue
		}

		// Instructions embedded in otherwise useful lines: drop only the fragment.
		if strings.Contains(s, instructionLead) || askInlineRe.MatchString(s) {
			if askDanglingRe.MatchString(s) {
				skipNextSuffix = true
			}
			s2 := strings.ReplaceAll(s, instructionLead, "")
			s2 = askFragmentRe.ReplaceAllString(s2, "")
			s2 = Normalize(s2)
			if s2 == "" {
				continue
			}
			ln = s2
			s = s2
		}

		if rangeLabelRe.MatchString(s) || sectionLabels[s] || sectionLabelRe.MatchString(s) {
			continue
		}
		if plotSummaryRe.MatchString(s) {
			continue
		}

		if IsExamBlockStart(s) {
			if contentChars >= threshold {
				break
			}
			continue
		}

		if numberedLineRe.MatchString(s) || itemLineRe.MatchString(s) {
			continue
		}

		out = append(out, ln)
		if !isCreditLine(s) {
			contentChars += RuneLen(s)
		}
	}

	for len(out) > 0 && strings.TrimSpace(out[0]) == "" {
		out = out[1:]
	}
	return Normalize(strings.Join(out, "\n"))
}
