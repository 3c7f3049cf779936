package sources

import (
	"embed"
	"fmt"

	"github.com/jonathan/daily-reading/internal/levels"
	"github.com/jonathan/daily-reading/internal/types"
)

//go:embed templates/*.txt
var templateFS embed.FS

// Generated source locators
const (
	LifeLocator  = "generated://life"
	UsageLocator = "generated://usage"
)

func tmpl(name string) string {
	data, err := templateFS.ReadFile("templates/" + name + ".txt")
	if err != nil {
		panic(fmt.Sprintf("missing embedded template %s: %v", name, err))
	}
	return string(data)
}

// LifeText returns the everyday-notice text for a level. Lower levels get extra sections
// so excerpts can reach their target length.
func LifeText(level levels.Level) string {
	text := tmpl("life_common")
	switch level.Family {
	case "saussure":
		text += "\n\n" + tmpl("life_saussure")
	case "frege":
		text += "\n\n" + tmpl("life_frege")
	}
	return text
}

// UsageText returns the grammar-usage lesson for a level
func UsageText(level levels.Level) string {
	switch level.Family {
	case "saussure":
		return tmpl("usage_saussure")
	case "frege":
		text := tmpl("usage_frege")
		if level.N >= 2 {
			text += "\n\n" + tmpl("usage_frege_spacing")
		}
		if level.N == 3 {
			text += "\n\n" + tmpl("usage_frege_advanced")
		}
		return text
	default:
		return tmpl("usage_default")
	}
}

// Generated returns the generated source for a LIFE or USAGE slot
func Generated(contentType string, level levels.Level, day int) (types.SourceText, bool) {
	src := types.SourceText{
		SourceType: types.SourceGenerated,
		Title:      fmt.Sprintf("%s day%d", level.Name, day),
	}
	switch contentType {
	case levels.Life:
		src.SourcePath = LifeLocator
		src.Text = LifeText(level)
	case levels.Usage:
		src.SourcePath = UsageLocator
		src.Text = UsageText(level)
	default:
		return types.SourceText{}, false
	}
	return src, true
}
