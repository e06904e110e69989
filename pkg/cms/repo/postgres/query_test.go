package postgres

import (
	"regexp"
	"strings"
	"testing"
)

// The read queries splice a shared column-list constant between SELECT and
// FROM, so each constant must carry the whitespace that separates it from
// both keywords.
var gluedKeyword = regexp.MustCompile(`SELECT[a-z_]|[a-z_]FROM`)

func TestSelectQueriesKeepKeywordsSeparated(t *testing.T) {
	queries := map[string]string{
		"get content block":        `SELECT` + contentBlockCols + `FROM content_blocks WHERE id = $1`,
		"get content block by key": `SELECT` + contentBlockCols + `FROM content_blocks WHERE key = $1`,
		"list content blocks":      `SELECT` + contentBlockCols + `FROM content_blocks WHERE TRUE ORDER BY sort_order ASC, created_at ASC LIMIT $1 OFFSET $2`,
		"get team member":          `SELECT` + teamMemberCols + `FROM team_members WHERE id = $1`,
		"list team members":        `SELECT` + teamMemberCols + `FROM team_members WHERE TRUE ORDER BY sort_order ASC, created_at ASC LIMIT $1 OFFSET $2`,
		"get enrollment":           `SELECT` + enrollmentCols + `FROM enrollment_records WHERE id = $1`,
		"get enrollment by school": `SELECT` + enrollmentCols + `FROM enrollment_records WHERE school_id = $1 AND academic_year = $2`,
		"list enrollments":         `SELECT` + enrollmentCols + `FROM enrollment_records WHERE TRUE ORDER BY academic_year ASC, created_at ASC LIMIT $1 OFFSET $2`,
	}

	for name, query := range queries {
		if glue := gluedKeyword.FindString(query); glue != "" {
			t.Errorf("%s query glues an identifier onto a keyword (%q): %s", name, glue, query)
		}
	}
}

func TestColumnListsAreWhitespaceDelimited(t *testing.T) {
	for name, cols := range map[string]string{
		"contentBlockCols": contentBlockCols,
		"teamMemberCols":   teamMemberCols,
		"enrollmentCols":   enrollmentCols,
	} {
		if cols == strings.TrimLeft(cols, " \n\t") {
			t.Errorf("%s must start with whitespace to separate it from SELECT", name)
		}
		if cols == strings.TrimRight(cols, " \n\t") {
			t.Errorf("%s must end with whitespace to separate it from FROM", name)
		}
	}
}
