package csvcodec_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rpggio/sidetrack/internal/csvcodec"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func TestTokenizeRow(t *testing.T) {
	cases := []struct {
		name string
		row  string
		want []string
	}{
		{"unquoted", `a,b,c`, []string{"a", "b", "c"}},
		{"quoted comma", `"a,b",c`, []string{"a,b", "c"}},
		{"escaped quote", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"empty cells", `,,`, []string{"", "", ""}},
		{"mixed", `1,"two, too",3`, []string{"1", "two, too", "3"}},
		{"single", `solo`, []string{"solo"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, csvcodec.TokenizeRow(tc.row))
		})
	}
}

func TestEncode_Format(t *testing.T) {
	projects := []project.Project{{
		ID:          "1",
		Name:        "Alpha",
		Description: `He said "hi"`,
		Type:        project.TypeSell,
		Usefulness:  4,
		Status:      project.StatusLive,
		IsMonetized: true,
		Tags:        []string{"a", "b"},
	}}

	out := csvcodec.Encode(projects)
	lines := strings.Split(out, "\n")
	require.Equal(t, "id,name,description,type,usefulness,status,isMonetized,tags", lines[0])
	require.Equal(t, `"1","Alpha","He said ""hi""","sell","4","live","Yes","a; b"`, lines[1])
	require.Equal(t, "", lines[2])
}

func TestEncode_HeaderIsUnionOfFields(t *testing.T) {
	projects := []project.Project{
		{ID: "1", Name: "A", Description: "d", Type: project.TypePersonal, Usefulness: 3, Status: project.StatusIdea},
		{ID: "2", Name: "B", Description: "d", Type: project.TypePersonal, Usefulness: 3, Status: project.StatusIdea, Summary: "s", Progress: project.IntPtr(10)},
	}
	header := csvcodec.HeaderFor(projects)
	require.Equal(t, []string{"id", "name", "description", "type", "usefulness", "status", "isMonetized", "summary", "progress"}, header)

	out := csvcodec.Encode(projects)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	require.Len(t, csvcodec.TokenizeRow(lines[1]), len(header))
	require.Len(t, csvcodec.TokenizeRow(lines[2]), len(header))
}

func TestEncode_Empty(t *testing.T) {
	require.Equal(t, "", csvcodec.Encode(nil))
}

func TestRoundTrip_Seed(t *testing.T) {
	seed := project.Seed()
	result := csvcodec.Decode(csvcodec.Encode(seed))

	require.Equal(t, 0, result.Failed)
	require.Empty(t, result.Errors)
	require.Equal(t, seed, result.Successful)
}

func TestRoundTrip_Quoting(t *testing.T) {
	projects := []project.Project{{
		ID:          "q",
		Name:        "Commas, quotes",
		Description: `He said "hi", then left`,
		Summary:     "line one\nline two",
		Type:        project.TypePersonal,
		Usefulness:  2,
		Status:      project.StatusIdea,
	}}

	result := csvcodec.Decode(csvcodec.Encode(projects))
	require.Len(t, result.Successful, 1)
	got := result.Successful[0]
	require.Equal(t, `He said "hi", then left`, got.Description)
	require.Equal(t, "Commas, quotes", got.Name)
	require.Equal(t, "line one\nline two", got.Summary)
}

func TestDecode_PartialFailure(t *testing.T) {
	csv := "id,name,description,type,status\n" +
		`"1","One","d","personal","idea"` + "\n" +
		`"2","Two","d","personal","idea"` + "\n" +
		`"3","","d","personal","idea"` + "\n" +
		`"4","Four","d","sell","live"` + "\n" +
		`"5","Five","d","sell","live"` + "\n"

	result := csvcodec.Decode(csv)
	require.Len(t, result.Successful, 4)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	require.True(t, strings.HasPrefix(result.Errors[0], "Row 3: Missing required fields"), result.Errors[0])
}

func TestDecode_NoDataRows(t *testing.T) {
	for _, input := range []string{"", "id,name\n", "id,name", "\n\n", "id,name\n\n  \n"} {
		result := csvcodec.Decode(input)
		require.Empty(t, result.Successful, "input %q", input)
		require.NotNil(t, result.Successful)
		require.Equal(t, 1, result.Failed, "input %q", input)
		require.Equal(t, []string{csvcodec.ErrNoDataRows}, result.Errors)
	}
}

func TestDecode_Coercion(t *testing.T) {
	csv := "name,description,type,status,usefulness,progress,isMonetized,stage,tags,activityLog\n" +
		`"A","d","personal","idea","9","abc","YES","Scale","x; y; x; ","a ; b"` + "\n"

	result := csvcodec.Decoder{NewID: sequentialIDs()}.Decode(csv)
	require.Len(t, result.Successful, 1)
	p := result.Successful[0]
	require.Equal(t, 3, p.Usefulness)
	require.NotNil(t, p.Progress)
	require.Equal(t, 0, *p.Progress)
	require.True(t, p.IsMonetized)
	require.Equal(t, project.StageIdea, p.Stage)
	require.Equal(t, []string{"x", "y"}, p.Tags)
	require.Equal(t, []string{"a", "b"}, p.ActivityLog)
	// no id column: the id stays blank for the reconciler to fill in
	require.Equal(t, "", p.ID)
}

func TestDecode_Defaults(t *testing.T) {
	csv := "id,name,description,type,status,usefulness,progress,isMonetized,stage,tags,summary\n" +
		`"","A","d","sell","live","4","250","no","","",""` + "\n"

	result := csvcodec.Decoder{NewID: sequentialIDs()}.Decode(csv)
	require.Len(t, result.Successful, 1)
	p := result.Successful[0]
	require.Equal(t, "gen-1", p.ID)
	require.Equal(t, 4, p.Usefulness)
	require.Equal(t, 100, *p.Progress)
	require.False(t, p.IsMonetized)
	require.Equal(t, project.Stage(""), p.Stage)
	require.Equal(t, []string{}, p.Tags)
	require.Equal(t, "", p.Summary)
}

func TestDecode_LenientParsing(t *testing.T) {
	csv := "name,description,type,status,usefulness,progress\n" +
		`"A","d","sell","live","4.5","75%"` + "\n"

	result := csvcodec.Decode(csv)
	require.Len(t, result.Successful, 1)
	require.Equal(t, 4, result.Successful[0].Usefulness)
	require.Equal(t, 75, *result.Successful[0].Progress)
}

func TestDecode_ShortRowAndUnknownHeader(t *testing.T) {
	csv := "id,name,description,type,status,color,tags\n" +
		`"1","A","d","personal","idea","blue"` + "\n"

	result := csvcodec.Decode(csv)
	require.Len(t, result.Successful, 1)
	require.Nil(t, result.Successful[0].Tags)
}

func TestDecode_InvalidEnumIsRowError(t *testing.T) {
	csv := "id,name,description,type,status\n" +
		`"1","A","d","business","idea"` + "\n" +
		`"2","B","d","personal","paused"` + "\n" +
		`"3","C","d","personal","live"` + "\n"

	result := csvcodec.Decode(csv)
	require.Len(t, result.Successful, 1)
	require.Equal(t, 2, result.Failed)
	require.Equal(t, `Row 1: unknown type "business"`, result.Errors[0])
	require.Equal(t, `Row 2: unknown status "paused"`, result.Errors[1])
}

func TestDecode_RowNumbersCountBlankLines(t *testing.T) {
	csv := "\r\nid,name,description,type,status\r\n" +
		`"1","A","d","personal","idea"` + "\r\n" +
		"\r\n" +
		`"3","","d","personal","idea"` + "\r\n"

	result := csvcodec.Decode(csv)
	require.Len(t, result.Successful, 1)
	require.Equal(t, "A", result.Successful[0].Name)
	require.Equal(t, "idea", string(result.Successful[0].Status))
	require.True(t, strings.HasPrefix(result.Errors[0], "Row 3:"), result.Errors[0])
}

func TestDecode_StrayQuoteOnlyFailsItsRow(t *testing.T) {
	csv := "name,description,type,status\n" +
		"One,d,personal,idea\n" +
		"Widget 5\" monitor,d,personal,idea\n" +
		"Three,d,personal,idea\n" +
		"Four,d,personal,idea\n" +
		"Five,d,personal,idea\n"

	result := csvcodec.Decode(csv)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Successful, 4)
	names := make([]string, 0, len(result.Successful))
	for _, p := range result.Successful {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"One", "Three", "Four", "Five"}, names)
	require.True(t, strings.HasPrefix(result.Errors[0], "Row 2:"), result.Errors[0])
}

func TestDecode_RowNumbersFollowPhysicalLines(t *testing.T) {
	csv := "name,description,type,status\n" +
		`"A","first line` + "\n" + `second line","personal","idea"` + "\n" +
		`"","d","personal","idea"` + "\n"

	result := csvcodec.Decode(csv)
	require.Len(t, result.Successful, 1)
	require.Equal(t, "first line\nsecond line", result.Successful[0].Description)
	require.Equal(t, 1, result.Failed)
	require.True(t, strings.HasPrefix(result.Errors[0], "Row 3:"), result.Errors[0])
}

func TestTemplate_Decodes(t *testing.T) {
	tpl := csvcodec.Template()
	require.True(t, strings.HasPrefix(tpl, "id,name,summary,description,type,usefulness,status,stage,isMonetized,githubUrl,websiteUrl,nextAction,lastUpdated,progress,activityLog,tags\n"))

	result := csvcodec.Decode(tpl)
	require.Len(t, result.Successful, 1)
	p := result.Successful[0]
	require.Equal(t, "1", p.ID)
	require.Equal(t, "Example Project", p.Name)
	require.Equal(t, project.StageBuild, p.Stage)
	require.False(t, p.IsMonetized)
	require.Equal(t, 75, *p.Progress)
	require.Equal(t, []string{"Update 1", "Update 2"}, p.ActivityLog)
	require.Equal(t, []string{"Tag1", "Tag2"}, p.Tags)
}
