package csvcodec

import "strings"

// TemplateFilename is the download name of the example CSV.
const TemplateFilename = "projects-template.csv"

// Template returns a one-row example CSV covering every column.
func Template() string {
	return strings.Join(Columns, ",") + "\n" +
		`"1","Example Project","Short summary here","Longer description","personal","5","in_progress","Build","false","https://github.com/example/project","https://example.com","Next step to take","2023-05-10","75","Update 1; Update 2","Tag1; Tag2"`
}
