// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigSearchFailedId Id = iota + 1
	ConfigReadFailedId
	ConfigParseErrorId
	InvalidSearchRootId
	InputParseErrorId
	FormattingCheckFailedId
	ChildScriptFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configSearchFailedIssue = &Issue{
		id: ConfigSearchFailedId,
		mdMsg: `
# Could not search for fmtbridge.toml!

While walking up from the search root, one of the ancestor directories could
not be inspected. The search stops there instead of skipping the directory,
so a configuration file further up is never picked by accident.

## Things you can try:
- Check that every ancestor of the search root is readable and searchable
- Pass an explicit location that does not cross the unreadable directory:
~~~
$ fmtbridge --config-path /path/to/project script.sh
~~~`,
	}

	configReadFailedIssue = &Issue{
		id: ConfigReadFailedId,
		mdMsg: `
# Could not read fmtbridge.toml!

A configuration file was found but opening or reading it failed.

## Things you can try:
- Check the file permissions of the reported path
- Make sure the file is not locked or being replaced by another process`,
		docLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	configParseErrorIssue = &Issue{
		id: ConfigParseErrorId,
		mdMsg: `
# Failed to parse fmtbridge.toml!

The configuration file is not valid TOML, or one of its options is unknown
or has the wrong type.

## Things you can try:
- Check the error message above for the line and column
- List the recognized options and their types:
~~~
$ fmtbridge config options
~~~

## Example:
~~~toml
indent = 4
switch_case_indent = true
language = "bash"
~~~`,
		docLinks: []HttpLink{"https://toml.io/en/v1.0.0"},
	}

	invalidSearchRootIssue = &Issue{
		id: InvalidSearchRootId,
		mdMsg: `
# Invalid search root!

The directory used as the starting point of the configuration search does not
exist or is not a directory.

## Things you can try:
- Check the value passed to --config-path
- Run the command from inside your project directory`,
	}

	inputParseErrorIssue = &Issue{
		id: InputParseErrorId,
		mdMsg: `
# Failed to parse the script!

The input is not valid for the configured shell dialect.

## Things you can try:
- Check the reported line and column
- Select the right dialect in fmtbridge.toml, e.g. ` + "`language = \"posix\"`",
	}

	formattingCheckFailedIssue = &Issue{
		id: FormattingCheckFailedId,
		mdMsg: `
# Formatting check failed!

The script was formatted, but the result was flagged: either formatting it a
second time changes it, or a line is wider than ` + "`max_width`" + `.

## Things you can try:
- Break up long lines, or raise ` + "`max_width`" + `
- Set ` + "`error_on_line_overflow = false`",
	}

	childScriptFailedIssue = &Issue{
		id: ChildScriptFailedId,
		mdMsg: `
# A sourced script has problems!

A script pulled in with ` + "`source`" + ` or ` + "`.`" + ` could not be read, parsed, or is
not formatted.

## Things you can try:
- Format the sourced script on its own
- Skip sourced scripts:
~~~
$ fmtbridge --skip-children script.sh
~~~`,
	}

	issues = map[Id]*Issue{
		configSearchFailedIssue.Id():    configSearchFailedIssue,
		configReadFailedIssue.Id():      configReadFailedIssue,
		configParseErrorIssue.Id():      configParseErrorIssue,
		invalidSearchRootIssue.Id():     invalidSearchRootIssue,
		inputParseErrorIssue.Id():       inputParseErrorIssue,
		formattingCheckFailedIssue.Id(): formattingCheckFailedIssue,
		childScriptFailedIssue.Id():     childScriptFailedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
