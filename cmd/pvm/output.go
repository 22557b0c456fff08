package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// newTable returns a borderless, left aligned table in the style of
// kubectl listings.
func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	if len(headers) > 0 {
		table.SetHeader(headers)
	}
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}

func yesNo(b bool) string {
	if b {
		return color.GreenString("yes")
	}
	return color.RedString("no")
}
