package main

import (
	"fmt"

	"bookfinder/internal/book"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type summaryColumn struct {
	header   string
	align    text.Align
	widthMax int
}

var summaryColumns = []summaryColumn{
	{header: "#", align: text.AlignRight},
	{header: "Title", align: text.AlignLeft, widthMax: 48},
	{header: "Author", align: text.AlignLeft, widthMax: 28},
	{header: "Year", align: text.AlignRight},
	{header: "Rating", align: text.AlignRight},
	{header: "Reviews", align: text.AlignRight},
}

func newSummaryTable() table.Writer {
	tw := table.NewWriter()

	style := table.StyleRounded
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)

	header := make(table.Row, 0, len(summaryColumns))
	configs := make([]table.ColumnConfig, 0, len(summaryColumns))
	for i, col := range summaryColumns {
		header = append(header, col.header)
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       col.align,
			AlignHeader: text.AlignLeft,
			WidthMax:    col.widthMax,
		})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	return tw
}

func summaryRow(pos int, s book.Summary) table.Row {
	var year any = "-"
	if s.Year != nil {
		year = *s.Year
	}
	return table.Row{pos, s.Title, s.Author, year, s.Rating, s.ReviewCount}
}

func renderSummaries(results []book.Summary) string {
	if len(results) == 0 {
		return "No books found."
	}

	tw := newSummaryTable()
	for i, s := range results {
		tw.AppendRow(summaryRow(i+1, s))
	}

	noun := "books"
	if len(results) == 1 {
		noun = "book"
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d %s", len(results), noun)})
	return tw.Render()
}
