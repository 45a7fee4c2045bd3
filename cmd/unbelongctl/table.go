package main

import (
	"io"
	"strconv"

	"unbelong-api/internal/domain/pages"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// writePages prints a decoded episode as one row per image in reading order,
// with the image count and format in the footer.
func writePages(out io.Writer, res pages.Result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Image"})
	for i, img := range res.Images {
		tw.AppendRow(table.Row{i + 1, img})
	}
	tw.AppendFooter(table.Row{strconv.Itoa(len(res.Images)), string(res.Format)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 2, WidthMax: 120},
	})
	tw.Render()
}
