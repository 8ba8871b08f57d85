package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"greenline/internal/projects"
)

const tableCellWidthMax = 48

type column struct {
	title string
	right bool
}

// renderTable draws rows under columns with rounded borders. Short rows are padded.
func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
			WidthMax:    tableCellWidthMax,
		}
		if col.right {
			configs[i].Align = text.AlignRight
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		cells := make(table.Row, len(columns))
		for i := range cells {
			cells[i] = ""
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		tw.AppendRow(cells)
	}
	return tw.Render()
}

var projectColumns = []column{
	{title: "Nome"},
	{title: "Estado"},
	{title: "Bioma"},
	{title: "Safra"},
	{title: "Créditos", right: true},
	{title: "Vídeo"},
}

func renderProjectTable(records []projects.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.Name, rec.State, rec.Biome, rec.Vintage, rec.Credits.String(), rec.Video})
	}
	return renderTable(projectColumns, rows)
}
