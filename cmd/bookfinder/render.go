package main

import (
	"fmt"
	"io"
	"strings"

	"bookfinder/internal/details"

	"github.com/jedib0t/go-pretty/v6/text"
	jsoniter "github.com/json-iterator/go"
)

const wrapWidth = 78

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderView(v details.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", v.Title)
	fmt.Fprintf(&b, "by %s · Published in %s\n", v.Author, v.Year)
	fmt.Fprintf(&b, "★ %s (%s reviews)\n", v.Rating, v.ReviewCount)
	if v.CoverURL != "" {
		fmt.Fprintf(&b, "Cover: %s\n", v.CoverURL)
	}
	b.WriteString("\nAbout the author\n")
	b.WriteString(text.WrapSoft(v.AuthorBio, wrapWidth))
	b.WriteString("\n\nOverview\n")
	b.WriteString(text.WrapSoft(v.Description, wrapWidth))
	b.WriteString("\n")
	return b.String()
}
