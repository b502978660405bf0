package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []urlEntry
}

type urlEntry struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod"`
	ChangeFreq string   `xml:"changefreq"`
	Priority   string   `xml:"priority"`
}

func WriteXML(w io.Writer, entries []Entry) error {
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        e.Loc,
			LastMod:    e.LastMod.Format(time.DateOnly),
			ChangeFreq: e.ChangeFreq,
			Priority:   fmt.Sprintf("%.1f", e.Priority),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
