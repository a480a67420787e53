package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Document is the part of the downloader's info JSON used for tagging.
//
// Only Title and Description feed the detection rules; the remaining fields
// supply defaults and the comment tag.
type Document struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	FullTitle     string  `json:"fulltitle"`
	Description   string  `json:"description"`
	Uploader      string  `json:"uploader"`
	UploaderID    string  `json:"uploader_id"`
	UploaderURL   string  `json:"uploader_url"`
	UploadDate    string  `json:"upload_date"` // YYYYMMDD
	WebpageURL    string  `json:"webpage_url"`
	ExtractorKey  string  `json:"extractor_key"`
	Duration      float64 `json:"duration"`
	PlaylistTitle string  `json:"playlist_title"`
}

// LoadDocument reads and decodes an info JSON file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &doc, nil
}

// UploaderSummary returns the uploader name followed by its URL, or its ID
// when no URL is known. Example: "Some Label (https://www.youtube.com/@label)".
func (d *Document) UploaderSummary() string {
	link := d.UploaderURL
	if strings.TrimSpace(link) == "" {
		link = d.UploaderID
	}
	return fmt.Sprintf("%s (%s)", d.Uploader, link)
}

// FormattedUploadDate converts the YYYYMMDD upload date to MM/DD/YYYY.
// It returns an empty string when the date is missing or malformed.
func (d *Document) FormattedUploadDate() string {
	if !validUploadDate(d.UploadDate) {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", d.UploadDate[4:6], d.UploadDate[6:8], d.UploadDate[0:4])
}

// UploadYear returns the year part of the upload date.
func (d *Document) UploadYear() (uint16, bool) {
	if !validUploadDate(d.UploadDate) {
		return 0, false
	}
	year, err := strconv.ParseUint(d.UploadDate[0:4], 10, 16)
	if err != nil || year == 0 {
		return 0, false
	}
	return uint16(year), true
}

// Comment builds the text stored in the comment tag. The output depends only
// on the document, so tagging the same file twice writes the same comment.
func (d *Document) Comment() string {
	title := d.FullTitle
	if title == "" {
		title = d.Title
	}

	var sb strings.Builder
	sb.WriteString("SOURCE DATA:\n")
	sb.WriteString(fmt.Sprintf("• Service: %s\n", d.ExtractorKey))
	sb.WriteString(fmt.Sprintf("• URL: %s\n", d.WebpageURL))
	sb.WriteString(fmt.Sprintf("• Title: %s\n", title))
	sb.WriteString(fmt.Sprintf("• Uploader: %s\n", d.UploaderSummary()))
	if uploaded := d.FormattedUploadDate(); uploaded != "" {
		sb.WriteString(fmt.Sprintf("• Uploaded: %s\n", uploaded))
	}
	sb.WriteString(fmt.Sprintf("• Description: %s\n", d.Description))
	return sb.String()
}

func validUploadDate(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
