// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export renders saved assets as standalone HTML documents and
// picks the relative path each document is saved under.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"time"

	"marketdash/internal/models"
	"marketdash/internal/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("export").Funcs(template.FuncMap{
	// safeHTML marks generated HTML as trusted. Asset HTML is the user's
	// own content and is exported as-is.
	"safeHTML":      func(s string) template.HTML { return template.HTML(s) },
	"platformLabel": models.PlatformLabel,
	"formatDate":    func(t time.Time) string { return t.UTC().Format("January 2, 2006") },
}).ParseFS(templateFS, "templates/*.html"))

// page is the data passed to every export template.
type page struct {
	Title     string
	Subtitle  string
	Label     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Data      models.AssetData
}

// Render writes a as a complete HTML document.
func Render(w io.Writer, a *models.Asset) error {
	if a == nil || a.Data == nil {
		return fmt.Errorf("export: %w: missing data", models.ErrInvalidAsset)
	}
	name := models.Visit[string](a.Data, templateVisitor{})
	p := page{
		Title:     models.Title(a.Data),
		Subtitle:  models.Subtitle(a.Data),
		Label:     models.Label(a.Data),
		Status:    models.StatusLabel(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Data:      a.Data,
	}
	if err := templates.ExecuteTemplate(w, name, p); err != nil {
		return fmt.Errorf("export %s: %w", a.ID, err)
	}
	return nil
}

// RenderBytes renders a into memory, so a failed render never leaves a
// partial document behind.
func RenderBytes(a *models.Asset) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePath returns the relative path of a's exported document, for
// example "articles/2026-10-16-spring-menu.html".
func SavePath(a *models.Asset) string {
	p := models.Visit[savePath](a.Data, pathVisitor{})
	return path.Join(p.dir, a.CreatedAt.UTC().Format("2006-01-02")+"-"+p.name+".html")
}

// FileName returns the last element of SavePath.
func FileName(a *models.Asset) string {
	return path.Base(SavePath(a))
}

type templateVisitor struct{}

func (templateVisitor) VisitSEO(*models.SEOArticle) string        { return "seo.html" }
func (templateVisitor) VisitEmail(*models.EmailCampaign) string   { return "email.html" }
func (templateVisitor) VisitSocial(*models.SocialPost) string     { return "social.html" }
func (templateVisitor) VisitLeadMagnet(*models.LeadMagnet) string { return "lead_magnet.html" }
func (templateVisitor) VisitImage(*models.ImageAsset) string      { return "image.html" }

type savePath struct {
	dir  string
	name string
}

// socialSlugLength caps slugs built from post copy.
const socialSlugLength = 40

type pathVisitor struct{}

func (pathVisitor) VisitSEO(d *models.SEOArticle) savePath {
	return savePath{"articles", slug.OrDefault(d.Title, "article")}
}

func (pathVisitor) VisitEmail(d *models.EmailCampaign) savePath {
	return savePath{path.Join("emails", string(d.Purpose)), slug.OrDefault(d.Subject, "email")}
}

func (pathVisitor) VisitSocial(d *models.SocialPost) savePath {
	name := slug.OrDefault(d.Copy, "post")
	if len(name) > socialSlugLength {
		name = slug.Generate(name[:socialSlugLength])
	}
	return savePath{path.Join("social", string(d.Platform)), name}
}

func (pathVisitor) VisitLeadMagnet(d *models.LeadMagnet) savePath {
	return savePath{path.Join("lead-magnets", string(d.ResourceType)), slug.OrDefault(d.Title, "resource")}
}

func (pathVisitor) VisitImage(d *models.ImageAsset) savePath {
	return savePath{"images", slug.OrDefault(d.Title, "image")}
}
