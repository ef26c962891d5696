// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// Title returns the headline used for an asset in listings.
func Title(d AssetData) string {
	return Visit[string](d, titleVisitor{})
}

// Subtitle returns the secondary listing line; empty for most variants.
func Subtitle(d AssetData) string {
	return Visit[string](d, subtitleVisitor{})
}

// Label returns the human-readable name of the asset's type.
func Label(d AssetData) string {
	return Visit[string](d, labelVisitor{})
}

// PlatformLabel returns the display name of a social platform.
func PlatformLabel(p SocialPlatform) string {
	switch p {
	case PlatformInstagram:
		return "Instagram"
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformFacebook:
		return "Facebook"
	case PlatformTwitter:
		return "Twitter/X"
	}
	return string(p)
}

// StatusLabel returns the display name of a status.
func StatusLabel(s AssetStatus) string {
	switch s {
	case AssetStatusDraft:
		return "Draft"
	case AssetStatusReview:
		return "In Review"
	case AssetStatusPublished:
		return "Published"
	}
	return string(s)
}

type titleVisitor struct{}

func (titleVisitor) VisitSEO(d *SEOArticle) string        { return d.Title }
func (titleVisitor) VisitEmail(d *EmailCampaign) string   { return d.Subject }
func (titleVisitor) VisitSocial(d *SocialPost) string     { return PlatformLabel(d.Platform) + " Post" }
func (titleVisitor) VisitLeadMagnet(d *LeadMagnet) string { return d.Title }
func (titleVisitor) VisitImage(d *ImageAsset) string      { return d.Title }

type subtitleVisitor struct{}

func (subtitleVisitor) VisitSEO(*SEOArticle) string         { return "" }
func (subtitleVisitor) VisitEmail(*EmailCampaign) string    { return "" }
func (subtitleVisitor) VisitSocial(d *SocialPost) string    { return PlatformLabel(d.Platform) }
func (subtitleVisitor) VisitLeadMagnet(*LeadMagnet) string  { return "" }
func (subtitleVisitor) VisitImage(d *ImageAsset) string {
	return fmt.Sprintf("%s • $%.3f", d.Model, d.Cost)
}

type labelVisitor struct{}

func (labelVisitor) VisitSEO(*SEOArticle) string        { return "SEO Article" }
func (labelVisitor) VisitEmail(*EmailCampaign) string   { return "Email Campaign" }
func (labelVisitor) VisitSocial(*SocialPost) string     { return "Social Post" }
func (labelVisitor) VisitLeadMagnet(*LeadMagnet) string { return "Lead Magnet" }
func (labelVisitor) VisitImage(*ImageAsset) string      { return "Generated Image" }
