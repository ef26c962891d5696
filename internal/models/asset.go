// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the marketing asset and business settings types
// shared by the stores, the generator and the HTTP handlers.
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidAsset is returned when an asset violates the model's shape
// contract (unknown enum value, missing payload, negative cost, ...).
var ErrInvalidAsset = errors.New("invalid asset")

// AssetType is the discriminator of the Asset union.
type AssetType string

const (
	AssetTypeSEO        AssetType = "seo"
	AssetTypeEmail      AssetType = "email"
	AssetTypeSocial     AssetType = "social"
	AssetTypeLeadMagnet AssetType = "leadMagnet"
	AssetTypeImage      AssetType = "image"
)

// AssetTypes lists every asset type in dashboard order.
var AssetTypes = []AssetType{
	AssetTypeSEO,
	AssetTypeEmail,
	AssetTypeSocial,
	AssetTypeLeadMagnet,
	AssetTypeImage,
}

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	_, err := NewAssetData(t)
	return err == nil
}

// AssetStatus represents where an asset sits in the review workflow.
// Transitions are unrestricted: any status can be set from any other.
type AssetStatus string

const (
	AssetStatusDraft     AssetStatus = "draft"
	AssetStatusReview    AssetStatus = "review"
	AssetStatusPublished AssetStatus = "published"
)

// AssetStatuses lists every status in workflow order.
var AssetStatuses = []AssetStatus{AssetStatusDraft, AssetStatusReview, AssetStatusPublished}

// Valid reports whether s is a known status.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusDraft, AssetStatusReview, AssetStatusPublished:
		return true
	}
	return false
}

// Asset is a single generated marketing item. The variant-specific payload
// lives in Data; the asset's type is derived from it and therefore cannot
// disagree with the payload's shape.
type Asset struct {
	ID        string
	Status    AssetStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	Data      AssetData
}

// NewAsset wraps a freshly generated payload into an unsaved draft asset
// with a new ID and both timestamps set to now.
func NewAsset(data AssetData, now time.Time) *Asset {
	now = now.UTC()
	return &Asset{
		ID:        uuid.NewString(),
		Status:    AssetStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
		Data:      data,
	}
}

// Type returns the asset's discriminator, or "" when Data is nil.
func (a *Asset) Type() AssetType {
	if a.Data == nil {
		return ""
	}
	return a.Data.AssetType()
}

// Validate checks the common fields and the payload. Every failure wraps
// ErrInvalidAsset.
func (a *Asset) Validate() error {
	switch {
	case a.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidAsset)
	case !a.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidAsset, a.Status)
	case a.Data == nil:
		return fmt.Errorf("%w: missing data", ErrInvalidAsset)
	case a.CreatedAt.IsZero():
		return fmt.Errorf("%w: missing createdAt", ErrInvalidAsset)
	case a.UpdatedAt.Before(a.CreatedAt):
		return fmt.Errorf("%w: updatedAt precedes createdAt", ErrInvalidAsset)
	}
	return a.Data.validate()
}

// AssetData is the sealed set of per-type payloads. Only the variants in this
// package implement it.
type AssetData interface {
	AssetType() AssetType
	validate() error
	accept(d dispatcher)
}

// NewAssetData returns an empty payload for the given type, ready to be
// decoded into.
func NewAssetData(t AssetType) (AssetData, error) {
	switch t {
	case AssetTypeSEO:
		return &SEOArticle{}, nil
	case AssetTypeEmail:
		return &EmailCampaign{}, nil
	case AssetTypeSocial:
		return &SocialPost{}, nil
	case AssetTypeLeadMagnet:
		return &LeadMagnet{}, nil
	case AssetTypeImage:
		return &ImageAsset{}, nil
	}
	return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidAsset, t)
}

// --- Variant payloads ---

// SEOArticle is a long-form, keyword-optimised blog article.
type SEOArticle struct {
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Content     string   `json:"content"`
	WordCount   int      `json:"wordCount"`
	ImagePrompt string   `json:"imagePrompt"`
}

func (*SEOArticle) AssetType() AssetType { return AssetTypeSEO }

func (s *SEOArticle) validate() error {
	if s == nil {
		return fmt.Errorf("%w: missing seo data", ErrInvalidAsset)
	}
	if s.WordCount < 0 {
		return fmt.Errorf("%w: negative word count", ErrInvalidAsset)
	}
	return nil
}

// EmailPurpose classifies an email campaign.
type EmailPurpose string

const (
	EmailPurposeNewsletter   EmailPurpose = "newsletter"
	EmailPurposePromotion    EmailPurpose = "promotion"
	EmailPurposeAnnouncement EmailPurpose = "announcement"
	EmailPurposeFollowUp     EmailPurpose = "followUp"
)

// Valid reports whether p is a known purpose.
func (p EmailPurpose) Valid() bool {
	switch p {
	case EmailPurposeNewsletter, EmailPurposePromotion, EmailPurposeAnnouncement, EmailPurposeFollowUp:
		return true
	}
	return false
}

// EmailCampaign is a single marketing email.
type EmailCampaign struct {
	Subject     string       `json:"subject"`
	PreviewLine string       `json:"previewLine"`
	BodyHTML    string       `json:"bodyHtml"`
	Purpose     EmailPurpose `json:"purpose"`
}

func (*EmailCampaign) AssetType() AssetType { return AssetTypeEmail }

func (e *EmailCampaign) validate() error {
	if e == nil {
		return fmt.Errorf("%w: missing email data", ErrInvalidAsset)
	}
	if !e.Purpose.Valid() {
		return fmt.Errorf("%w: unknown email purpose %q", ErrInvalidAsset, e.Purpose)
	}
	return nil
}

// SocialPlatform is a social network a post or image targets.
type SocialPlatform string

const (
	PlatformInstagram SocialPlatform = "instagram"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformTwitter   SocialPlatform = "twitter"
)

// Valid reports whether p is a known platform.
func (p SocialPlatform) Valid() bool {
	switch p {
	case PlatformInstagram, PlatformLinkedIn, PlatformFacebook, PlatformTwitter:
		return true
	}
	return false
}

// SocialPost is platform-specific copy plus an image prompt.
type SocialPost struct {
	Copy        string         `json:"copy"`
	Hashtags    []string       `json:"hashtags"`
	ImagePrompt string         `json:"imagePrompt"`
	Platform    SocialPlatform `json:"platform"`
}

func (*SocialPost) AssetType() AssetType { return AssetTypeSocial }

func (s *SocialPost) validate() error {
	if s == nil {
		return fmt.Errorf("%w: missing social data", ErrInvalidAsset)
	}
	if !s.Platform.Valid() {
		return fmt.Errorf("%w: unknown platform %q", ErrInvalidAsset, s.Platform)
	}
	return nil
}

// LeadMagnetType is the kind of downloadable resource.
type LeadMagnetType string

const (
	LeadMagnetGuide            LeadMagnetType = "guide"
	LeadMagnetChecklist        LeadMagnetType = "checklist"
	LeadMagnetTemplate         LeadMagnetType = "template"
	LeadMagnetCalculatorPrompt LeadMagnetType = "calculatorPrompt"
)

// Valid reports whether t is a known resource type.
func (t LeadMagnetType) Valid() bool {
	switch t {
	case LeadMagnetGuide, LeadMagnetChecklist, LeadMagnetTemplate, LeadMagnetCalculatorPrompt:
		return true
	}
	return false
}

// LeadMagnet is a gated resource offered in exchange for contact details.
type LeadMagnet struct {
	Title           string         `json:"title"`
	Outline         []string       `json:"outline"`
	DeliverableHTML string         `json:"deliverableHtml,omitempty"`
	PromptForCoder  string         `json:"promptForCoder,omitempty"`
	ResourceType    LeadMagnetType `json:"resourceType"`
}

func (*LeadMagnet) AssetType() AssetType { return AssetTypeLeadMagnet }

func (l *LeadMagnet) validate() error {
	if l == nil {
		return fmt.Errorf("%w: missing lead magnet data", ErrInvalidAsset)
	}
	if !l.ResourceType.Valid() {
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidAsset, l.ResourceType)
	}
	return nil
}

// ImageAsset is a generated image together with what it cost to make.
type ImageAsset struct {
	Title    string         `json:"title"`
	Prompt   string         `json:"prompt"`
	ImageURL string         `json:"imageUrl"`
	Platform SocialPlatform `json:"platform,omitempty"`
	Style    string         `json:"style,omitempty"`
	Cost     float64        `json:"cost"`
	Model    string         `json:"model"`
}

func (*ImageAsset) AssetType() AssetType { return AssetTypeImage }

func (i *ImageAsset) validate() error {
	if i == nil {
		return fmt.Errorf("%w: missing image data", ErrInvalidAsset)
	}
	if i.Platform != "" && !i.Platform.Valid() {
		return fmt.Errorf("%w: unknown platform %q", ErrInvalidAsset, i.Platform)
	}
	if i.Cost < 0 {
		return fmt.Errorf("%w: negative cost", ErrInvalidAsset)
	}
	return nil
}
