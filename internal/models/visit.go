// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// AssetVisitor is implemented by every piece of code that needs to handle
// each asset variant differently. Adding a variant adds a method here, which
// turns every incomplete consumer into a compile error.
type AssetVisitor[T any] interface {
	VisitSEO(*SEOArticle) T
	VisitEmail(*EmailCampaign) T
	VisitSocial(*SocialPost) T
	VisitLeadMagnet(*LeadMagnet) T
	VisitImage(*ImageAsset) T
}

// Visit dispatches d to the matching visitor method and returns its result.
func Visit[T any](d AssetData, v AssetVisitor[T]) T {
	a := &visitAdapter[T]{v: v}
	d.accept(a)
	return a.out
}

// dispatcher is the non-generic double-dispatch target. Each variant's
// accept method calls exactly one of these.
type dispatcher interface {
	seo(*SEOArticle)
	email(*EmailCampaign)
	social(*SocialPost)
	leadMagnet(*LeadMagnet)
	image(*ImageAsset)
}

func (s *SEOArticle) accept(d dispatcher)    { d.seo(s) }
func (e *EmailCampaign) accept(d dispatcher) { d.email(e) }
func (s *SocialPost) accept(d dispatcher)    { d.social(s) }
func (l *LeadMagnet) accept(d dispatcher)    { d.leadMagnet(l) }
func (i *ImageAsset) accept(d dispatcher)    { d.image(i) }

type visitAdapter[T any] struct {
	v   AssetVisitor[T]
	out T
}

func (a *visitAdapter[T]) seo(d *SEOArticle)        { a.out = a.v.VisitSEO(d) }
func (a *visitAdapter[T]) email(d *EmailCampaign)   { a.out = a.v.VisitEmail(d) }
func (a *visitAdapter[T]) social(d *SocialPost)     { a.out = a.v.VisitSocial(d) }
func (a *visitAdapter[T]) leadMagnet(d *LeadMagnet) { a.out = a.v.VisitLeadMagnet(d) }
func (a *visitAdapter[T]) image(d *ImageAsset)      { a.out = a.v.VisitImage(d) }
