// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"context"
	"log/slog"

	"postforge/internal/models"
)

// imageOutcome carries the image branch result through its future channel.
type imageOutcome struct {
	result *ImageResult
	err    error
}

// Complete runs stages 1-5 (topic through images) and returns everything
// for review without publishing. Stages run sequentially; the image stage
// degrades to nil on failure like everywhere else.
func (p *Pipeline) Complete(ctx context.Context, client *models.Client) (*LuckyResult, error) {
	topic, err := p.DiscoverTopic(ctx, client)
	if err != nil {
		return nil, err
	}

	plan, err := p.PlanStrategy(ctx, client, topic.Topic)
	if err != nil {
		return nil, err
	}

	outline, err := p.GenerateOutline(ctx, client, topic.Topic, plan.Title, plan.Angle, plan.Keywords)
	if err != nil {
		return nil, err
	}

	content, err := p.GenerateContent(ctx, client, ContentInput{
		Topic:    topic.Topic,
		Title:    plan.Title,
		Angle:    plan.Angle,
		Keywords: plan.Keywords,
		Outline:  outline.Outline,
	})
	if err != nil {
		return nil, err
	}

	var image *ImageResult
	if img, err := p.GenerateImages(ctx, plan.Title, sectionHeadings(content.HTML)); err != nil {
		slog.Warn("image stage degraded", "client_id", client.ID, "error", err)
	} else {
		image = img
	}

	return &LuckyResult{
		Topic:   topic,
		Plan:    plan,
		Outline: outline,
		Content: content,
		Image:   image,
	}, nil
}

// Lucky runs the fully automated pipeline: stages 1-4 sequentially, the
// image stage concurrently with content generation, then publish. The
// image branch is an explicit future — a single buffered channel — whose
// receive immediately before publish is the only synchronization barrier.
// Image failure degrades to "no image"; any other stage failure aborts the
// run. No partial results are persisted across stages.
func (p *Pipeline) Lucky(ctx context.Context, client *models.Client) (*LuckyResult, error) {
	topic, err := p.DiscoverTopic(ctx, client)
	if err != nil {
		return nil, err
	}

	plan, err := p.PlanStrategy(ctx, client, topic.Topic)
	if err != nil {
		return nil, err
	}

	outline, err := p.GenerateOutline(ctx, client, topic.Topic, plan.Title, plan.Angle, plan.Keywords)
	if err != nil {
		return nil, err
	}

	// Fire the image branch without awaiting; the title is known and the
	// section headings are not yet, so the branch runs on the title alone.
	imageCh := make(chan imageOutcome, 1)
	go func() {
		img, err := p.GenerateImages(ctx, plan.Title, nil)
		imageCh <- imageOutcome{result: img, err: err}
	}()

	content, err := p.GenerateContent(ctx, client, ContentInput{
		Topic:    topic.Topic,
		Title:    plan.Title,
		Angle:    plan.Angle,
		Keywords: plan.Keywords,
		Outline:  outline.Outline,
	})
	if err != nil {
		return nil, err
	}

	// Join the image branch before assembling the publish payload.
	var image *ImageResult
	outcome := <-imageCh
	if outcome.err != nil {
		slog.Warn("lucky mode image degraded", "client_id", client.ID, "error", outcome.err)
	} else {
		image = outcome.result
	}

	var featuredURL *string
	if image != nil {
		featuredURL = image.FeaturedURL
	}

	publish, err := p.Publish(ctx, client, PublishInput{
		Topic:           topic.Topic,
		Title:           plan.Title,
		HTML:            content.HTML,
		MetaDescription: content.MetaDescription,
		FeaturedURL:     featuredURL,
		Tags:            plan.Keywords,
	})
	if err != nil {
		return nil, err
	}

	return &LuckyResult{
		Topic:   topic,
		Plan:    plan,
		Outline: outline,
		Content: content,
		Image:   image,
		Publish: publish,
	}, nil
}
