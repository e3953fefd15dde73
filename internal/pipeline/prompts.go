// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pipeline

import (
	"fmt"
	"strings"

	"postforge/internal/models"
)

// clientBrief renders the parts of a client profile every prompt carries.
func clientBrief(client *models.Client) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Business: %s\nIndustry: %s\nWebsite: %s\n",
		client.Name, client.Industry, client.WebsiteURL)
	if client.BrandVoice != "" {
		fmt.Fprintf(&sb, "Brand voice: %s\n", client.BrandVoice)
	}
	if client.UniqueValueProp != "" {
		fmt.Fprintf(&sb, "Unique value proposition: %s\n", client.UniqueValueProp)
	}
	if client.ContentStrategy != "" {
		fmt.Fprintf(&sb, "Content strategy: %s\n", client.ContentStrategy)
	}
	return sb.String()
}

func topicSystemPrompt() string {
	return `You are a content strategist for local service businesses. Using current
search results, find ONE timely, industry-relevant news angle or trend that would make
a compelling blog topic for the business described by the user.

Rules:
- Return EXACTLY one headline-style topic on a single line.
- No numbering, no quotes, no markdown, no extra commentary.
- The topic must be current and specific to the business's industry.`
}

func topicUserPrompt(client *models.Client, recentTopics []models.UsedTopic) string {
	var sb strings.Builder
	sb.WriteString(clientBrief(client))
	if len(recentTopics) > 0 {
		sb.WriteString("\nAlready covered — do NOT repeat or closely paraphrase these topics:\n")
		for _, t := range recentTopics {
			fmt.Fprintf(&sb, "- %s\n", t.Topic)
		}
	}
	return sb.String()
}

func planSystemPrompt() string {
	return `You are an SEO content strategist. For the given business and topic, produce
a JSON object with:
- "title": a compelling, SEO-friendly article title under 70 characters
- "angle": one sentence describing the unique angle the article takes
- "keywords": 5 to 7 target keywords or key phrases

Ground the plan in the business's brand voice and value proposition.`
}

func planUserPrompt(client *models.Client, topic string) string {
	return clientBrief(client) + "\nTopic: " + topic
}

func outlineSystemPrompt() string {
	return `You are an SEO content strategist. Produce a JSON object for an article outline:
- "outline": the full outline as plain text, one section heading per line with 2-3
  bullet points under each
- "estimated_word_count": the word count the finished article should target
- "seo_score": your 0-100 heuristic score for how well the outline targets the keywords

The outline should support a 1500-3000 word article.`
}

func outlineUserPrompt(client *models.Client, topic, title, angle string, keywords []string) string {
	return fmt.Sprintf("%s\nTopic: %s\nTitle: %s\nAngle: %s\nKeywords: %s",
		clientBrief(client), topic, title, angle, strings.Join(keywords, ", "))
}

func contentSystemPrompt() string {
	return `You are an expert content writer for local service businesses. Write the full
article as a JSON object:
- "html": the complete article body as clean HTML (h2/h3 headings, p, ul/ol lists,
  strong/em). Target 1500-3000 words. Do NOT include the title as an h1.
- "word_count": the actual word count of the body
- "meta_description": a meta description of AT MOST 160 characters
- "faqs": 3 to 5 question/answer pairs relevant to the article

Linking rules (strictly enforced):
- Internal links: use ONLY the internal URLs listed by the user, as normal anchors.
  NEVER invent or guess a URL. If no internal URLs are listed, use none.
- External references: include 2 to 8 anchors with target="_blank" whose href values
  are copied EXACTLY from the approved external reference list. Do not link to any
  other external site.`
}

func contentUserPrompt(client *models.Client, in ContentInput, internal []models.DiscoveredURL, allowedLinks []string) string {
	var sb strings.Builder
	sb.WriteString(clientBrief(client))
	fmt.Fprintf(&sb, "\nTopic: %s\nTitle: %s\nAngle: %s\nKeywords: %s\n\nOutline:\n%s\n",
		in.Topic, in.Title, in.Angle, strings.Join(in.Keywords, ", "), in.Outline)

	if len(internal) > 0 {
		sb.WriteString("\nInternal URLs available for contextual links:\n")
		for _, u := range internal {
			fmt.Fprintf(&sb, "- %s (%s)\n", u.URL, u.Title)
		}
	} else {
		sb.WriteString("\nNo internal URLs are available — do not add internal links.\n")
	}

	sb.WriteString("\nApproved external reference list (copy hrefs exactly):\n")
	for _, u := range allowedLinks {
		fmt.Fprintf(&sb, "- %s\n", u)
	}
	return sb.String()
}

func imageSystemPrompt() string {
	return `You are an art director. For the given article, produce a JSON object:
- "featured_description": one vivid, concrete description of a featured image for the
  article (photorealistic, no text overlays)
- "section_descriptions": up to 3 illustration descriptions, one per major section

Keep each description under 60 words.`
}

func imageUserPrompt(title string, headings []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Article title: %s\n", title)
	if len(headings) > 0 {
		sb.WriteString("Section headings:\n")
		for _, h := range headings {
			fmt.Fprintf(&sb, "- %s\n", h)
		}
	}
	return sb.String()
}
