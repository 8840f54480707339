package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// SubmissionPayload holds the semantic content fields of one submission,
// independent of identity, state and timestamps. It is the input to the
// content signer and the source for new Submission entities.
type SubmissionPayload struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"image_url"`
	AuthorName  string   `json:"-"`
	AuthorEmail string   `json:"author_email"`
}

// Normalize returns a canonical copy of the payload: string fields trimmed,
// author email lower-cased, tags trimmed, deduplicated and sorted.
// Two payloads that differ only in tag order or incidental whitespace
// normalize to the same value.
func (p SubmissionPayload) Normalize() SubmissionPayload {
	out := SubmissionPayload{
		Title:       strings.TrimSpace(p.Title),
		Content:     strings.TrimSpace(p.Content),
		Excerpt:     strings.TrimSpace(p.Excerpt),
		Category:    strings.TrimSpace(p.Category),
		ImageURL:    strings.TrimSpace(p.ImageURL),
		AuthorName:  strings.TrimSpace(p.AuthorName),
		AuthorEmail: strings.ToLower(strings.TrimSpace(p.AuthorEmail)),
	}

	seen := make(map[string]struct{}, len(p.Tags))
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	sort.Strings(tags)
	out.Tags = tags

	return out
}

// ComputeSignature returns the hex-encoded SHA-256 digest of the canonical
// JSON form of the normalized payload. Pure function: no I/O, no clock.
// The digest is what the admission pipeline uses for content-based dedup,
// so it must stay stable across releases.
func ComputeSignature(p SubmissionPayload) string {
	n := p.Normalize()

	// json.Marshal on a struct emits fields in declaration order,
	// which keeps the canonical form deterministic.
	raw, err := json.Marshal(n)
	if err != nil {
		// Marshalling a struct of strings and a string slice cannot fail.
		panic(err)
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
