package editor

import (
	"encoding/json"
	"strconv"

	"funnelpress/internal/domain"
)

// Direction names a neighbor swap for move operations.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// The operation set below transforms a (document, selected index) pair
// and returns the updated pair. Invalid structural edits (out-of-range
// indices, deleting the last slide, shrinking below minimums, moving at
// a boundary) are absorbed as no-ops; none of these operations fails
// loudly. The input document is never mutated.

// AddSlide appends a new slide with default content for the kind and
// moves the selection onto it.
func AddSlide(doc domain.QuizDocument, sel int, kind domain.SlideKind) (domain.QuizDocument, int) {
	doc.Slides = append(cloneSlides(doc.Slides), NewSlide(kind))
	return doc, len(doc.Slides) - 1
}

// DuplicateSlide clones the slide at index and inserts the copy right
// after it. The copy gets a fresh slide id; nested option/block/category
// ids are deliberately kept.
func DuplicateSlide(doc domain.QuizDocument, sel, index int) (domain.QuizDocument, int) {
	if index < 0 || index >= len(doc.Slides) {
		return doc, sel
	}
	src := doc.Slides[index]
	dup := domain.Slide{
		ID:      domain.NewID(),
		Kind:    src.Kind,
		Content: deepCopyContent(src.Content),
	}
	if src.ConditionalLogic != nil {
		cl := *src.ConditionalLogic
		dup.ConditionalLogic = &cl
	}
	slides := make([]domain.Slide, 0, len(doc.Slides)+1)
	slides = append(slides, doc.Slides[:index+1]...)
	slides = append(slides, dup)
	slides = append(slides, doc.Slides[index+1:]...)
	doc.Slides = slides
	return doc, index + 1
}

// DeleteSlide removes the slide at index, refusing if it is the last
// remaining one. The selection clamps so it stays on the same logical
// neighbor.
func DeleteSlide(doc domain.QuizDocument, sel, index int) (domain.QuizDocument, int) {
	if index < 0 || index >= len(doc.Slides) || len(doc.Slides) <= 1 {
		return doc, sel
	}
	slides := make([]domain.Slide, 0, len(doc.Slides)-1)
	slides = append(slides, doc.Slides[:index]...)
	slides = append(slides, doc.Slides[index+1:]...)
	doc.Slides = slides
	if index < sel {
		sel--
	}
	return doc, clampSelection(sel, len(doc.Slides))
}

// MoveSlide swaps the slide at index with its immediate neighbor. The
// selection follows the moved slide; moves at either boundary are no-ops.
func MoveSlide(doc domain.QuizDocument, sel, index int, dir Direction) (domain.QuizDocument, int) {
	target := index + 1
	if dir == Up {
		target = index - 1
	}
	if index < 0 || index >= len(doc.Slides) || target < 0 || target >= len(doc.Slides) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	slides[index], slides[target] = slides[target], slides[index]
	doc.Slides = slides
	switch sel {
	case index:
		sel = target
	case target:
		sel = index
	}
	return doc, sel
}

// ReorderSlides removes the slide at from and reinserts it at to; the
// elements between them shift by one. The selection is remapped so it
// keeps pointing at the same logical slide.
func ReorderSlides(doc domain.QuizDocument, sel, from, to int) (domain.QuizDocument, int) {
	n := len(doc.Slides)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	moved := slides[from]
	slides = append(slides[:from], slides[from+1:]...)
	rest := append(slides[:to:to], append([]domain.Slide{moved}, slides[to:]...)...)
	doc.Slides = rest

	switch {
	case sel == from:
		sel = to
	case from < to && sel > from && sel <= to:
		sel--
	case to < from && sel >= to && sel < from:
		sel++
	}
	return doc, sel
}

// UpdateContentField replaces a single named field inside the selected
// slide's content. The value is decoded into the field's type; an
// unknown key or a value that doesn't decode is a no-op.
func UpdateContentField(doc domain.QuizDocument, sel int, key string, value json.RawMessage) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	content := &slides[sel].Content
	switch key {
	case "headline":
		setString(&content.Headline, value)
	case "subheadline":
		setString(&content.Subheadline, value)
	case "body":
		setString(&content.Body, value)
	case "offerText":
		setString(&content.OfferText, value)
	case "buttonText":
		setString(&content.ButtonText, value)
	case "ctaText":
		setString(&content.CtaText, value)
	case "ctaUrl":
		setString(&content.CtaURL, value)
	case "guaranteeText":
		setString(&content.GuaranteeText, value)
	case "options":
		setValue(&content.Options, value)
	case "blocks":
		setValue(&content.Blocks, value)
	case "items":
		setValue(&content.Items, value)
	case "resultCategories":
		setValue(&content.ResultCategories, value)
	case "bullets":
		setValue(&content.Bullets, value)
	default:
		return doc, sel
	}
	doc.Slides = slides
	return doc, sel
}

// AddOption appends an option with default text to the selected slide.
func AddOption(doc domain.QuizDocument, sel int) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	opts := slides[sel].Content.Options
	slides[sel].Content.Options = append(cloneOptions(opts), domain.SlideOption{
		ID:   domain.NewID(),
		Text: "New Option",
	})
	doc.Slides = slides
	return doc, sel
}

// UpdateOption patches a single field of the option at index on the
// selected slide.
func UpdateOption(doc domain.QuizDocument, sel, index int, field string, value json.RawMessage) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	opts := doc.Slides[sel].Content.Options
	if index < 0 || index >= len(opts) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	cloned := cloneOptions(opts)
	opt := &cloned[index]
	switch field {
	case "text":
		setString(&opt.Text, value)
	case "imageUrl":
		setString(&opt.ImageURL, value)
	case "nextSlide":
		setString(&opt.NextSlide, value)
	case "category":
		setString(&opt.Category, value)
	default:
		return doc, sel
	}
	slides[sel].Content.Options = cloned
	doc.Slides = slides
	return doc, sel
}

// RemoveOption filters out the option at index, refusing when the list
// would drop below two options.
func RemoveOption(doc domain.QuizDocument, sel, index int) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	opts := doc.Slides[sel].Content.Options
	if index < 0 || index >= len(opts) || len(opts) <= 2 {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	cloned := cloneOptions(opts)
	slides[sel].Content.Options = append(cloned[:index], cloned[index+1:]...)
	doc.Slides = slides
	return doc, sel
}

// AddBlock appends a content block of the given kind to the selected
// info slide. Quote blocks start with an empty author.
func AddBlock(doc domain.QuizDocument, sel int, kind domain.BlockKind) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	block := domain.ContentBlock{ID: domain.NewID(), Kind: kind}
	if kind == domain.BlockQuote {
		block.Author = ""
	}
	slides := cloneSlides(doc.Slides)
	blocks := slides[sel].Content.Blocks
	slides[sel].Content.Blocks = append(cloneBlocks(blocks), block)
	doc.Slides = slides
	return doc, sel
}

// UpdateBlock patches a single field of the block at index.
func UpdateBlock(doc domain.QuizDocument, sel, index int, field string, value json.RawMessage) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	blocks := doc.Slides[sel].Content.Blocks
	if index < 0 || index >= len(blocks) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	cloned := cloneBlocks(blocks)
	block := &cloned[index]
	switch field {
	case "content":
		setString(&block.Content, value)
	case "author":
		setString(&block.Author, value)
	default:
		return doc, sel
	}
	slides[sel].Content.Blocks = cloned
	doc.Slides = slides
	return doc, sel
}

// RemoveBlock filters out the block at index.
func RemoveBlock(doc domain.QuizDocument, sel, index int) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	blocks := doc.Slides[sel].Content.Blocks
	if index < 0 || index >= len(blocks) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	cloned := cloneBlocks(blocks)
	slides[sel].Content.Blocks = append(cloned[:index], cloned[index+1:]...)
	doc.Slides = slides
	return doc, sel
}

// MoveBlock swaps the block at index with its neighbor; boundary moves
// are no-ops.
func MoveBlock(doc domain.QuizDocument, sel, index int, dir Direction) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	blocks := doc.Slides[sel].Content.Blocks
	target := index + 1
	if dir == Up {
		target = index - 1
	}
	if index < 0 || index >= len(blocks) || target < 0 || target >= len(blocks) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	cloned := cloneBlocks(blocks)
	cloned[index], cloned[target] = cloned[target], cloned[index]
	slides[sel].Content.Blocks = cloned
	doc.Slides = slides
	return doc, sel
}

// AddResultCategory appends a category named "Category N".
func AddResultCategory(doc domain.QuizDocument, sel int) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	cats := slides[sel].Content.ResultCategories
	next := len(cats) + 1
	slides[sel].Content.ResultCategories = append(cloneCategories(cats), domain.ResultCategory{
		ID:       domain.NewID(),
		Name:     "Category " + strconv.Itoa(next),
		Headline: "Your result",
		Body:     "",
	})
	doc.Slides = slides
	return doc, sel
}

// RemoveResultCategory filters out the category at index, refusing when
// only one remains.
func RemoveResultCategory(doc domain.QuizDocument, sel, index int) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	cats := doc.Slides[sel].Content.ResultCategories
	if index < 0 || index >= len(cats) || len(cats) <= 1 {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	cloned := cloneCategories(cats)
	slides[sel].Content.ResultCategories = append(cloned[:index], cloned[index+1:]...)
	doc.Slides = slides
	return doc, sel
}

// SetConditionalLogic attaches a visibility rule to the selected slide.
func SetConditionalLogic(doc domain.QuizDocument, sel int, rule domain.ConditionalLogic) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	slides[sel].ConditionalLogic = &rule
	doc.Slides = slides
	return doc, sel
}

// ClearConditionalLogic removes the visibility rule from the selected slide.
func ClearConditionalLogic(doc domain.QuizDocument, sel int) (domain.QuizDocument, int) {
	if sel < 0 || sel >= len(doc.Slides) {
		return doc, sel
	}
	slides := cloneSlides(doc.Slides)
	slides[sel].ConditionalLogic = nil
	doc.Slides = slides
	return doc, sel
}

// SelectSlide moves the selection cursor, clamping into range.
func SelectSlide(doc domain.QuizDocument, _ int, index int) (domain.QuizDocument, int) {
	return doc, clampSelection(index, len(doc.Slides))
}

func clampSelection(sel, n int) int {
	if sel < 0 {
		return 0
	}
	if sel >= n {
		return n - 1
	}
	return sel
}

func cloneSlides(s []domain.Slide) []domain.Slide {
	out := make([]domain.Slide, len(s))
	copy(out, s)
	return out
}

func cloneOptions(s []domain.SlideOption) []domain.SlideOption {
	if s == nil {
		return nil
	}
	out := make([]domain.SlideOption, len(s))
	copy(out, s)
	return out
}

func cloneBlocks(s []domain.ContentBlock) []domain.ContentBlock {
	if s == nil {
		return nil
	}
	out := make([]domain.ContentBlock, len(s))
	copy(out, s)
	return out
}

func cloneCategories(s []domain.ResultCategory) []domain.ResultCategory {
	if s == nil {
		return nil
	}
	out := make([]domain.ResultCategory, len(s))
	copy(out, s)
	return out
}

// deepCopyContent copies every nested list so the duplicate shares no
// backing storage with the original. Nested ids are preserved.
func deepCopyContent(c domain.SlideContent) domain.SlideContent {
	c.Options = cloneOptions(c.Options)
	c.Blocks = cloneBlocks(c.Blocks)
	c.ResultCategories = cloneCategories(c.ResultCategories)
	if c.Items != nil {
		items := make([]domain.LoadingItem, len(c.Items))
		copy(items, c.Items)
		c.Items = items
	}
	if c.Bullets != nil {
		bullets := make([]string, len(c.Bullets))
		copy(bullets, c.Bullets)
		c.Bullets = bullets
	}
	return c
}

func setString(dst *string, raw json.RawMessage) {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

func setValue[T any](dst *T, raw json.RawMessage) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}
