package editor

import "funnelpress/internal/domain"

// Normalize prepares a freshly loaded document for editing: every slide
// gets a non-empty stable id, and a document that arrived with no slides
// at all gets a default one so the minimum-slide invariant holds from
// the first operation.
func Normalize(doc domain.QuizDocument) domain.QuizDocument {
	slides := cloneSlides(doc.Slides)
	for i := range slides {
		if slides[i].ID == "" {
			slides[i].ID = domain.NewID()
		}
	}
	if len(slides) == 0 {
		slides = append(slides, NewSlide(domain.KindTextChoice))
	}
	doc.Slides = slides
	if doc.Status == "" {
		doc.Status = domain.StatusDraft
	}
	return doc
}
