package app

import (
	"encoding/json"
	"fmt"

	"funnelpress/internal/domain"
	"funnelpress/internal/editor"
)

// Operation is a single serializable edit the presentation layer sends.
// Which fields matter depends on Type; indices refer to the document as
// it was when the operation was issued.
type Operation struct {
	Type      string          `json:"type"`
	Kind      string          `json:"kind,omitempty"`
	Index     int             `json:"index"`
	From      int             `json:"from"`
	To        int             `json:"to"`
	Direction string          `json:"direction,omitempty"`
	Key       string          `json:"key,omitempty"`
	Field     string          `json:"field,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
	SlideID   string          `json:"slideId,omitempty"`
	OptionID  string          `json:"optionId,omitempty"`
	Status    string          `json:"status,omitempty"`
	Settings  json.RawMessage `json:"settings,omitempty"`
}

// applyOperation dispatches one operation onto a (document, selection)
// pair. Unknown operation types are the only loud failure; every
// structurally invalid edit inside a known operation is a silent no-op.
func applyOperation(doc domain.QuizDocument, sel int, op Operation) (domain.QuizDocument, int, error) {
	dir := editor.Direction(op.Direction)
	switch op.Type {
	case "addSlide":
		return ret(editor.AddSlide(doc, sel, domain.SlideKind(op.Kind)))
	case "duplicateSlide":
		return ret(editor.DuplicateSlide(doc, sel, op.Index))
	case "deleteSlide":
		return ret(editor.DeleteSlide(doc, sel, op.Index))
	case "moveSlide":
		return ret(editor.MoveSlide(doc, sel, op.Index, dir))
	case "reorderSlides":
		return ret(editor.ReorderSlides(doc, sel, op.From, op.To))
	case "selectSlide":
		return ret(editor.SelectSlide(doc, sel, op.Index))
	case "updateSlideContent":
		return ret(editor.UpdateContentField(doc, sel, op.Key, op.Value))
	case "addOption":
		return ret(editor.AddOption(doc, sel))
	case "updateOption":
		return ret(editor.UpdateOption(doc, sel, op.Index, op.Field, op.Value))
	case "removeOption":
		return ret(editor.RemoveOption(doc, sel, op.Index))
	case "addBlock":
		return ret(editor.AddBlock(doc, sel, domain.BlockKind(op.Kind)))
	case "updateBlock":
		return ret(editor.UpdateBlock(doc, sel, op.Index, op.Field, op.Value))
	case "removeBlock":
		return ret(editor.RemoveBlock(doc, sel, op.Index))
	case "moveBlock":
		return ret(editor.MoveBlock(doc, sel, op.Index, dir))
	case "addResultCategory":
		return ret(editor.AddResultCategory(doc, sel))
	case "removeResultCategory":
		return ret(editor.RemoveResultCategory(doc, sel, op.Index))
	case "setConditionalLogic":
		rule := domain.ConditionalLogic{SlideID: op.SlideID, OptionID: op.OptionID}
		return ret(editor.SetConditionalLogic(doc, sel, rule))
	case "clearConditionalLogic":
		return ret(editor.ClearConditionalLogic(doc, sel))
	case "setStatus":
		// Status transitions are unrestricted and only ever explicit.
		switch domain.Status(op.Status) {
		case domain.StatusDraft, domain.StatusPublished, domain.StatusArchived:
			doc.Status = domain.Status(op.Status)
		}
		return doc, sel, nil
	case "updateSettings":
		settings := doc.Settings
		if err := json.Unmarshal(op.Settings, &settings); err == nil {
			doc.Settings = settings
		}
		return doc, sel, nil
	case "updateMeta":
		var meta struct {
			Name        *string `json:"name"`
			Slug        *string `json:"slug"`
			Description *string `json:"description"`
		}
		if err := json.Unmarshal(op.Value, &meta); err == nil {
			if meta.Name != nil {
				doc.Name = *meta.Name
			}
			if meta.Slug != nil {
				doc.Slug = domain.Slugify(*meta.Slug)
			}
			if meta.Description != nil {
				doc.Description = *meta.Description
			}
		}
		return doc, sel, nil
	}
	return doc, sel, fmt.Errorf("unsupported operation type %q", op.Type)
}

func ret(doc domain.QuizDocument, sel int) (domain.QuizDocument, int, error) {
	return doc, sel, nil
}
