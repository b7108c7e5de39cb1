package http

import (
	"net/http"

	"funnelpress/internal/app"
	"funnelpress/internal/domain"
)

// PublicHandler serves the visitor-facing read path: published quizzes
// and articles, CTA redirects, quiz branching and result resolution.
type PublicHandler struct {
	render *app.RenderService
}

func NewPublicHandler(render *app.RenderService) *PublicHandler {
	return &PublicHandler{render: render}
}

type publicQuizResponse struct {
	Quiz   domain.QuizDocument `json:"quiz"`
	Pixels []domain.Pixel      `json:"pixels"`
}

func (h *PublicHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	doc, err := h.render.Quiz(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	pixels, err := h.render.Pixels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if pixels == nil {
		pixels = []domain.Pixel{}
	}
	writeJSON(w, http.StatusOK, publicQuizResponse{Quiz: doc, Pixels: pixels})
}

type publicArticleResponse struct {
	Article domain.Article `json:"article"`
	Pixels  []domain.Pixel `json:"pixels"`
}

func (h *PublicHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.render.Article(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	pixels, err := h.render.Pixels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if pixels == nil {
		pixels = []domain.Pixel{}
	}
	writeJSON(w, http.StatusOK, publicArticleResponse{Article: article, Pixels: pixels})
}

// Redirect sends the visitor to a configured CTA destination, carrying
// every inbound query parameter (minus the CTA selector itself) onto
// the destination URL so attribution survives.
func (h *PublicHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	id := query.Get("cta")
	query.Del("cta")

	target, ok, err := h.render.ResolveCTAUrl(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "cta url not found"})
		return
	}
	http.Redirect(w, r, app.BuildCTAURL(target.URL, query), http.StatusFound)
}

type nextSlideRequest struct {
	Current int               `json:"current"`
	Answers map[string]string `json:"answers"`
}

type nextSlideResponse struct {
	Next int  `json:"next"`
	Done bool `json:"done"`
}

// NextSlide computes where the taker goes after answering: branching by
// the chosen option first, then skipping slides whose conditional logic
// is unmet.
func (h *PublicHandler) NextSlide(w http.ResponseWriter, r *http.Request) {
	doc, err := h.render.Quiz(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req nextSlideRequest
	if !decodeBody(w, r, &req) {
		return
	}
	next := app.NextSlideIndex(doc, req.Current, req.Answers)
	writeJSON(w, http.StatusOK, nextSlideResponse{Next: next, Done: next < 0})
}

type resultRequest struct {
	SelectedOptionIDs []string `json:"selectedOptionIds"`
}

// Result scores the taker's selections into a result category.
func (h *PublicHandler) Result(w http.ResponseWriter, r *http.Request) {
	doc, err := h.render.Quiz(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req resultRequest
	if !decodeBody(w, r, &req) {
		return
	}
	category, ok := app.ResolveResult(doc, req.SelectedOptionIDs)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "quiz has no result categories"})
		return
	}
	writeJSON(w, http.StatusOK, category)
}
