package http

import (
	"net/http"

	"funnelpress/internal/app"
	"funnelpress/internal/domain"
)

// ContentHandler is the admin CRUD surface over quizzes, articles and
// settings.
type ContentHandler struct {
	content    *app.ContentService
	generation *app.GenerationService
}

func NewContentHandler(content *app.ContentService, generation *app.GenerationService) *ContentHandler {
	return &ContentHandler{content: content, generation: generation}
}

func (h *ContentHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.content.ListQuizzes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if quizzes == nil {
		quizzes = []domain.QuizDocument{}
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *ContentHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "name is required"})
		return
	}
	doc, err := h.content.CreateQuiz(r.Context(), body.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *ContentHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	doc, err := h.content.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *ContentHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteQuiz(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) SetQuizStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.Status `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	switch body.Status {
	case domain.StatusDraft, domain.StatusPublished, domain.StatusArchived:
	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown status"})
		return
	}
	doc, err := h.content.SetQuizStatus(r.Context(), r.PathValue("id"), body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *ContentHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.content.ListArticles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

func (h *ContentHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var article domain.Article
	if !decodeBody(w, r, &article) {
		return
	}
	created, err := h.content.CreateArticle(r.Context(), article)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.content.GetArticle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (h *ContentHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var article domain.Article
	if !decodeBody(w, r, &article) {
		return
	}
	article.ID = r.PathValue("id")
	updated, err := h.content.UpdateArticle(r.Context(), article)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ContentHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteArticle(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) ListPixels(w http.ResponseWriter, r *http.Request) {
	pixels, err := h.content.ListPixels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if pixels == nil {
		pixels = []domain.Pixel{}
	}
	writeJSON(w, http.StatusOK, pixels)
}

func (h *ContentHandler) SavePixel(w http.ResponseWriter, r *http.Request) {
	var p domain.Pixel
	if !decodeBody(w, r, &p) {
		return
	}
	saved, err := h.content.SavePixel(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *ContentHandler) DeletePixel(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeletePixel(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) ListCTAUrls(w http.ResponseWriter, r *http.Request) {
	urls, err := h.content.ListCTAUrls(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if urls == nil {
		urls = []domain.CTAUrl{}
	}
	writeJSON(w, http.StatusOK, urls)
}

func (h *ContentHandler) SaveCTAUrl(w http.ResponseWriter, r *http.Request) {
	var u domain.CTAUrl
	if !decodeBody(w, r, &u) {
		return
	}
	saved, err := h.content.SaveCTAUrl(r.Context(), u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *ContentHandler) DeleteCTAUrl(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteCTAUrl(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) ListDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.content.ListDomains(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if domains == nil {
		domains = []domain.Domain{}
	}
	writeJSON(w, http.StatusOK, domains)
}

func (h *ContentHandler) SaveDomain(w http.ResponseWriter, r *http.Request) {
	var d domain.Domain
	if !decodeBody(w, r, &d) {
		return
	}
	saved, err := h.content.SaveDomain(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *ContentHandler) DeleteDomain(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteDomain(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	if h.generation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "generation is not configured"})
		return
	}
	var req app.ArticleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "topic is required"})
		return
	}
	article, err := h.generation.GenerateArticle(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

func (h *ContentHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	if h.generation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "generation is not configured"})
		return
	}
	var body struct {
		Topic         string `json:"topic"`
		QuestionCount int    `json:"questionCount"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Topic == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "topic is required"})
		return
	}
	doc, err := h.generation.GenerateQuiz(r.Context(), body.Topic, body.QuestionCount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}
