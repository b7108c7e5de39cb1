package http

import "net/http"

// NewRouter assembles the full HTTP surface: public read paths, the
// cookie-gated admin API, and the editor websocket.
func NewRouter(auth *Auth, content *ContentHandler, public *PublicHandler, upload *UploadHandler, editorWS *EditorWSHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Public surface.
	mux.HandleFunc("GET /quiz/{slug}", public.GetQuiz)
	mux.HandleFunc("GET /article/{slug}", public.GetArticle)
	mux.HandleFunc("GET /go", public.Redirect)
	mux.HandleFunc("POST /quiz/{slug}/next", public.NextSlide)
	mux.HandleFunc("POST /quiz/{slug}/result", public.Result)

	// Auth.
	mux.HandleFunc("POST /api/login", auth.Login)
	mux.HandleFunc("POST /api/logout", auth.Logout)

	// Admin API.
	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/quizzes", content.ListQuizzes)
	admin.HandleFunc("POST /api/quizzes", content.CreateQuiz)
	admin.HandleFunc("GET /api/quizzes/{id}", content.GetQuiz)
	admin.HandleFunc("DELETE /api/quizzes/{id}", content.DeleteQuiz)
	admin.HandleFunc("PUT /api/quizzes/{id}/status", content.SetQuizStatus)

	admin.HandleFunc("GET /api/articles", content.ListArticles)
	admin.HandleFunc("POST /api/articles", content.CreateArticle)
	admin.HandleFunc("GET /api/articles/{id}", content.GetArticle)
	admin.HandleFunc("PUT /api/articles/{id}", content.UpdateArticle)
	admin.HandleFunc("DELETE /api/articles/{id}", content.DeleteArticle)

	admin.HandleFunc("GET /api/pixels", content.ListPixels)
	admin.HandleFunc("POST /api/pixels", content.SavePixel)
	admin.HandleFunc("DELETE /api/pixels/{id}", content.DeletePixel)

	admin.HandleFunc("GET /api/cta-urls", content.ListCTAUrls)
	admin.HandleFunc("POST /api/cta-urls", content.SaveCTAUrl)
	admin.HandleFunc("DELETE /api/cta-urls/{id}", content.DeleteCTAUrl)

	admin.HandleFunc("GET /api/domains", content.ListDomains)
	admin.HandleFunc("POST /api/domains", content.SaveDomain)
	admin.HandleFunc("DELETE /api/domains/{id}", content.DeleteDomain)

	admin.HandleFunc("POST /api/generate/article", content.GenerateArticle)
	admin.HandleFunc("POST /api/generate/quiz", content.GenerateQuiz)

	if upload != nil {
		admin.HandleFunc("POST /api/upload", upload.Upload)
	}
	admin.HandleFunc("/ws/editor", editorWS.ServeWS)

	mux.Handle("/api/", auth.Require(admin))
	mux.Handle("/ws/editor", auth.Require(admin))
	return mux
}
