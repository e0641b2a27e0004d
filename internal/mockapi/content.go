package mockapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ustat/internal/domain"
)

func seedPosts() []domain.Post {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []domain.Post{
		{ID: "1", Title: "İnfaz düzenlemesinde son değişiklikler", Category: "ceza", Author: "Ustat", Summary: "Koşullu salıverilme oranlarına genel bakış.", PublishedAt: day("2025-01-10")},
		{ID: "2", Title: "Kıdem tazminatı nasıl hesaplanır?", Category: "is", Author: "Ustat", Summary: "Brüt ücret, çalışma süresi ve tavan.", PublishedAt: day("2025-02-03")},
		{ID: "3", Title: "Trafik kazasında maluliyet tazminatı", Category: "tazminat", Author: "Ustat", Summary: "Kusur oranı ve gelir kaybı.", PublishedAt: day("2025-03-21")},
		{ID: "4", Title: "2025 avukatlık asgari ücret tarifesi", Category: "avukatlik", Author: "Ustat", Summary: "Konusu para olan ve olmayan işler.", PublishedAt: day("2025-04-02")},
	}
}

func seedPackages() []domain.Package {
	return []domain.Package{
		{ID: "basic", Name: "Temel", Price: 199, Currency: "TRY", Period: "monthly", Features: []string{"Hesaplama araçları", "Blog"}},
		{ID: "pro", Name: "Profesyonel", Price: 499, Currency: "TRY", Period: "monthly", Features: []string{"Tüm hesaplamalar", "Dilekçe taslakları", "Öncelikli destek"}, Popular: true},
		{ID: "annual", Name: "Yıllık Profesyonel", Price: 4990, Currency: "TRY", Period: "yearly", Features: []string{"Tüm hesaplamalar", "İki ay ücretsiz"}},
	}
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	search := strings.ToLower(q.Get("search"))
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	s.mu.Lock()
	matched := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title+" "+p.Summary), search) {
			continue
		}
		matched = append(matched, p)
	}
	s.mu.Unlock()

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))
	writeJSON(w, http.StatusOK, envelope{"posts": matched[start:end], "total": len(matched), "page": page})
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			writeJSON(w, http.StatusOK, envelope{"post": p})
			return
		}
	}
	fail(w, http.StatusNotFound, "post not found")
}

func (s *Server) listPackages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, envelope{"packages": s.packages})
}
