package catalog

import (
	"net/http"

	"auris/models"
	"auris/utils"

	"github.com/julienschmidt/httprouter"
)

// GetProducts returns the full catalog, optional ?category= filter.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cat := r.URL.Query().Get("category"); cat != "" {
		utils.RespondWithJSON(w, http.StatusOK, Default.ByCategory(cat))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, Default.All())
}

// GetProduct returns one product by slug, 404 on an unknown slug.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")
	product, ok := Default.BySlug(slug)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetCategory returns the listing for one category page. Unknown category
// names render an empty listing rather than an error.
func GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	category := ps.ByName("category")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"category": category,
		"products": Default.ByCategory(category),
	})
}

// GetCategories lists the store's fixed categories.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, models.Categories)
}

// GetHome returns the home view: hero product, feature tiles, categories.
func GetHome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hero, _ := Default.BySlug("xx99-mark-ii")

	featured := []models.Product{}
	for _, slug := range []string{"zx9-speaker", "zx7-speaker", "yx1-earphones"} {
		if p, ok := Default.BySlug(slug); ok {
			featured = append(featured, p)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"hero":       hero,
		"featured":   featured,
		"categories": models.Categories,
	})
}
