package handlers

import (
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"

	"github.com/globalyuen/achievepack-sub004/internal/models"
)

func (h *AdminHandler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.Store.ListArtworks(r.Context(), true)
	if err != nil {
		http.Error(w, "Error fetching artworks", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_artworks.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	var selected interface{}
	if id := r.URL.Query().Get("id"); id != "" {
		if a, err := h.Store.GetArtworkByID(r.Context(), id); err == nil {
			selected = a
		}
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Artworks":  artworks,
		"Selected":  selected,
		"Statuses":  models.ArtworkStatuses,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UploadArtwork stores the file on disk with a generated thumbnail and
// creates the pending_review record.
func (h *AdminHandler) UploadArtwork(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}

	userID := r.FormValue("user_id")
	customerCode := r.FormValue("customer_code")
	productCode := r.FormValue("product_code")

	file, header, err := r.FormFile("artwork")
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Artwork file is required."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}
	defer file.Close()

	var img image.Image
	ext := filepath.Ext(header.Filename)
	switch ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		session.AddFlash(FlashMessage{Type: "error", Message: "Unsupported image format. Only PNG, JPG, JPEG are allowed."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to decode image."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}

	// Full-size capped at 1600px, thumbnail at 320px, aspect ratio preserved.
	fullImage := resize.Resize(1600, 0, img, resize.Lanczos3)
	thumbImage := resize.Resize(320, 0, img, resize.Lanczos3)

	base := uuid.New().String()
	fullName := base + ".jpg"
	thumbName := base + "_thumb.jpg"

	if err := h.saveJPEG(filepath.Join(h.UploadDir, fullName), fullImage); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving artwork file."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}
	if err := h.saveJPEG(filepath.Join(h.UploadDir, thumbName), thumbImage); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving thumbnail."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}

	artwork := &models.ArtworkFile{
		UserID:       userID,
		FileName:     header.Filename,
		FileURL:      "/static/uploads/" + fullName,
		ThumbnailURL: "/static/uploads/" + thumbName,
		Status:       models.ArtworkStatusPendingReview,
		CustomerCode: customerCode,
		ProductCode:  productCode,
	}
	if err := h.Store.CreateArtwork(r.Context(), artwork); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving artwork to database."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Artwork uploaded!"})
	http.Redirect(w, r, "/admin/artworks?id="+artwork.ID, http.StatusSeeOther)
}

func (h *AdminHandler) saveJPEG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return jpeg.Encode(out, img, &jpeg.Options{Quality: 80})
}

// UpdateArtworkStatus is the primary review action: it applies the
// transition and queues the customer notification.
func (h *AdminHandler) UpdateArtworkStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id := r.FormValue("id")
	status := r.FormValue("status")
	if id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Missing artwork id."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}

	if err := h.Workflow.TransitionArtwork(r.Context(), id, status, true); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/artworks?id="+id, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Artwork status updated!"})
	http.Redirect(w, r, "/admin/artworks?id="+id, http.StatusSeeOther)
}

func (h *AdminHandler) SaveArtworkFeedback(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id := r.FormValue("id")
	feedback := r.FormValue("feedback")
	if id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Missing artwork id."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}

	if err := h.Store.UpdateArtworkFeedback(r.Context(), id, feedback); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/artworks?id="+id, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Feedback saved!"})
	http.Redirect(w, r, "/admin/artworks?id="+id, http.StatusSeeOther)
}

func (h *AdminHandler) SaveArtworkProof(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id := r.FormValue("id")
	proofURL := r.FormValue("proof_url")
	if id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Missing artwork id."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}

	if err := h.Store.UpdateArtworkProof(r.Context(), id, proofURL); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/artworks?id="+id, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Proof link saved!"})
	http.Redirect(w, r, "/admin/artworks?id="+id, http.StatusSeeOther)
}

func (h *AdminHandler) SaveArtworkCodes(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	defer session.Save(r, w)

	id := r.FormValue("id")
	if id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Missing artwork id."})
		http.Redirect(w, r, "/admin/artworks", http.StatusSeeOther)
		return
	}

	err := h.Store.UpdateArtworkCodes(r.Context(), id, r.FormValue("customer_code"), r.FormValue("product_code"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/artworks?id="+id, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Codes saved!"})
	http.Redirect(w, r, "/admin/artworks?id="+id, http.StatusSeeOther)
}
