package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/showroom/pkg/response"
	"github.com/shashiranjanraj/showroom/pkg/storage"
)

// maxUploadBytes caps vehicle image uploads at 10 MB.
const maxUploadBytes = 10 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadController stores vehicle images on the configured disk.
type UploadController struct {
	disk storage.Disk
}

func NewUploadController(disk storage.Disk) *UploadController {
	return &UploadController{disk: disk}
}

// Store accepts a multipart "image" field, writes it under vehicles/ with a
// uuid name, and returns the durable URL. Admin route.
func (c *UploadController) Store(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing image field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		response.Error(w, http.StatusUnprocessableEntity, "Only jpg, jpeg, png and webp images are accepted")
		return
	}

	key := fmt.Sprintf("vehicles/%s%s", uuid.NewString(), ext)
	if err := c.disk.PutStream(key, io.LimitReader(file, maxUploadBytes)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.Created(w, map[string]string{
		"key": key,
		"url": c.disk.URL(key),
	})
}

// Destroy removes a previously uploaded image by key. Admin route.
func (c *UploadController) Destroy(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" || !strings.HasPrefix(key, "vehicles/") {
		response.Error(w, http.StatusBadRequest, "Invalid key")
		return
	}
	if err := c.disk.Delete(key); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.NoContent(w)
}
