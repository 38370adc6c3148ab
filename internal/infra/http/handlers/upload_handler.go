package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/confexa/confexa-backoffice/internal/usecase"
)

// Limite de upload avulso (10MB) — fotos de produto e showroom.
const maxUploadSize = 10 << 20

var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadHandler sobe imagens avulsas para o bucket e devolve a URL pública.
// O painel usa a URL retornada nos formulários de produto e showroom.
type UploadHandler struct {
	Storage usecase.ObjectStorage
}

func NewUploadHandler(storage usecase.ObjectStorage) *UploadHandler {
	return &UploadHandler{Storage: storage}
}

// Handle (POST /admin/uploads) — multipart com campo "file" e, opcional, um
// campo "folder" (products, showroom...).
func (h *UploadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE",
			"bucket de imagens não configurado")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORM", "formulário multipart inválido")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "FILE_REQUIRED", "campo 'file' é obrigatório")
		return
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		writeErrorResponse(w, http.StatusUnprocessableEntity, "INVALID_FILE_TYPE",
			"apenas imagens jpg, png, webp ou gif")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORM", "falha ao ler arquivo")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}
	objectPath := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	url, err := h.Storage.Upload(objectPath, data, header.Header.Get("Content-Type"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadGateway, "UPLOAD_FAILED",
			"falha ao enviar imagem para o bucket")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"path": objectPath,
		"url":  url,
	})
}
