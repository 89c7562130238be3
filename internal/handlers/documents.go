package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"navix-backend/internal/models"
	"navix-backend/internal/supabase"
	"navix-backend/internal/wizard"
)

type DocumentsHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
}

func NewDocumentsHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient) *DocumentsHandler {
	return &DocumentsHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

func documentResponse(doc *models.Document) models.DocumentResponse {
	resp := models.DocumentResponse{
		ID:     doc.ID.String(),
		Name:   doc.Name,
		Type:   doc.Type,
		Status: doc.Status,
		URL:    doc.URL,
		Date:   doc.Date,
	}
	if doc.ProcessID.Valid {
		resp.ProcessID = doc.ProcessID.UUID.String()
	}
	if doc.Size.Valid {
		resp.Size = doc.Size.String
	}
	return resp
}

// List godoc
// @Summary     List the user's documents
// @Tags        documents
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.DocumentListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /documents [get]
func (h *DocumentsHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	docs, err := h.dbClient.ListDocuments(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list documents", Message: err.Error()})
		return
	}

	resp := models.DocumentListResponse{Documents: make([]models.DocumentResponse, 0, len(docs))}
	for i := range docs {
		resp.Documents = append(resp.Documents, documentResponse(&docs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Upload godoc
// @Summary     Upload a standalone document
// @Description Uploads the file to the navix bucket and records it with no
// @Description process link. The filename keeps its (sanitized) original name.
// @Tags        documents
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file formData file true "Document file"
// @Success     201 {object} models.DocumentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /documents [post]
func (h *DocumentsHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no file uploaded", Message: err.Error()})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open file", Message: err.Error()})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}

	now := time.Now()
	cleanName := wizard.SanitizeFileName(fileHeader.Filename)
	objectKey := fmt.Sprintf("%s/%d_%s", userID.String(), now.UnixMilli(), cleanName)

	if err := h.storageClient.Upload(objectKey, data); err != nil {
		if supabase.IsPermissionDenied(err) {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "upload rejected by storage policy",
				Message: "the navix bucket is missing its access policies; apply the storage policies from the initial migration",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "upload failed", Message: err.Error()})
		return
	}

	name := fileHeader.Filename
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}

	doc := &models.Document{
		UserID: userID,
		Name:   name,
		Type:   wizard.CleanExtension(fileHeader.Filename),
		Status: models.DocStatusPending,
		URL:    objectKey,
		Date:   now,
	}
	if err := h.dbClient.InsertDocument(doc); err != nil {
		if supabase.IsPermissionDenied(err) {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "document insert rejected",
				Message: "the documents table is missing its owner policy; apply the policies from the initial migration",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save document", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, documentResponse(doc))
}

// SignedURL godoc
// @Summary     Short-lived view link for a document
// @Description Returns a signed URL valid for 60 seconds.
// @Tags        documents
// @Produce     json
// @Security    Bearer
// @Param       document_id path string true "Document ID (UUID)"
// @Success     200 {object} models.SignedURLResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /documents/{document_id}/url [get]
func (h *DocumentsHandler) SignedURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid document id"})
		return
	}

	doc, err := h.dbClient.GetDocument(documentID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "document not found", Message: err.Error()})
		return
	}

	// Seeded rows carry display names instead of object keys; nothing to sign.
	if !strings.Contains(doc.URL, "/") {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "document has no stored file"})
		return
	}

	signedURL, err := h.storageClient.CreateSignedURL(doc.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to sign url", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SignedURLResponse{
		SignedURL: signedURL,
		ExpiresIn: supabase.SignedURLExpirySeconds,
	})
}
