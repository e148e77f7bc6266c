// controllers/upload.go
package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"mandorpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// UploadDir and UploadPublicPath are set from the config at startup.
var (
	UploadDir        = "./uploads"
	UploadPublicPath = "/uploads"
)

// UploadFile stores a file and returns its public URL. The caller keeps its
// local preview until this URL comes back; only the returned URL is ever
// persisted on an entity.
func UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No file provided")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		utils.RespondWithError(c, http.StatusBadRequest, "Unsupported file type")
		return
	}

	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(UploadDir, name)); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store file")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": UploadPublicPath + "/" + name})
}
