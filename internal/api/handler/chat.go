package handler

import (
	"errors"
	"net/http"

	"skillswap/backend/internal/media"

	"github.com/gin-gonic/gin"
)

// GetChatHistory returns a session's messages, oldest first, each with the
// sender's name and avatar. Only participants may read it.
func (h *Handler) GetChatHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")

	history, err := h.Hub.History(sessionID, currentUser(c))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// UploadMedia stores a chat attachment (multipart field "file", 10 MiB cap)
// and returns its URL plus coarse type. No Message is created here; the
// client references the URL in a later send_message.
func (h *Handler) UploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "No file uploaded."})
		return
	}
	if fileHeader.Size > media.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"msg": "File exceeds the 10 MiB upload limit."})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Could not read uploaded file."})
		return
	}
	defer f.Close()

	url, err := h.Media.Save(f, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"msg": "File exceeds the 10 MiB upload limit."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to store file."})
		return
	}

	var fileType interface{}
	if t := media.Classify(fileHeader.Header.Get("Content-Type")); t != "" {
		fileType = t
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":      "File uploaded successfully",
		"filePath": url,
		"fileType": fileType,
	})
}
