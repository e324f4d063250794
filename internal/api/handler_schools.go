package api

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"school-hub-backend/internal/school"
)

// ListSchools handles GET /schools.
func (h *Handler) ListSchools(c *gin.Context) {
	schools, err := h.svc.List(c.Request.Context())
	if err != nil {
		log.Printf("list schools failed: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schools"})
		return
	}
	c.JSON(http.StatusOK, schools)
}

// createSchoolJSON is the JSON variant of the create request body. The wire
// name for email is email_id; the bare form is accepted as well.
type createSchoolJSON struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Contact string `json:"contact"`
	EmailID string `json:"email_id"`
	Email   string `json:"email"`
	Image   string `json:"image"`
}

// CreateSchool handles POST /schools. The body is either JSON or multipart
// form data; both resolve into one school.CreateRequest before validation.
func (h *Handler) CreateSchool(c *gin.Context) {
	req, ok := h.resolveCreateRequest(c)
	if !ok {
		return
	}

	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithCreateError(c, err)
		return
	}

	// The listing cache now holds a stale window; drop it.
	if h.listCache != nil {
		h.listCache.Flush()
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "School added successfully",
		"id":      id,
	})
}

func (h *Handler) resolveCreateRequest(c *gin.Context) (school.CreateRequest, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.resolveMultipart(c)
	}

	var body createSchoolJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return school.CreateRequest{}, false
	}

	email := body.EmailID
	if email == "" {
		email = body.Email
	}

	return school.CreateRequest{
		Name:     body.Name,
		Address:  body.Address,
		City:     body.City,
		State:    body.State,
		Contact:  body.Contact,
		Email:    email,
		ImageURL: body.Image,
	}, true
}

func (h *Handler) resolveMultipart(c *gin.Context) (school.CreateRequest, bool) {
	email := c.PostForm("email_id")
	if email == "" {
		email = c.PostForm("email")
	}

	req := school.CreateRequest{
		Name:     c.PostForm("name"),
		Address:  c.PostForm("address"),
		City:     c.PostForm("city"),
		State:    c.PostForm("state"),
		Contact:  c.PostForm("contact"),
		Email:    email,
		ImageURL: c.PostForm("image_url"),
	}

	file, err := c.FormFile("image")
	if err != nil {
		// No file part: the request is still valid without an image.
		return req, true
	}

	src, err := file.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read image upload"})
		return school.CreateRequest{}, false
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read image upload"})
		return school.CreateRequest{}, false
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	req.Upload = &school.Upload{
		Filename:    file.Filename,
		ContentType: contentType,
		Data:        data,
	}
	return req, true
}
