package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/config"
	"github.com/nylose/sportcenter/internal/repository"
	"github.com/nylose/sportcenter/internal/validate"
)

// maxImageSize caps sport image uploads at 5 MB.
const maxImageSize = 5 << 20

// AdminHandler owns the dashboard: sport, schedule and site-content CRUD,
// user administration and the statistics endpoint.
type AdminHandler struct {
	Base
	Cfg         config.Config
	Users       *repository.UserRepo
	Sports      *repository.SportRepo
	Schedules   *repository.ScheduleRepo
	Social      *repository.SocialMediaRepo
	Contact     *repository.ContactInfoRepo
	Memberships *repository.MembershipRepo
	Stats       *repository.StatsRepo
}

type adminSportJSON struct {
	sportJSON
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func adminSportOut(s repository.Sport) adminSportJSON {
	return adminSportJSON{sportJSON: sportOut(s), IsActive: s.IsActive, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

// ListSports returns every sport, inactive ones included.
func (h *AdminHandler) ListSports(c echo.Context) error {
	sports, err := h.Sports.ListAll(c.Request().Context())
	if err != nil {
		return h.internalError(c, err, "Failed to load sports")
	}
	out := make([]adminSportJSON, 0, len(sports))
	for _, s := range sports {
		out = append(out, adminSportOut(s))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateSport accepts multipart form data: name, description, an optional
// age_groups JSON array and an optional image file.
func (h *AdminHandler) CreateSport(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	description := strings.TrimSpace(c.FormValue("description"))
	if details := validate.ValidateSport(name, description); len(details) > 0 {
		return validationFailed(c, details)
	}

	ageGroups, err := parseAgeGroups(c.FormValue("age_groups"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid age groups format"})
	}

	imagePath, err := h.saveSportImage(c)
	if err != nil {
		var uerr uploadError
		if errors.As(err, &uerr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": uerr.msg})
		}
		return h.internalError(c, err, "Failed to store image")
	}

	id, err := h.Sports.Create(c.Request().Context(), name, description, imagePath, ageGroups)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "A sport with this name already exists"})
		}
		return h.internalError(c, err, "Failed to create sport")
	}

	s, err := h.Sports.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.internalError(c, err, "Failed to create sport")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Sport created successfully", "sport": adminSportOut(s)})
}

// UpdateSport replaces the sport's fields. A newly uploaded image wins over
// the existing_image_path form value; with neither, the image is cleared.
func (h *AdminHandler) UpdateSport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	description := strings.TrimSpace(c.FormValue("description"))
	if details := validate.ValidateSport(name, description); len(details) > 0 {
		return validationFailed(c, details)
	}
	ageGroups, err := parseAgeGroups(c.FormValue("age_groups"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid age groups format"})
	}
	isActive := formBool(c.FormValue("is_active"), true)

	imagePath, err := h.saveSportImage(c)
	if err != nil {
		var uerr uploadError
		if errors.As(err, &uerr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": uerr.msg})
		}
		return h.internalError(c, err, "Failed to store image")
	}
	if imagePath == "" {
		imagePath = c.FormValue("existing_image_path")
	}

	err = h.Sports.Update(c.Request().Context(), id, name, description, imagePath, ageGroups, isActive)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Sport not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "A sport with this name already exists"})
		}
		return h.internalError(c, err, "Failed to update sport")
	}

	s, err := h.Sports.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.internalError(c, err, "Failed to update sport")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Sport updated successfully", "sport": adminSportOut(s)})
}

// DeleteSport removes a sport unless active schedule sessions still point
// at it.
func (h *AdminHandler) DeleteSport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	err = h.Sports.Delete(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "Sport deleted successfully"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Cannot delete sport with active schedule sessions"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Sport not found"})
	}
	return h.internalError(c, err, "Failed to delete sport")
}

// uploadError marks client-side upload problems (type, size) as opposed to
// disk failures.
type uploadError struct{ msg string }

func (e uploadError) Error() string { return e.msg }

// saveSportImage stores the uploaded "image" file under the upload
// directory and returns its public path. Returns "" when no file was sent.
func (h *AdminHandler) saveSportImage(c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		// Non-multipart requests land here as well; treat them as "no file".
		return "", nil
	}
	if fh.Size > maxImageSize {
		return "", uploadError{"Image must be smaller than 5MB"}
	}
	if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return "", uploadError{"Only image files are allowed"}
	}

	name := fmt.Sprintf("sport-%d-%s%s",
		time.Now().UnixMilli(), uuid.NewString()[:8], strings.ToLower(filepath.Ext(fh.Filename)))
	if err := h.copyUpload(fh, filepath.Join(h.Cfg.UploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func (h *AdminHandler) copyUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, src)
	return err
}

func parseAgeGroups(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var groups []string
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func formBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
