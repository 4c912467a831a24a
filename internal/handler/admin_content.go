package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/repository"
)

type socialMediaRequest struct {
	Platform     string `json:"platform"`
	URL          string `json:"url"`
	IconClass    string `json:"icon_class"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func (r socialMediaRequest) validate() []string {
	var details []string
	if strings.TrimSpace(r.Platform) == "" {
		details = append(details, "Platform is required")
	}
	if strings.TrimSpace(r.URL) == "" {
		details = append(details, "URL is required")
	}
	return details
}

// ListSocialMedia returns all links, inactive ones included.
func (h *AdminHandler) ListSocialMedia(c echo.Context) error {
	links, err := h.Social.List(c.Request().Context(), false)
	if err != nil {
		return h.internalError(c, err, "Failed to load social media links")
	}
	out := make([]echo.Map, 0, len(links))
	for _, l := range links {
		out = append(out, echo.Map{
			"id":            l.ID,
			"platform":      l.Platform,
			"url":           l.URL,
			"icon_class":    l.IconClass,
			"display_order": l.DisplayOrder,
			"is_active":     l.IsActive,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) CreateSocialMedia(c echo.Context) error {
	var req socialMediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return validationFailed(c, details)
	}
	id, err := h.Social.Create(c.Request().Context(), req.Platform, req.URL, req.IconClass, req.DisplayOrder)
	if err != nil {
		return h.internalError(c, err, "Failed to create social media link")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Social media link created successfully", "id": id})
}

func (h *AdminHandler) UpdateSocialMedia(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	var req socialMediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return validationFailed(c, details)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	err = h.Social.Update(c.Request().Context(), id, req.Platform, req.URL, req.IconClass, req.DisplayOrder, isActive)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Social media link not found"})
		}
		return h.internalError(c, err, "Failed to update social media link")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Social media link updated successfully"})
}

func (h *AdminHandler) DeleteSocialMedia(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	err = h.Social.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Social media link not found"})
		}
		return h.internalError(c, err, "Failed to delete social media link")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Social media link deleted successfully"})
}

type contactInfoRequest struct {
	Type         string `json:"type"`
	Label        string `json:"label"`
	Value        string `json:"value"`
	Href         string `json:"href"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func (r contactInfoRequest) validate() []string {
	var details []string
	switch r.Type {
	case "phone", "email", "address":
	default:
		details = append(details, "Type must be phone, email or address")
	}
	if strings.TrimSpace(r.Label) == "" {
		details = append(details, "Label is required")
	}
	if strings.TrimSpace(r.Value) == "" {
		details = append(details, "Value is required")
	}
	return details
}

// ListContactInfo returns all contact entries, inactive ones included.
func (h *AdminHandler) ListContactInfo(c echo.Context) error {
	entries, err := h.Contact.List(c.Request().Context(), false)
	if err != nil {
		return h.internalError(c, err, "Failed to load contact info")
	}
	out := make([]echo.Map, 0, len(entries))
	for _, e := range entries {
		out = append(out, echo.Map{
			"id":            e.ID,
			"type":          e.Type,
			"label":         e.Label,
			"value":         e.Value,
			"href":          nullStr(e.Href),
			"display_order": e.DisplayOrder,
			"is_active":     e.IsActive,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) CreateContactInfo(c echo.Context) error {
	var req contactInfoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return validationFailed(c, details)
	}
	id, err := h.Contact.Create(c.Request().Context(), req.Type, req.Label, req.Value, req.Href, req.DisplayOrder)
	if err != nil {
		return h.internalError(c, err, "Failed to create contact info")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Contact info created successfully", "id": id})
}

func (h *AdminHandler) UpdateContactInfo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	var req contactInfoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return validationFailed(c, details)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	err = h.Contact.Update(c.Request().Context(), id, req.Type, req.Label, req.Value, req.Href, req.DisplayOrder, isActive)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Contact info not found"})
		}
		return h.internalError(c, err, "Failed to update contact info")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Contact info updated successfully"})
}

func (h *AdminHandler) DeleteContactInfo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	err = h.Contact.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Contact info not found"})
		}
		return h.internalError(c, err, "Failed to delete contact info")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Contact info deleted successfully"})
}
