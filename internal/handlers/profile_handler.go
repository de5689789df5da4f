package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucProfile "github.com/BruksfildServices01/salon-booking/internal/usecase/profile"
)

const avatarField = "avatar"

type ProfileHandler struct {
	svc *ucProfile.Service
	log *zap.Logger
}

func NewProfileHandler(svc *ucProfile.Service, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: log}
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, "Profile retrieved.", u)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.svc.Update(c.Request.Context(), middleware.Principal(c), ucProfile.UpdateInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, "Profile updated.", u)
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), middleware.Principal(c), ucProfile.ChangePasswordInput{
		Current: req.CurrentPassword,
		New:     req.NewPassword,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, "Password changed.", nil)
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile(avatarField)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", map[string]string{avatarField: "This field is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	defer f.Close()

	u, err := h.svc.UploadAvatar(c.Request.Context(), middleware.Principal(c), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, "Avatar updated.", u)
}
