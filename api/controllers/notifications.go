package controllers

import (
	"github.com/ITCS-6112-Dilio/dilio/api/models"
	"github.com/ITCS-6112-Dilio/dilio/notify"
	"github.com/gin-gonic/gin"
	"net/http"
)

type NotificationsController struct {
	inbox *notify.Inbox
}

func NewNotificationsController(inbox *notify.Inbox) *NotificationsController {
	return &NotificationsController{
		inbox: inbox,
	}
}

func (c *NotificationsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/notifications")

	group.GET("/:userId", c.list)
	group.PATCH("/:userId/:id/read", c.markRead)
	group.POST("/:userId/read-all", c.markAllRead)
}

// list godoc
// @Summary List a user's notifications
// @Description The user's own notifications merged with broadcasts, newest first
// @Tags notifications
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {array} storage.Notification
// @Failure 500 {object} models.ErrorResponse
// @Router /api/notifications/{userId} [get]
func (c *NotificationsController) list(g *gin.Context) {
	list, err := c.inbox.List(g.Request.Context(), g.Param("userId"))
	if err != nil {
		respondError(g, "NOTIFY", err)
		return
	}
	g.JSON(http.StatusOK, list)
}

// markRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param userId path string true "User id"
// @Param id path string true "Notification id"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/notifications/{userId}/{id}/read [patch]
func (c *NotificationsController) markRead(g *gin.Context) {
	if err := c.inbox.MarkRead(g.Request.Context(), g.Param("userId"), g.Param("id")); err != nil {
		respondError(g, "NOTIFY", err)
		return
	}
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "notification marked as read"})
}

// markAllRead godoc
// @Summary Mark all of a user's notifications as read
// @Tags notifications
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {object} models.MarkAllReadResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/notifications/{userId}/read-all [post]
func (c *NotificationsController) markAllRead(g *gin.Context) {
	n, err := c.inbox.MarkAllRead(g.Request.Context(), g.Param("userId"))
	if err != nil {
		respondError(g, "NOTIFY", err)
		return
	}
	g.JSON(http.StatusOK, &models.MarkAllReadResponse{Updated: n})
}
