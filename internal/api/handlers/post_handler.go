package handlers

import (
	"log/slog"

	"github.com/ddoongjamba/autosns-api/internal/service"
	"github.com/ddoongjamba/autosns-api/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	s     service.PostService
	quota service.QuotaService
}

func NewPostHandler(s service.PostService, quota service.QuotaService) *PostHandler {
	return &PostHandler{s: s, quota: quota}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.s.CreatePost(c.Context(), userID, &pc)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.QueryInt("id", 0)

	if postID != 0 {
		post, err := h.s.PostInfo(c.Context(), int64(postID), userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(post)
	}

	page := c.QueryInt("page", 1)
	size := c.QueryInt("size", 20)

	posts, err := h.s.List(c.Context(), userID, page, size)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.QueryInt("id", 0)

	if err := h.s.Remove(c.Context(), userID, int64(postID)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) GetUsage(c *fiber.Ctx) error {
	userID := GetUserID(c)

	usage, err := h.quota.Usage(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(usage)
}
