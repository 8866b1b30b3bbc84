package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/agencydesk/agencyflow/internal/queue"
	"github.com/agencydesk/agencyflow/internal/service"
	"github.com/agencydesk/agencyflow/internal/transfer"
)

type SchedulerHandler struct {
	s           service.SchedulerService
	AsynqClient *asynq.Client
}

func NewSchedulerHandler(service service.SchedulerService, asynqClient *asynq.Client) *SchedulerHandler {
	return &SchedulerHandler{s: service, AsynqClient: asynqClient}
}

func (h *SchedulerHandler) CreatePost(c *fiber.Ctx) error {
	var sc transfer.ScheduledPostCreation
	if err := c.BodyParser(&sc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&sc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	postID, err := h.s.Create(c.Context(), &sc)
	if err != nil {
		return contentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": postID,
	})
}

func (h *SchedulerHandler) ListPosts(c *fiber.Ctx) error {
	postID := c.QueryInt("id", 0)
	clientID := c.QueryInt("client", 0)
	status := c.Query("status")

	if postID != 0 {
		post, err := h.s.Info(c.Context(), int64(postID))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get scheduled post",
			})
		}
		return c.Status(fiber.StatusOK).JSON(post)
	}

	posts, err := h.s.List(c.Context(), int64(clientID), status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list scheduled posts",
		})
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// ApprovePost moves the post into the publish pipeline and enqueues the
// delivery task for its publish time.
func (h *SchedulerHandler) ApprovePost(c *fiber.Ctx) error {
	approverID := GetUserID(c)
	postID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	delay, err := h.s.Approve(c.Context(), approverID, postID)
	if err != nil {
		return contentError(c, err)
	}

	err = queue.EnqueuePublish(h.AsynqClient, queue.PublishPostPayload{PostID: postID}, delay)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error scheduling post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post scheduled successfully",
	})
}

func (h *SchedulerHandler) PublishPost(c *fiber.Ctx) error {
	postID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	var pr transfer.PublishResult
	if err := c.BodyParser(&pr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	if err := validate.Struct(&pr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.s.Publish(c.Context(), postID, &pr); err != nil {
		return contentError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *SchedulerHandler) CancelPost(c *fiber.Ctx) error {
	postID, _ := strconv.ParseInt(c.Params("id"), 10, 64)

	if err := h.s.Cancel(c.Context(), postID); err != nil {
		return contentError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
