package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/valhq/flowscope/internal/core/discovery"
	"github.com/valhq/flowscope/internal/core/domain"
)

// Handler exposes the discovery service over HTTP.
type Handler struct {
	service *discovery.Service
}

func NewHandler(service *discovery.Service) *Handler {
	return &Handler{service: service}
}

// Health responds with a static liveness payload.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "flowscope-backend",
		"version": "0.1.0",
	})
}

// Topology serves the system topology overview.
func (h *Handler) Topology(c *fiber.Ctx) error {
	topology, err := h.service.Topology(c.Context())
	if err != nil {
		return upstreamError(c, "Failed to get system topology", err)
	}
	return c.JSON(topology)
}

// ListContainers serves the container listing. The stats query flag adds
// best-effort resource samples and image sizes to every record.
func (h *Handler) ListContainers(c *fiber.Ctx) error {
	if hasFlag(c, "stats") {
		containers, err := h.service.ListContainersWithStats(c.Context())
		if err != nil {
			return upstreamError(c, "Failed to list containers with stats", err)
		}
		return c.JSON(containers)
	}
	containers, err := h.service.ListContainers(c.Context())
	if err != nil {
		return upstreamError(c, "Failed to list containers", err)
	}
	return c.JSON(containers)
}

// ListNetworks serves the network listing.
func (h *Handler) ListNetworks(c *fiber.Ctx) error {
	networks, err := h.service.ListNetworks(c.Context())
	if err != nil {
		return upstreamError(c, "Failed to list networks", err)
	}
	return c.JSON(networks)
}

// ImageSizes serves the repo-tag to size-in-MB map.
func (h *Handler) ImageSizes(c *fiber.Ctx) error {
	sizes, err := h.service.ImageSizes(c.Context())
	if err != nil {
		return upstreamError(c, "Failed to list image sizes", err)
	}
	return c.JSON(sizes)
}

// Flowchart resolves and serves one view by id.
func (h *Handler) Flowchart(c *fiber.Ctx) error {
	id := c.Params("id")
	flowchart, err := h.service.Flowchart(c.Context(), id, hasFlag(c, "stats"))
	if err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			return notFound(c, "Flowchart not found", id)
		}
		return upstreamError(c, "Failed to generate flowchart", err)
	}
	return c.JSON(flowchart)
}

// GetContainer serves one container record by id or name.
func (h *Handler) GetContainer(c *fiber.Ctx) error {
	id := c.Params("id")
	record, err := h.service.GetContainer(c.Context(), id)
	if err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			return notFound(c, "Container not found", id)
		}
		return upstreamError(c, "Failed to get container", err)
	}
	return c.JSON(record)
}

// ContainerDetail serves the inspect-backed detail payload.
func (h *Handler) ContainerDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	detail, err := h.service.ContainerDetail(c.Context(), id)
	if err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			return notFound(c, "Container not found", id)
		}
		return upstreamError(c, "Failed to get container detail", err)
	}
	return c.JSON(detail)
}

// ContainerLogs serves the last N log lines (tail query, default 100).
func (h *Handler) ContainerLogs(c *fiber.Ctx) error {
	id := c.Params("id")
	tail, err := strconv.Atoi(c.Query("tail", "100"))
	if err != nil || tail <= 0 {
		tail = 100
	}
	logs, err := h.service.ContainerLogs(c.Context(), id, tail)
	if err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			return notFound(c, "Container not found", id)
		}
		return upstreamError(c, "Failed to get container logs", err)
	}
	return c.JSON(logs)
}

// ContainerStats serves a one-shot resource sample for one container.
func (h *Handler) ContainerStats(c *fiber.Ctx) error {
	id := c.Params("id")
	sample, err := h.service.ContainerStats(c.Context(), id)
	if err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			return notFound(c, "Container not found or not running", id)
		}
		return upstreamError(c, "Failed to get container stats", err)
	}
	return c.JSON(sample)
}

// RestartContainer sends a restart command. A daemon rejection still
// responds 200 with success=false inside the envelope.
func (h *Handler) RestartContainer(c *fiber.Ctx) error {
	return h.lifecycle(c, "Failed to restart container", h.service.RestartContainer)
}

// StopContainer sends a stop command.
func (h *Handler) StopContainer(c *fiber.Ctx) error {
	return h.lifecycle(c, "Failed to stop container", h.service.StopContainer)
}

// StartContainer sends a start command.
func (h *Handler) StartContainer(c *fiber.Ctx) error {
	return h.lifecycle(c, "Failed to start container", h.service.StartContainer)
}

func (h *Handler) lifecycle(c *fiber.Ctx, failMsg string, action func(ctx context.Context, id string) (*domain.ActionResult, error)) error {
	id := c.Params("id")
	result, err := action(c.Context(), id)
	if err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			return notFound(c, "Container not found", id)
		}
		return upstreamError(c, failMsg, err)
	}
	return c.JSON(result)
}

func hasFlag(c *fiber.Ctx, name string) bool {
	if !c.Context().QueryArgs().Has(name) {
		return false
	}
	return c.Query(name) != "false"
}

func notFound(c *fiber.Ctx, msg, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": msg,
		"id":    id,
	})
}

func upstreamError(c *fiber.Ctx, msg string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   msg,
		"details": err.Error(),
	})
}
